package binio

import "github.com/soundcodec/tagio/internal/tagerr"

// MaxSyncsafe is the largest value a syncsafe-28 integer can represent.
const MaxSyncsafe = 1<<28 - 1

// EncodeSyncsafe28 encodes v as a 4-byte big-endian syncsafe integer (every
// byte's bit 7 forced to 0). It fails if v exceeds 2^28-1.
func EncodeSyncsafe28(v uint32) ([4]byte, error) {
	var out [4]byte
	if v > MaxSyncsafe {
		return out, tagerr.Newf(tagerr.InvalidField, "binio.EncodeSyncsafe28", "value %d exceeds 2^28-1", v)
	}
	out[0] = byte((v >> 21) & 0x7F)
	out[1] = byte((v >> 14) & 0x7F)
	out[2] = byte((v >> 7) & 0x7F)
	out[3] = byte(v & 0x7F)
	return out, nil
}

// DecodeSyncsafe28 decodes a 4-byte big-endian syncsafe integer. It fails if
// any byte has bit 7 set.
func DecodeSyncsafe28(b [4]byte) (uint32, error) {
	var v uint32
	for _, by := range b {
		if by&0x80 != 0 {
			return 0, tagerr.New(tagerr.InvalidField, "binio.DecodeSyncsafe28", "byte has bit 7 set")
		}
		v = v<<7 | uint32(by)
	}
	return v, nil
}

// ReadSyncsafe28 reads and decodes a syncsafe-28 integer from r.
func (r *Reader) ReadSyncsafe28(op string) (uint32, error) {
	b, err := r.Take(op, 4)
	if err != nil {
		return 0, err
	}
	return DecodeSyncsafe28([4]byte{b[0], b[1], b[2], b[3]})
}

// WriteSyncsafe28 encodes and appends a syncsafe-28 integer.
func (b *Buffer) WriteSyncsafe28(v uint32) error {
	enc, err := EncodeSyncsafe28(v)
	if err != nil {
		return err
	}
	b.WriteBytes(enc[:])
	return nil
}

// Unsynchronize applies the reversible ID3v2 unsynchronization transform:
// insert 0x00 after every 0xFF byte, unconditionally. This is the
// unconditional form (rather than the standard's "only when the following
// byte is >= 0xE0 or 0x00" optimisation) so that Resynchronize, which
// unconditionally drops a 0x00 after any 0xFF, is an exact inverse for every
// byte sequence (spec.md §8.5). After the transform, no 0xFF is followed by
// a byte with bits 5..7 set, since the inserted byte is always 0x00.
func Unsynchronize(in []byte) []byte {
	out := make([]byte, 0, len(in)+len(in)/8+1)
	for i := 0; i < len(in); i++ {
		out = append(out, in[i])
		if in[i] == 0xFF {
			out = append(out, 0x00)
		}
	}
	return out
}

// Resynchronize reverses Unsynchronize: drop a 0x00 byte following any
// 0xFF byte.
func Resynchronize(in []byte) []byte {
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		out = append(out, in[i])
		if in[i] == 0xFF && i+1 < len(in) && in[i+1] == 0x00 {
			i++
		}
	}
	return out
}
