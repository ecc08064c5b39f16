package riffchunk

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

// FormatTagExtensible marks a WAVEFORMATEXTENSIBLE fmt chunk (spec.md §4.7).
const FormatTagExtensible = 0xFFFE

// FmtChunk is a decoded WAV "fmt " chunk, with the WAVEFORMATEXTENSIBLE
// extension fields populated when present.
type FmtChunk struct {
	FormatTag     uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16

	// Present only when a cbSize extension follows.
	HasExtension  bool
	ValidBits     uint16
	ChannelMask   uint32
	SubFormatGUID [16]byte
}

// ParseFmt decodes a "fmt " chunk body.
func ParseFmt(b []byte) (*FmtChunk, error) {
	r := binio.NewReader(b)
	f := &FmtChunk{}
	var err error
	if f.FormatTag, err = r.U16LE(op); err != nil {
		return nil, err
	}
	if f.Channels, err = r.U16LE(op); err != nil {
		return nil, err
	}
	if f.SampleRate, err = r.U32LE(op); err != nil {
		return nil, err
	}
	if f.ByteRate, err = r.U32LE(op); err != nil {
		return nil, err
	}
	if f.BlockAlign, err = r.U16LE(op); err != nil {
		return nil, err
	}
	if f.BitsPerSample, err = r.U16LE(op); err != nil {
		return nil, err
	}
	if r.Len() < 2 {
		return f, nil
	}
	cbSize, err := r.U16LE(op)
	if err != nil {
		return nil, err
	}
	if cbSize == 0 {
		return f, nil
	}
	if f.FormatTag != FormatTagExtensible {
		// cbSize present but not a WAVEFORMATEXTENSIBLE: skip the extra
		// bytes opaquely, nothing more to decode.
		if _, err := r.Take(op, int(cbSize)); err != nil {
			return nil, err
		}
		return f, nil
	}
	if cbSize < 22 {
		return nil, tagerr.Newf(tagerr.InvalidField, op, "WAVEFORMATEXTENSIBLE cbSize must be >= 22, got %d", cbSize)
	}
	f.HasExtension = true
	if f.ValidBits, err = r.U16LE(op); err != nil {
		return nil, err
	}
	if f.ChannelMask, err = r.U32LE(op); err != nil {
		return nil, err
	}
	guid, err := r.Take(op, 16)
	if err != nil {
		return nil, err
	}
	copy(f.SubFormatGUID[:], guid)
	return f, nil
}

// Render serialises f back to its wire bytes.
func (f *FmtChunk) Render() []byte {
	size := 16
	if f.HasExtension {
		size += 2 + 22
	}
	buf := binio.NewBuffer(size)
	buf.WriteU16LE(f.FormatTag)
	buf.WriteU16LE(f.Channels)
	buf.WriteU32LE(f.SampleRate)
	buf.WriteU32LE(f.ByteRate)
	buf.WriteU16LE(f.BlockAlign)
	buf.WriteU16LE(f.BitsPerSample)
	if f.HasExtension {
		buf.WriteU16LE(22)
		buf.WriteU16LE(f.ValidBits)
		buf.WriteU32LE(f.ChannelMask)
		buf.WriteBytes(f.SubFormatGUID[:])
	}
	return buf.Bytes()
}
