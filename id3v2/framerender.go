package id3v2

import (
	"strings"

	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
	"github.com/soundcodec/tagio/internal/textcodec"
)

// renderFrameBody renders body's payload for targetVersion (3 or 4; v2.2
// writing is out of scope per spec.md Non-goals) and returns the canonical
// 4-char id to store it under.
func renderFrameBody(body FrameBody, targetVersion int) (id string, payload []byte, err error) {
	buf := binio.NewBuffer(64)
	id = body.frameID()
	switch f := body.(type) {
	case *TextFrame:
		if err := renderText(buf, f.Encoding, f.Values, targetVersion); err != nil {
			return "", nil, err
		}
	case *UserTextFrame:
		buf.WriteByte(byte(f.Encoding))
		if err := writeTerminated(buf, f.Encoding, f.Description); err != nil {
			return "", nil, err
		}
		if err := renderMultiValue(buf, f.Encoding, f.Values, targetVersion); err != nil {
			return "", nil, err
		}
	case *URLFrame:
		buf.WriteASCII(f.URL)
	case *UserURLFrame:
		buf.WriteByte(byte(f.Encoding))
		if err := writeTerminated(buf, f.Encoding, f.Description); err != nil {
			return "", nil, err
		}
		buf.WriteASCII(f.URL)
	case *CommentFrame:
		buf.WriteByte(byte(f.Encoding))
		buf.WriteASCII(pad3(f.Language))
		if err := writeTerminated(buf, f.Encoding, f.Short); err != nil {
			return "", nil, err
		}
		enc, err := textcodec.Encode(op, f.Encoding, f.Text)
		if err != nil {
			return "", nil, err
		}
		buf.WriteBytes(enc)
	case *LyricsFrame:
		buf.WriteByte(byte(f.Encoding))
		buf.WriteASCII(pad3(f.Language))
		if err := writeTerminated(buf, f.Encoding, f.Short); err != nil {
			return "", nil, err
		}
		enc, err := textcodec.Encode(op, f.Encoding, f.Text)
		if err != nil {
			return "", nil, err
		}
		buf.WriteBytes(enc)
	case *PictureFrame:
		buf.WriteByte(byte(f.Encoding))
		buf.WriteASCII(f.MIME)
		buf.WriteByte(0)
		buf.WriteByte(f.PictureType)
		if err := writeTerminated(buf, f.Encoding, f.Description); err != nil {
			return "", nil, err
		}
		buf.WriteBytes(f.Data)
	case *UFIDFrame:
		buf.WriteASCII(f.Owner)
		buf.WriteByte(0)
		buf.WriteBytes(f.Identifier)
	case *PeopleListFrame:
		buf.WriteByte(byte(f.Encoding))
		for _, pair := range f.Pairs {
			if err := writeTerminated(buf, f.Encoding, pair[0]); err != nil {
				return "", nil, err
			}
			if err := writeTerminated(buf, f.Encoding, pair[1]); err != nil {
				return "", nil, err
			}
		}
		id = f.ID
	case *PlayCounterFrame:
		buf.WriteBytes(minBEBytes(f.Count))
	case *PopularimeterFrame:
		buf.WriteASCII(f.Email)
		buf.WriteByte(0)
		buf.WriteByte(f.Rating)
		if f.HasPlayCount {
			buf.WriteBytes(minBEBytes(f.PlayCount))
		}
	case *PrivateFrame:
		buf.WriteASCII(f.Owner)
		buf.WriteByte(0)
		buf.WriteBytes(f.Data)
	case *RelativeVolumeFrame:
		buf.WriteASCII(f.Identification)
		buf.WriteByte(0)
		for _, ch := range f.Channels {
			buf.WriteByte(ch.ChannelType)
			buf.WriteU16BE(uint16(ch.VolumeAdjustmentQ16))
			buf.WriteByte(ch.PeakBits)
			buf.WriteBytes(ch.PeakData)
		}
	case *UnknownFrame:
		buf.WriteBytes(f.Data)
	default:
		return "", nil, tagerr.Newf(tagerr.Unsupported, op, "unknown frame body type for id %q", id)
	}
	return id, buf.Bytes(), nil
}

func pad3(s string) string {
	for len(s) < 3 {
		s += "\x00"
	}
	if len(s) > 3 {
		s = s[:3]
	}
	return s
}

// minBEBytes renders v as the shortest big-endian byte sequence with a
// minimum width of 4 bytes, per the PCNT/POPM-play-count wire format.
func minBEBytes(v uint64) []byte {
	n := 4
	for shift := uint(32); shift < 64 && v>>shift != 0; shift += 8 {
		n++
	}
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

func writeTerminated(buf *binio.Buffer, enc textcodec.Encoding, s string) error {
	b, err := textcodec.Encode(op, enc, s)
	if err != nil {
		return err
	}
	buf.WriteBytes(b)
	if enc == textcodec.UTF16BOM || enc == textcodec.UTF16BE {
		buf.WriteByte(0)
		buf.WriteByte(0)
	} else {
		buf.WriteByte(0)
	}
	return nil
}

// renderText renders a text frame's value list, joining with NUL on v2.4
// (true multi-value) or with "/" folded into a single value on v2.3,
// since v2.3 has no wire-level multi-value representation (spec.md §3, §9
// Open Question (a): the split is a read-only convenience and is never
// re-emitted; here we must still produce *something* for >1 stored value,
// so we join with "/" exactly as spec.md's data model section specifies:
// "a single frame whose payload is slash-joined on serialisation").
func renderText(buf *binio.Buffer, enc textcodec.Encoding, values []string, targetVersion int) error {
	return renderMultiValue(buf, enc, values, targetVersion)
}

func renderMultiValue(buf *binio.Buffer, enc textcodec.Encoding, values []string, targetVersion int) error {
	if len(values) == 0 {
		values = []string{""}
	}
	if targetVersion >= 4 {
		joinBytes := []byte{0}
		if enc == textcodec.UTF16BOM || enc == textcodec.UTF16BE {
			joinBytes = []byte{0, 0}
		}
		for i, v := range values {
			if i > 0 {
				buf.WriteBytes(joinBytes)
			}
			b, err := textcodec.Encode(op, enc, v)
			if err != nil {
				return err
			}
			buf.WriteBytes(b)
		}
		return nil
	}
	joined := strings.Join(values, "/")
	b, err := textcodec.Encode(op, enc, joined)
	if err != nil {
		return err
	}
	buf.WriteBytes(b)
	return nil
}
