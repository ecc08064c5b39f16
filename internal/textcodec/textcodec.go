// Package textcodec implements the four ID3v2 text encodings (spec.md
// §4.1/§9 "Encoding discipline"): Latin-1, UTF-16 with BOM, UTF-16BE, and
// UTF-8, including terminator handling and BOM detection, plus a tolerant
// UTF-8 decoder that Decode applies to encoding-3 text. The Vorbis Comment,
// APE and RIFF INFO parsers do not use this package; they keep their bytes
// as Go strings without validation.
//
// UTF-16 conversion is grounded on golang.org/x/text/encoding/unicode and
// golang.org/x/text/transform (part of the dependency graph retrieved
// alongside go-musicfox, which pulls in golang.org/x/text transitively for
// its terminal/locale handling) rather than a hand-rolled UTF-16 codec.
package textcodec

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/soundcodec/tagio/internal/tagerr"
)

// Encoding identifies one of the four ID3v2 text encodings by its leading
// encoding byte.
type Encoding byte

const (
	Latin1 Encoding = 0
	UTF16BOM Encoding = 1
	UTF16BE  Encoding = 2
	UTF8     Encoding = 3
)

// Valid reports whether e is accepted for the given major ID3v2 version;
// encoding 3 (UTF-8) is only valid in v2.4.
func (e Encoding) Valid(majorVersion int) bool {
	switch e {
	case Latin1, UTF16BOM, UTF16BE:
		return true
	case UTF8:
		return majorVersion >= 4
	default:
		return false
	}
}

// TerminatorWidth returns 2 for the UTF-16 encodings (NUL NUL on an even
// boundary) and 1 otherwise.
func (e Encoding) TerminatorWidth() int {
	if e == UTF16BOM || e == UTF16BE {
		return 2
	}
	return 1
}

// FindTerminator returns the offset of the first encoding-appropriate
// terminator in b, or -1 if none is present.
func (e Encoding) FindTerminator(b []byte) int {
	w := e.TerminatorWidth()
	if w == 1 {
		for i, c := range b {
			if c == 0 {
				return i
			}
		}
		return -1
	}
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return i
		}
	}
	return -1
}

// Decode converts raw bytes in the declared encoding to a Go (UTF-8) string.
func Decode(op string, e Encoding, raw []byte) (string, error) {
	switch e {
	case Latin1:
		return decodeLatin1(raw), nil
	case UTF8:
		if !utf8.Valid(raw) {
			return tolerantUTF8(raw), nil
		}
		return string(raw), nil
	case UTF16BOM:
		return decodeUTF16(op, raw, unicode.UseBOM, unicode.LittleEndian)
	case UTF16BE:
		return decodeUTF16(op, raw, unicode.IgnoreBOM, unicode.BigEndian)
	default:
		return "", tagerr.Newf(tagerr.Encoding, op, "unknown text encoding %d", e)
	}
}

// Encode converts a Go string to raw bytes in the declared encoding. It does
// not append a terminator; callers append one where the wire format calls
// for it.
func Encode(op string, e Encoding, s string) ([]byte, error) {
	switch e {
	case Latin1:
		return encodeLatin1(s), nil
	case UTF8:
		return []byte(s), nil
	case UTF16BOM:
		return encodeUTF16(op, s, true, unicode.LittleEndian)
	case UTF16BE:
		return encodeUTF16(op, s, false, unicode.BigEndian)
	default:
		return nil, tagerr.Newf(tagerr.Encoding, op, "unknown text encoding %d", e)
	}
}

func decodeLatin1(raw []byte) string {
	rs := make([]rune, len(raw))
	for i, b := range raw {
		rs[i] = rune(b)
	}
	return string(rs)
}

func encodeLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}

func decodeUTF16(op string, raw []byte, bom unicode.BOMPolicy, fallback unicode.Endianness) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	enc := unicode.UTF16(fallback, bom)
	dec := enc.NewDecoder()
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		// Fall back to a best-effort manual decode so a single malformed
		// code unit does not fail parsing of an otherwise-valid tag.
		return manualUTF16Decode(raw, fallback), nil
	}
	if !utf8.Valid(out) {
		return "", tagerr.New(tagerr.Encoding, op, "invalid UTF-16 text")
	}
	return string(out), nil
}

func manualUTF16Decode(raw []byte, fallback unicode.Endianness) string {
	if len(raw) >= 2 {
		if raw[0] == 0xFF && raw[1] == 0xFE {
			fallback = unicode.LittleEndian
			raw = raw[2:]
		} else if raw[0] == 0xFE && raw[1] == 0xFF {
			fallback = unicode.BigEndian
			raw = raw[2:]
		}
	}
	n := len(raw) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		if fallback == unicode.LittleEndian {
			units[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
		} else {
			units[i] = uint16(raw[2*i])<<8 | uint16(raw[2*i+1])
		}
	}
	return string(utf16.Decode(units))
}

func encodeUTF16(op string, s string, withBOM bool, end unicode.Endianness) ([]byte, error) {
	bom := unicode.IgnoreBOM
	if withBOM {
		bom = unicode.UseBOM
	}
	enc := unicode.UTF16(end, bom)
	encoder := enc.NewEncoder()
	out, _, err := transform.Bytes(encoder, []byte(s))
	if err != nil {
		return nil, tagerr.Wrap(tagerr.Encoding, op, err)
	}
	return out, nil
}

// tolerantUTF8 decodes UTF-8, mapping each byte that is not part of a valid
// sequence to the rune of the same value (its Latin-1 reading), so text
// that declares UTF-8 but was written in a single-byte code page stays
// readable. Decode uses it for ID3v2 encoding-3 text.
func tolerantUTF8(raw []byte) string {
	rs := make([]rune, 0, len(raw))
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			rs = append(rs, rune(raw[i]))
			i++
			continue
		}
		rs = append(rs, r)
		i += size
	}
	return string(rs)
}
