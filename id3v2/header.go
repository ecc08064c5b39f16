// Package id3v2 implements the ID3v2 tag engine: header/footer/extended-
// header parsing, unsynchronization, frame dispatch, typed frame variants,
// and version up/down-conversion for serialisation (spec.md §4.3).
package id3v2

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

// Header flag bits (major-version dependent; the footer bit is v2.4-only,
// per spec.md §6).
const (
	flagUnsync       = 0x80
	flagExtHeader    = 0x40
	flagExperimental = 0x20
	flagFooter       = 0x10
)

// Header is the 10-byte ID3v2 header.
type Header struct {
	Major          int // 2, 3 or 4
	Revision       byte
	Unsync         bool
	ExtendedHeader bool
	Experimental   bool
	Footer         bool // v2.4 only
	TagSize        uint32
}

const headerSize = 10

func parseHeader(op string, r *binio.Reader) (*Header, error) {
	magic, err := r.Take(op, 3)
	if err != nil {
		return nil, err
	}
	if string(magic) != "ID3" {
		return nil, tagerr.New(tagerr.InvalidMagic, op, `expected "ID3" magic`)
	}
	major, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	if major < 2 || major > 4 {
		return nil, tagerr.Newf(tagerr.InvalidVersion, op, "unsupported ID3v2 major version %d", major)
	}
	rev, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	if rev == 0xFF {
		return nil, tagerr.New(tagerr.InvalidVersion, op, "revision byte 0xFF is reserved")
	}
	flags, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	h := &Header{Major: int(major), Revision: rev}
	h.Unsync = flags&flagUnsync != 0
	h.ExtendedHeader = flags&flagExtHeader != 0
	h.Experimental = flags&flagExperimental != 0
	if major >= 4 {
		h.Footer = flags&flagFooter != 0
	} else if flags&flagFooter != 0 {
		return nil, tagerr.New(tagerr.InvalidField, op, "footer flag set on pre-2.4 tag")
	}
	// Any reserved bit set is an invalid field per spec.md §4.3 header flags.
	knownMask := byte(flagUnsync | flagExtHeader | flagExperimental)
	if major >= 4 {
		knownMask |= flagFooter
	}
	if flags&^knownMask != 0 {
		return nil, tagerr.New(tagerr.InvalidField, op, "reserved header flag bit set")
	}
	size, err := r.ReadSyncsafe28(op)
	if err != nil {
		return nil, err
	}
	h.TagSize = size
	return h, nil
}

func (h *Header) render(buf *binio.Buffer) error {
	buf.WriteASCII("ID3")
	buf.WriteByte(byte(h.Major))
	buf.WriteByte(h.Revision)
	var flags byte
	if h.Unsync {
		flags |= flagUnsync
	}
	if h.ExtendedHeader {
		flags |= flagExtHeader
	}
	if h.Experimental {
		flags |= flagExperimental
	}
	if h.Major >= 4 && h.Footer {
		flags |= flagFooter
	}
	buf.WriteByte(flags)
	return buf.WriteSyncsafe28(h.TagSize)
}

// skipExtendedHeader consumes the extended header per the version's layout
// (spec.md §4.3 step 3): v2.3 uses a big-endian size then body; v2.4 uses a
// syncsafe size that includes the 4 size bytes themselves.
func skipExtendedHeader(op string, r *binio.Reader, major int) error {
	if major == 3 {
		size, err := r.U32BE(op)
		if err != nil {
			return err
		}
		_, err = r.Take(op, int(size))
		return err
	}
	// v2.4: syncsafe size includes the 4 size bytes.
	size, err := r.ReadSyncsafe28(op)
	if err != nil {
		return err
	}
	if size < 4 {
		return tagerr.New(tagerr.InvalidField, op, "extended header size too small")
	}
	_, err = r.Take(op, int(size)-4)
	return err
}
