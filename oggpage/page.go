// Package oggpage implements the Ogg container's page framing and packet
// reassembly (spec.md §4.5): page header parse/emit, segment-table codec,
// multi-page packet reassembly with packet-complete tracking, EOS/BOS/
// continuation semantics, CRC recomputation, stream renumbering, and a
// packet-size safety cap.
package oggpage

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/crc32ogg"
	"github.com/soundcodec/tagio/internal/tagerr"
)

const op = "oggpage"

// Magic is the 4-byte Ogg page signature.
const Magic = "OggS"

// Page flag bits.
const (
	FlagContinuation = 0x01
	FlagBOS          = 0x02
	FlagEOS          = 0x04
)

// Page is one parsed Ogg page (spec.md §3/§6).
type Page struct {
	Flags        byte
	Granule      uint64
	Serial       uint32
	Sequence     uint32
	CRC          uint32
	SegmentTable []byte
	Data         []byte // concatenation of all lacing-described segments
}

const headerFixedSize = 27

// Continuation, BOS, EOS report the page's flag bits.
func (p *Page) Continuation() bool { return p.Flags&FlagContinuation != 0 }
func (p *Page) BOS() bool          { return p.Flags&FlagBOS != 0 }
func (p *Page) EOS() bool          { return p.Flags&FlagEOS != 0 }

// Parse decodes one page starting at the beginning of b. It returns the
// page and the number of bytes it occupied. validateCRC, when true, fails
// with CRC_MISMATCH if the stored CRC does not match a recomputation with
// the CRC field zeroed (spec.md §4.5, §8 S3).
func Parse(b []byte, validateCRC bool) (*Page, int, error) {
	r := binio.NewReader(b)
	magic, err := r.Take(op, 4)
	if err != nil {
		return nil, 0, err
	}
	if string(magic) != Magic {
		return nil, 0, tagerr.New(tagerr.InvalidMagic, op, `expected "OggS" magic`)
	}
	version, err := r.U8(op)
	if err != nil {
		return nil, 0, err
	}
	if version != 0 {
		return nil, 0, tagerr.Newf(tagerr.InvalidVersion, op, "unsupported Ogg page version %d", version)
	}
	p := &Page{}
	if p.Flags, err = r.U8(op); err != nil {
		return nil, 0, err
	}
	if p.Granule, err = r.U64LE(op); err != nil {
		return nil, 0, err
	}
	if p.Serial, err = r.U32LE(op); err != nil {
		return nil, 0, err
	}
	if p.Sequence, err = r.U32LE(op); err != nil {
		return nil, 0, err
	}
	if p.CRC, err = r.U32LE(op); err != nil {
		return nil, 0, err
	}
	nseg, err := r.U8(op)
	if err != nil {
		return nil, 0, err
	}
	segTable, err := r.Take(op, int(nseg))
	if err != nil {
		return nil, 0, err
	}
	p.SegmentTable = append([]byte(nil), segTable...)
	dataLen := 0
	for _, s := range segTable {
		dataLen += int(s)
	}
	data, err := r.Take(op, dataLen)
	if err != nil {
		return nil, 0, err
	}
	p.Data = append([]byte(nil), data...)
	total := headerFixedSize + int(nseg) + dataLen
	if validateCRC {
		computed := computeCRC(b[:total])
		if computed != p.CRC {
			return nil, 0, tagerr.Newf(tagerr.CRCMismatch, op, "page CRC mismatch: stored %#x, computed %#x", p.CRC, computed)
		}
	}
	return p, total, nil
}

// computeCRC recomputes a whole page's CRC with the 4 CRC bytes (offset 22)
// treated as zero, per spec.md §4.2.
func computeCRC(pageBytes []byte) uint32 {
	tmp := append([]byte(nil), pageBytes...)
	tmp[22], tmp[23], tmp[24], tmp[25] = 0, 0, 0, 0
	return crc32ogg.Checksum(tmp)
}

// segmentsForLength returns the lacing bytes describing a payload of length
// n: full 255-byte segments followed by a final segment < 255 (0 if n is an
// exact multiple of 255, spec.md §4.5).
func segmentsForLength(n int) []byte {
	var segs []byte
	for n >= 255 {
		segs = append(segs, 255)
		n -= 255
	}
	segs = append(segs, byte(n))
	return segs
}

// MaxSegments is the largest a single page's segment table may be.
const MaxSegments = 255

// MaxSinglePagePayload is the largest packet Emit can place in a single
// page: 254 full 255-byte segments plus a final segment of 254 bytes, since
// a packet of exactly 255*255 bytes would need a 256th, zero-length lacing
// value (spec.md §4.5).
const MaxSinglePagePayload = MaxSegments*255 - 1

// Render serialises p back to its wire bytes, recomputing the CRC.
func (p *Page) Render() []byte {
	buf := binio.NewBuffer(headerFixedSize + len(p.SegmentTable) + len(p.Data))
	buf.WriteASCII(Magic)
	buf.WriteByte(0) // version
	buf.WriteByte(p.Flags)
	buf.WriteU64LE(p.Granule)
	buf.WriteU32LE(p.Serial)
	buf.WriteU32LE(p.Sequence)
	crcOffset := buf.Len()
	buf.WriteU32LE(0)
	buf.WriteByte(byte(len(p.SegmentTable)))
	buf.WriteBytes(p.SegmentTable)
	buf.WriteBytes(p.Data)
	out := buf.Bytes()
	crc := crc32ogg.Checksum(out)
	buf.PatchU32LE(crcOffset, crc)
	return out
}
