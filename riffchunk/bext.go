package riffchunk

import (
	"strings"

	"github.com/soundcodec/tagio/internal/binio"
)

// BextChunk is a decoded Broadcast Wave "bext" chunk (spec.md §4.7). UMID
// is only present for version 1+; CodingHistory is whatever follows the
// fixed fields, for every version.
type BextChunk struct {
	Description         string // 256 bytes
	Originator           string // 32 bytes
	OriginatorReference   string // 32 bytes
	OriginationDate       string // 10 bytes
	OriginationTime       string // 8 bytes
	TimeReferenceLow      uint32
	TimeReferenceHigh     uint32
	Version               uint16
	UMID                  [64]byte
	CodingHistory         string
}

const (
	bextDescSize      = 256
	bextOriginatorSz  = 32
	bextOriginatorRef = 32
	bextDateSize      = 10
	bextTimeSize      = 8
	bextUMIDSize      = 64
	bextFixedSize     = bextDescSize + bextOriginatorSz + bextOriginatorRef + bextDateSize + bextTimeSize + 8 + 2
)

// ParseBext decodes a "bext" chunk body.
func ParseBext(b []byte) (*BextChunk, error) {
	r := binio.NewReader(b)
	c := &BextChunk{}
	var err error
	desc, err := r.Take(op, bextDescSize)
	if err != nil {
		return nil, err
	}
	c.Description = nulTrimBext(desc)
	orig, err := r.Take(op, bextOriginatorSz)
	if err != nil {
		return nil, err
	}
	c.Originator = nulTrimBext(orig)
	ref, err := r.Take(op, bextOriginatorRef)
	if err != nil {
		return nil, err
	}
	c.OriginatorReference = nulTrimBext(ref)
	date, err := r.Take(op, bextDateSize)
	if err != nil {
		return nil, err
	}
	c.OriginationDate = nulTrimBext(date)
	timeb, err := r.Take(op, bextTimeSize)
	if err != nil {
		return nil, err
	}
	c.OriginationTime = nulTrimBext(timeb)
	if c.TimeReferenceLow, err = r.U32LE(op); err != nil {
		return nil, err
	}
	if c.TimeReferenceHigh, err = r.U32LE(op); err != nil {
		return nil, err
	}
	if c.Version, err = r.U16LE(op); err != nil {
		return nil, err
	}
	if c.Version >= 1 && r.Len() >= bextUMIDSize {
		umid, err := r.Take(op, bextUMIDSize)
		if err != nil {
			return nil, err
		}
		copy(c.UMID[:], umid)
	}
	if r.Len() > 0 {
		c.CodingHistory = nulTrimBext(r.Remaining())
	}
	return c, nil
}

// Render serialises c back to its wire bytes.
func (c *BextChunk) Render() []byte {
	buf := binio.NewBuffer(bextFixedSize + bextUMIDSize + len(c.CodingHistory))
	buf.WriteASCII(padTruncBext(c.Description, bextDescSize))
	buf.WriteASCII(padTruncBext(c.Originator, bextOriginatorSz))
	buf.WriteASCII(padTruncBext(c.OriginatorReference, bextOriginatorRef))
	buf.WriteASCII(padTruncBext(c.OriginationDate, bextDateSize))
	buf.WriteASCII(padTruncBext(c.OriginationTime, bextTimeSize))
	buf.WriteU32LE(c.TimeReferenceLow)
	buf.WriteU32LE(c.TimeReferenceHigh)
	buf.WriteU16LE(c.Version)
	if c.Version >= 1 {
		buf.WriteBytes(c.UMID[:])
	}
	buf.WriteASCII(c.CodingHistory)
	return buf.Bytes()
}

func nulTrimBext(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func padTruncBext(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat("\x00", n-len(s))
}
