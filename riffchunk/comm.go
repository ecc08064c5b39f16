package riffchunk

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/ieee754ext"
)

// CommChunk is a decoded AIFF/AIFC "COMM" chunk (spec.md §4.7). For plain
// AIFF, CompressionType and CompressionName are zero-valued.
type CommChunk struct {
	Channels         uint16
	Frames           uint32
	BitsPerSample    uint16
	SampleRate       float64
	IsCompressed     bool
	CompressionType  string // 4 bytes, AIFC only
	CompressionName  string // Pascal string, AIFC only
}

// fast-path sample rates encoded in AIFF's 80-bit extended float, avoiding
// repeated floating-point normalisation for the overwhelming common case.
var commonRates = map[[10]byte]float64{
	ieee754ext.Encode(44100): 44100,
	ieee754ext.Encode(48000): 48000,
}

// ParseComm decodes a COMM chunk body. isAIFC selects whether the
// compression-type/name fields (AIFC-only) are present.
func ParseComm(b []byte, isAIFC bool) (*CommChunk, error) {
	r := binio.NewReader(b)
	c := &CommChunk{IsCompressed: isAIFC}
	var err error
	if c.Channels, err = r.U16BE(op); err != nil {
		return nil, err
	}
	if c.Frames, err = r.U32BE(op); err != nil {
		return nil, err
	}
	if c.BitsPerSample, err = r.U16BE(op); err != nil {
		return nil, err
	}
	rateBytes, err := r.Take(op, 10)
	if err != nil {
		return nil, err
	}
	var rateArr [10]byte
	copy(rateArr[:], rateBytes)
	if rate, ok := commonRates[rateArr]; ok {
		c.SampleRate = rate
	} else {
		c.SampleRate = ieee754ext.Decode(rateArr)
	}
	if !isAIFC || r.Len() == 0 {
		return c, nil
	}
	compType, err := r.FixedASCII(op, 4)
	if err != nil {
		return nil, err
	}
	c.CompressionType = compType
	if r.Len() == 0 {
		return c, nil
	}
	nameLen, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	nameBytes, err := r.Take(op, int(nameLen))
	if err != nil {
		return nil, err
	}
	c.CompressionName = string(nameBytes)
	return c, nil
}

// Render serialises c back to its wire bytes.
func (c *CommChunk) Render() []byte {
	size := 18
	if c.IsCompressed {
		size += 4 + 1 + len(c.CompressionName)
	}
	buf := binio.NewBuffer(size)
	buf.WriteU16BE(c.Channels)
	buf.WriteU32BE(c.Frames)
	buf.WriteU16BE(c.BitsPerSample)
	rate := ieee754ext.Encode(c.SampleRate)
	buf.WriteBytes(rate[:])
	if c.IsCompressed {
		buf.WriteASCII(padID(c.CompressionType))
		buf.WriteByte(byte(len(c.CompressionName)))
		buf.WriteASCII(c.CompressionName)
		buf.PadByteIfOdd(1 + len(c.CompressionName))
	}
	return buf.Bytes()
}
