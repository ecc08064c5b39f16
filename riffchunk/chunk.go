// Package riffchunk implements the RIFF/AIFF chunk engine (spec.md §4.7):
// chunk framing shared by WAV and AIFF, with specialised codecs for
// fmt /COMM, bext, and LIST INFO bodies, plus order-preserving chunk-list
// editing for rewrite.
//
// The chunk-walk shape is grounded on the teacher's go-audio/wav and
// go-audio/riff dependency (itself a RIFF chunk walker); the outer
// RIFF/FORM container handling generalises mewkiz/flac's top-level
// fLaC/"form" framing pattern (flac.go) to a second container family.
package riffchunk

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

const op = "riffchunk"

// Endian selects the byte order a container's chunk sizes are encoded in:
// little-endian for RIFF/WAV, big-endian for AIFF/FORM.
type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

// Chunk is one raw chunk: a 4-byte ID and its payload. Size and padding are
// derived from len(Data) on render.
type Chunk struct {
	ID   string
	Data []byte
}

// Container is a parsed outer RIFF/FORM file: the 4-byte outer ID ("RIFF"
// or "FORM"), the 4-byte form type ("WAVE" or "AIFF"/"AIFC"), and the
// ordered list of inner chunks.
type Container struct {
	OuterID  string
	FormType string
	Chunks   []Chunk
	Endian   Endian
}

const outerHeaderSize = 12 // outerID(4) + size(4) + formType(4)

// Parse decodes a RIFF or AIFF container. endian selects the chunk-size
// byte order used throughout (LittleEndian for RIFF, BigEndian for AIFF).
func Parse(b []byte, endian Endian) (*Container, error) {
	r := binio.NewReader(b)
	outerID, err := r.FixedASCII(op, 4)
	if err != nil {
		return nil, err
	}
	if outerID != "RIFF" && outerID != "FORM" && outerID != "FRM8" {
		return nil, tagerr.New(tagerr.InvalidMagic, op, `expected "RIFF", "FORM", or "FRM8" outer chunk id`)
	}
	outerSize, err := readU32(r, endian)
	if err != nil {
		return nil, err
	}
	formType, err := r.FixedASCII(op, 4)
	if err != nil {
		return nil, err
	}
	end := outerHeaderSize + int(outerSize) - 4
	if end > r.Len()+outerHeaderSize {
		return nil, tagerr.New(tagerr.TRUNCATED, op, "outer chunk size exceeds available input")
	}

	c := &Container{OuterID: outerID, FormType: formType, Endian: endian}
	for r.Len() >= 8 {
		id, err := r.FixedASCII(op, 4)
		if err != nil {
			return nil, err
		}
		size, err := readU32(r, endian)
		if err != nil {
			return nil, err
		}
		data, err := r.Take(op, int(size))
		if err != nil {
			return nil, err
		}
		c.Chunks = append(c.Chunks, Chunk{ID: id, Data: append([]byte(nil), data...)})
		if size%2 != 0 && r.Len() > 0 {
			if _, err := r.Take(op, 1); err != nil {
				break
			}
		}
	}
	return c, nil
}

func readU32(r *binio.Reader, endian Endian) (uint32, error) {
	if endian == LittleEndian {
		return r.U32LE(op)
	}
	return r.U32BE(op)
}

func writeU32(buf *binio.Buffer, endian Endian, v uint32) {
	if endian == LittleEndian {
		buf.WriteU32LE(v)
	} else {
		buf.WriteU32BE(v)
	}
}

// Render reassembles the container, recomputing the outer size from the
// rendered chunk list.
func (c *Container) Render() []byte {
	body := binio.NewBuffer(1024)
	for _, ch := range c.Chunks {
		body.WriteASCII(padID(ch.ID))
		writeU32(body, c.Endian, uint32(len(ch.Data)))
		body.WriteBytes(ch.Data)
		body.PadByteIfOdd(len(ch.Data))
	}
	buf := binio.NewBuffer(outerHeaderSize + body.Len())
	buf.WriteASCII(c.OuterID)
	writeU32(buf, c.Endian, uint32(4+body.Len()))
	buf.WriteASCII(c.FormType)
	buf.WriteBytes(body.Bytes())
	return buf.Bytes()
}

func padID(id string) string {
	for len(id) < 4 {
		id += " "
	}
	return id[:4]
}

// Find returns the first chunk with the given ID, or nil.
func (c *Container) Find(id string) *Chunk {
	for i := range c.Chunks {
		if c.Chunks[i].ID == id {
			return &c.Chunks[i]
		}
	}
	return nil
}

// FindAll returns every chunk with the given ID, in order.
func (c *Container) FindAll(id string) []*Chunk {
	var out []*Chunk
	for i := range c.Chunks {
		if c.Chunks[i].ID == id {
			out = append(out, &c.Chunks[i])
		}
	}
	return out
}

// Upsert replaces the first chunk with id in place if present (preserving
// position), or appends a new chunk otherwise (spec.md §4.7 rewrite rule).
func (c *Container) Upsert(id string, data []byte) {
	for i := range c.Chunks {
		if c.Chunks[i].ID == id {
			c.Chunks[i].Data = data
			return
		}
	}
	c.Chunks = append(c.Chunks, Chunk{ID: id, Data: data})
}

// Remove deletes every chunk with the given ID.
func (c *Container) Remove(id string) {
	out := c.Chunks[:0]
	for _, ch := range c.Chunks {
		if ch.ID != id {
			out = append(out, ch)
		}
	}
	c.Chunks = out
}
