// Package dff is the DFF (DSDIFF / Philips DSD Interchange File Format)
// format dispatcher (spec.md §4.9): a big-endian RIFF-like chunk container
// ("FRM8"/"DSD ") where ID3v2 is carried as a de facto appended chunk
// rather than a native field.
package dff

import (
	"github.com/soundcodec/tagio/id3v2"
	"github.com/soundcodec/tagio/riffchunk"
)

const op = "dff"

// ID3ChunkID is the de facto chunk ID DSDIFF encoders use to carry ID3v2.
const ID3ChunkID = "ID3 "

// File is a parsed DSDIFF file.
type File struct {
	container *riffchunk.Container
	ID3       *id3v2.Tag
}

// Read parses a complete DFF file buffer. DSDIFF reuses RIFF-style chunk
// framing with big-endian sizes and a "FRM8"/"DSD " outer form, so it is
// parsed with riffchunk.Parse the same way AIFF is.
func Read(b []byte) (*File, error) {
	c, err := riffchunk.Parse(b, riffchunk.BigEndian)
	if err != nil {
		return nil, err
	}
	f := &File{container: c}
	if ch := c.Find(ID3ChunkID); ch != nil {
		f.ID3, err = id3v2.Parse(ch.Data, id3v2.Options{})
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Render reassembles the container, appending/replacing the ID3v2 chunk.
func (f *File) Render() ([]byte, error) {
	if f.ID3 != nil {
		rendered, err := id3v2.Render(f.ID3, 4, id3v2.RenderOptions{})
		if err != nil {
			return nil, err
		}
		f.container.Upsert(ID3ChunkID, rendered)
	}
	return f.container.Render(), nil
}
