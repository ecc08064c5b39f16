// Package aiff is the AIFF/AIFC format dispatcher (spec.md §4.9): parses
// FORM chunks, exposes COMM-derived properties, and supports a co-existing
// ID3v2 tag carried in an application-defined "ID3 " chunk.
package aiff

import (
	"github.com/soundcodec/tagio/id3v2"
	"github.com/soundcodec/tagio/internal/tagerr"
	"github.com/soundcodec/tagio/riffchunk"
)

const op = "aiff"

// File is a parsed AIFF or AIFC file.
type File struct {
	container *riffchunk.Container
	IsAIFC    bool
	Comm      *riffchunk.CommChunk
	ID3       *id3v2.Tag
}

// Read parses a complete AIFF/AIFC file buffer.
func Read(b []byte) (*File, error) {
	c, err := riffchunk.Parse(b, riffchunk.BigEndian)
	if err != nil {
		return nil, err
	}
	if c.OuterID != "FORM" || (c.FormType != "AIFF" && c.FormType != "AIFC") {
		return nil, tagerr.New(tagerr.InvalidMagic, op, `expected FORM/AIFF or FORM/AIFC container`)
	}
	f := &File{container: c, IsAIFC: c.FormType == "AIFC"}
	if commCh := c.Find("COMM"); commCh != nil {
		f.Comm, err = riffchunk.ParseComm(commCh.Data, f.IsAIFC)
		if err != nil {
			return nil, err
		}
	}
	if id3Ch := c.Find("ID3 "); id3Ch != nil {
		f.ID3, err = id3v2.Parse(id3Ch.Data, id3v2.Options{})
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Render reassembles the container, writing back COMM and ID3v2 (if
// present), preserving all other chunks in order.
func (f *File) Render() ([]byte, error) {
	if f.Comm != nil {
		f.container.Upsert("COMM", f.Comm.Render())
	}
	if f.ID3 != nil {
		rendered, err := id3v2.Render(f.ID3, 4, id3v2.RenderOptions{})
		if err != nil {
			return nil, err
		}
		f.container.Upsert("ID3 ", rendered)
	}
	return f.container.Render(), nil
}
