// Package wav is the WAV format dispatcher (spec.md §4.9): parses RIFF
// chunks, exposes fmt-derived properties, and supports co-existing ID3v2
// (in an "id3 "/"ID3 " chunk) and a RIFF INFO tag, with ID3v2 taking
// precedence on read and both kinds written on rewrite.
package wav

import (
	"github.com/soundcodec/tagio/id3v2"
	"github.com/soundcodec/tagio/internal/tagerr"
	"github.com/soundcodec/tagio/riffchunk"
)

const op = "wav"

// File is a parsed WAV file.
type File struct {
	container *riffchunk.Container
	Fmt       *riffchunk.FmtChunk
	ID3       *id3v2.Tag
	Info      *riffchunk.InfoList
}

// Read parses a complete WAV file buffer.
func Read(b []byte) (*File, error) {
	c, err := riffchunk.Parse(b, riffchunk.LittleEndian)
	if err != nil {
		return nil, err
	}
	if c.OuterID != "RIFF" || c.FormType != "WAVE" {
		return nil, tagerr.New(tagerr.InvalidMagic, op, `expected RIFF/WAVE container`)
	}
	f := &File{container: c}
	if fmtChunk := c.Find("fmt "); fmtChunk != nil {
		f.Fmt, err = riffchunk.ParseFmt(fmtChunk.Data)
		if err != nil {
			return nil, err
		}
	}
	for _, id := range []string{"id3 ", "ID3 "} {
		if ch := c.Find(id); ch != nil {
			f.ID3, err = id3v2.Parse(ch.Data, id3v2.Options{})
			if err != nil {
				return nil, err
			}
			break
		}
	}
	if listCh := c.Find("LIST"); listCh != nil && len(listCh.Data) >= 4 && string(listCh.Data[:4]) == "INFO" {
		f.Info, err = riffchunk.ParseInfoList(listCh.Data[4:])
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Title reads the precedence-ordered title: ID3v2 first, then INFO
// (spec.md §4.9 unified facade precedence).
func (f *File) Title() string {
	if f.ID3 != nil {
		if t := f.ID3.Title(); t != "" {
			return t
		}
	}
	if f.Info != nil {
		return f.Info.Get(riffchunk.InfoTitle)
	}
	return ""
}

// Render reassembles the container, writing back fmt, ID3v2 (if present),
// and INFO (if present) chunks, preserving all other chunks in order
// (spec.md §4.7 rewrite rule).
func (f *File) Render() ([]byte, error) {
	if f.Fmt != nil {
		f.container.Upsert("fmt ", f.Fmt.Render())
	}
	if f.ID3 != nil {
		rendered, err := id3v2.Render(f.ID3, 4, id3v2.RenderOptions{})
		if err != nil {
			return nil, err
		}
		f.container.Remove("ID3 ")
		f.container.Upsert("id3 ", rendered)
	}
	if f.Info != nil {
		f.container.Upsert("LIST", f.Info.Render())
	}
	return f.container.Render(), nil
}
