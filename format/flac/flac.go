// Package flac is the native FLAC format dispatcher (spec.md §4.9): verify
// the "fLaC" magic, walk the metadata-block chain, surface the Vorbis
// Comment and pictures it carries, and preserve the audio frame data
// verbatim across rewrite.
//
// Grounded directly on the teacher's top-level flac.go (magic check, then
// meta.NewChain, then raw frame data), generalised from read-only decode to
// read+render.
package flac

import (
	"github.com/soundcodec/tagio/flacmeta"
	"github.com/soundcodec/tagio/internal/tagerr"
	"github.com/soundcodec/tagio/vorbiscomment"
)

const op = "flac"

// Magic is the native FLAC stream marker.
const Magic = "fLaC"

// File is a parsed native FLAC stream: its metadata-block chain plus the
// audio frame data that follows it, preserved byte-for-byte.
type File struct {
	Blocks    []*flacmeta.Block
	AudioData []byte
}

// Read parses a complete FLAC file buffer.
func Read(b []byte) (*File, error) {
	if len(b) < 4 || string(b[:4]) != Magic {
		return nil, tagerr.New(tagerr.InvalidMagic, op, `expected "fLaC" magic`)
	}
	blocks, n, err := flacmeta.Chain(b[4:])
	if err != nil {
		return nil, err
	}
	return &File{Blocks: blocks, AudioData: b[4+n:]}, nil
}

// StreamInfo returns the file's STREAMINFO block, or nil if somehow absent
// (a well-formed FLAC stream always has one as its first block).
func (f *File) StreamInfo() *flacmeta.StreamInfo {
	for _, b := range f.Blocks {
		if si, ok := b.Body.(*flacmeta.StreamInfo); ok {
			return si
		}
	}
	return nil
}

// Comment returns the file's Vorbis Comment block, or nil if absent.
func (f *File) Comment() *vorbiscomment.Comment {
	for _, b := range f.Blocks {
		if c, ok := b.Body.(*vorbiscomment.Comment); ok {
			return c
		}
	}
	return nil
}

// Pictures returns every PICTURE block's decoded body.
func (f *File) Pictures() []*vorbiscomment.Picture {
	var out []*vorbiscomment.Picture
	for _, b := range f.Blocks {
		if p, ok := b.Body.(*vorbiscomment.Picture); ok {
			out = append(out, p)
		}
	}
	return out
}

// SetComment replaces the file's Vorbis Comment block, appending one if
// absent (inserted just before the first PICTURE block, or at the end).
func (f *File) SetComment(c *vorbiscomment.Comment) {
	for _, b := range f.Blocks {
		if _, ok := b.Body.(*vorbiscomment.Comment); ok {
			b.Body = c
			return
		}
	}
	insertAt := len(f.Blocks)
	for i, b := range f.Blocks {
		if _, ok := b.Body.(*vorbiscomment.Picture); ok {
			insertAt = i
			break
		}
	}
	newBlock := &flacmeta.Block{Body: c}
	f.Blocks = append(f.Blocks[:insertAt], append([]*flacmeta.Block{newBlock}, f.Blocks[insertAt:]...)...)
}

// Render re-emits the metadata-block chain followed by the original audio
// data, setting the last-block flag on the final block (spec.md §4.6).
func (f *File) Render() ([]byte, error) {
	chain, err := flacmeta.RenderChain(f.Blocks)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(Magic)+len(chain)+len(f.AudioData))
	out = append(out, Magic...)
	out = append(out, chain...)
	out = append(out, f.AudioData...)
	return out, nil
}
