// Package apecarrier is the shared format dispatcher for WavPack, Monkey's
// Audio, and Musepack (spec.md §4.9): all three carry an APEv2 tag at the
// end of the file, optionally followed by a legacy 128-byte ID3v1 trailer,
// and the audio data prefix is preserved verbatim across rewrite.
package apecarrier

import (
	"github.com/soundcodec/tagio/apetag"
)

const op = "apecarrier"

const id3v1Size = 128
const id3v1Magic = "TAG"

// File is a parsed APE-tag-carrying file (WavPack/Monkey's Audio/Musepack).
type File struct {
	AudioPrefix []byte // everything before the APE tag
	Tag         *apetag.Tag
	ID3v1       []byte // raw 128-byte legacy trailer, if present, preserved verbatim
}

// Read locates and parses the APEv2 tag at the end of b, accounting for an
// optional trailing ID3v1 tag written after it by some encoders.
func Read(b []byte) (*File, error) {
	f := &File{}
	search := b
	if len(b) >= id3v1Size && string(b[len(b)-id3v1Size:len(b)-id3v1Size+3]) == id3v1Magic {
		f.ID3v1 = append([]byte(nil), b[len(b)-id3v1Size:]...)
		search = b[:len(b)-id3v1Size]
	}
	tag, tagStart, err := apetag.Parse(search)
	if err != nil {
		// No APE tag is not fatal for this dispatcher: the audio-only file
		// is still a valid read, just with no tag.
		f.AudioPrefix = b
		return f, nil
	}
	f.Tag = tag
	f.AudioPrefix = search[:tagStart]
	return f, nil
}

// Render reassembles the audio prefix, the (possibly edited) APE tag, and
// the legacy ID3v1 trailer if one was present on read.
func (f *File) Render() []byte {
	var out []byte
	out = append(out, f.AudioPrefix...)
	if f.Tag != nil {
		out = append(out, f.Tag.Render()...)
	}
	out = append(out, f.ID3v1...)
	return out
}
