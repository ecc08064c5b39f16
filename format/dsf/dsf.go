// Package dsf is the DSF (DSD Stream File) format dispatcher (spec.md
// §4.9): the container stores an ID3v2 tag at a little-endian 64-bit
// offset recorded in the fixed header, which rewrite must update alongside
// the total-file-size field.
package dsf

import (
	"github.com/soundcodec/tagio/id3v2"
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

const op = "dsf"

const dsdMagic = "DSD "
const dsdHeaderSize = 28 // "DSD " + chunk-size(8) + file-size(8) + id3-pointer(8)

// File is a parsed DSF file: the fixed DSD header, the fmt/data chunks
// preserved verbatim, and the optional trailing ID3v2 tag.
type File struct {
	FmtAndData []byte // everything between the DSD header and the ID3v2 tag (or EOF)
	ID3        *id3v2.Tag
}

// Read parses a complete DSF file buffer.
func Read(b []byte) (*File, error) {
	if len(b) < dsdHeaderSize || string(b[:4]) != dsdMagic {
		return nil, tagerr.New(tagerr.InvalidMagic, op, `expected "DSD " magic`)
	}
	r := binio.NewReader(b[4:])
	if _, err := r.U64LE(op); err != nil { // DSD chunk size, always 28
		return nil, err
	}
	if _, err := r.U64LE(op); err != nil { // total file size
		return nil, err
	}
	id3Ptr, err := r.U64LE(op)
	if err != nil {
		return nil, err
	}
	f := &File{}
	if id3Ptr == 0 || int(id3Ptr) >= len(b) {
		f.FmtAndData = b[dsdHeaderSize:]
		return f, nil
	}
	f.FmtAndData = b[dsdHeaderSize:id3Ptr]
	f.ID3, err = id3v2.Parse(b[id3Ptr:], id3v2.Options{})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Render reassembles the file, recomputing the ID3v2 pointer and total
// file size fields.
func (f *File) Render() ([]byte, error) {
	var id3Bytes []byte
	var err error
	if f.ID3 != nil {
		id3Bytes, err = id3v2.Render(f.ID3, 4, id3v2.RenderOptions{})
		if err != nil {
			return nil, err
		}
	}
	totalSize := uint64(dsdHeaderSize + len(f.FmtAndData) + len(id3Bytes))
	id3Ptr := uint64(0)
	if len(id3Bytes) > 0 {
		id3Ptr = uint64(dsdHeaderSize + len(f.FmtAndData))
	}
	buf := binio.NewBuffer(int(totalSize))
	buf.WriteASCII(dsdMagic)
	buf.WriteU64LE(dsdHeaderSize)
	buf.WriteU64LE(totalSize)
	buf.WriteU64LE(id3Ptr)
	buf.WriteBytes(f.FmtAndData)
	buf.WriteBytes(id3Bytes)
	return buf.Bytes(), nil
}
