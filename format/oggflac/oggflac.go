// Package oggflac is the Ogg FLAC format dispatcher (spec.md §4.9): the
// first packet carries the 0x7F "FLAC" mapping header plus an embedded
// native FLAC STREAMINFO, and subsequent packets carry native FLAC
// metadata blocks (Vorbis Comment as block type 4, picture as type 6)
// wrapped in Ogg pages.
package oggflac

import (
	"github.com/soundcodec/tagio/flacmeta"
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
	"github.com/soundcodec/tagio/oggpage"
	"github.com/soundcodec/tagio/vorbiscomment"
)

const op = "oggflac"

const mappingMagic = "FLAC"

// File is a parsed Ogg FLAC logical stream.
type File struct {
	Serial       uint32
	MajorVersion uint8
	MinorVersion uint8
	StreamInfo   *flacmeta.StreamInfo
	MetaBlocks   []*flacmeta.Block // blocks after STREAMINFO, e.g. Vorbis Comment, Picture
	AudioPages   []*oggpage.Page
}

// Read parses an Ogg FLAC stream from a full single-logical-stream buffer.
func Read(b []byte, validateCRC bool) (*File, error) {
	var pages []*oggpage.Page
	offset := 0
	for offset < len(b) {
		pg, n, err := oggpage.Parse(b[offset:], validateCRC)
		if err != nil {
			return nil, err
		}
		pages = append(pages, pg)
		offset += n
	}
	if len(pages) == 0 || !pages[0].BOS() {
		return nil, tagerr.New(tagerr.InvalidField, op, "missing beginning-of-stream page")
	}
	packets, err := oggpage.Reassemble(pages, oggpage.ReassembleOptions{})
	if err != nil {
		return nil, err
	}
	if len(packets) == 0 {
		return nil, tagerr.New(tagerr.TRUNCATED, op, "Ogg FLAC stream has no packets")
	}
	f := &File{Serial: pages[0].Serial}
	si, maj, min, err := parseMappingHeader(packets[0].Data)
	if err != nil {
		return nil, err
	}
	f.StreamInfo = si
	f.MajorVersion = maj
	f.MinorVersion = min

	lastMetaPacket := 0
	for i := 1; i < len(packets); i++ {
		blk, _, err := flacmeta.ParseBlock(packets[i].Data)
		if err != nil {
			return nil, err
		}
		f.MetaBlocks = append(f.MetaBlocks, blk)
		lastMetaPacket = i
		if blk.Header.IsLast {
			break
		}
	}
	if lastMetaPacket+1 < len(packets) {
		f.AudioPages = pages[packets[lastMetaPacket+1].PageStart:]
	}
	return f, nil
}

const mappingHeaderFixedSize = 1 + 4 + 2 + 2 // 0x7F, "FLAC", major, minor, num-header-packets

func parseMappingHeader(b []byte) (*flacmeta.StreamInfo, uint8, uint8, error) {
	r := binio.NewReader(b)
	tag, err := r.U8(op)
	if err != nil {
		return nil, 0, 0, err
	}
	if tag != 0x7F {
		return nil, 0, 0, tagerr.New(tagerr.InvalidMagic, op, "missing 0x7F Ogg FLAC mapping tag")
	}
	magic, err := r.FixedASCII(op, 4)
	if err != nil {
		return nil, 0, 0, err
	}
	if magic != mappingMagic {
		return nil, 0, 0, tagerr.New(tagerr.InvalidMagic, op, `expected "FLAC" mapping magic`)
	}
	major, err := r.U8(op)
	if err != nil {
		return nil, 0, 0, err
	}
	minor, err := r.U8(op)
	if err != nil {
		return nil, 0, 0, err
	}
	if _, err := r.U16BE(op); err != nil { // number of header packets, informational
		return nil, 0, 0, err
	}
	nativeMagic, err := r.FixedASCII(op, 4)
	if err != nil {
		return nil, 0, 0, err
	}
	if nativeMagic != "fLaC" {
		return nil, 0, 0, tagerr.New(tagerr.InvalidMagic, op, `expected embedded "fLaC" marker`)
	}
	blk, _, err := flacmeta.ParseBlock(r.Remaining())
	if err != nil {
		return nil, 0, 0, err
	}
	si, ok := blk.Body.(*flacmeta.StreamInfo)
	if !ok {
		return nil, 0, 0, tagerr.New(tagerr.InvalidField, op, "Ogg FLAC first block must be STREAMINFO")
	}
	return si, major, minor, nil
}

// Comment returns the embedded Vorbis Comment block, or nil.
func (f *File) Comment() *vorbiscomment.Comment {
	for _, b := range f.MetaBlocks {
		if c, ok := b.Body.(*vorbiscomment.Comment); ok {
			return c
		}
	}
	return nil
}

// Render re-emits the mapping header packet, metadata-block packets, and
// original audio pages, renumbering sequence and recomputing CRCs.
func (f *File) Render() ([]byte, error) {
	siBlock := &flacmeta.Block{Header: flacmeta.BlockHeader{BlockType: flacmeta.TypeStreamInfo, IsLast: len(f.MetaBlocks) == 0}, Body: f.StreamInfo}
	siBytes, err := siBlock.Render()
	if err != nil {
		return nil, err
	}

	mapping := binio.NewBuffer(mappingHeaderFixedSize + 4 + len(siBytes))
	mapping.WriteByte(0x7F)
	mapping.WriteASCII(mappingMagic)
	mapping.WriteByte(f.MajorVersion)
	mapping.WriteByte(f.MinorVersion)
	mapping.WriteU16BE(1)
	mapping.WriteASCII("fLaC")
	mapping.WriteBytes(siBytes)

	packets := [][]byte{mapping.Bytes()}
	for i, blk := range f.MetaBlocks {
		cp := *blk
		cp.Header.IsLast = i == len(f.MetaBlocks)-1
		rendered, err := cp.Render()
		if err != nil {
			return nil, err
		}
		packets = append(packets, rendered)
	}
	pages, err := oggpage.Emit(packets, f.Serial, nil, true)
	if err != nil {
		return nil, err
	}
	pages = append(pages, f.AudioPages...)
	oggpage.Renumber(pages, f.Serial)
	var out []byte
	for _, pg := range pages {
		out = append(out, pg.Render()...)
	}
	return out, nil
}
