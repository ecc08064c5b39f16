// Package flacmeta implements the FLAC metadata-block chain (spec.md §4.6):
// STREAMINFO, PADDING, APPLICATION, SEEKTABLE, VORBIS_COMMENT, and PICTURE
// blocks with the last-block flag, preserving unknown block types verbatim
// for round-trip fidelity.
//
// The Block/BlockHeader/BlockType shape is grounded directly on the
// teacher's meta.Block / meta.BlockHeader / meta.BlockType
// (mewkiz/flac meta/meta.go), generalised from a read-only decoder to a
// read+render engine.
package flacmeta

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
	"github.com/soundcodec/tagio/vorbiscomment"
)

const op = "flacmeta"

// BlockType identifies a metadata block's body kind.
type BlockType uint8

// Metadata block types (spec.md §6).
const (
	TypeStreamInfo BlockType = iota
	TypePadding
	TypeApplication
	TypeSeekTable
	TypeVorbisComment
	TypeCueSheet
	TypePicture
)

// BlockHeader is the 4-byte block header: 1 flag byte (last-block flag in
// bit 7, 7-bit type) plus a 24-bit big-endian size.
type BlockHeader struct {
	IsLast    bool
	BlockType BlockType
	Length    uint32
}

// Block is one metadata block: a header plus a typed body. Unrecognised
// block types decode to RawBlock, preserving the payload byte-for-byte
// (spec.md §9 "Unknown-chunk fidelity").
type Block struct {
	Header BlockHeader
	Body   interface{} // *StreamInfo, *Padding, *Application, *SeekTable, *vorbiscomment.Comment, *CueSheet, *vorbiscomment.Picture, or *RawBlock
}

// RawBlock preserves an unknown block type's payload verbatim.
type RawBlock struct {
	Data []byte
}

func parseBlockHeader(r *binio.Reader) (*BlockHeader, error) {
	b, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	length, err := r.U24BE(op)
	if err != nil {
		return nil, err
	}
	return &BlockHeader{
		IsLast:    b&0x80 != 0,
		BlockType: BlockType(b & 0x7F),
		Length:    length,
	}, nil
}

func (h *BlockHeader) render(buf *binio.Buffer) {
	b := byte(h.BlockType) & 0x7F
	if h.IsLast {
		b |= 0x80
	}
	buf.WriteByte(b)
	buf.WriteU24BE(h.Length)
}

// ParseBlock parses one metadata block starting at the beginning of b. It
// returns the block and the number of bytes consumed (4-byte header plus
// its declared length).
func ParseBlock(b []byte) (*Block, int, error) {
	r := binio.NewReader(b)
	h, err := parseBlockHeader(r)
	if err != nil {
		return nil, 0, err
	}
	payload, err := r.Take(op, int(h.Length))
	if err != nil {
		return nil, 0, err
	}
	payload = append([]byte(nil), payload...)
	blk := &Block{Header: *h}
	switch h.BlockType {
	case TypeStreamInfo:
		blk.Body, err = parseStreamInfo(payload)
	case TypePadding:
		blk.Body = &Padding{Size: len(payload)}
	case TypeApplication:
		blk.Body, err = parseApplication(payload)
	case TypeSeekTable:
		blk.Body, err = parseSeekTable(payload)
	case TypeVorbisComment:
		blk.Body, err = vorbiscomment.Parse(payload)
	case TypeCueSheet:
		blk.Body, err = parseCueSheet(payload)
	case TypePicture:
		blk.Body, err = vorbiscomment.ParsePicture(payload)
	default:
		blk.Body = &RawBlock{Data: payload}
	}
	if err != nil {
		return nil, 0, err
	}
	return blk, 4 + int(h.Length), nil
}

// Render serialises the block, recomputing its header length from the
// rendered body.
func (b *Block) Render() ([]byte, error) {
	var payload []byte
	var err error
	switch body := b.Body.(type) {
	case *StreamInfo:
		payload, err = body.Render()
	case *Padding:
		payload = make([]byte, body.Size)
	case *Application:
		payload = body.Render()
	case *SeekTable:
		payload = body.Render()
	case *vorbiscomment.Comment:
		payload = body.Render()
	case *CueSheet:
		payload = body.Render()
	case *vorbiscomment.Picture:
		payload = body.Render()
	case *RawBlock:
		payload = body.Data
	default:
		return nil, tagerr.New(tagerr.Unsupported, op, "unknown block body type")
	}
	if err != nil {
		return nil, err
	}
	buf := binio.NewBuffer(4 + len(payload))
	hdr := b.Header
	hdr.Length = uint32(len(payload))
	if _, raw := b.Body.(*RawBlock); !raw {
		hdr.BlockType = blockTypeOf(b.Body)
	}
	hdr.render(buf)
	buf.WriteBytes(payload)
	return buf.Bytes(), nil
}

func blockTypeOf(body interface{}) BlockType {
	switch body.(type) {
	case *StreamInfo:
		return TypeStreamInfo
	case *Padding:
		return TypePadding
	case *Application:
		return TypeApplication
	case *SeekTable:
		return TypeSeekTable
	case *vorbiscomment.Comment:
		return TypeVorbisComment
	case *CueSheet:
		return TypeCueSheet
	case *vorbiscomment.Picture:
		return TypePicture
	default:
		return 127 // reserved/invalid: only reached for RawBlock, whose header.BlockType the caller must preserve
	}
}

// Chain parses every metadata block in b, stopping after the block with
// IsLast set. It returns the blocks and the number of bytes consumed.
func Chain(b []byte) ([]*Block, int, error) {
	var blocks []*Block
	offset := 0
	for {
		blk, n, err := ParseBlock(b[offset:])
		if err != nil {
			return nil, 0, err
		}
		blocks = append(blocks, blk)
		offset += n
		if blk.Header.IsLast {
			break
		}
		if offset >= len(b) {
			return nil, 0, tagerr.New(tagerr.TRUNCATED, op, "metadata chain missing last-block flag before end of input")
		}
	}
	return blocks, offset, nil
}

// RenderChain renders blocks in order, forcing the last-block flag onto
// (only) the final block.
func RenderChain(blocks []*Block) ([]byte, error) {
	buf := binio.NewBuffer(1024)
	for i, blk := range blocks {
		cp := *blk
		cp.Header.IsLast = i == len(blocks)-1
		if _, ok := blk.Body.(*RawBlock); ok {
			// Preserve the original type tag for raw/unknown blocks since
			// blockTypeOf cannot recover it.
			rendered, err := renderRawBlock(&cp)
			if err != nil {
				return nil, err
			}
			buf.WriteBytes(rendered)
			continue
		}
		rendered, err := cp.Render()
		if err != nil {
			return nil, err
		}
		buf.WriteBytes(rendered)
	}
	return buf.Bytes(), nil
}

func renderRawBlock(b *Block) ([]byte, error) {
	raw := b.Body.(*RawBlock)
	buf := binio.NewBuffer(4 + len(raw.Data))
	hdr := b.Header
	hdr.Length = uint32(len(raw.Data))
	hdr.render(buf)
	buf.WriteBytes(raw.Data)
	return buf.Bytes(), nil
}
