package vorbiscomment

import (
	"encoding/base64"

	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

// MetadataBlockPictureKey is the Vorbis Comment field key under which a
// base64-encoded FLAC PICTURE block is embedded (spec.md §4.4).
const MetadataBlockPictureKey = "METADATA_BLOCK_PICTURE"

// Picture is the FLAC PICTURE metadata block body, shared verbatim between
// native FLAC, Vorbis Comment, and Ogg Opus Tags embedding (spec.md §3).
type Picture struct {
	Type        uint32
	MIME        string
	Description string
	Width       uint32
	Height      uint32
	ColorDepth  uint32
	ColorCount  uint32
	Data        []byte
}

// MaxPictureSize bounds an embedded picture's declared data length
// (spec.md §5).
const MaxPictureSize = 64 * 1024 * 1024

// ParsePicture decodes a FLAC PICTURE block body (spec.md §4.4/§6).
func ParsePicture(b []byte) (*Picture, error) {
	r := binio.NewReader(b)
	p := &Picture{}
	var err error
	if p.Type, err = r.U32BE(op); err != nil {
		return nil, err
	}
	mimeLen, err := r.U32BE(op)
	if err != nil {
		return nil, err
	}
	mimeBytes, err := r.Take(op, int(mimeLen))
	if err != nil {
		return nil, err
	}
	p.MIME = string(mimeBytes)
	descLen, err := r.U32BE(op)
	if err != nil {
		return nil, err
	}
	descBytes, err := r.Take(op, int(descLen))
	if err != nil {
		return nil, err
	}
	p.Description = string(descBytes)
	if p.Width, err = r.U32BE(op); err != nil {
		return nil, err
	}
	if p.Height, err = r.U32BE(op); err != nil {
		return nil, err
	}
	if p.ColorDepth, err = r.U32BE(op); err != nil {
		return nil, err
	}
	if p.ColorCount, err = r.U32BE(op); err != nil {
		return nil, err
	}
	dataLen, err := r.U32BE(op)
	if err != nil {
		return nil, err
	}
	if dataLen > MaxPictureSize {
		return nil, tagerr.Newf(tagerr.SizeLimit, op, "picture data length %d exceeds limit", dataLen)
	}
	data, err := r.Take(op, int(dataLen))
	if err != nil {
		return nil, err
	}
	p.Data = append([]byte(nil), data...)
	return p, nil
}

// Render serialises p back to its wire format.
func (p *Picture) Render() []byte {
	buf := binio.NewBuffer(32 + len(p.MIME) + len(p.Description) + len(p.Data))
	buf.WriteU32BE(p.Type)
	buf.WriteU32BE(uint32(len(p.MIME)))
	buf.WriteASCII(p.MIME)
	buf.WriteU32BE(uint32(len(p.Description)))
	buf.WriteASCII(p.Description)
	buf.WriteU32BE(p.Width)
	buf.WriteU32BE(p.Height)
	buf.WriteU32BE(p.ColorDepth)
	buf.WriteU32BE(p.ColorCount)
	buf.WriteU32BE(uint32(len(p.Data)))
	buf.WriteBytes(p.Data)
	return buf.Bytes()
}

// Pictures decodes every METADATA_BLOCK_PICTURE field present.
func (c *Comment) Pictures() ([]*Picture, error) {
	var out []*Picture
	for _, raw := range c.GetAll(MetadataBlockPictureKey) {
		block, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, tagerr.Wrap(tagerr.Encoding, op, err)
		}
		pic, err := ParsePicture(block)
		if err != nil {
			return nil, err
		}
		out = append(out, pic)
	}
	return out, nil
}

// AddPicture base64-encodes p's rendered block and appends it as a new
// METADATA_BLOCK_PICTURE field.
func (c *Comment) AddPicture(p *Picture) {
	c.Add(MetadataBlockPictureKey, base64.StdEncoding.EncodeToString(p.Render()))
}

// ClearPictures removes every METADATA_BLOCK_PICTURE field.
func (c *Comment) ClearPictures() {
	c.Remove(MetadataBlockPictureKey)
}
