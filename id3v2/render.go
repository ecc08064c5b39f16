package id3v2

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

// RenderOptions configures Render.
type RenderOptions struct {
	// Unsync enables unsynchronization of the rendered frame area. Off by
	// default (spec.md §4.3 "Unsynchronisation is off by default on write").
	Unsync bool
	// PaddingSize is the number of zero-padding bytes to append after the
	// last frame.
	PaddingSize int
}

// Render serialises the tag for targetVersion (3 or 4). Frames are rendered
// in insertion order; version conversion (dropping/translating v2.4-only
// frames, reconstructing TYER/TDAT/TIME on downgrade) is applied first via
// convertFrames.
func Render(tag *Tag, targetVersion int, opts RenderOptions) ([]byte, error) {
	if targetVersion != 3 && targetVersion != 4 {
		return nil, tagerr.Newf(tagerr.Unsupported, op, "rendering ID3v2.%d is not supported (read only)", targetVersion)
	}
	frames := convertFrames(tag.Frames, targetVersion)

	frameBuf := binio.NewBuffer(1024)
	for _, fr := range frames {
		id, payload, err := renderFrameBody(fr.Body, targetVersion)
		if err != nil {
			return nil, err
		}
		frameBuf.WriteASCII(id)
		if targetVersion == 4 {
			if err := frameBuf.WriteSyncsafe28(uint32(len(payload))); err != nil {
				return nil, err
			}
		} else {
			frameBuf.WriteU32BE(uint32(len(payload)))
		}
		frameBuf.WriteU16BE(0) // flags: none of the per-frame flags are set on write
		frameBuf.WriteBytes(payload)
	}
	if opts.PaddingSize > 0 {
		frameBuf.WriteZeros(opts.PaddingSize)
	}

	area := frameBuf.Bytes()
	if opts.Unsync {
		area = binio.Unsynchronize(area)
	}

	h := Header{Major: targetVersion, Revision: 0, Unsync: opts.Unsync, TagSize: uint32(len(area))}
	out := binio.NewBuffer(headerSize + len(area))
	if err := h.render(out); err != nil {
		return nil, err
	}
	out.WriteBytes(area)
	return out.Bytes(), nil
}
