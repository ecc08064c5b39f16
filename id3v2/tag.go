package id3v2

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

// MaxTagSize is the default maximum accepted ID3v2 tag size (spec.md §5).
const MaxTagSize = 256 * 1024 * 1024

// Options configures Parse.
type Options struct {
	// MaxTagSize overrides MaxTagSize when non-zero.
	MaxTagSize uint32
}

// Tag is a parsed ID3v2 tag: a header plus an ordered sequence of frames.
// Duplicates are allowed for UFID, APIC, COMM, USLT, TXXX, WXXX, PRIV,
// POPM, RVA2 (spec.md §3).
type Tag struct {
	Header Header
	Frames []Frame
}

// Parse parses an ID3v2 tag from the start of b. It does not require the
// whole file to be an ID3v2 tag: only the header-declared tag region is
// consumed. The returned Tag's Header.TagSize gives the size of that region;
// the tag occupies 10 + TagSize bytes, plus 10 more if a footer is present.
func Parse(b []byte, opts Options) (*Tag, error) {
	r := binio.NewReader(b)
	h, err := parseHeader(op, r)
	if err != nil {
		return nil, err
	}
	limit := opts.MaxTagSize
	if limit == 0 {
		limit = MaxTagSize
	}
	if h.TagSize > limit {
		return nil, tagerr.Newf(tagerr.SizeLimit, op, "tag size %d exceeds limit %d", h.TagSize, limit)
	}
	if r.Len() < int(h.TagSize) {
		return nil, tagerr.Newf(tagerr.TRUNCATED, op, "tag declares %d bytes, have %d", h.TagSize, r.Len())
	}
	body, err := r.Take(op, int(h.TagSize))
	if err != nil {
		return nil, err
	}
	if h.Unsync {
		body = binio.Resynchronize(body)
	}
	br := binio.NewReader(body)
	if h.ExtendedHeader {
		if err := skipExtendedHeader(op, br, h.Major); err != nil {
			return nil, err
		}
	}
	frames, err := parseFrames(br, h.Major)
	if err != nil {
		return nil, err
	}
	return &Tag{Header: *h, Frames: frames}, nil
}

// parseFrames scans frames until a zero-filled id (padding) or the end of
// the tag body. A malformed single frame whose declared size stays within
// the tag is skipped (prior frames retained, scan continues); a frame whose
// size escapes the tag terminates the scan entirely (spec.md §4.10).
func parseFrames(r *binio.Reader, major int) ([]Frame, error) {
	var frames []Frame
	idLen := 4
	sizeLen := 4
	flagLen := 2
	if major == 2 {
		idLen, sizeLen, flagLen = 3, 3, 0
	}
	for r.Len() >= idLen {
		idBytes := r.Remaining()[:idLen]
		if allZero(idBytes) {
			break // padding
		}
		if !isValidFrameID(idBytes) {
			break // not a frame, not padding either: stop the scan
		}
		startPos := r.Pos()
		id, err := r.Take(op, idLen)
		if err != nil {
			break
		}
		var size uint32
		switch {
		case major == 2:
			size, err = r.U24BE(op)
		case major == 3:
			size, err = r.U32BE(op)
		default:
			size, err = r.ReadSyncsafe28(op)
		}
		if err != nil {
			break
		}
		var flags uint16
		if flagLen == 2 {
			flags, err = r.U16BE(op)
			if err != nil {
				break
			}
		}
		if r.Len() < int(size) {
			// Size escapes the tag: fatal, stop scanning (frame header
			// already consumed, but no further frames are trustworthy).
			break
		}
		payload, err := r.Take(op, int(size))
		if err != nil {
			break
		}
		payload = append([]byte(nil), payload...)
		canonicalID := string(id)
		id22 := major == 2
		if id22 {
			if mapped, ok := v22to24[canonicalID]; ok {
				canonicalID = mapped
			}
		}
		if flags&frameFlagUnsync24 != 0 && major >= 4 {
			payload = binio.Resynchronize(payload)
		}
		if flags&frameFlagEncryption != 0 {
			// Encryption is a known but unimplemented feature (spec.md §7
			// UNSUPPORTED); skip this single frame, keep scanning.
			_ = startPos
			continue
		}
		body, err := parseFrameBody(canonicalID, id22, payload, major)
		if err != nil {
			// Malformed single frame: skip it, keep prior frames, continue.
			continue
		}
		frames = append(frames, Frame{Header: FrameHeader{ID: string(id), Size: size, Flags: flags}, Body: body})
	}
	return frames, nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

func isValidFrameID(b []byte) bool {
	for _, c := range b {
		if !((c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}
