// Package oggopus is the Ogg Opus format dispatcher (spec.md §4.9):
// validates the OpusHead and OpusTags header packets against the full
// RFC 7845 acceptance rules, computes stream duration, and preserves
// OpusHead byte-for-byte across rewrite.
package oggopus

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
	"github.com/soundcodec/tagio/oggpage"
	"github.com/soundcodec/tagio/vorbiscomment"
)

const op = "oggopus"

const headMagic = "OpusHead"
const tagsMagic = "OpusTags"

// Head is the decoded OpusHead packet.
type Head struct {
	Version       uint8
	Channels      uint8
	PreSkip       uint16
	InputSampleRt uint32
	OutputGain    int16
	MappingFamily uint8
	StreamCount   uint8
	CoupledCount  uint8
	ChannelMap    []byte
	Raw           []byte // preserved verbatim for rewrite (spec.md §4.9)
}

// File is a parsed Ogg Opus logical stream.
type File struct {
	Serial     uint32
	Head       Head
	Comment    *vorbiscomment.Comment
	LastGranule uint64
	AudioPages []*oggpage.Page
}

// Read parses an Ogg Opus stream from a full single-logical-stream buffer.
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
	if len(packets) < 2 {
		return nil, tagerr.New(tagerr.TRUNCATED, op, "Ogg Opus stream missing OpusHead or OpusTags")
	}
	head, err := parseHead(packets[0].Data)
	if err != nil {
		return nil, err
	}
	comment, err := parseTags(packets[1].Data)
	if err != nil {
		return nil, err
	}
	f := &File{Serial: pages[0].Serial, Head: *head, Comment: comment}
	if len(pages) > 0 {
		f.LastGranule = pages[len(pages)-1].Granule
	}
	if packets[1].PageEnd+1 < len(pages) {
		f.AudioPages = pages[packets[1].PageEnd+1:]
	}
	return f, nil
}

// DurationSamples returns max(0, last_granule - preskip) at the 48kHz Opus
// clock rate (spec.md §4.9).
func (f *File) DurationSamples() uint64 {
	pre := uint64(f.Head.PreSkip)
	if f.LastGranule < pre {
		return 0
	}
	return f.LastGranule - pre
}

// DurationSeconds is DurationSamples divided by the fixed 48000Hz Opus
// clock.
func (f *File) DurationSeconds() float64 {
	return float64(f.DurationSamples()) / 48000.0
}

func parseHead(b []byte) (*Head, error) {
	if len(b) < 19 || string(b[:8]) != headMagic {
		return nil, tagerr.New(tagerr.InvalidMagic, op, "payload too short for OpusHead, or missing magic")
	}
	r := binio.NewReader(b[8:])
	h := &Head{Raw: append([]byte(nil), b...)}
	ver, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	if ver >= 16 {
		return nil, tagerr.Newf(tagerr.InvalidVersion, op, "OpusHead version %d not acceptable, must be 0..15", ver)
	}
	h.Version = ver
	ch, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	if ch == 0 {
		return nil, tagerr.New(tagerr.InvalidField, op, "OpusHead channel count must not be 0")
	}
	h.Channels = ch
	if h.PreSkip, err = r.U16LE(op); err != nil {
		return nil, err
	}
	if h.InputSampleRt, err = r.U32LE(op); err != nil {
		return nil, err
	}
	gain, err := r.U16LE(op)
	if err != nil {
		return nil, err
	}
	h.OutputGain = int16(gain)
	fam, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	if fam >= 2 && fam <= 254 {
		return nil, tagerr.Newf(tagerr.InvalidField, op, "OpusHead mapping family %d is reserved", fam)
	}
	h.MappingFamily = fam
	if fam == 0 && ch > 2 {
		return nil, tagerr.New(tagerr.InvalidField, op, "mapping family 0 allows at most 2 channels")
	}
	if fam == 1 && ch > 8 {
		return nil, tagerr.New(tagerr.InvalidField, op, "mapping family 1 allows at most 8 channels")
	}
	if fam == 0 {
		return h, nil
	}
	streams, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	if streams == 0 {
		return nil, tagerr.New(tagerr.InvalidField, op, "OpusHead stream count must not be 0")
	}
	h.StreamCount = streams
	coupled, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	if coupled > streams {
		return nil, tagerr.New(tagerr.InvalidField, op, "OpusHead coupled count exceeds stream count")
	}
	h.CoupledCount = coupled
	mapping, err := r.Take(op, int(ch))
	if err != nil {
		return nil, err
	}
	h.ChannelMap = append([]byte(nil), mapping...)
	return h, nil
}

func parseTags(b []byte) (*vorbiscomment.Comment, error) {
	if len(b) < 8 || string(b[:8]) != tagsMagic {
		return nil, tagerr.New(tagerr.InvalidMagic, op, "missing OpusTags magic")
	}
	// Unlike Vorbis Comment, OpusTags carries no trailing framing bit.
	return vorbiscomment.Parse(b[8:])
}

// Render re-emits the original OpusHead bytes verbatim, the (possibly
// edited) OpusTags packet, and original audio pages, renumbering sequence
// and recomputing CRCs.
func (f *File) Render() ([]byte, error) {
	tagsPacket := append([]byte(tagsMagic), f.Comment.Render()...)
	packets := [][]byte{f.Head.Raw, tagsPacket}
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
