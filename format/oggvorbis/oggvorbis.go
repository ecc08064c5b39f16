// Package oggvorbis is the Ogg Vorbis format dispatcher (spec.md §4.9):
// validates the three header packets (identification, comment, setup),
// surfaces stream properties and the Vorbis Comment, and preserves audio
// packets verbatim across rewrite.
package oggvorbis

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
	"github.com/soundcodec/tagio/oggpage"
	"github.com/soundcodec/tagio/vorbiscomment"
)

const op = "oggvorbis"

const identMagic = "\x01vorbis"
const commentMagic = "\x03vorbis"

// Identification is the decoded first (identification) packet.
type Identification struct {
	Version      uint32
	Channels     uint8
	SampleRate   uint32
	BitrateMax   int32
	BitrateNom   int32
	BitrateMin   int32
	BlockSize    uint8
}

// File is a parsed Ogg Vorbis logical stream.
type File struct {
	Serial      uint32
	Ident       Identification
	Comment     *vorbiscomment.Comment
	SetupPacket []byte
	AudioPages  []*oggpage.Page // pages after the header pages, preserved verbatim
	pages       []*oggpage.Page
}

// Read parses an Ogg Vorbis stream from a full Ogg container buffer
// belonging to a single logical stream.
func Read(b []byte, validateCRC bool) (*File, error) {
	pages, err := parsePages(b, validateCRC)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 || !pages[0].BOS() {
		return nil, tagerr.New(tagerr.InvalidField, op, "missing beginning-of-stream page")
	}
	packets, err := oggpage.Reassemble(pages, oggpage.ReassembleOptions{})
	if err != nil {
		return nil, err
	}
	if len(packets) < 3 {
		return nil, tagerr.New(tagerr.TRUNCATED, op, "Ogg Vorbis stream missing one or more header packets")
	}
	ident, err := parseIdentification(packets[0].Data)
	if err != nil {
		return nil, err
	}
	comment, err := parseCommentPacket(packets[1].Data)
	if err != nil {
		return nil, err
	}
	f := &File{
		Serial:      pages[0].Serial,
		Ident:       *ident,
		Comment:     comment,
		SetupPacket: packets[2].Data,
		pages:       pages,
	}
	if packets[2].PageEnd+1 < len(pages) {
		f.AudioPages = pages[packets[2].PageEnd+1:]
	}
	return f, nil
}

func parsePages(b []byte, validateCRC bool) ([]*oggpage.Page, error) {
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
	return pages, nil
}

func parseIdentification(b []byte) (*Identification, error) {
	if len(b) < 7 || string(b[:7]) != identMagic {
		return nil, tagerr.New(tagerr.InvalidMagic, op, "missing Vorbis identification packet magic")
	}
	r := binio.NewReader(b[7:])
	id := &Identification{}
	version, err := r.U32LE(op)
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, tagerr.Newf(tagerr.InvalidVersion, op, "Vorbis identification version must be 0, got %d", version)
	}
	id.Version = version
	ch, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	id.Channels = ch
	if id.SampleRate, err = r.U32LE(op); err != nil {
		return nil, err
	}
	bmax, err := r.U32LE(op)
	if err != nil {
		return nil, err
	}
	bnom, err := r.U32LE(op)
	if err != nil {
		return nil, err
	}
	bmin, err := r.U32LE(op)
	if err != nil {
		return nil, err
	}
	id.BitrateMax = int32(bmax)
	id.BitrateNom = int32(bnom)
	id.BitrateMin = int32(bmin)
	bs, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	id.BlockSize = bs
	return id, nil
}

func parseCommentPacket(b []byte) (*vorbiscomment.Comment, error) {
	if len(b) < 8 || string(b[:7]) != commentMagic {
		return nil, tagerr.New(tagerr.InvalidMagic, op, "missing Vorbis comment packet magic")
	}
	body := b[7 : len(b)-1]
	framing := b[len(b)-1]
	if framing&0x01 == 0 {
		return nil, tagerr.New(tagerr.InvalidField, op, "Vorbis comment packet framing bit must be 1")
	}
	return vorbiscomment.Parse(body)
}

// Render reassembles identification, the (possibly edited) comment packet,
// the setup packet, and original audio pages into a fresh page sequence
// with renumbered sequence numbers and recomputed CRCs (spec.md §4.9).
func (f *File) Render() ([]byte, error) {
	commentBody := f.Comment.Render()
	commentPacket := append(append([]byte(commentMagic), commentBody...), 0x01)

	identPkt := renderIdentification(&f.Ident)

	packets := [][]byte{identPkt, commentPacket, f.SetupPacket}
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

func renderIdentification(id *Identification) []byte {
	buf := binio.NewBuffer(30)
	buf.WriteASCII(identMagic)
	buf.WriteU32LE(id.Version)
	buf.WriteByte(id.Channels)
	buf.WriteU32LE(id.SampleRate)
	buf.WriteU32LE(uint32(id.BitrateMax))
	buf.WriteU32LE(uint32(id.BitrateNom))
	buf.WriteU32LE(uint32(id.BitrateMin))
	buf.WriteByte(id.BlockSize)
	buf.WriteByte(1) // framing bit
	return buf.Bytes()
}
