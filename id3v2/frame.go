package id3v2

import "github.com/soundcodec/tagio/internal/textcodec"

// FrameHeader describes one frame slot within a tag: its identifier, the
// size of its payload, and its per-frame flags (absent pre-2.3, per
// spec.md §6).
type FrameHeader struct {
	ID    string
	Size  uint32
	Flags uint16
}

// v2.3/v2.4 frame flag bits (byte 1 of the 2-byte flags field).
const (
	frameFlagCompression = 0x0080
	frameFlagEncryption  = 0x0040
	frameFlagGroup       = 0x0020
	frameFlagUnsync24    = 0x0002 // v2.4 only
	frameFlagDataLen24   = 0x0001 // v2.4 only
)

// Frame pairs a header with its typed, dispatched body. Unknown identifiers
// decode to an UnknownBody carrying the raw payload for verbatim rewrite,
// per spec.md §9 "Tagged variants instead of inheritance".
type Frame struct {
	Header FrameHeader
	Body   FrameBody
}

// FrameBody is the closed sum-type interface implemented by every frame
// variant plus UnknownBody.
type FrameBody interface {
	frameID() string // canonical 4-char id this body renders under (v2.3/2.4)
}

// TextFrame covers all "T???" frames except TXXX (spec.md §4.3).
type TextFrame struct {
	ID       string
	Encoding textcodec.Encoding
	Values   []string // multi-value on v2.4 (NUL-separated); single element on v2.3
}

func (f *TextFrame) frameID() string { return f.ID }

// UserTextFrame is TXXX: a user-defined text frame with a description key.
type UserTextFrame struct {
	Encoding    textcodec.Encoding
	Description string
	Values      []string
}

func (f *UserTextFrame) frameID() string { return "TXXX" }

// URLFrame covers all "W???" frames except WXXX. URL frames carry raw
// Latin-1 bytes with no encoding byte.
type URLFrame struct {
	ID  string
	URL string
}

func (f *URLFrame) frameID() string { return f.ID }

// UserURLFrame is WXXX.
type UserURLFrame struct {
	Encoding    textcodec.Encoding
	Description string
	URL         string
}

func (f *UserURLFrame) frameID() string { return "WXXX" }

// CommentFrame is COMM.
type CommentFrame struct {
	Encoding textcodec.Encoding
	Language string // 3-byte ISO-639-2
	Short    string
	Text     string
}

func (f *CommentFrame) frameID() string { return "COMM" }

// LyricsFrame is USLT (unsynchronised lyrics).
type LyricsFrame struct {
	Encoding textcodec.Encoding
	Language string
	Short    string
	Text     string
}

func (f *LyricsFrame) frameID() string { return "USLT" }

// PictureFrame is APIC.
type PictureFrame struct {
	Encoding    textcodec.Encoding
	MIME        string
	PictureType byte
	Description string
	Data        []byte
}

func (f *PictureFrame) frameID() string { return "APIC" }

// UFIDFrame is the unique file identifier frame.
type UFIDFrame struct {
	Owner      string
	Identifier []byte
}

func (f *UFIDFrame) frameID() string { return "UFID" }

// PeopleListFrame covers TIPL/TMCL (v2.4) and the legacy combined IPLS
// (v2.3): ordered (role, person) pairs.
type PeopleListFrame struct {
	ID       string // "TIPL", "TMCL", or "IPLS"
	Encoding textcodec.Encoding
	Pairs    [][2]string
}

func (f *PeopleListFrame) frameID() string { return f.ID }

// PlayCounterFrame is PCNT: a big-endian variable-width play counter, at
// least 4 bytes wide, extended as needed.
type PlayCounterFrame struct {
	Count uint64
}

func (f *PlayCounterFrame) frameID() string { return "PCNT" }

// PopularimeterFrame is POPM.
type PopularimeterFrame struct {
	Email     string
	Rating    byte
	PlayCount uint64
	// HasPlayCount distinguishes an explicit 0-byte play count (absent)
	// from a stored value of 0, so round-tripping preserves whether a
	// counter is present. A present counter is re-rendered at least 4 bytes
	// wide, so a 1- or 2-byte counter does not keep its original width.
	HasPlayCount bool
}

func (f *PopularimeterFrame) frameID() string { return "POPM" }

// PrivateFrame is PRIV: an owner identifier plus an opaque payload.
type PrivateFrame struct {
	Owner string
	Data  []byte
}

func (f *PrivateFrame) frameID() string { return "PRIV" }

// RelativeVolumeFrame is RVA2.
type RelativeVolumeFrame struct {
	Identification string
	Channels       []RVA2Channel
}

func (f *RelativeVolumeFrame) frameID() string { return "RVA2" }

// RVA2Channel is one channel adjustment within an RVA2 frame.
type RVA2Channel struct {
	ChannelType byte // 0=Other,1=Master volume,2=Front right, ...
	// VolumeAdjustmentQ16 is the volume adjustment in dB as a signed 16-bit
	// value with the top bit sign, scaled so that 512 == 1 dB (fixed point
	// with 9 fractional bits per the ID3v2.4 RVA2 spec, i.e. value/512.0 dB).
	VolumeAdjustmentQ16 int16
	PeakBits            byte
	PeakData            []byte
}

// UnknownFrame preserves an unrecognised frame's raw payload verbatim for
// rewrite.
type UnknownFrame struct {
	ID   string
	Data []byte
}

func (f *UnknownFrame) frameID() string { return f.ID }
