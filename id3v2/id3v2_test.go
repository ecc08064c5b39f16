package id3v2

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

func newTag() *Tag {
	return &Tag{Header: Header{Major: 4}}
}

func TestAccessorsRoundTripThroughRender(t *testing.T) {
	tag := newTag()
	tag.SetTitle("A Title")
	tag.SetArtist("An Artist")
	tag.SetTrack(3, 12)
	tag.SetYear(2021)

	rendered, err := Render(tag, 4, RenderOptions{})
	require.NoError(t, err)

	got, err := Parse(rendered, Options{})
	require.NoError(t, err)
	require.Equal(t, "A Title", got.Title())
	require.Equal(t, "An Artist", got.Artist())
	n, of := got.Track()
	require.Equal(t, 3, n)
	require.Equal(t, 12, of)
	require.Equal(t, 2021, got.Year())
}

func TestParseRejectsBadMagic(t *testing.T) {
	_, err := Parse([]byte("XYZ\x04\x00\x00\x00\x00\x00\x00"), Options{})
	require.Error(t, err)
	require.True(t, tagerr.Is(err, tagerr.InvalidMagic))
}

func TestParseRejectsUnsupportedMajorVersion(t *testing.T) {
	tag := newTag()
	tag.SetTitle("x")
	rendered, err := Render(tag, 4, RenderOptions{})
	require.NoError(t, err)
	rendered[3] = 5 // bump major version past the supported range

	_, err = Parse(rendered, Options{})
	require.Error(t, err)
	require.True(t, tagerr.Is(err, tagerr.InvalidVersion))
}

func TestUnsynchronizationRoundTrip(t *testing.T) {
	tag := newTag()
	tag.SetComment("text containing 0xFF 0x00 sync patterns")

	rendered, err := Render(tag, 4, RenderOptions{Unsync: true})
	require.NoError(t, err)
	require.True(t, rendered[5]&0x80 != 0) // unsync flag bit set in header

	got, err := Parse(rendered, Options{})
	require.NoError(t, err)
	require.Equal(t, "text containing 0xFF 0x00 sync patterns", got.Comment())
}

func TestR128Q78Conversion(t *testing.T) {
	tag := newTag()
	tag.SetR128TrackGainDb(-5.0)
	db, ok := tag.R128TrackGainDb()
	require.True(t, ok)
	require.InDelta(t, -5.0, db, 1.0/256.0)
}

func TestReplayGainStoredVerbatim(t *testing.T) {
	tag := newTag()
	tag.SetReplayGainTrackGain("-6.50 dB")
	require.Equal(t, "-6.50 dB", tag.ReplayGainTrackGain())
}

func TestMusicBrainzTrackID(t *testing.T) {
	tag := newTag()
	tag.SetMusicBrainzTrackID("abc-123")
	require.Equal(t, "abc-123", tag.MusicBrainzTrackID())
}

func TestV22FrameIDsMapToV24Canonical(t *testing.T) {
	payload := append([]byte{0x00}, []byte("Old Style")...) // encoding byte + Latin-1 text
	frame := append([]byte("TT2"), 0, 0, byte(len(payload)))
	frame = append(frame, payload...)

	h := Header{Major: 2, TagSize: uint32(len(frame))}
	buf := binio.NewBuffer(headerSize + len(frame))
	require.NoError(t, h.render(buf))
	buf.WriteBytes(frame)

	got, err := Parse(buf.Bytes(), Options{})
	require.NoError(t, err)
	require.Equal(t, "Old Style", got.Title())
}

func TestSizeLimitRejectsOversizedTag(t *testing.T) {
	tag := newTag()
	tag.SetTitle("x")
	rendered, err := Render(tag, 4, RenderOptions{})
	require.NoError(t, err)

	_, err = Parse(rendered, Options{MaxTagSize: 1})
	require.Error(t, err)
	require.True(t, tagerr.Is(err, tagerr.SizeLimit))
}
