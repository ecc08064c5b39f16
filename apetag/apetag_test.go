package apetag

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/internal/tagerr"
)

func TestRenderParseRoundTripFooterOnly(t *testing.T) {
	tag := &Tag{Version: Version2000}
	tag.SetText("Title", "A Song")
	tag.SetText("Artist", "A Band")
	tag.Set("Cover Art", []byte{0xDE, 0xAD}, KindBinary)

	rendered := tag.Render()
	got, tagStart, err := Parse(rendered)
	require.NoError(t, err)
	require.Equal(t, 0, tagStart)
	require.False(t, got.HasHeader)

	title, ok := got.GetText("Title")
	require.True(t, ok)
	require.Equal(t, "A Song", title)
	require.Equal(t, []byte{0xDE, 0xAD}, got.Get("Cover Art"))
}

func TestRenderParseRoundTripWithHeader(t *testing.T) {
	tag := &Tag{Version: Version2000, HasHeader: true}
	tag.SetText("Album", "An Album")

	rendered := tag.Render()
	got, tagStart, err := Parse(rendered)
	require.NoError(t, err)
	require.Equal(t, 0, tagStart)
	require.True(t, got.HasHeader)

	album, _ := got.GetText("Album")
	require.Equal(t, "An Album", album)
}

func TestLookupIsCaseInsensitiveButPreservesCase(t *testing.T) {
	tag := &Tag{}
	tag.SetText("Title", "A Song")
	v, ok := tag.GetText("TITLE")
	require.True(t, ok)
	require.Equal(t, "A Song", v)
	require.Equal(t, "Title", tag.Items[0].Key)
}

func TestParseFailsWithoutFooter(t *testing.T) {
	_, _, err := Parse([]byte("not an ape tag at all"))
	require.Error(t, err)
	require.True(t, tagerr.Is(err, tagerr.NotFound))
}

func TestTagEmbeddedWithinAudioPrefix(t *testing.T) {
	tag := &Tag{}
	tag.SetText("Title", "x")
	rendered := tag.Render()
	full := append([]byte("audio-bytes-before-tag"), rendered...)

	got, tagStart, err := Parse(full)
	require.NoError(t, err)
	require.Equal(t, len("audio-bytes-before-tag"), tagStart)
	title, _ := got.GetText("Title")
	require.Equal(t, "x", title)
}

func TestRemove(t *testing.T) {
	tag := &Tag{}
	tag.SetText("Title", "x")
	tag.SetText("Artist", "y")
	tag.Remove("title")
	require.Nil(t, tag.Get("Title"))
	require.NotNil(t, tag.Get("Artist"))
}
