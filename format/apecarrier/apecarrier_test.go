package apecarrier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/apetag"
)

func TestReadRenderRoundTrip(t *testing.T) {
	tag := &apetag.Tag{}
	tag.SetText("Title", "A Song")
	audio := []byte("audio-bytes")
	raw := append(append([]byte{}, audio...), tag.Render()...)

	f, err := Read(raw)
	require.NoError(t, err)
	require.Equal(t, audio, f.AudioPrefix)
	title, ok := f.Tag.GetText("Title")
	require.True(t, ok)
	require.Equal(t, "A Song", title)

	rendered := f.Render()
	require.Equal(t, raw, rendered)
}

func TestReadToleratesMissingTag(t *testing.T) {
	f, err := Read([]byte("just some audio bytes, no tag here"))
	require.NoError(t, err)
	require.Nil(t, f.Tag)
}

func TestReadHandlesTrailingID3v1(t *testing.T) {
	tag := &apetag.Tag{}
	tag.SetText("Artist", "Someone")
	id3v1 := make([]byte, 128)
	copy(id3v1, "TAG")
	raw := append(append([]byte("audio"), tag.Render()...), id3v1...)

	f, err := Read(raw)
	require.NoError(t, err)
	require.Equal(t, id3v1, f.ID3v1)
	artist, _ := f.Tag.GetText("Artist")
	require.Equal(t, "Someone", artist)

	rendered := f.Render()
	require.Equal(t, raw, rendered)
}
