package flac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/flacmeta"
	"github.com/soundcodec/tagio/internal/tagerr"
	"github.com/soundcodec/tagio/vorbiscomment"
)

func buildMinimalFLAC(t *testing.T, comment *vorbiscomment.Comment) []byte {
	t.Helper()
	si := &flacmeta.StreamInfo{SampleRate: 44100, NChannels: 2, BitsPerSample: 16, BlockSizeMin: 4096, BlockSizeMax: 4096}
	blocks := []*flacmeta.Block{{Header: flacmeta.BlockHeader{BlockType: flacmeta.TypeStreamInfo}, Body: si}}
	if comment != nil {
		blocks = append(blocks, &flacmeta.Block{Header: flacmeta.BlockHeader{BlockType: flacmeta.TypeVorbisComment}, Body: comment})
	}
	blocks[len(blocks)-1].Header.IsLast = true

	chain, err := flacmeta.RenderChain(blocks)
	require.NoError(t, err)
	return append(append([]byte(Magic), chain...), []byte("audio-frames")...)
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := Read([]byte("not-flac-at-all"))
	require.Error(t, err)
	require.True(t, tagerr.Is(err, tagerr.InvalidMagic))
}

func TestReadRenderPreservesAudioData(t *testing.T) {
	raw := buildMinimalFLAC(t, nil)
	f, err := Read(raw)
	require.NoError(t, err)
	require.Equal(t, []byte("audio-frames"), f.AudioData)
	require.NotNil(t, f.StreamInfo())

	rendered, err := f.Render()
	require.NoError(t, err)
	require.Equal(t, raw, rendered)
}

func TestSetCommentCreatesBlockWhenAbsent(t *testing.T) {
	raw := buildMinimalFLAC(t, nil)
	f, err := Read(raw)
	require.NoError(t, err)
	require.Nil(t, f.Comment())

	c := &vorbiscomment.Comment{}
	c.Set("TITLE", "New Title")
	f.SetComment(c)
	require.Equal(t, "New Title", f.Comment().Get("TITLE"))

	rendered, err := f.Render()
	require.NoError(t, err)
	got, err := Read(rendered)
	require.NoError(t, err)
	require.Equal(t, "New Title", got.Comment().Get("TITLE"))
}

func TestSetCommentReplacesExisting(t *testing.T) {
	c := &vorbiscomment.Comment{}
	c.Set("TITLE", "Original")
	raw := buildMinimalFLAC(t, c)
	f, err := Read(raw)
	require.NoError(t, err)

	replacement := &vorbiscomment.Comment{}
	replacement.Set("TITLE", "Replaced")
	f.SetComment(replacement)
	require.Equal(t, "Replaced", f.Comment().Get("TITLE"))
	require.Len(t, f.Blocks, 2) // no duplicate block added
}
