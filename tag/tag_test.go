package tag

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/apetag"
	"github.com/soundcodec/tagio/format/apecarrier"
	"github.com/soundcodec/tagio/format/flac"
	"github.com/soundcodec/tagio/flacmeta"
	"github.com/soundcodec/tagio/vorbiscomment"
)

func TestFLACFieldsRoundTrip(t *testing.T) {
	si := &flacmeta.StreamInfo{SampleRate: 44100, NChannels: 2, BitsPerSample: 16}
	blocks := []*flacmeta.Block{{Header: flacmeta.BlockHeader{BlockType: flacmeta.TypeStreamInfo, IsLast: true}, Body: si}}
	chain, err := flacmeta.RenderChain(blocks)
	require.NoError(t, err)
	f, err := flac.Read(append(append([]byte(flac.Magic), chain...), []byte("audio")...))
	require.NoError(t, err)

	fields := Fields{Title: "A Title", Artist: "An Artist", TrackNum: 3, TrackTotal: 10}
	ApplyToFLAC(f, fields)

	got := FromFLAC(f)
	require.Equal(t, "A Title", got.Title)
	require.Equal(t, "An Artist", got.Artist)
	require.Equal(t, 3, got.TrackNum)
	require.Equal(t, 10, got.TrackTotal)
}

func TestFromFLACWithNoCommentReturnsZeroValue(t *testing.T) {
	si := &flacmeta.StreamInfo{SampleRate: 44100, NChannels: 2, BitsPerSample: 16}
	blocks := []*flacmeta.Block{{Header: flacmeta.BlockHeader{BlockType: flacmeta.TypeStreamInfo, IsLast: true}, Body: si}}
	chain, err := flacmeta.RenderChain(blocks)
	require.NoError(t, err)
	f, err := flac.Read(append(append([]byte(flac.Magic), chain...), []byte("audio")...))
	require.NoError(t, err)

	require.Equal(t, Fields{}, FromFLAC(f))
}

func TestOggVorbisCommentFieldHelpers(t *testing.T) {
	c := &vorbiscomment.Comment{}
	c.Set("TITLE", "x")
	c.Set("TRACKNUMBER", "4/12")
	fields := fieldsFromComment(c)
	require.Equal(t, "x", fields.Title)
	require.Equal(t, 4, fields.TrackNum)
	require.Equal(t, 12, fields.TrackTotal)
}

func TestAPECarrierFieldsRoundTrip(t *testing.T) {
	f := &apecarrier.File{AudioPrefix: []byte("audio")}
	ApplyToAPECarrier(f, Fields{Title: "A Song", TrackNum: 2})
	require.Equal(t, apetag.Version2000, int(f.Tag.Version))

	got := FromAPECarrier(f)
	require.Equal(t, "A Song", got.Title)
	require.Equal(t, 2, got.TrackNum)
}
