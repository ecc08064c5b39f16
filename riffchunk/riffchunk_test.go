package riffchunk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainerRenderParseRoundTripRIFF(t *testing.T) {
	c := &Container{OuterID: "RIFF", FormType: "WAVE", Endian: LittleEndian}
	c.Upsert("fmt ", []byte{1, 2, 3, 4})
	c.Upsert("data", []byte{5, 6, 7}) // odd length, exercises padding

	rendered := c.Render()
	got, err := Parse(rendered, LittleEndian)
	require.NoError(t, err)
	require.Equal(t, "RIFF", got.OuterID)
	require.Equal(t, "WAVE", got.FormType)
	require.Equal(t, []byte{1, 2, 3, 4}, got.Find("fmt ").Data)
	require.Equal(t, []byte{5, 6, 7}, got.Find("data").Data)
}

func TestContainerRenderParseRoundTripFORM(t *testing.T) {
	c := &Container{OuterID: "FORM", FormType: "AIFF", Endian: BigEndian}
	c.Upsert("COMM", []byte{0, 2})

	rendered := c.Render()
	got, err := Parse(rendered, BigEndian)
	require.NoError(t, err)
	require.Equal(t, "FORM", got.OuterID)
	require.Equal(t, []byte{0, 2}, got.Find("COMM").Data)
}

func TestParseRejectsUnknownOuterID(t *testing.T) {
	_, err := Parse([]byte("JUNKxxxxWAVE"), LittleEndian)
	require.Error(t, err)
}

func TestUpsertPreservesPositionRemoveDeletes(t *testing.T) {
	c := &Container{OuterID: "RIFF", FormType: "WAVE", Endian: LittleEndian}
	c.Upsert("fmt ", []byte{1})
	c.Upsert("id3 ", []byte{2})
	c.Upsert("fmt ", []byte{9}) // replace in place
	require.Len(t, c.Chunks, 2)
	require.Equal(t, []byte{9}, c.Chunks[0].Data)

	c.Remove("id3 ")
	require.Len(t, c.Chunks, 1)
}

func TestFmtChunkRoundTripPlain(t *testing.T) {
	f := &FmtChunk{FormatTag: 1, Channels: 2, SampleRate: 44100, ByteRate: 176400, BlockAlign: 4, BitsPerSample: 16}
	got, err := ParseFmt(f.Render())
	require.NoError(t, err)
	require.Equal(t, f, got)
}

func TestFmtChunkRoundTripExtensible(t *testing.T) {
	f := &FmtChunk{
		FormatTag: FormatTagExtensible, Channels: 6, SampleRate: 48000, ByteRate: 576000,
		BlockAlign: 12, BitsPerSample: 24, HasExtension: true, ValidBits: 24, ChannelMask: 0x3F,
	}
	got, err := ParseFmt(f.Render())
	require.NoError(t, err)
	require.Equal(t, f, got)
}

func TestInfoListRoundTrip(t *testing.T) {
	l := &InfoList{}
	l.Set(InfoTitle, "A Title")
	l.Set(InfoArtist, "An Artist")

	got, err := ParseInfoList(l.Render()[4:]) // Render includes leading "INFO" type tag
	require.NoError(t, err)
	require.Equal(t, "A Title", got.Get(InfoTitle))
	require.Equal(t, "An Artist", got.Get(InfoArtist))
}
