package flacmeta

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/vorbiscomment"
)

func TestStreamInfoRoundTrip(t *testing.T) {
	si := &StreamInfo{
		BlockSizeMin:  4096,
		BlockSizeMax:  4096,
		FrameSizeMin:  14,
		FrameSizeMax:  16,
		SampleRate:    44100,
		NChannels:     2,
		BitsPerSample: 16,
		NSamples:      123456789,
	}
	copy(si.MD5sum[:], []byte("0123456789abcdef"))

	b, err := si.Render()
	require.NoError(t, err)
	require.Len(t, b, 34)

	got, err := parseStreamInfo(b)
	require.NoError(t, err)
	require.Equal(t, si, got)
	require.True(t, got.HasAudioProperties())
}

func TestApplicationRoundTrip(t *testing.T) {
	app := &Application{ID: 0x74657374, Data: []byte("payload")}
	rendered := app.Render()
	got, err := parseApplication(rendered)
	require.NoError(t, err)
	require.Equal(t, app, got)
}

func TestSeekTableRoundTrip(t *testing.T) {
	st := &SeekTable{Points: []SeekPoint{
		{SampleNum: 0, Offset: 0, NSamples: 4096},
		{SampleNum: PlaceholderSampleNum, Offset: 0, NSamples: 0},
	}}
	rendered := st.Render()
	require.Len(t, rendered, 18*2)

	got, err := parseSeekTable(rendered)
	require.NoError(t, err)
	require.Equal(t, st, got)
}

func TestCueSheetRoundTrip(t *testing.T) {
	cs := &CueSheet{
		MCN:            "1234567890123",
		NLeadInSamples: 88200,
		IsCompactDisc:  true,
		Tracks: []CueSheetTrack{
			{
				Offset: 0, Num: 1, ISRC: "ABCDE1234567", IsAudio: true,
				Indicies: []CueSheetTrackIndex{{Offset: 0, Num: 1}},
			},
		},
	}
	rendered := cs.Render()
	got, err := parseCueSheet(rendered)
	require.NoError(t, err)
	require.Equal(t, cs, got)
}

func TestBlockChainStopsAtLastBlock(t *testing.T) {
	si := &StreamInfo{SampleRate: 44100, NChannels: 2, BitsPerSample: 16}
	siBlk := &Block{Header: BlockHeader{BlockType: TypeStreamInfo}, Body: si}
	padBlk := &Block{Header: BlockHeader{IsLast: true, BlockType: TypePadding}, Body: &Padding{Size: 10}}

	rendered, err := RenderChain([]*Block{siBlk, padBlk})
	require.NoError(t, err)

	blocks, n, err := Chain(append(append([]byte{}, rendered...), []byte("fLaC-audio-bytes")...))
	require.NoError(t, err)
	require.Equal(t, len(rendered), n)
	require.Len(t, blocks, 2)
	require.True(t, blocks[1].Header.IsLast)
	require.IsType(t, &Padding{}, blocks[1].Body)
}

func TestUnknownBlockTypePreservedVerbatim(t *testing.T) {
	raw := []byte{0x07, 0x00, 0x00, 0x03, 0xAA, 0xBB, 0xCC}
	blk, n, err := ParseBlock(raw)
	require.NoError(t, err)
	require.Equal(t, len(raw), n)
	got, ok := blk.Body.(*RawBlock)
	require.True(t, ok)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC}, got.Data)

	rendered, err := blk.Render()
	require.NoError(t, err)
	require.Equal(t, raw, rendered)
}

func TestVorbisCommentBlockRoundTrip(t *testing.T) {
	c := &vorbiscomment.Comment{Vendor: "tagio"}
	c.Set("TITLE", "Test")
	blk := &Block{Header: BlockHeader{IsLast: true, BlockType: TypeVorbisComment}, Body: c}
	rendered, err := blk.Render()
	require.NoError(t, err)

	got, n, err := ParseBlock(rendered)
	require.NoError(t, err)
	require.Equal(t, len(rendered), n)
	gotComment, ok := got.Body.(*vorbiscomment.Comment)
	require.True(t, ok)
	require.Equal(t, "Test", gotComment.Get("TITLE"))
}
