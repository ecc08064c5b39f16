package oggpage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/internal/tagerr"
)

func TestPageRenderParseRoundTrip(t *testing.T) {
	p := &Page{
		Flags:        FlagBOS,
		Granule:      0,
		Serial:       12345,
		Sequence:     0,
		SegmentTable: []byte{5},
		Data:         []byte("hello"),
	}
	rendered := p.Render()

	got, n, err := Parse(rendered, true)
	require.NoError(t, err)
	require.Equal(t, len(rendered), n)
	require.Equal(t, p.Serial, got.Serial)
	require.Equal(t, []byte("hello"), got.Data)
	require.True(t, got.BOS())
}

func TestParseRejectsBadMagic(t *testing.T) {
	_, _, err := Parse([]byte("NOPE"), false)
	require.Error(t, err)
	require.True(t, tagerr.Is(err, tagerr.InvalidMagic))
}

func TestParseDetectsCRCMismatch(t *testing.T) {
	p := &Page{SegmentTable: []byte{3}, Data: []byte("abc")}
	rendered := p.Render()
	rendered[len(rendered)-1] ^= 0xFF // corrupt payload without touching CRC

	_, _, err := Parse(rendered, true)
	require.Error(t, err)
	require.True(t, tagerr.Is(err, tagerr.CRCMismatch))
}

func TestEmitReassembleRoundTrip(t *testing.T) {
	packets := [][]byte{[]byte("first packet"), []byte("second packet")}
	pages, err := Emit(packets, 777, nil, true)
	require.NoError(t, err)
	require.True(t, pages[0].BOS())
	require.True(t, pages[len(pages)-1].EOS())

	reassembled, err := Reassemble(pages, ReassembleOptions{})
	require.NoError(t, err)
	require.Len(t, reassembled, 2)
	require.Equal(t, packets[0], reassembled[0].Data)
	require.Equal(t, packets[1], reassembled[1].Data)
}

func TestEmitSplitsLargePacketAcrossSegments(t *testing.T) {
	big := make([]byte, 255*3) // exact multiple of 255: needs a trailing zero-length segment
	pages, err := Emit([][]byte{big}, 1, nil, false)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, byte(0), pages[0].SegmentTable[len(pages[0].SegmentTable)-1])

	reassembled, err := Reassemble(pages, ReassembleOptions{})
	require.NoError(t, err)
	require.Len(t, reassembled, 1)
	require.Equal(t, big, reassembled[0].Data)
}

func TestRenumberKeepsSingleEOS(t *testing.T) {
	pages := []*Page{
		{Sequence: 9, Flags: FlagEOS},
		{Sequence: 10},
	}
	Renumber(pages, 42)
	require.EqualValues(t, 0, pages[0].Sequence)
	require.EqualValues(t, 1, pages[1].Sequence)
	require.False(t, pages[0].EOS())
	require.True(t, pages[1].EOS())
	require.EqualValues(t, 42, pages[0].Serial)
	require.EqualValues(t, 42, pages[1].Serial)
}
