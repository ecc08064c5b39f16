package wav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/id3v2"
	"github.com/soundcodec/tagio/riffchunk"
)

func buildMinimalWAV(t *testing.T) []byte {
	t.Helper()
	c := &riffchunk.Container{OuterID: "RIFF", FormType: "WAVE", Endian: riffchunk.LittleEndian}
	fmtChunk := &riffchunk.FmtChunk{FormatTag: 1, Channels: 2, SampleRate: 44100, ByteRate: 176400, BlockAlign: 4, BitsPerSample: 16}
	c.Upsert("fmt ", fmtChunk.Render())
	c.Upsert("data", []byte{0, 0, 0, 0})
	return c.Render()
}

func TestReadRendersBackIdentically(t *testing.T) {
	raw := buildMinimalWAV(t)
	f, err := Read(raw)
	require.NoError(t, err)
	require.NotNil(t, f.Fmt)
	require.EqualValues(t, 44100, f.Fmt.SampleRate)

	rendered, err := f.Render()
	require.NoError(t, err)
	require.Equal(t, raw, rendered)
}

func TestTitlePrefersID3OverINFO(t *testing.T) {
	raw := buildMinimalWAV(t)
	f, err := Read(raw)
	require.NoError(t, err)

	f.Info = &riffchunk.InfoList{}
	f.Info.Set(riffchunk.InfoTitle, "INFO Title")
	require.Equal(t, "INFO Title", f.Title())

	f.ID3 = &id3v2.Tag{Header: id3v2.Header{Major: 4}}
	f.ID3.SetTitle("ID3 Title")
	require.Equal(t, "ID3 Title", f.Title())
}

func TestRenderWritesBothID3AndInfoWhenPresent(t *testing.T) {
	raw := buildMinimalWAV(t)
	f, err := Read(raw)
	require.NoError(t, err)

	f.ID3 = &id3v2.Tag{Header: id3v2.Header{Major: 4}}
	f.ID3.SetTitle("Title")
	f.Info = &riffchunk.InfoList{}
	f.Info.Set(riffchunk.InfoTitle, "Title")

	rendered, err := f.Render()
	require.NoError(t, err)

	got, err := Read(rendered)
	require.NoError(t, err)
	require.Equal(t, "Title", got.ID3.Title())
	require.Equal(t, "Title", got.Info.Get(riffchunk.InfoTitle))
}
