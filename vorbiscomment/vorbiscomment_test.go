package vorbiscomment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/internal/binio"
)

func TestParseRenderRoundTrip(t *testing.T) {
	c := &Comment{Vendor: "tagio 1.0"}
	c.Set("TITLE", "A Song")
	c.Set("ARTIST", "A Band")
	c.Add("ARTIST", "Featuring Someone") // repeated key, spec.md §4.4

	rendered := c.Render()
	got, err := Parse(rendered)
	require.NoError(t, err)
	require.Equal(t, "tagio 1.0", got.Vendor)
	require.Equal(t, "A Song", got.Get("TITLE"))
	require.Equal(t, []string{"A Band", "Featuring Someone"}, got.GetAll("ARTIST"))
}

func TestGetIsCaseInsensitive(t *testing.T) {
	c := &Comment{}
	c.Set("Title", "Mixed Case")
	require.Equal(t, "Mixed Case", c.Get("TITLE"))
	require.Equal(t, "Mixed Case", c.Get("title"))
}

func TestSetReplacesExistingAndRemovesDuplicates(t *testing.T) {
	c := &Comment{}
	c.Add("GENRE", "Rock")
	c.Add("GENRE", "Pop")
	c.Set("GENRE", "Jazz")
	require.Equal(t, []string{"Jazz"}, c.GetAll("GENRE"))
}

func TestParseRejectsMissingEquals(t *testing.T) {
	buf := binio.NewBuffer(0)
	buf.WriteU32LE(0) // empty vendor
	buf.WriteU32LE(1) // one field
	buf.WriteU32LE(uint32(len("NOEQUALSSIGN")))
	buf.WriteASCII("NOEQUALSSIGN")

	_, err := Parse(buf.Bytes())
	require.Error(t, err)
}

func TestPictureRoundTrip(t *testing.T) {
	p := &Picture{
		Type: 3, MIME: "image/jpeg", Description: "cover",
		Width: 500, Height: 500, ColorDepth: 24,
		Data: []byte{0xFF, 0xD8, 0xFF, 0xD9},
	}
	rendered := p.Render()
	got, err := ParsePicture(rendered)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestEmbeddedPictureRoundTrip(t *testing.T) {
	c := &Comment{}
	p := &Picture{Type: 3, MIME: "image/png", Data: []byte{1, 2, 3}}
	c.AddPicture(p)

	pics, err := c.Pictures()
	require.NoError(t, err)
	require.Len(t, pics, 1)
	require.Equal(t, p.Data, pics[0].Data)

	c.ClearPictures()
	require.Empty(t, c.GetAll(MetadataBlockPictureKey))
}
