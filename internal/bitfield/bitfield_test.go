package bitfield

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteBits(0xABCDE, 20))
	require.NoError(t, w.WriteBits(0x5, 3))
	require.NoError(t, w.WriteBits(0x1F, 5))
	b, err := w.Bytes()
	require.NoError(t, err)

	r := NewReader(b)
	v, err := r.ReadBits("test", 20)
	require.NoError(t, err)
	require.EqualValues(t, 0xABCDE, v)

	v, err = r.ReadBits("test", 3)
	require.NoError(t, err)
	require.EqualValues(t, 0x5, v)

	v, err = r.ReadBits("test", 5)
	require.NoError(t, err)
	require.EqualValues(t, 0x1F, v)
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{0x00})
	_, err := r.ReadBits("test", 64)
	require.Error(t, err)
}
