package binio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/internal/tagerr"
)

func TestReaderIntegers(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	r := NewReader(b)

	u16le, err := r.U16LE("test")
	require.NoError(t, err)
	require.EqualValues(t, 0x0201, u16le)

	u16be, err := r.U16BE("test")
	require.NoError(t, err)
	require.EqualValues(t, 0x0304, u16be)

	u32le, err := r.U32LE("test")
	require.NoError(t, err)
	require.EqualValues(t, 0x08070605, u32le)
}

func TestReaderTakeTruncated(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	_, err := r.Take("test", 4)
	require.Error(t, err)
	require.True(t, tagerr.Is(err, tagerr.TRUNCATED))
}

func TestReaderRemaining(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	_, err := r.Take("test", 1)
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x03}, r.Remaining())
	require.Equal(t, 2, r.Len())
}

func TestBufferRoundTrip(t *testing.T) {
	buf := NewBuffer(0)
	buf.WriteU32BE(0xdeadbeef)
	buf.WriteU16LE(0x1234)
	buf.WriteASCII("ab")

	r := NewReader(buf.Bytes())
	v, err := r.U32BE("test")
	require.NoError(t, err)
	require.EqualValues(t, 0xdeadbeef, v)

	u16, err := r.U16LE("test")
	require.NoError(t, err)
	require.EqualValues(t, 0x1234, u16)

	s, err := r.FixedASCII("test", 2)
	require.NoError(t, err)
	require.Equal(t, "ab", s)
}

func TestBufferPadByteIfOdd(t *testing.T) {
	buf := NewBuffer(0)
	buf.WriteASCII("abc")
	buf.PadByteIfOdd(3)
	require.Equal(t, 4, buf.Len())

	buf2 := NewBuffer(0)
	buf2.WriteASCII("ab")
	buf2.PadByteIfOdd(2)
	require.Equal(t, 2, buf2.Len())
}

func TestBufferPatchU32BE(t *testing.T) {
	buf := NewBuffer(0)
	buf.WriteU32BE(0)
	buf.WriteASCII("tail")
	buf.PatchU32BE(0, 0x11223344)
	require.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, buf.Bytes()[:4])
}

func TestSyncsafe28RoundTrip(t *testing.T) {
	enc, err := EncodeSyncsafe28(0x0FFFFFFF)
	require.NoError(t, err)
	dec, err := DecodeSyncsafe28(enc)
	require.NoError(t, err)
	require.EqualValues(t, 0x0FFFFFFF, dec)
}

func TestSyncsafe28RejectsOverflow(t *testing.T) {
	_, err := EncodeSyncsafe28(MaxSyncsafe + 1)
	require.Error(t, err)
}

func TestSyncsafe28RejectsHighBit(t *testing.T) {
	_, err := DecodeSyncsafe28([4]byte{0x80, 0, 0, 0})
	require.Error(t, err)
	require.True(t, tagerr.Is(err, tagerr.InvalidField))
}
