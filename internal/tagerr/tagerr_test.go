package tagerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAndIs(t *testing.T) {
	err := New(InvalidMagic, "flacmeta.parse", "bad magic")
	require.True(t, Is(err, InvalidMagic))
	require.False(t, Is(err, TRUNCATED))
	require.Equal(t, InvalidMagic, KindOf(err))
}

func TestWrapNilPassesThrough(t *testing.T) {
	require.Nil(t, Wrap(IOError, "op", nil))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(IOError, "fsio", cause)
	require.True(t, Is(err, IOError))
	require.ErrorIs(t, err, cause)
}

func TestKindOfUnclassifiedDefaultsToIOError(t *testing.T) {
	require.Equal(t, IOError, KindOf(errors.New("plain")))
}

func TestResult(t *testing.T) {
	ok := Ok(42)
	require.True(t, ok.IsSuccess)
	require.Equal(t, 42, ok.Value)
	require.Equal(t, "", ok.ErrorString())

	fail := Fail[int](New(SizeLimit, "op", "too big"))
	require.False(t, fail.IsSuccess)
	require.NotEmpty(t, fail.ErrorString())
	require.Equal(t, SizeLimit, fail.Err().Kind)
}
