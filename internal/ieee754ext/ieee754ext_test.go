package ieee754ext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripCommonSampleRates(t *testing.T) {
	for _, rate := range []float64{44100, 48000, 96000, 22050, 8000} {
		got := Decode(Encode(rate))
		require.InDelta(t, rate, got, 0.001, "rate %v", rate)
	}
}

func TestZeroRoundTrips(t *testing.T) {
	require.Equal(t, float64(0), Decode(Encode(0)))
}
