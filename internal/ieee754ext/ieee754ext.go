// Package ieee754ext decodes and encodes the 80-bit IEEE-754 extended
// precision float AIFF uses for its COMM sample rate field (spec.md §4.7).
//
// No retrieved example carries a grounded implementation of this specific
// routine (the teacher's go.mod lists github.com/mattetti/audio as an
// indirect dependency, but no source or call site for it appears anywhere
// in the pack), so this is implemented directly against math rather than
// risk fabricating an API for an ungrounded import. See DESIGN.md.
package ieee754ext

import "math"

// Decode reads a big-endian 80-bit extended float from the first 10 bytes
// of b and returns its value as a float64.
func Decode(b [10]byte) float64 {
	sign := 1.0
	if b[0]&0x80 != 0 {
		sign = -1.0
	}
	exponent := int(b[0]&0x7F)<<8 | int(b[1])
	mantissa := uint64(0)
	for i := 2; i < 10; i++ {
		mantissa = mantissa<<8 | uint64(b[i])
	}
	if exponent == 0 && mantissa == 0 {
		return 0
	}
	// Unbiased exponent (bias 16383) with the explicit integer bit already
	// present in bit 63 of the 64-bit mantissa field.
	f := float64(mantissa) * math.Pow(2, float64(exponent-16383-63))
	return sign * f
}

// Encode renders v as a big-endian 80-bit extended float. Common sample
// rates (44100, 48000, their multiples) round-trip exactly since the
// mantissa fits comfortably within the 64 significant bits available.
func Encode(v float64) [10]byte {
	var out [10]byte
	if v == 0 {
		return out
	}
	sign := byte(0)
	if v < 0 {
		sign = 0x80
		v = -v
	}
	exponent := 16383 + 63
	// Normalise v into [2^63, 2^64) as the 64-bit mantissa.
	for v >= math.Pow(2, 64) {
		v /= 2
		exponent++
	}
	for v < math.Pow(2, 63) {
		v *= 2
		exponent--
	}
	mantissa := uint64(v)
	out[0] = sign | byte(exponent>>8)
	out[1] = byte(exponent)
	for i := 9; i >= 2; i-- {
		out[i] = byte(mantissa)
		mantissa >>= 8
	}
	return out
}
