// Package bitfield decodes and encodes the bit-packed integer fields found
// in FLAC's STREAMINFO block (sample rate: 20 bits, channels: 3 bits,
// bits-per-sample: 5 bits, total samples: 36 bits). The flacmeta STREAMINFO
// codec is its only user.
//
// It is built directly on github.com/icza/bitio, the bit-level reader/
// writer the teacher (mewkiz/flac) uses for its FLAC frame-header and
// subframe bit fields (frame/header.go, frame/subframe.go), rather than a
// hand-rolled bit shifter.
package bitfield

import (
	"bytes"

	"github.com/icza/bitio"

	"github.com/soundcodec/tagio/internal/tagerr"
)

// Reader reads consecutive big-endian bit fields from a fixed byte slice.
type Reader struct {
	br *bitio.Reader
}

// NewReader wraps b for bit-field reads.
func NewReader(b []byte) *Reader {
	return &Reader{br: bitio.NewReader(bytes.NewReader(b))}
}

// ReadBits reads n bits (n <= 64) as an unsigned integer.
func (r *Reader) ReadBits(op string, n uint8) (uint64, error) {
	v, err := r.br.ReadBits(n)
	if err != nil {
		return 0, tagerr.Wrap(tagerr.TRUNCATED, op, err)
	}
	return v, nil
}

// Align discards any unread bits in the current byte.
func (r *Reader) Align() { r.br.Align() }

// Writer accumulates big-endian bit fields into a byte buffer.
type Writer struct {
	buf bytes.Buffer
	bw  *bitio.Writer
}

// NewWriter returns an empty bit-field Writer.
func NewWriter() *Writer {
	w := &Writer{}
	w.bw = bitio.NewWriter(&w.buf)
	return w
}

// WriteBits writes the low n bits of v.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	return w.bw.WriteBits(v, n)
}

// Bytes flushes any partial byte (zero-padded) and returns the accumulated
// bytes.
func (w *Writer) Bytes() ([]byte, error) {
	if err := w.bw.Close(); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}
