// Package binio implements the endian-aware binary primitives shared by
// every codec in the module: integer reads/writes over byte slices, a
// growable rendering buffer, and the syncsafe-28 integer codec used by
// ID3v2.
//
// Readers never mutate their input and never panic: a slice shorter than a
// structure's declared length yields a TRUNCATED error, per spec.md §4.1.
package binio

import (
	"encoding/binary"

	"github.com/soundcodec/tagio/internal/tagerr"
)

// Reader is an unowned, zero-copy view over a byte slice used for parsing.
// It never mutates the underlying slice.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps b in a Reader starting at offset 0.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

// Seek moves the read offset to an absolute position within the buffer.
func (r *Reader) Seek(pos int) { r.pos = pos }

// Skip advances the read offset by n bytes without validating bounds; use
// after a Len() check.
func (r *Reader) Skip(n int) { r.pos += n }

// Bytes returns the full backing slice (for callers that need absolute
// offsets, e.g. CRC recomputation over a whole page).
func (r *Reader) Bytes() []byte { return r.buf }

func truncated(op string, want, have int) *tagerr.Error {
	return tagerr.Newf(tagerr.TRUNCATED, op, "need %d bytes, have %d", want, have)
}

// Take returns the next n bytes as a sub-slice (no copy) and advances the
// offset.
func (r *Reader) Take(op string, n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, truncated(op, n, r.Len())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Remaining returns every unread byte without advancing the offset.
func (r *Reader) Remaining() []byte { return r.buf[r.pos:] }

// U8 reads an unsigned 8-bit integer.
func (r *Reader) U8(op string) (uint8, error) {
	b, err := r.Take(op, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16LE/U16BE read an unsigned 16-bit integer in the named endianness.
func (r *Reader) U16LE(op string) (uint16, error) {
	b, err := r.Take(op, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) U16BE(op string) (uint16, error) {
	b, err := r.Take(op, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// U24LE/U24BE read an unsigned 24-bit integer in the named endianness.
func (r *Reader) U24LE(op string) (uint32, error) {
	b, err := r.Take(op, 3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

func (r *Reader) U24BE(op string) (uint32, error) {
	b, err := r.Take(op, 3)
	if err != nil {
		return 0, err
	}
	return uint32(b[2]) | uint32(b[1])<<8 | uint32(b[0])<<16, nil
}

// U32LE/U32BE read an unsigned 32-bit integer in the named endianness.
func (r *Reader) U32LE(op string) (uint32, error) {
	b, err := r.Take(op, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) U32BE(op string) (uint32, error) {
	b, err := r.Take(op, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// U64LE/U64BE read an unsigned 64-bit integer in the named endianness.
func (r *Reader) U64LE(op string) (uint64, error) {
	b, err := r.Take(op, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) U64BE(op string) (uint64, error) {
	b, err := r.Take(op, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// FixedASCII reads n bytes and returns them as a Latin-1/ASCII string
// verbatim (one byte per rune).
func (r *Reader) FixedASCII(op string, n int) (string, error) {
	b, err := r.Take(op, n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Buffer is an owned, growable byte buffer used for rendering. It never
// reads from any source: rendering is output-only, per spec.md §3.
type Buffer struct {
	buf []byte
}

// NewBuffer returns an empty Buffer with the given capacity hint.
func NewBuffer(capHint int) *Buffer {
	return &Buffer{buf: make([]byte, 0, capHint)}
}

// Bytes returns the accumulated bytes.
func (b *Buffer) Bytes() []byte { return b.buf }

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.buf) }

// WriteBytes appends p verbatim.
func (b *Buffer) WriteBytes(p []byte) { b.buf = append(b.buf, p...) }

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(v byte) { b.buf = append(b.buf, v) }

// WriteASCII appends s as raw bytes (Latin-1/ASCII, one byte per rune).
func (b *Buffer) WriteASCII(s string) { b.buf = append(b.buf, []byte(s)...) }

// WriteU16LE/WriteU16BE append an unsigned 16-bit integer.
func (b *Buffer) WriteU16LE(v uint16) {
	b.buf = append(b.buf, byte(v), byte(v>>8))
}
func (b *Buffer) WriteU16BE(v uint16) {
	b.buf = append(b.buf, byte(v>>8), byte(v))
}

// WriteU24LE/WriteU24BE append an unsigned 24-bit integer.
func (b *Buffer) WriteU24LE(v uint32) {
	b.buf = append(b.buf, byte(v), byte(v>>8), byte(v>>16))
}
func (b *Buffer) WriteU24BE(v uint32) {
	b.buf = append(b.buf, byte(v>>16), byte(v>>8), byte(v))
}

// WriteU32LE/WriteU32BE append an unsigned 32-bit integer.
func (b *Buffer) WriteU32LE(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}
func (b *Buffer) WriteU32BE(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

// WriteU64LE/WriteU64BE append an unsigned 64-bit integer.
func (b *Buffer) WriteU64LE(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}
func (b *Buffer) WriteU64BE(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

// WriteZeros appends n zero bytes, used for padding/alignment.
func (b *Buffer) WriteZeros(n int) {
	for i := 0; i < n; i++ {
		b.buf = append(b.buf, 0)
	}
}

// PadByteIfOdd appends one zero byte if n (the length of the chunk just
// written) is odd, for RIFF/AIFF chunk padding.
func (b *Buffer) PadByteIfOdd(n int) {
	if n%2 != 0 {
		b.WriteByte(0)
	}
}

// PatchU32LE/PatchU32BE overwrite 4 bytes at offset off, used for patching a
// placeholder size once the final length is known.
func (b *Buffer) PatchU32LE(off int, v uint32) {
	binary.LittleEndian.PutUint32(b.buf[off:off+4], v)
}
func (b *Buffer) PatchU32BE(off int, v uint32) {
	binary.BigEndian.PutUint32(b.buf[off:off+4], v)
}
