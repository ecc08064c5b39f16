// Package vorbiscomment implements the Vorbis Comment key-value model
// shared by Vorbis, Opus and FLAC metadata, and the FLAC PICTURE block
// layout used both natively and (base64-encoded) inside Vorbis Comment
// (spec.md §4.4).
//
// The block shape mirrors the teacher's meta.VorbisComment type
// (mewkiz/flac meta/vorbiscomment.go: Vendor string + ordered name-value
// pairs) generalised to the spec's case-insensitive multimap semantics.
package vorbiscomment

import (
	"strings"

	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

const op = "vorbiscomment"

// DefaultVendor is used when rendering a Comment whose Vendor is empty.
const DefaultVendor = "tagio"

// Field is one KEY=VALUE entry. Keys are ASCII and compared
// case-insensitively; original case is preserved on write.
type Field struct {
	Key   string
	Value string
}

// Comment is an ordered, case-insensitive-keyed multimap of fields plus a
// vendor string (spec.md §3).
type Comment struct {
	Vendor string
	Fields []Field
}

// MaxFieldLength bounds a single field's declared length, guarding against
// adversarial length fields (spec.md §8 S6).
const MaxFieldLength = 64 * 1024 * 1024

// Parse decodes a Vorbis Comment block body (spec.md §4.4/§6): a 4-byte LE
// vendor length, vendor bytes, a 4-byte LE field count, then that many
// (4-byte LE length, UTF-8 "KEY=VALUE") records.
func Parse(b []byte) (*Comment, error) {
	r := binio.NewReader(b)
	vendorLen, err := r.U32LE(op)
	if err != nil {
		return nil, err
	}
	if vendorLen > MaxFieldLength || int(vendorLen) > r.Len() {
		return nil, tagerr.New(tagerr.TRUNCATED, op, "vendor length exceeds remaining bytes")
	}
	vendorBytes, err := r.Take(op, int(vendorLen))
	if err != nil {
		return nil, err
	}
	count, err := r.U32LE(op)
	if err != nil {
		return nil, err
	}
	// Each field needs at least 4 bytes for its own length prefix; reject
	// an implausible count before allocating, per spec.md S6.
	if uint64(count)*4 > uint64(r.Len()) {
		return nil, tagerr.New(tagerr.TRUNCATED, op, "field count exceeds remaining bytes")
	}
	c := &Comment{Vendor: string(vendorBytes), Fields: make([]Field, 0, count)}
	for i := uint32(0); i < count; i++ {
		fieldLen, err := r.U32LE(op)
		if err != nil {
			return nil, err
		}
		if fieldLen > MaxFieldLength || int(fieldLen) > r.Len() {
			return nil, tagerr.New(tagerr.TRUNCATED, op, "field length exceeds remaining bytes")
		}
		raw, err := r.Take(op, int(fieldLen))
		if err != nil {
			return nil, err
		}
		eq := indexByte(raw, '=')
		if eq < 0 {
			return nil, tagerr.New(tagerr.InvalidField, op, "field missing '=' separator")
		}
		key := string(raw[:eq])
		if !validKey(key) {
			return nil, tagerr.New(tagerr.InvalidField, op, "key contains non-ASCII-printable characters")
		}
		value := string(raw[eq+1:])
		c.Fields = append(c.Fields, Field{Key: key, Value: value})
	}
	return c, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r < 0x20 || r > 0x7D || r == '=' {
			return false
		}
	}
	return true
}

// Render serialises c back to its wire format. Vendor defaults to
// DefaultVendor when unset.
func (c *Comment) Render() []byte {
	vendor := c.Vendor
	if vendor == "" {
		vendor = DefaultVendor
	}
	buf := binio.NewBuffer(64 + len(c.Fields)*32)
	buf.WriteU32LE(uint32(len(vendor)))
	buf.WriteASCII(vendor)
	buf.WriteU32LE(uint32(len(c.Fields)))
	for _, f := range c.Fields {
		rec := f.Key + "=" + f.Value
		buf.WriteU32LE(uint32(len(rec)))
		buf.WriteASCII(rec)
	}
	return buf.Bytes()
}

// Get returns the first value for key (case-insensitive), or "" if absent.
func (c *Comment) Get(key string) string {
	for _, f := range c.Fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value
		}
	}
	return ""
}

// GetAll returns every value for key, in insertion order.
func (c *Comment) GetAll(key string) []string {
	var out []string
	for _, f := range c.Fields {
		if strings.EqualFold(f.Key, key) {
			out = append(out, f.Value)
		}
	}
	return out
}

// Set replaces every existing value for key with a single value, preserving
// the position of the first existing occurrence (or appending if absent).
func (c *Comment) Set(key, value string) {
	for i, f := range c.Fields {
		if strings.EqualFold(f.Key, key) {
			c.Fields[i].Value = value
			c.removeAllAfter(key, i)
			return
		}
	}
	c.Fields = append(c.Fields, Field{Key: key, Value: value})
}

func (c *Comment) removeAllAfter(key string, keepIdx int) {
	out := c.Fields[:0]
	for i, f := range c.Fields {
		if i != keepIdx && strings.EqualFold(f.Key, key) {
			continue
		}
		out = append(out, f)
	}
	c.Fields = out
}

// Add appends a value for key without removing existing values (fields may
// repeat, spec.md §4.4).
func (c *Comment) Add(key, value string) {
	c.Fields = append(c.Fields, Field{Key: key, Value: value})
}

// Remove deletes every value for key.
func (c *Comment) Remove(key string) {
	out := c.Fields[:0]
	for _, f := range c.Fields {
		if strings.EqualFold(f.Key, key) {
			continue
		}
		out = append(out, f)
	}
	c.Fields = out
}
