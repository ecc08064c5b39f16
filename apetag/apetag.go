// Package apetag implements the APE tag v2 engine (spec.md §4.8): footer
// location by scanning the file tail, header/footer codec, and a
// case-insensitive, case-preserving item map holding text, binary, and
// locator items.
//
// The footer-scan-from-tail shape generalises the teacher's APE-adjacent
// trailer convention (mewkiz/flac's stream-level tail scan is ID3v1-style;
// here applied to the APEv2 preamble) and the item map follows the same
// ordered-map discipline as vorbiscomment.Comment.
package apetag

import (
	"bytes"
	"strings"

	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

const op = "apetag"

// Preamble is the fixed 8-byte APE tag signature.
const Preamble = "APETAGEX"

// Version2000 is the only version this engine writes.
const Version2000 = 2000

// Footer flag bits (spec.md §4.8).
const (
	FlagHasHeader  = 1 << 31
	FlagIsHeader   = 1 << 29
	FlagHeaderOnly = 0 // footer-only tags carry none of the above
)

// Item kinds (spec.md §4.8).
type ItemKind byte

const (
	KindText ItemKind = iota
	KindBinary
	KindLocator
)

// Item is one key/value pair. Key comparison for lookups is
// case-insensitive; the original case is preserved on write.
type Item struct {
	Key   string
	Value []byte
	Kind  ItemKind
}

// Tag is a parsed APE tag v2: version, flags, and an ordered item list.
type Tag struct {
	Version   uint32
	HasHeader bool
	Items     []Item
}

const footerSize = 32

// LocateFooter scans the final 32 bytes of b for the APETAGEX footer
// preamble. It returns the footer's offset within b, or ok=false if absent.
func LocateFooter(b []byte) (offset int, ok bool) {
	if len(b) < footerSize {
		return 0, false
	}
	tail := b[len(b)-footerSize:]
	if !bytes.HasPrefix(tail, []byte(Preamble)) {
		return 0, false
	}
	return len(b) - footerSize, true
}

// Parse locates and decodes the APE tag within b (the whole file buffer,
// or at minimum its trailing region). It returns the tag and the byte
// offset within b where the tag (header, if present, through footer)
// begins.
func Parse(b []byte) (*Tag, int, error) {
	footerOff, ok := LocateFooter(b)
	if !ok {
		return nil, 0, tagerr.New(tagerr.NotFound, op, "no APE tag footer found")
	}
	version, itemCount, tagSize, flags, err := parseFooterFields(b[footerOff:])
	if err != nil {
		return nil, 0, err
	}
	if version != Version2000 {
		return nil, 0, tagerr.Newf(tagerr.InvalidVersion, op, "unsupported APE tag version %d", version)
	}
	// tagSize excludes the header (if present) but includes the footer.
	itemsStart := footerOff + footerSize - int(tagSize)
	if itemsStart < 0 || itemsStart > footerOff {
		return nil, 0, tagerr.New(tagerr.TRUNCATED, op, "APE tag size exceeds available input")
	}
	hasHeader := flags&FlagHasHeader != 0
	tagStart := itemsStart
	if hasHeader {
		tagStart -= footerSize
		if tagStart < 0 {
			return nil, 0, tagerr.New(tagerr.TRUNCATED, op, "APE tag header exceeds available input")
		}
	}
	items, err := parseItems(b[itemsStart:footerOff], int(itemCount))
	if err != nil {
		return nil, 0, err
	}
	return &Tag{Version: version, HasHeader: hasHeader, Items: items}, tagStart, nil
}

func parseFooterFields(b []byte) (version, itemCount, tagSize, flags uint32, err error) {
	r := binio.NewReader(b)
	preamble, err := r.FixedASCII(op, 8)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if preamble != Preamble {
		return 0, 0, 0, 0, tagerr.New(tagerr.InvalidMagic, op, `expected "APETAGEX" preamble`)
	}
	if version, err = r.U32LE(op); err != nil {
		return
	}
	if tagSize, err = r.U32LE(op); err != nil {
		return
	}
	if itemCount, err = r.U32LE(op); err != nil {
		return
	}
	if flags, err = r.U32LE(op); err != nil {
		return
	}
	return
}

func parseItems(b []byte, count int) ([]Item, error) {
	r := binio.NewReader(b)
	items := make([]Item, 0, count)
	for i := 0; i < count; i++ {
		valueLen, err := r.U32LE(op)
		if err != nil {
			return nil, err
		}
		itemFlags, err := r.U32LE(op)
		if err != nil {
			return nil, err
		}
		key, err := readKey(r)
		if err != nil {
			return nil, err
		}
		value, err := r.Take(op, int(valueLen))
		if err != nil {
			return nil, err
		}
		items = append(items, Item{
			Key:   key,
			Value: append([]byte(nil), value...),
			Kind:  ItemKind((itemFlags >> 1) & 0x3),
		})
	}
	return items, nil
}

func readKey(r *binio.Reader) (string, error) {
	start := r.Pos()
	for {
		b, err := r.U8(op)
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
	}
	end := r.Pos() - 1
	return string(r.Bytes()[start:end]), nil
}

// Render serialises t to its wire bytes: an optional header, the items,
// then the footer.
func (t *Tag) Render() []byte {
	itemsBuf := binio.NewBuffer(256)
	for _, it := range t.Items {
		itemsBuf.WriteU32LE(uint32(len(it.Value)))
		itemsBuf.WriteU32LE(uint32(it.Kind) << 1)
		itemsBuf.WriteASCII(it.Key)
		itemsBuf.WriteByte(0)
		itemsBuf.WriteBytes(it.Value)
	}
	tagSize := uint32(itemsBuf.Len() + footerSize)

	flags := uint32(0)
	if t.HasHeader {
		flags |= FlagHasHeader
	}

	buf := binio.NewBuffer(2*footerSize + itemsBuf.Len())
	if t.HasHeader {
		writeFooterOrHeader(buf, Version2000, tagSize, uint32(len(t.Items)), flags|FlagIsHeader)
	}
	buf.WriteBytes(itemsBuf.Bytes())
	writeFooterOrHeader(buf, Version2000, tagSize, uint32(len(t.Items)), flags)
	return buf.Bytes()
}

func writeFooterOrHeader(buf *binio.Buffer, version, tagSize, itemCount, flags uint32) {
	buf.WriteASCII(Preamble)
	buf.WriteU32LE(version)
	buf.WriteU32LE(tagSize)
	buf.WriteU32LE(itemCount)
	buf.WriteU32LE(flags)
	buf.WriteZeros(8)
}

// Get returns the first item's value for key (case-insensitive), or nil.
func (t *Tag) Get(key string) []byte {
	for _, it := range t.Items {
		if strings.EqualFold(it.Key, key) {
			return it.Value
		}
	}
	return nil
}

// GetText is Get for a text-kind item, returned as a string.
func (t *Tag) GetText(key string) (string, bool) {
	for _, it := range t.Items {
		if strings.EqualFold(it.Key, key) && it.Kind == KindText {
			return string(it.Value), true
		}
	}
	return "", false
}

// Set replaces the first item matching key (case-insensitively), preserving
// its original key case, or appends a new item with key as given.
func (t *Tag) Set(key string, value []byte, kind ItemKind) {
	for i := range t.Items {
		if strings.EqualFold(t.Items[i].Key, key) {
			t.Items[i].Value = value
			t.Items[i].Kind = kind
			return
		}
	}
	t.Items = append(t.Items, Item{Key: key, Value: value, Kind: kind})
}

// SetText is Set for a text-kind item.
func (t *Tag) SetText(key, value string) {
	t.Set(key, []byte(value), KindText)
}

// Remove deletes every item matching key case-insensitively.
func (t *Tag) Remove(key string) {
	out := t.Items[:0]
	for _, it := range t.Items {
		if !strings.EqualFold(it.Key, key) {
			out = append(out, it)
		}
	}
	t.Items = out
}
