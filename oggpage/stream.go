package oggpage

import "github.com/soundcodec/tagio/internal/tagerr"

// ReassembleOptions configures packet reassembly safety caps (spec.md §5).
type ReassembleOptions struct {
	// MaxContinuationPages caps the number of pages a single packet may
	// span. 0 means DefaultMaxContinuationPages.
	MaxContinuationPages int
	// MaxPacketSize caps the total assembled packet size in bytes. 0 means
	// DefaultMaxPacketSize.
	MaxPacketSize int
}

const (
	// DefaultMaxContinuationPages is the default continuation-page cap.
	DefaultMaxContinuationPages = 50
	// DefaultMaxPacketSize is the default assembled-packet-size cap (a few
	// MB, per spec.md §4.5).
	DefaultMaxPacketSize = 8 * 1024 * 1024
)

// Packet is one reassembled logical packet plus the pages it spanned.
type Packet struct {
	Data      []byte
	PageStart int // index into the Pages slice passed to Reassemble
	PageEnd   int // inclusive
}

// Reassemble walks pages in order and yields complete packets. A packet is
// complete when its last lacing byte is < 255; a page whose final segment
// is 255 continues the packet into the next page, which must carry the
// continuation flag (spec.md §4.5).
func Reassemble(pages []*Page, opts ReassembleOptions) ([]Packet, error) {
	maxCont := opts.MaxContinuationPages
	if maxCont == 0 {
		maxCont = DefaultMaxContinuationPages
	}
	maxSize := opts.MaxPacketSize
	if maxSize == 0 {
		maxSize = DefaultMaxPacketSize
	}

	var packets []Packet
	var cur []byte
	curStart := -1
	contPages := 0

	for pi, pg := range pages {
		offset := 0
		for si, seglen := range pg.SegmentTable {
			if curStart < 0 {
				curStart = pi
			}
			end := offset + int(seglen)
			if end > len(pg.Data) {
				return nil, tagerr.New(tagerr.TRUNCATED, op, "segment table describes more data than present")
			}
			cur = append(cur, pg.Data[offset:end]...)
			offset = end
			if len(cur) > maxSize {
				return nil, tagerr.Newf(tagerr.SizeLimit, op, "assembled packet exceeds %d bytes", maxSize)
			}
			isLastSegInPage := si == len(pg.SegmentTable)-1
			if seglen < 255 {
				packets = append(packets, Packet{Data: cur, PageStart: curStart, PageEnd: pi})
				cur = nil
				curStart = -1
				contPages = 0
			} else if isLastSegInPage {
				contPages++
				if contPages > maxCont {
					return nil, tagerr.Newf(tagerr.SizeLimit, op, "packet spans more than %d continuation pages", maxCont)
				}
			}
		}
	}
	if len(cur) > 0 {
		// Trailing incomplete packet (stream truncated or final page lacks a
		// terminating < 255 segment): surface what was assembled so far.
		packets = append(packets, Packet{Data: cur, PageStart: curStart, PageEnd: len(pages) - 1})
	}
	return packets, nil
}

// Emit packages packets into one or more pages for serial, starting at
// sequence 0. The first emitted page carries BOS if firstIsBOS, and the
// last carries EOS. A single packet longer than MaxSinglePagePayload must
// be pre-split by the caller into page-sized chunks continued via the
// continuation flag; Emit rejects an over-long packet rather than silently
// truncating it (spec.md §4.5).
func Emit(packets [][]byte, serial uint32, granules []uint64, firstIsBOS bool) ([]*Page, error) {
	if len(granules) != 0 && len(granules) != len(packets) {
		return nil, tagerr.New(tagerr.InvalidField, op, "granules length must match packets length")
	}
	var pages []*Page
	var curData []byte
	var curSegs []byte
	seq := uint32(0)
	flush := func(continuation bool, granule uint64) {
		flags := byte(0)
		if continuation {
			flags |= FlagContinuation
		}
		if len(pages) == 0 && firstIsBOS {
			flags |= FlagBOS
		}
		pages = append(pages, &Page{
			Flags:        flags,
			Granule:      granule,
			Serial:       serial,
			Sequence:     seq,
			SegmentTable: curSegs,
			Data:         curData,
		})
		seq++
		curData = nil
		curSegs = nil
	}
	for i, pkt := range packets {
		if len(pkt) > MaxSinglePagePayload {
			return nil, tagerr.Newf(tagerr.SizeLimit, op, "packet of %d bytes exceeds single-page capacity %d; split across pages first", len(pkt), MaxSinglePagePayload)
		}
		granule := uint64(0)
		if i < len(granules) {
			granule = granules[i]
		}
		curData = append(curData, pkt...)
		curSegs = append(curSegs, segmentsForLength(len(pkt))...)
		flush(false, granule)
	}
	if len(pages) > 0 {
		pages[len(pages)-1].Flags |= FlagEOS
	}
	return pages, nil
}

// Renumber rewrites sequence numbers contiguously from 0, sets every page's
// serial to serial, and ensures only the last page carries EOS (spec.md
// §4.5, §8 S9). It does not touch the CRC field; Page.Render recomputes the
// CRC when each page is serialised.
func Renumber(pages []*Page, serial uint32) {
	for i, pg := range pages {
		pg.Serial = serial
		pg.Sequence = uint32(i)
		pg.Flags &^= FlagEOS
	}
	if len(pages) > 0 {
		pages[len(pages)-1].Flags |= FlagEOS
	}
}
