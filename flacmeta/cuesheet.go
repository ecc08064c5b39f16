package flacmeta

import (
	"strings"

	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

// CueSheet is a CUESHEET metadata block: track layout information for
// backing a CD-DA source or similar (spec.md §4.6). Field shape follows the
// teacher's meta.CueSheet/meta.CueSheetTrack/meta.CueSheetTrackIndex
// (mewkiz/flac meta/cuesheet.go and meta/meta.go's NewCueSheet), generalised
// to a read+render pair via internal/binio instead of encoding/binary.
type CueSheet struct {
	MCN            string
	NLeadInSamples uint64
	IsCompactDisc  bool
	Tracks         []CueSheetTrack
}

// CueSheetTrack is one track (or, as the last entry, the lead-out track) of
// a CueSheet.
type CueSheetTrack struct {
	Offset         uint64
	Num            uint8
	ISRC           string
	IsAudio        bool
	HasPreEmphasis bool
	Indicies       []CueSheetTrackIndex
}

// CueSheetTrackIndex is one index point within a CueSheetTrack.
type CueSheetTrackIndex struct {
	Offset uint64
	Num    uint8
}

const (
	cueMCNSize        = 128
	cueReservedSize   = 258
	cueTrackISRCSize  = 12
	cueTrackReserved  = 13
	cueCompactDiscBit = 0x80
	cueTrackAudioBit  = 0x80 // 0 == audio, 1 == non-audio
	cueTrackPreEmph   = 0x40
)

func nulTrim(b []byte) string {
	if i := indexByteCue(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimRight(string(b), "\x00")
}

func indexByteCue(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func parseCueSheet(b []byte) (*CueSheet, error) {
	r := binio.NewReader(b)
	cs := &CueSheet{}

	mcn, err := r.Take(op, cueMCNSize)
	if err != nil {
		return nil, err
	}
	cs.MCN = nulTrim(mcn)

	if cs.NLeadInSamples, err = r.U64BE(op); err != nil {
		return nil, err
	}

	flagByte, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	cs.IsCompactDisc = flagByte&cueCompactDiscBit != 0
	if flagByte&0x7F != 0 {
		return nil, tagerr.New(tagerr.InvalidField, op, "cue sheet reserved bits must be 0")
	}
	if _, err = r.Take(op, cueReservedSize); err != nil {
		return nil, err
	}

	trackCount, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	if trackCount < 1 {
		return nil, tagerr.New(tagerr.InvalidField, op, "cue sheet requires at least the lead-out track")
	}

	cs.Tracks = make([]CueSheetTrack, trackCount)
	for i := range cs.Tracks {
		t := &cs.Tracks[i]
		if t.Offset, err = r.U64BE(op); err != nil {
			return nil, err
		}
		num, err := r.U8(op)
		if err != nil {
			return nil, err
		}
		t.Num = num

		isrc, err := r.Take(op, cueTrackISRCSize)
		if err != nil {
			return nil, err
		}
		t.ISRC = nulTrim(isrc)

		tflags, err := r.U8(op)
		if err != nil {
			return nil, err
		}
		t.IsAudio = tflags&cueTrackAudioBit == 0
		t.HasPreEmphasis = tflags&cueTrackPreEmph != 0
		if tflags&0x3F != 0 {
			return nil, tagerr.New(tagerr.InvalidField, op, "cue sheet track reserved bits must be 0")
		}
		if _, err = r.Take(op, cueTrackReserved); err != nil {
			return nil, err
		}

		idxCount, err := r.U8(op)
		if err != nil {
			return nil, err
		}
		t.Indicies = make([]CueSheetTrackIndex, idxCount)
		for j := range t.Indicies {
			idx := &t.Indicies[j]
			if idx.Offset, err = r.U64BE(op); err != nil {
				return nil, err
			}
			if idx.Num, err = r.U8(op); err != nil {
				return nil, err
			}
			if _, err = r.Take(op, 3); err != nil {
				return nil, err
			}
		}
	}
	return cs, nil
}

func (cs *CueSheet) Render() []byte {
	size := cueMCNSize + 8 + 1 + cueReservedSize + 1
	buf := binio.NewBuffer(size)
	buf.WriteASCII(padTrunc(cs.MCN, cueMCNSize))
	buf.WriteU64BE(cs.NLeadInSamples)
	flagByte := byte(0)
	if cs.IsCompactDisc {
		flagByte |= cueCompactDiscBit
	}
	buf.WriteByte(flagByte)
	buf.WriteZeros(cueReservedSize)
	buf.WriteByte(byte(len(cs.Tracks)))
	for _, t := range cs.Tracks {
		buf.WriteU64BE(t.Offset)
		buf.WriteByte(t.Num)
		buf.WriteASCII(padTrunc(t.ISRC, cueTrackISRCSize))
		tflags := byte(0)
		if !t.IsAudio {
			tflags |= cueTrackAudioBit
		}
		if t.HasPreEmphasis {
			tflags |= cueTrackPreEmph
		}
		buf.WriteByte(tflags)
		buf.WriteZeros(cueTrackReserved)
		buf.WriteByte(byte(len(t.Indicies)))
		for _, idx := range t.Indicies {
			buf.WriteU64BE(idx.Offset)
			buf.WriteByte(idx.Num)
			buf.WriteZeros(3)
		}
	}
	return buf.Bytes()
}

// padTrunc pads s with NUL bytes to n or truncates it to n, matching the
// fixed-width NUL-terminated string fields of the cue sheet format.
func padTrunc(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat("\x00", n-len(s))
}
