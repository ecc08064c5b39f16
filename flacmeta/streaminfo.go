package flacmeta

import (
	"github.com/soundcodec/tagio/internal/bitfield"
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

// StreamInfo carries the audio properties of a FLAC stream: sample rate,
// channel count, bits-per-sample, total samples (spec.md §4.6), plus the
// block/frame size bounds and MD5 the wire format also stores. It must be
// the first metadata block of a FLAC stream. A zero sample rate or zero
// total-samples count means no audio properties are reported (spec.md
// §4.6).
//
// Field names follow the teacher's cmd/wav2flac construction of
// meta.StreamInfo (BlockSizeMin/Max, FrameSizeMin/Max, SampleRate,
// NChannels, BitsPerSample, NSamples, MD5sum).
type StreamInfo struct {
	BlockSizeMin  uint16
	BlockSizeMax  uint16
	FrameSizeMin  uint32 // 24-bit
	FrameSizeMax  uint32 // 24-bit
	SampleRate    uint32 // 20-bit
	NChannels     uint8  // 1..8
	BitsPerSample uint8  // 4..32
	NSamples      uint64 // 36-bit; 0 means unknown
	MD5sum        [16]byte
}

const streamInfoSize = 34

// HasAudioProperties reports whether sample rate and total-sample count are
// both known (spec.md §4.6).
func (si *StreamInfo) HasAudioProperties() bool {
	return si.SampleRate != 0 && si.NSamples != 0
}

func parseStreamInfo(b []byte) (*StreamInfo, error) {
	if len(b) != streamInfoSize {
		return nil, tagerr.Newf(tagerr.InvalidField, op, "STREAMINFO must be %d bytes, got %d", streamInfoSize, len(b))
	}
	r := binio.NewReader(b)
	si := &StreamInfo{}
	var err error
	if si.BlockSizeMin, err = r.U16BE(op); err != nil {
		return nil, err
	}
	if si.BlockSizeMax, err = r.U16BE(op); err != nil {
		return nil, err
	}
	if si.FrameSizeMin, err = r.U24BE(op); err != nil {
		return nil, err
	}
	if si.FrameSizeMax, err = r.U24BE(op); err != nil {
		return nil, err
	}
	packed, err := r.Take(op, 8)
	if err != nil {
		return nil, err
	}
	br := bitfield.NewReader(packed)
	sr, err := br.ReadBits(op, 20)
	if err != nil {
		return nil, err
	}
	ch, err := br.ReadBits(op, 3)
	if err != nil {
		return nil, err
	}
	bps, err := br.ReadBits(op, 5)
	if err != nil {
		return nil, err
	}
	ns, err := br.ReadBits(op, 36)
	if err != nil {
		return nil, err
	}
	si.SampleRate = uint32(sr)
	si.NChannels = uint8(ch) + 1
	si.BitsPerSample = uint8(bps) + 1
	si.NSamples = ns
	md5, err := r.Take(op, 16)
	if err != nil {
		return nil, err
	}
	copy(si.MD5sum[:], md5)
	return si, nil
}

func (si *StreamInfo) Render() ([]byte, error) {
	buf := binio.NewBuffer(streamInfoSize)
	buf.WriteU16BE(si.BlockSizeMin)
	buf.WriteU16BE(si.BlockSizeMax)
	buf.WriteU24BE(si.FrameSizeMin)
	buf.WriteU24BE(si.FrameSizeMax)
	bw := bitfield.NewWriter()
	if err := bw.WriteBits(uint64(si.SampleRate), 20); err != nil {
		return nil, err
	}
	ch := si.NChannels
	if ch == 0 {
		ch = 1
	}
	if err := bw.WriteBits(uint64(ch-1), 3); err != nil {
		return nil, err
	}
	bps := si.BitsPerSample
	if bps == 0 {
		bps = 1
	}
	if err := bw.WriteBits(uint64(bps-1), 5); err != nil {
		return nil, err
	}
	if err := bw.WriteBits(si.NSamples, 36); err != nil {
		return nil, err
	}
	packed, err := bw.Bytes()
	if err != nil {
		return nil, err
	}
	buf.WriteBytes(packed)
	buf.WriteBytes(si.MD5sum[:])
	return buf.Bytes(), nil
}
