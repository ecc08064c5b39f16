package flacmeta

import (
	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

// PlaceholderSampleNum marks a SeekPoint as a placeholder reserved for later
// population rather than a real seek target.
const PlaceholderSampleNum = 0xFFFFFFFFFFFFFFFF

// SeekTable is a SEEKTABLE metadata block: a sequence of precalculated seek
// points, each 18 bytes on the wire. Field shape matches the teacher's
// meta.SeekTable/meta.SeekPoint (mewkiz/flac meta/seektable.go).
type SeekTable struct {
	Points []SeekPoint
}

// SeekPoint is one seek target: the sample number it points at, the byte
// offset from the first audio frame, and the number of samples in that
// frame.
type SeekPoint struct {
	SampleNum uint64
	Offset    uint64
	NSamples  uint16
}

const seekPointSize = 18

func parseSeekTable(b []byte) (*SeekTable, error) {
	if len(b)%seekPointSize != 0 {
		return nil, tagerr.Newf(tagerr.InvalidField, op, "SEEKTABLE length %d is not a multiple of %d", len(b), seekPointSize)
	}
	r := binio.NewReader(b)
	st := &SeekTable{}
	for len(r.Remaining()) > 0 {
		var sp SeekPoint
		var err error
		if sp.SampleNum, err = r.U64BE(op); err != nil {
			return nil, err
		}
		if sp.Offset, err = r.U64BE(op); err != nil {
			return nil, err
		}
		if sp.NSamples, err = r.U16BE(op); err != nil {
			return nil, err
		}
		st.Points = append(st.Points, sp)
	}
	return st, nil
}

func (st *SeekTable) Render() []byte {
	buf := binio.NewBuffer(len(st.Points) * seekPointSize)
	for _, sp := range st.Points {
		buf.WriteU64BE(sp.SampleNum)
		buf.WriteU64BE(sp.Offset)
		buf.WriteU16BE(sp.NSamples)
	}
	return buf.Bytes()
}
