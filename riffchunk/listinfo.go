package riffchunk

import "github.com/soundcodec/tagio/internal/binio"

// INFO subchunk IDs (spec.md §4.7).
const (
	InfoTitle    = "INAM"
	InfoArtist   = "IART"
	InfoAlbum    = "IPRD"
	InfoComments = "ICMT"
	InfoYear     = "ICRD"
	InfoGenre    = "IGNR"
)

// InfoList is a decoded "LIST" chunk of type "INFO": an ordered, repeatable
// set of 4-byte-ID text fields.
type InfoList struct {
	Fields []InfoField
}

// InfoField is one INFO subchunk.
type InfoField struct {
	ID    string
	Value string
}

// ParseInfoList decodes a "LIST" chunk body already stripped of its leading
// "INFO" type tag.
func ParseInfoList(b []byte) (*InfoList, error) {
	r := binio.NewReader(b)
	l := &InfoList{}
	for r.Len() >= 8 {
		id, err := r.FixedASCII(op, 4)
		if err != nil {
			return nil, err
		}
		size, err := r.U32LE(op)
		if err != nil {
			return nil, err
		}
		data, err := r.Take(op, int(size))
		if err != nil {
			return nil, err
		}
		l.Fields = append(l.Fields, InfoField{ID: id, Value: nulTrimBext(data)})
		if size%2 != 0 && r.Len() > 0 {
			if _, err := r.Take(op, 1); err != nil {
				break
			}
		}
	}
	return l, nil
}

// Render serialises l back to a "LIST" body, including the leading "INFO"
// type tag.
func (l *InfoList) Render() []byte {
	buf := binio.NewBuffer(64)
	buf.WriteASCII("INFO")
	for _, f := range l.Fields {
		value := f.Value + "\x00"
		buf.WriteASCII(padID(f.ID))
		buf.WriteU32LE(uint32(len(value)))
		buf.WriteASCII(value)
		buf.PadByteIfOdd(len(value))
	}
	return buf.Bytes()
}

// Get returns the first value for id, or "".
func (l *InfoList) Get(id string) string {
	for _, f := range l.Fields {
		if f.ID == id {
			return f.Value
		}
	}
	return ""
}

// Set replaces the first field with id, or appends a new one.
func (l *InfoList) Set(id, value string) {
	for i := range l.Fields {
		if l.Fields[i].ID == id {
			l.Fields[i].Value = value
			return
		}
	}
	l.Fields = append(l.Fields, InfoField{ID: id, Value: value})
}
