package flacmeta

import (
	"github.com/soundcodec/tagio/internal/binio"
)

// Application is an APPLICATION metadata block: a 4-byte registered
// application ID followed by application-defined data, preserved verbatim
// since its internal layout is opaque to this package (spec.md §4.6).
type Application struct {
	ID   uint32
	Data []byte
}

func parseApplication(b []byte) (*Application, error) {
	r := binio.NewReader(b)
	id, err := r.U32BE(op)
	if err != nil {
		return nil, err
	}
	return &Application{ID: id, Data: append([]byte(nil), r.Remaining()...)}, nil
}

func (a *Application) Render() []byte {
	buf := binio.NewBuffer(4 + len(a.Data))
	buf.WriteU32BE(a.ID)
	buf.WriteBytes(a.Data)
	return buf.Bytes()
}
