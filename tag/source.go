package tag

import (
	"github.com/soundcodec/tagio/internal/fsio"
	"github.com/soundcodec/tagio/internal/tagerr"
)

const sourceOp = "tag"

// Source associates an in-memory rendered buffer with the filesystem path
// it was read from, so a caller can Save() back to where it came from.
// A Source not built with NewSource (or built with an empty path) has no
// source path; Save on it fails with NO_SOURCE (spec.md §7).
type Source struct {
	fs   fsio.FS
	path string
}

// NewSource associates path with fs for later Save calls.
func NewSource(fs fsio.FS, path string) Source {
	return Source{fs: fs, path: path}
}

// Save writes rendered back to the source path, failing with NO_SOURCE if
// this Source was never associated with one.
func (s Source) Save(rendered []byte) error {
	if s.path == "" {
		return tagerr.New(tagerr.NoSource, sourceOp, "save-to-source called on an in-memory value")
	}
	return s.fs.Write(s.path, rendered)
}
