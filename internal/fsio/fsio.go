// Package fsio implements the filesystem collaborator contract (spec.md
// §4.10): exists/read/write plus async equivalents accepting a cancellation
// token. The core never seeks; it reads a whole file into memory per call,
// streaming being a future extension outside this contract.
//
// Error wrapping follows the teacher's cmd/wav2flac/main.go convention of
// wrapping OS errors with github.com/pkg/errors.Wrap before they cross a
// package boundary.
package fsio

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/soundcodec/tagio/internal/tagerr"
)

const op = "fsio"

// FS is the synchronous filesystem collaborator the core consumes.
type FS interface {
	Exists(path string) bool
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
}

// OSFS is the default FS backed by the local filesystem.
type OSFS struct{}

// Exists reports whether path exists (any stat error, including permission
// errors, is treated as non-existent per the simple boolean contract).
func (OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Read reads the whole file at path into memory.
func (OSFS) Read(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tagerr.Wrap(tagerr.NotFound, op, err)
		}
		return nil, tagerr.Wrap(tagerr.IOError, op, errors.Wrap(err, "read"))
	}
	return b, nil
}

// Write writes data to path, recommending write-to-temp-then-rename for
// atomicity (spec.md §5), though the core does not require it.
func (OSFS) Write(path string, data []byte) error {
	tmp := path + ".tagio-tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return tagerr.Wrap(tagerr.IOError, op, errors.Wrap(err, "write temp"))
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return tagerr.Wrap(tagerr.IOError, op, errors.Wrap(err, "rename"))
	}
	return nil
}

// AsyncFS wraps an FS with cancellation-aware async convenience methods.
// Suspension occurs only at the read/write I/O boundary; cancellation
// observed before I/O begins returns CANCELLED without performing it
// (spec.md §5).
type AsyncFS struct {
	FS FS
}

// ExistsAsync reports existence, honoring ctx cancellation before the stat.
func (a AsyncFS) ExistsAsync(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, tagerr.New(tagerr.Cancelled, op, "cancelled before I/O")
	}
	return a.FS.Exists(path), nil
}

// ReadAsync reads path, honoring ctx cancellation before the read begins
// and discarding any partial buffer if cancelled mid-read.
func (a AsyncFS) ReadAsync(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, tagerr.New(tagerr.Cancelled, op, "cancelled before I/O")
	}
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := a.FS.Read(path)
		done <- result{data, err}
	}()
	select {
	case <-ctx.Done():
		return nil, tagerr.New(tagerr.Cancelled, op, "cancelled during read; partial buffer discarded")
	case r := <-done:
		return r.data, r.err
	}
}

// WriteAsync writes data to path, honoring ctx cancellation before the
// write begins.
func (a AsyncFS) WriteAsync(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return tagerr.New(tagerr.Cancelled, op, "cancelled before I/O")
	}
	done := make(chan error, 1)
	go func() {
		done <- a.FS.Write(path, data)
	}()
	select {
	case <-ctx.Done():
		return tagerr.New(tagerr.Cancelled, op, "cancelled during write")
	case err := <-done:
		return err
	}
}
