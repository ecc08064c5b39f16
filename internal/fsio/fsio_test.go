package fsio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcodec/tagio/internal/tagerr"
)

func TestOSFSWriteReadExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tag.bin")
	fs := OSFS{}

	require.False(t, fs.Exists(path))
	require.NoError(t, fs.Write(path, []byte("hello")))
	require.True(t, fs.Exists(path))

	data, err := fs.Read(path)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)
}

func TestOSFSReadMissingFileIsNotFound(t *testing.T) {
	fs := OSFS{}
	_, err := fs.Read(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
	require.True(t, tagerr.Is(err, tagerr.NotFound))
}

func TestOSFSWriteIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tag.bin")
	fs := OSFS{}
	require.NoError(t, fs.Write(path, []byte("v1")))
	require.NoError(t, fs.Write(path, []byte("v2")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1) // no leftover .tagio-tmp file
}

func TestAsyncFSReadCancelledBeforeIO(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tag.bin")
	require.NoError(t, OSFS{}.Write(path, []byte("data")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := AsyncFS{FS: OSFS{}}
	_, err := a.ReadAsync(ctx, path)
	require.Error(t, err)
}

func TestAsyncFSReadSucceeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tag.bin")
	require.NoError(t, OSFS{}.Write(path, []byte("data")))

	a := AsyncFS{FS: OSFS{}}
	data, err := a.ReadAsync(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []byte("data"), data)
}
