package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFS_EnsureDir(t *testing.T) {
	f := New()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	created, err := f.EnsureDir(dir)
	require.NoError(t, err)
	assert.True(t, created)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second call is idempotent and reports nothing created.
	created, err = f.EnsureDir(dir)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestOSFS_EnsureDir_CollidesWithFile(t *testing.T) {
	f := New()
	path := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := f.EnsureDir(path)
	require.ErrorIs(t, err, ErrNotDirectory)
}

func TestOSFS_EnsureDir_Concurrent(t *testing.T) {
	f := New()
	dir := filepath.Join(t.TempDir(), "shared", "parent")

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := f.EnsureDir(dir)
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
