package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveIfExists(t *testing.T) {
	t.Run("removes an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stale.iif")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		require.NoError(t, RemoveIfExists(path))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, RemoveIfExists(filepath.Join(t.TempDir(), "nope")))
	})
}

func TestExpandName(t *testing.T) {
	t.Run("uuid placeholder", func(t *testing.T) {
		assert.Equal(t, "out_abc123.iif", ExpandName("out_{uuid}.iif", "abc123"))
	})

	t.Run("plain names pass through", func(t *testing.T) {
		assert.Equal(t, "output.iif", ExpandName("output.iif", "abc123"))
	})

	t.Run("timestamp placeholder expands to something", func(t *testing.T) {
		got := ExpandName("out_{timestamp}.iif", "abc123")

		assert.NotContains(t, got, "{timestamp}")
		assert.NotEqual(t, "out_.iif", got)
	})
}

func TestArchiveFile(t *testing.T) {
	t.Run("moves the file into the archive directory", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "march.csv")
		require.NoError(t, os.WriteFile(src, []byte("data"), 0644))
		archive := filepath.Join(dir, "done")

		dest, err := ArchiveFile(src, archive)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(archive, "march.csv"), dest)
		_, statErr := os.Stat(src)
		assert.True(t, os.IsNotExist(statErr))
		data, readErr := os.ReadFile(dest)
		require.NoError(t, readErr)
		assert.Equal(t, "data", string(data))
	})

	t.Run("name collisions keep both files", func(t *testing.T) {
		dir := t.TempDir()
		archive := filepath.Join(dir, "done")
		require.NoError(t, os.MkdirAll(archive, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(archive, "march.csv"), []byte("old"), 0644))
		src := filepath.Join(dir, "march.csv")
		require.NoError(t, os.WriteFile(src, []byte("new"), 0644))

		dest, err := ArchiveFile(src, archive)

		require.NoError(t, err)
		assert.NotEqual(t, filepath.Join(archive, "march.csv"), dest)
		old, readErr := os.ReadFile(filepath.Join(archive, "march.csv"))
		require.NoError(t, readErr)
		assert.Equal(t, "old", string(old))
	})
}
