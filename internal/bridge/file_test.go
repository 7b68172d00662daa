package bridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_MissingFileReadsAsEmpty(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nope", "store.json"))

	_, ok, err := f.Get(EventsKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_SetCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.json")
	f := NewFile(path)

	require.NoError(t, f.Set(EventsKey, "[]"))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	require.NoError(t, NewFile(path).Set(EventsKey, "persisted"))

	value, ok, err := NewFile(path).Get(EventsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}

func TestFile_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(filepath.Join(dir, "store.json"))

	require.NoError(t, f.Set(EventsKey, "x"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "store.json", entries[0].Name())
}

func TestFile_CorruptDocumentSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err := NewFile(path).Get(EventsKey)
	assert.Error(t, err)
}
