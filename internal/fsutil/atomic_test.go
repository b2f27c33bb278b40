package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWrite_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.soln")

	require.NoError(t, AtomicWrite(path, []byte("section:problem\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "section:problem\n", string(got))
}

func TestAtomicWrite_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.soln")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, AtomicWrite(path, []byte("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestAtomicWrite_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, AtomicWrite(filepath.Join(dir, "out.soln"), []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.soln", entries[0].Name())
}

func TestAtomicWrite_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.soln")

	err := AtomicWrite(path, []byte("x"))
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
