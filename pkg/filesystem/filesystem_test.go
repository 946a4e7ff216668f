package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFS_RoundTrip(t *testing.T) {
	fsys := NewOS()
	dir := t.TempDir()

	path := filepath.Join(dir, "sub", "file.txt")
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fsys.WriteFile(path, []byte("content"), 0644))

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	link := filepath.Join(dir, "link.txt")
	require.NoError(t, fsys.Symlink(path, link))

	target, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, path, target)

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "Lstat must see the symlink itself")

	require.NoError(t, fsys.Remove(link))
	_, err = fsys.Lstat(link)
	assert.Error(t, err)
}

func TestAferoFS_MemoryRoundTrip(t *testing.T) {
	fsys := NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fsys.MkdirAll("/dots/sub", 0755))
	require.NoError(t, fsys.WriteFile("/dots/sub/a.txt", []byte("a"), 0644))

	data, err := fsys.ReadFile("/dots/sub/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	entries, err := fsys.ReadDir("/dots/sub")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name())
}

func TestAferoFS_SimulatedSymlink(t *testing.T) {
	fsys := NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fsys.Symlink("/dots/a.txt", "/home/a.txt"))

	target, err := fsys.Readlink("/home/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "/dots/a.txt", target)
}

func TestAferoFS_ReadFileOnDirectory(t *testing.T) {
	fsys := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll("/dots", 0755))

	_, err := fsys.ReadFile("/dots")
	assert.Error(t, err)
}
