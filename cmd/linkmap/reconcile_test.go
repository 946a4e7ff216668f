package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/linkmap/pkg/testutil"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_LinkRun(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	testutil.CreateFile(t, base, "a.txt", "hello")
	manifest := testutil.WriteManifest(t, base, ".linkmap", "a.txt = ~/a.txt")

	out, err := runCLI(t, "-f", manifest, "--output", "json", "--no-color")
	require.NoError(t, err)

	var doc struct {
		Operation string `json:"operation"`
		Success   bool   `json:"success"`
		Changed   int    `json:"changed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "link", doc.Operation)
	assert.True(t, doc.Success)
	assert.Equal(t, 1, doc.Changed)

	assert.True(t, testutil.SymlinkExists(t, filepath.Join(home, "a.txt")))
}

func TestRootCommand_DryRun(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	testutil.CreateFile(t, base, "a.txt", "hello")
	manifest := testutil.WriteManifest(t, base, ".linkmap", "a.txt = ~/a.txt")

	before := testutil.TreeSnapshot(t, home)
	out, err := runCLI(t, "-f", manifest, "--dry-run", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "would create")
	assert.Equal(t, before, testutil.TreeSnapshot(t, home))
}

func TestUnlinkCommand(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	testutil.CreateFile(t, base, "a.txt", "hello")
	manifest := testutil.WriteManifest(t, base, ".linkmap", "a.txt = ~/a.txt")

	_, err := runCLI(t, "-f", manifest, "--no-color")
	require.NoError(t, err)
	require.True(t, testutil.SymlinkExists(t, filepath.Join(home, "a.txt")))

	_, err = runCLI(t, "unlink", "-f", manifest, "--no-color")
	require.NoError(t, err)
	assert.False(t, testutil.SymlinkExists(t, filepath.Join(home, "a.txt")))
}

func TestRootCommand_FailedRunExitsWithError(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	manifest := testutil.WriteManifest(t, base, ".linkmap", "this line is broken")

	_, err := runCLI(t, "-f", manifest, "--no-color")
	assert.ErrorIs(t, err, errRunFailed)
}

func TestSameContent(t *testing.T) {
	dir := t.TempDir()
	a := testutil.CreateFile(t, dir, "a.txt", "same bytes")
	b := testutil.CreateFile(t, dir, "b.txt", "same bytes")
	c := testutil.CreateFile(t, dir, "c.txt", "different")

	assert.True(t, sameContent(a, b))
	assert.False(t, sameContent(a, c))
	assert.False(t, sameContent(a, filepath.Join(dir, "missing.txt")))
	assert.False(t, sameContent(a, dir), "directories never compare equal")
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
