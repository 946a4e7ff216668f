package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/linkmap/pkg/errors"
	"github.com/arthur-debert/linkmap/pkg/filesystem"
	"github.com/arthur-debert/linkmap/pkg/testutil"
)

func TestParse_Entries(t *testing.T) {
	content := `# dotfiles manifest
zsh/zshrc = ~/.zshrc

nvim/init.lua = $XDG_CONFIG_HOME/nvim/
vim/vimrc = ~/.vimrc   # legacy setup
`
	m, diags := Parse([]byte(content), "/dots")

	require.Empty(t, diags)
	require.Len(t, m.Entries, 3)

	assert.Equal(t, "zsh/zshrc", m.Entries[0].Source)
	assert.Equal(t, filepath.Join("/dots", "zsh/zshrc"), m.Entries[0].SourcePath)
	assert.Equal(t, "~/.zshrc", m.Entries[0].DestRaw)
	assert.Equal(t, 2, m.Entries[0].Line)

	assert.Equal(t, "$XDG_CONFIG_HOME/nvim/", m.Entries[1].DestRaw)
	assert.Equal(t, 4, m.Entries[1].Line)

	// Inline comment stripped
	assert.Equal(t, "~/.vimrc", m.Entries[2].DestRaw)
	assert.Equal(t, 5, m.Entries[2].Line)
}

func TestParse_Robustness(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantEntries int
		wantDiags   int
	}{
		{"valid", "a = /tmp/a", 1, 0},
		{"no separator", "just a path", 0, 1},
		{"empty source", "= /tmp/a", 0, 1},
		{"empty destination", "a =", 0, 1},
		{"comment", "# a = /tmp/a", 0, 0},
		{"blank", "   ", 0, 0},
		{"whitespace around separator", "  a  =  /tmp/a  ", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, diags := Parse([]byte(tt.line), "/base")
			assert.Len(t, m.Entries, tt.wantEntries)
			assert.Len(t, diags, tt.wantDiags)
		})
	}
}

func TestParse_CountsAndOrder(t *testing.T) {
	content := `bad line one
a = /tmp/a
also bad
b = /tmp/b
c = /tmp/c
`
	m, diags := Parse([]byte(content), "/base")

	// Every valid line becomes an entry, every malformed line a
	// diagnostic, both keeping file order
	require.Len(t, m.Entries, 3)
	require.Len(t, diags, 2)
	assert.Equal(t, []int{2, 4, 5}, []int{m.Entries[0].Line, m.Entries[1].Line, m.Entries[2].Line})
	assert.Equal(t, []int{1, 3}, []int{diags[0].Line, diags[1].Line})
}

func TestParse_FirstEqualsWins(t *testing.T) {
	m, diags := Parse([]byte("a = /tmp/dir=with=equals"), "/base")

	require.Empty(t, diags)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, "a", m.Entries[0].Source)
	assert.Equal(t, "/tmp/dir=with=equals", m.Entries[0].DestRaw)
}

func TestParse_HashInPathSurvives(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantDest string
	}{
		{"hash glued to path kept", "a = /tmp/issue#42/a", "/tmp/issue#42/a"},
		{"hash after whitespace stripped", "a = /tmp/a # a comment", "/tmp/a"},
		{"hash in path then comment", "a = /tmp/v#1 # note", "/tmp/v#1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, diags := Parse([]byte(tt.line), "/base")
			require.Empty(t, diags)
			require.Len(t, m.Entries, 1)
			assert.Equal(t, tt.wantDest, m.Entries[0].DestRaw)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteManifest(t, dir, ".linkmap",
		"a.txt = /tmp/out/a.txt",
		"broken line",
	)

	m, diags, err := Load(filesystem.NewOS(), path)

	require.NoError(t, err)
	assert.Equal(t, path, m.Path)
	assert.Equal(t, dir, m.BaseDir)
	assert.Len(t, m.Entries, 1)
	assert.Len(t, diags, 1)
	assert.Equal(t, filepath.Join(dir, "a.txt"), m.Entries[0].SourcePath)
}

func TestLoad_Unreadable(t *testing.T) {
	m, diags, err := Load(filesystem.NewOS(), filepath.Join(t.TempDir(), "no-such-file"))

	assert.Nil(t, m)
	assert.Nil(t, diags)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestUnreadable))
}
