package reconciler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/linkmap/pkg/errors"
	"github.com/arthur-debert/linkmap/pkg/expand"
	"github.com/arthur-debert/linkmap/pkg/filesystem"
	"github.com/arthur-debert/linkmap/pkg/testutil"
	"github.com/arthur-debert/linkmap/pkg/types"
)

func TestRunLinkFile_FullManifest(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, base, "a.txt", "a")
	testutil.CreateFile(t, base, "b.txt", "b")

	manifest := testutil.WriteManifest(t, base, ".linkmap",
		"# dotfiles",
		"a.txt = ~/a.txt",
		"",
		"b.txt = ~/sub/b.txt",
		"missing.txt = ~/m.txt",
	)

	env := expand.MapEnv{HomeDir: home}
	rep, err := RunLinkFile(filesystem.NewOS(), env, manifest, types.Options{})
	require.NoError(t, err)

	require.Len(t, rep.Results, 3)
	assert.Equal(t, types.OutcomeCreated, rep.Results[0].Outcome)
	assert.Equal(t, types.OutcomeCreated, rep.Results[1].Outcome)
	assert.Equal(t, types.OutcomeSkippedMissingSource, rep.Results[2].Outcome)
	assert.True(t, rep.Success())

	assert.True(t, testutil.SymlinkExists(t, filepath.Join(home, "a.txt")))
	assert.True(t, testutil.SymlinkExists(t, filepath.Join(home, "sub", "b.txt")))
}

func TestRunLinkFile_SecondRunIsAllUpToDate(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, base, "a.txt", "a")
	testutil.CreateFile(t, base, "b.txt", "b")

	manifest := testutil.WriteManifest(t, base, ".linkmap",
		"a.txt = ~/a.txt",
		"b.txt = ~/b.txt",
	)

	env := expand.MapEnv{HomeDir: home}

	_, err := RunLinkFile(filesystem.NewOS(), env, manifest, types.Options{})
	require.NoError(t, err)

	rep, err := RunLinkFile(filesystem.NewOS(), env, manifest, types.Options{})
	require.NoError(t, err)

	require.Len(t, rep.Results, 2)
	for _, res := range rep.Results {
		assert.Equal(t, types.OutcomeAlreadyLinked, res.Outcome)
	}
}

func TestRunLinkFile_DiagnosticsInterleavedInLineOrder(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, base, "a.txt", "a")
	testutil.CreateFile(t, base, "b.txt", "b")

	manifest := testutil.WriteManifest(t, base, ".linkmap",
		"not a valid line",  // line 1
		"a.txt = ~/a.txt",   // line 2
		"another bad line",  // line 3
		"b.txt = ~/b.txt",   // line 4
	)

	env := expand.MapEnv{HomeDir: home}
	rep, err := RunLinkFile(filesystem.NewOS(), env, manifest, types.Options{})
	require.NoError(t, err)

	require.Len(t, rep.Results, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{
		rep.Results[0].Line, rep.Results[1].Line, rep.Results[2].Line, rep.Results[3].Line,
	})
	assert.Equal(t, types.OutcomeParseError, rep.Results[0].Outcome)
	assert.Equal(t, types.OutcomeCreated, rep.Results[1].Outcome)
	assert.Equal(t, types.OutcomeParseError, rep.Results[2].Outcome)
	assert.Equal(t, types.OutcomeCreated, rep.Results[3].Outcome)
	assert.False(t, rep.Success())
}

func TestRunLinkFile_ManifestUnreadable(t *testing.T) {
	env := expand.MapEnv{HomeDir: t.TempDir()}

	rep, err := RunLinkFile(filesystem.NewOS(), env, filepath.Join(t.TempDir(), "absent"), types.Options{})

	assert.Nil(t, rep)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestUnreadable))
}

func TestRunUnlinkFile_RoundTrip(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, base, "a.txt", "a")

	manifest := testutil.WriteManifest(t, base, ".linkmap", "a.txt = ~/a.txt")
	env := expand.MapEnv{HomeDir: home}

	_, err := RunLinkFile(filesystem.NewOS(), env, manifest, types.Options{})
	require.NoError(t, err)
	require.True(t, testutil.SymlinkExists(t, filepath.Join(home, "a.txt")))

	rep, err := RunUnlinkFile(filesystem.NewOS(), env, manifest, types.Options{})
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, types.OutcomeRemoved, rep.Results[0].Outcome)
	assert.False(t, testutil.SymlinkExists(t, filepath.Join(home, "a.txt")))
}

// An entry that fails must not stop later entries from being processed.
func TestRunLinkFile_ErrorDoesNotAbortRun(t *testing.T) {
	base := t.TempDir()
	home := t.TempDir()
	testutil.CreateFile(t, base, "a.txt", "a")
	testutil.CreateFile(t, base, "b.txt", "b")

	manifest := testutil.WriteManifest(t, base, ".linkmap",
		"a.txt = $NOPE/a.txt",
		"b.txt = ~/b.txt",
	)

	env := expand.MapEnv{HomeDir: home}
	rep, err := RunLinkFile(filesystem.NewOS(), env, manifest, types.Options{})
	require.NoError(t, err)

	require.Len(t, rep.Results, 2)
	assert.Equal(t, types.OutcomeError, rep.Results[0].Outcome)
	assert.Equal(t, types.OutcomeCreated, rep.Results[1].Outcome)
}
