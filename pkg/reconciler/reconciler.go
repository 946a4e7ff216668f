// Package reconciler compares each manifest entry against the actual
// filesystem state and applies, or previews, the minimal action to
// converge: create, overwrite, remove, or nothing.
//
// Entries are processed sequentially in manifest order and are
// independent of each other; one entry's failure never aborts the rest.
// No locking is performed against concurrent invocations: overlapping
// destinations across simultaneous runs have no ordering guarantee.
package reconciler

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/linkmap/pkg/errors"
	"github.com/arthur-debert/linkmap/pkg/expand"
	"github.com/arthur-debert/linkmap/pkg/logging"
	"github.com/arthur-debert/linkmap/pkg/types"
)

// Reconciler applies manifest entries to a filesystem.
type Reconciler struct {
	fs  types.FS
	env expand.Env
}

// New creates a Reconciler operating on fs, expanding destinations
// through env.
func New(fs types.FS, env expand.Env) *Reconciler {
	return &Reconciler{fs: fs, env: env}
}

// resolve expands an entry's destination and returns the absolute
// source path and final link path.
func (r *Reconciler) resolve(entry *types.LinkEntry) (source, target string, err error) {
	dest, err := expand.Expand(entry.DestRaw, r.env)
	if err != nil {
		return "", "", err
	}

	source = entry.SourcePath
	if !filepath.IsAbs(source) {
		if abs, absErr := filepath.Abs(source); absErr == nil {
			source = abs
		}
	}

	return source, entry.ResolveTarget(dest), nil
}

// Link reconciles one entry in link mode.
//
// Missing sources and conflicting destinations are skips, not errors.
// Overwrite is required to replace anything already present at the
// target that is not our own symlink. Force never changes the decision
// here; it only suppresses the caller's confirmation prompt.
func (r *Reconciler) Link(entry *types.LinkEntry, opts types.Options) types.Result {
	logger := logging.GetLogger("reconciler")

	source, target, err := r.resolve(entry)
	if err != nil {
		return errorResult(entry, "", err)
	}

	logger.Debug().
		Str("source", source).
		Str("target", target).
		Int("line", entry.Line).
		Msg("reconciling entry")

	if _, err := r.fs.Lstat(source); err != nil {
		if os.IsNotExist(err) {
			return result(entry, types.OutcomeSkippedMissingSource, target)
		}
		return errorResult(entry, target, errors.Wrapf(err, errors.ErrSourceMissing,
			"cannot stat source %s", source))
	}

	info, err := r.fs.Lstat(target)
	switch {
	case err != nil && os.IsNotExist(err):
		return r.create(entry, source, target, opts)
	case err != nil:
		return errorResult(entry, target, errors.Wrapf(err, errors.ErrSymlinkCreate,
			"cannot stat target %s", target))
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if current, err := r.fs.Readlink(target); err == nil && r.pointsAt(current, source, target) {
			return result(entry, types.OutcomeAlreadyLinked, target)
		}
	}

	// Something else occupies the target: another symlink, a regular
	// file, or a directory.
	if !opts.Overwrite {
		return result(entry, types.OutcomeSkippedConflict, target)
	}
	return r.overwrite(entry, source, target, opts)
}

// Unlink reconciles one entry in unlink mode. Ownership is verified
// first: the target is removed only when it is a symlink pointing at
// this entry's resolved source. Anything else at the destination is
// left untouched.
func (r *Reconciler) Unlink(entry *types.LinkEntry, opts types.Options) types.Result {
	logger := logging.GetLogger("reconciler")

	source, target, err := r.resolve(entry)
	if err != nil {
		return errorResult(entry, "", err)
	}

	info, err := r.fs.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return result(entry, types.OutcomeRemovalSkipped, target)
		}
		return errorResult(entry, target, errors.Wrapf(err, errors.ErrSymlinkRemove,
			"cannot stat target %s", target))
	}

	if info.Mode()&os.ModeSymlink == 0 {
		logger.Warn().
			Str("target", target).
			Msg("target is not a symlink, not removing")
		return result(entry, types.OutcomeRemovalSkipped, target)
	}

	current, err := r.fs.Readlink(target)
	if err != nil {
		return errorResult(entry, target, errors.Wrapf(err, errors.ErrSymlinkRemove,
			"cannot read symlink %s", target))
	}
	if !r.pointsAt(current, source, target) {
		logger.Warn().
			Str("target", target).
			Str("expected", source).
			Str("actual", current).
			Msg("symlink points elsewhere, not removing")
		return result(entry, types.OutcomeRemovalSkipped, target)
	}

	if opts.DryRun {
		return preview(entry, types.ActionRemove, target)
	}
	if err := r.fs.Remove(target); err != nil {
		return errorResult(entry, target, errors.Wrapf(err, errors.ErrSymlinkRemove,
			"cannot remove symlink %s", target))
	}

	logger.Info().Str("target", target).Str("source", source).Msg("removed symlink")
	return actionResult(entry, types.OutcomeRemoved, types.ActionRemove, target)
}

// create handles an absent target.
func (r *Reconciler) create(entry *types.LinkEntry, source, target string, opts types.Options) types.Result {
	if opts.DryRun {
		return preview(entry, types.ActionCreate, target)
	}

	if err := r.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errorResult(entry, target, errors.Wrapf(err, errors.ErrDirCreate,
			"cannot create parent directory for %s", target))
	}
	if err := r.fs.Symlink(source, target); err != nil {
		return errorResult(entry, target, errors.Wrapf(err, errors.ErrSymlinkCreate,
			"cannot create symlink %s", target))
	}

	logger := logging.GetLogger("reconciler")
	logger.Info().
		Str("source", source).
		Str("target", target).
		Msg("created symlink")
	return actionResult(entry, types.OutcomeCreated, types.ActionCreate, target)
}

// overwrite replaces whatever occupies the target with our symlink.
func (r *Reconciler) overwrite(entry *types.LinkEntry, source, target string, opts types.Options) types.Result {
	if opts.DryRun {
		return preview(entry, types.ActionOverwrite, target)
	}

	if err := r.fs.RemoveAll(target); err != nil {
		return errorResult(entry, target, errors.Wrapf(err, errors.ErrSymlinkCreate,
			"cannot remove existing %s", target))
	}
	if err := r.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errorResult(entry, target, errors.Wrapf(err, errors.ErrDirCreate,
			"cannot create parent directory for %s", target))
	}
	if err := r.fs.Symlink(source, target); err != nil {
		return errorResult(entry, target, errors.Wrapf(err, errors.ErrSymlinkCreate,
			"cannot create symlink %s", target))
	}

	logger := logging.GetLogger("reconciler")
	logger.Info().
		Str("source", source).
		Str("target", target).
		Msg("overwrote existing path with symlink")
	return actionResult(entry, types.OutcomeOverwritten, types.ActionOverwrite, target)
}

// pointsAt reports whether a symlink's stored target refers to source.
// Relative link targets are resolved against the link's directory
// before comparing, so relative and absolute forms cannot produce a
// false ownership match.
func (r *Reconciler) pointsAt(linkTarget, source, link string) bool {
	resolved := linkTarget
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(link), resolved)
	}
	return filepath.Clean(resolved) == filepath.Clean(source)
}

func result(entry *types.LinkEntry, outcome types.Outcome, target string) types.Result {
	return types.Result{
		Entry:   entry,
		Outcome: outcome,
		Action:  types.ActionNone,
		Target:  target,
		Line:    entry.Line,
	}
}

func actionResult(entry *types.LinkEntry, outcome types.Outcome, action types.Action, target string) types.Result {
	return types.Result{
		Entry:   entry,
		Outcome: outcome,
		Action:  action,
		Target:  target,
		Line:    entry.Line,
	}
}

func preview(entry *types.LinkEntry, action types.Action, target string) types.Result {
	return types.Result{
		Entry:   entry,
		Outcome: types.OutcomeDryRun,
		Action:  action,
		Target:  target,
		Line:    entry.Line,
	}
}

func errorResult(entry *types.LinkEntry, target string, err error) types.Result {
	return types.Result{
		Entry:   entry,
		Outcome: types.OutcomeError,
		Action:  types.ActionNone,
		Target:  target,
		Err:     err,
		Line:    entry.Line,
	}
}
