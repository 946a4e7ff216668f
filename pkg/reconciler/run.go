package reconciler

import (
	"github.com/arthur-debert/linkmap/pkg/errors"
	"github.com/arthur-debert/linkmap/pkg/expand"
	"github.com/arthur-debert/linkmap/pkg/logging"
	"github.com/arthur-debert/linkmap/pkg/manifest"
	"github.com/arthur-debert/linkmap/pkg/types"
)

// RunLink reconciles every entry of the manifest in link mode,
// sequentially and in declaration order.
func (r *Reconciler) RunLink(m *types.Manifest, opts types.Options) *types.RunReport {
	return r.run(m, types.OperationLink, nil, opts)
}

// RunUnlink reconciles every entry of the manifest in unlink mode.
func (r *Reconciler) RunUnlink(m *types.Manifest, opts types.Options) *types.RunReport {
	return r.run(m, types.OperationUnlink, nil, opts)
}

func (r *Reconciler) run(m *types.Manifest, op types.Operation, diags []types.Diagnostic, opts types.Options) *types.RunReport {
	logger := logging.GetLogger("reconciler")

	report := &types.RunReport{
		Operation: op,
		Manifest:  m.Path,
		DryRun:    opts.DryRun,
	}

	// Interleave parse diagnostics with entry results by line number so
	// the report reads in original manifest order.
	di := 0
	emit := func(upToLine int) {
		for di < len(diags) && (upToLine < 0 || diags[di].Line < upToLine) {
			d := diags[di]
			report.Add(types.Result{
				Outcome: types.OutcomeParseError,
				Action:  types.ActionNone,
				Err:     errors.Newf(errors.ErrManifestParse, "line %d: %s", d.Line, d.Message),
				Line:    d.Line,
			})
			di++
		}
	}

	for i := range m.Entries {
		entry := &m.Entries[i]
		emit(entry.Line)

		var res types.Result
		switch op {
		case types.OperationUnlink:
			res = r.Unlink(entry, opts)
		default:
			res = r.Link(entry, opts)
		}
		report.Add(res)
	}
	emit(-1)

	logger.Info().
		Str("operation", string(op)).
		Int("entries", len(m.Entries)).
		Int("results", len(report.Results)).
		Bool("dryRun", opts.DryRun).
		Msg("run complete")

	return report
}

// RunLinkFile loads the manifest at path and reconciles it in link
// mode. Parse diagnostics surface as parse-error results inside the
// report; the error return is non-nil only when the manifest itself
// cannot be read.
func RunLinkFile(fs types.FS, env expand.Env, path string, opts types.Options) (*types.RunReport, error) {
	return runFile(fs, env, path, types.OperationLink, opts)
}

// RunUnlinkFile is RunLinkFile for unlink mode.
func RunUnlinkFile(fs types.FS, env expand.Env, path string, opts types.Options) (*types.RunReport, error) {
	return runFile(fs, env, path, types.OperationUnlink, opts)
}

func runFile(fs types.FS, env expand.Env, path string, op types.Operation, opts types.Options) (*types.RunReport, error) {
	m, diags, err := manifest.Load(fs, path)
	if err != nil {
		return nil, err
	}
	return New(fs, env).run(m, op, diags, opts), nil
}
