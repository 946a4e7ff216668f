// Package report aggregates reconciliation results into the summary
// callers render and base exit codes on. Classification only: whether a
// conflict or error fails the process is the caller's policy.
package report

import "github.com/arthur-debert/linkmap/pkg/types"

// Summary condenses a RunReport: the ordered results plus counts.
type Summary struct {
	Operation types.Operation
	Manifest  string
	DryRun    bool

	Results []types.Result
	Counts  map[types.Outcome]int

	// Changed counts filesystem modifications (created, overwritten,
	// removed).
	Changed int

	// Errors counts error and parse-error outcomes.
	Errors int

	// Conflicts counts skipped-conflict outcomes.
	Conflicts int
}

// Summarize builds a Summary from a run report.
func Summarize(r *types.RunReport) Summary {
	s := Summary{
		Operation: r.Operation,
		Manifest:  r.Manifest,
		DryRun:    r.DryRun,
		Results:   r.Results,
		Counts:    make(map[types.Outcome]int, len(r.Results)),
	}

	for _, res := range r.Results {
		s.Counts[res.Outcome]++
		if res.Outcome.Changed() {
			s.Changed++
		}
		if res.Outcome.Failed() {
			s.Errors++
		}
		if res.Outcome == types.OutcomeSkippedConflict {
			s.Conflicts++
		}
	}

	return s
}

// Failed reports whether any entry produced an error outcome.
func (s Summary) Failed() bool {
	return s.Errors > 0
}

// FailedStrict additionally treats unresolved conflicts as failures,
// for callers that want skipped conflicts to fail the run.
func (s Summary) FailedStrict() bool {
	return s.Errors > 0 || s.Conflicts > 0
}
