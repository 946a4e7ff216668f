package types

// Operation identifies the run-level operation being performed.
type Operation string

const (
	OperationLink   Operation = "link"
	OperationUnlink Operation = "unlink"
)

// Action is the filesystem change a reconciliation step performs, or
// would perform under dry-run.
type Action string

const (
	ActionNone      Action = "none"
	ActionCreate    Action = "create"
	ActionOverwrite Action = "overwrite"
	ActionRemove    Action = "remove"
)

// Outcome classifies what happened to a single entry. The string values
// are stable: they appear in JSON/YAML output and are asserted in tests.
type Outcome string

const (
	// Link outcomes
	OutcomeCreated              Outcome = "created"
	OutcomeAlreadyLinked        Outcome = "already-linked"
	OutcomeOverwritten          Outcome = "overwritten"
	OutcomeSkippedConflict      Outcome = "skipped-conflict"
	OutcomeSkippedMissingSource Outcome = "skipped-missing-source"

	// Unlink outcomes
	OutcomeRemoved        Outcome = "removed"
	OutcomeRemovalSkipped Outcome = "removal-skipped"

	// Shared outcomes
	OutcomeDryRun     Outcome = "dry-run"
	OutcomeError      Outcome = "error"
	OutcomeParseError Outcome = "parse-error"
)

// Changed reports whether the outcome modified the filesystem.
func (o Outcome) Changed() bool {
	switch o {
	case OutcomeCreated, OutcomeOverwritten, OutcomeRemoved:
		return true
	}
	return false
}

// Failed reports whether the outcome counts as an error.
func (o Outcome) Failed() bool {
	return o == OutcomeError || o == OutcomeParseError
}

// Options carries the resolved flags the caller decided on before
// invoking the reconciler. Force does not alter reconciler behavior; it
// records that the caller skipped its confirmation step.
type Options struct {
	Overwrite bool
	Force     bool
	DryRun    bool
}

// Result is the immutable record of reconciling one entry.
type Result struct {
	// Entry is nil for parse-error results, which have no entry.
	Entry *LinkEntry

	Outcome Outcome

	// Action is the change performed, or previewed when Outcome is
	// OutcomeDryRun. ActionNone otherwise.
	Action Action

	// Target is the resolved link path, empty when resolution failed
	// before a target was known.
	Target string

	// Err carries the failure for OutcomeError/OutcomeParseError.
	Err error

	// Line is the manifest line the result refers to. Matches
	// Entry.Line when Entry is set.
	Line int
}

// RunReport is the ordered collection of per-entry results for one run.
type RunReport struct {
	Operation Operation
	Manifest  string
	DryRun    bool
	Results   []Result
}

// Add appends a result, preserving manifest order.
func (r *RunReport) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Success reports whether the run completed without any error outcome.
// Skips and conflicts do not fail a run; the caller can apply a stricter
// policy from the per-result data.
func (r *RunReport) Success() bool {
	for _, res := range r.Results {
		if res.Outcome.Failed() {
			return false
		}
	}
	return true
}
