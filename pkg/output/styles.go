package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/linkmap/pkg/types"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

// outcomeStyle maps an outcome to its display style.
func outcomeStyle(o types.Outcome) lipgloss.Style {
	switch o {
	case types.OutcomeCreated, types.OutcomeOverwritten, types.OutcomeRemoved:
		return successStyle
	case types.OutcomeError, types.OutcomeParseError:
		return errorStyle
	case types.OutcomeSkippedConflict, types.OutcomeSkippedMissingSource:
		return warningStyle
	case types.OutcomeDryRun:
		return previewStyle
	default:
		return mutedStyle
	}
}

// outcomeLabel is the human-readable label for a result line.
func outcomeLabel(res types.Result) string {
	switch res.Outcome {
	case types.OutcomeCreated:
		return "created"
	case types.OutcomeAlreadyLinked:
		return "up to date"
	case types.OutcomeOverwritten:
		return "overwritten"
	case types.OutcomeSkippedConflict:
		return "conflict"
	case types.OutcomeSkippedMissingSource:
		return "missing source"
	case types.OutcomeRemoved:
		return "removed"
	case types.OutcomeRemovalSkipped:
		return "kept"
	case types.OutcomeDryRun:
		switch res.Action {
		case types.ActionOverwrite:
			return "would overwrite"
		case types.ActionRemove:
			return "would remove"
		default:
			return "would create"
		}
	case types.OutcomeParseError:
		return "parse error"
	default:
		return "error"
	}
}

// ColorEnabled reports whether styled output should be produced for w,
// honoring NO_COLOR and TTY detection.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if f, ok := w.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return false
		}
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
