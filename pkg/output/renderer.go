// Package output renders run summaries for the terminal (lipgloss
// styled text) or for scripting (JSON, YAML). Rendering is the only
// place outcomes become human text; the core packages stay
// presentation-free.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/linkmap/pkg/errors"
	"github.com/arthur-debert/linkmap/pkg/report"
	"github.com/arthur-debert/linkmap/pkg/types"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	case "":
		return FormatText, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown output format: %s", s)
}

// Renderer writes run summaries to a writer.
type Renderer struct {
	w       io.Writer
	format  Format
	noColor bool
	verbose bool
}

// NewRenderer creates a renderer. With noColor false, styling is still
// disabled automatically when w is not a terminal or NO_COLOR is set.
func NewRenderer(w io.Writer, format Format, noColor, verbose bool) *Renderer {
	if !noColor {
		noColor = !ColorEnabled(w)
	}
	return &Renderer{w: w, format: format, noColor: noColor, verbose: verbose}
}

// Render writes the summary in the renderer's format.
func (r *Renderer) Render(s report.Summary) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(s)
	case FormatYAML:
		return r.renderYAML(s)
	default:
		return r.renderText(s)
	}
}

func (r *Renderer) renderText(s report.Summary) error {
	for _, res := range s.Results {
		// Quiet mode only reports things worth acting on; -v shows
		// every entry.
		if !r.verbose && !interesting(res) {
			continue
		}
		if _, err := fmt.Fprintln(r.w, r.resultLine(res)); err != nil {
			return err
		}
	}

	line := fmt.Sprintf("%d operation(s) performed.", s.Changed)
	if s.DryRun {
		line = fmt.Sprintf("%d operation(s) previewed, none performed.", s.Counts[types.OutcomeDryRun])
	}
	if s.Conflicts > 0 {
		line += fmt.Sprintf(" %d conflict(s).", s.Conflicts)
	}
	if s.Errors > 0 {
		line += fmt.Sprintf(" %d error(s).", s.Errors)
	}
	_, err := fmt.Fprintln(r.w, r.style(summaryStyle, line))
	return err
}

// interesting reports whether a result shows up without -v.
func interesting(res types.Result) bool {
	switch res.Outcome {
	case types.OutcomeAlreadyLinked, types.OutcomeRemovalSkipped:
		return false
	}
	return true
}

func (r *Renderer) resultLine(res types.Result) string {
	label := r.style(outcomeStyle(res.Outcome), fmt.Sprintf("%-16s", outcomeLabel(res)))

	switch {
	case res.Outcome == types.OutcomeParseError:
		return fmt.Sprintf("%s %v", label, res.Err)
	case res.Outcome == types.OutcomeError:
		if res.Entry != nil {
			return fmt.Sprintf("%s %s: %v", label, res.Entry.Source, res.Err)
		}
		return fmt.Sprintf("%s %v", label, res.Err)
	case res.Entry != nil:
		return fmt.Sprintf("%s %s %s %s",
			label,
			r.style(pathStyle, res.Entry.Source),
			r.style(mutedStyle, "->"),
			r.style(pathStyle, res.Target))
	default:
		return label
	}
}

func (r *Renderer) style(st lipgloss.Style, s string) string {
	if r.noColor {
		return s
	}
	return st.Render(s)
}

// Serialized documents for json/yaml output. Outcome and action values
// are the stable strings from pkg/types.
type reportDoc struct {
	Operation string      `json:"operation" yaml:"operation"`
	Manifest  string      `json:"manifest" yaml:"manifest"`
	DryRun    bool        `json:"dry_run" yaml:"dry_run"`
	Success   bool        `json:"success" yaml:"success"`
	Changed   int         `json:"changed" yaml:"changed"`
	Results   []resultDoc `json:"results" yaml:"results"`
}

type resultDoc struct {
	Line    int    `json:"line" yaml:"line"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Target  string `json:"target,omitempty" yaml:"target,omitempty"`
	Outcome string `json:"outcome" yaml:"outcome"`
	Action  string `json:"action,omitempty" yaml:"action,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func buildDoc(s report.Summary) reportDoc {
	doc := reportDoc{
		Operation: string(s.Operation),
		Manifest:  s.Manifest,
		DryRun:    s.DryRun,
		Success:   !s.Failed(),
		Changed:   s.Changed,
		Results:   make([]resultDoc, 0, len(s.Results)),
	}
	for _, res := range s.Results {
		rd := resultDoc{
			Line:    res.Line,
			Target:  res.Target,
			Outcome: string(res.Outcome),
		}
		if res.Entry != nil {
			rd.Source = res.Entry.Source
		}
		if res.Action != types.ActionNone {
			rd.Action = string(res.Action)
		}
		if res.Err != nil {
			rd.Error = res.Err.Error()
		}
		doc.Results = append(doc.Results, rd)
	}
	return doc
}

func (r *Renderer) renderJSON(s report.Summary) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildDoc(s))
}

func (r *Renderer) renderYAML(s report.Summary) error {
	enc := yaml.NewEncoder(r.w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(buildDoc(s))
}
