package types

import (
	"path/filepath"
	"strings"
)

// LinkEntry is one source=destination declaration from a manifest.
type LinkEntry struct {
	// Source is the path as written, relative to the manifest's directory.
	Source string

	// SourcePath is Source joined to the manifest's directory. It is not
	// required to exist at parse time; the reconciler checks that.
	SourcePath string

	// DestRaw is the destination as written. It may contain $VAR/${VAR}
	// references and a leading ~, and may end with "/" to request
	// placement inside the directory under the source's base name.
	DestRaw string

	// Line is the 1-based manifest line number, for diagnostics.
	Line int
}

// ResolveTarget returns the final link path for this entry given the
// expanded destination. A DestRaw ending in "/" places basename(Source)
// inside that directory; otherwise the expanded destination is the link
// path itself.
func (e *LinkEntry) ResolveTarget(expandedDest string) string {
	if strings.HasSuffix(e.DestRaw, "/") {
		return filepath.Join(expandedDest, filepath.Base(e.Source))
	}
	return filepath.Clean(expandedDest)
}

// Diagnostic reports a malformed manifest line. It is non-fatal: the
// parser records it and keeps going.
type Diagnostic struct {
	Line    int
	Message string
}

// Manifest is the ordered set of link entries parsed from one file.
type Manifest struct {
	// Path is the manifest file location, empty when parsed from memory.
	Path string

	// BaseDir is the directory sources are resolved against, normally
	// the directory containing the manifest file.
	BaseDir string

	Entries []LinkEntry
}
