// Package manifest parses linkmap manifest files: a line-oriented
// format mapping relative sources to destination paths.
//
// Format:
//
//	# comment
//	<source> = <destination>   # optional trailing comment
//
// Sources are relative to the manifest's directory. Destinations may
// contain $VAR/${VAR} references and ~, and may end with "/" to place
// the link inside that directory under the source's base name.
package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/linkmap/pkg/errors"
	"github.com/arthur-debert/linkmap/pkg/logging"
	"github.com/arthur-debert/linkmap/pkg/types"
)

// CommentMarker starts comment lines and inline comments.
const CommentMarker = "#"

// Parse reads manifest content and returns the ordered entries plus a
// diagnostic per malformed line. Malformed lines never abort parsing.
func Parse(content []byte, baseDir string) (*types.Manifest, []types.Diagnostic) {
	logger := logging.GetLogger("manifest")

	m := &types.Manifest{BaseDir: baseDir}
	var diags []types.Diagnostic

	lines := strings.Split(string(content), "\n")
	for i, rawLine := range lines {
		lineNum := i + 1

		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, CommentMarker) {
			continue
		}

		line = stripInlineComment(line)

		sourceRaw, destRaw, found := strings.Cut(line, "=")
		if !found {
			diags = append(diags, types.Diagnostic{
				Line:    lineNum,
				Message: fmt.Sprintf("missing %q separator", "="),
			})
			continue
		}

		source := strings.TrimSpace(sourceRaw)
		dest := strings.TrimSpace(destRaw)

		if source == "" {
			diags = append(diags, types.Diagnostic{Line: lineNum, Message: "empty source"})
			continue
		}
		if dest == "" {
			diags = append(diags, types.Diagnostic{Line: lineNum, Message: "empty destination"})
			continue
		}

		entry := types.LinkEntry{
			Source:     source,
			SourcePath: filepath.Join(baseDir, source),
			DestRaw:    dest,
			Line:       lineNum,
		}
		m.Entries = append(m.Entries, entry)

		logger.Trace().
			Int("line", lineNum).
			Str("source", entry.SourcePath).
			Str("dest", entry.DestRaw).
			Msg("parsed entry")
	}

	logger.Debug().
		Int("entries", len(m.Entries)).
		Int("diagnostics", len(diags)).
		Msg("parsed manifest")

	return m, diags
}

// Load reads and parses the manifest at path. The base directory for
// sources is the manifest's directory. Only an unreadable file is a
// fatal error; malformed lines come back as diagnostics.
func Load(fs types.FS, path string) (*types.Manifest, []types.Diagnostic, error) {
	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrManifestUnreadable,
			"cannot read manifest %s", path)
	}

	m, diags := Parse(content, filepath.Dir(path))
	m.Path = path
	return m, diags, nil
}

// stripInlineComment removes a trailing comment from an entry line. The
// marker only starts a comment when preceded by whitespace, so paths
// containing "#" survive intact.
func stripInlineComment(line string) string {
	for idx := strings.Index(line, CommentMarker); idx > 0; {
		prev := line[idx-1]
		if prev == ' ' || prev == '\t' {
			return strings.TrimSpace(line[:idx])
		}
		next := strings.Index(line[idx+1:], CommentMarker)
		if next < 0 {
			break
		}
		idx += 1 + next
	}
	return line
}
