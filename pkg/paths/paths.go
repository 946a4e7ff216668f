// Package paths centralizes filesystem locations: manifest discovery
// and the XDG directories linkmap uses for config, state, and logs.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/linkmap/pkg/errors"
)

// DefaultManifestName is the manifest filename looked up when no
// explicit --file is given.
const DefaultManifestName = ".linkmap"

// Paths resolves linkmap's well-known locations.
type Paths struct {
	manifestName string
}

// New creates a Paths instance. An empty manifestName selects
// DefaultManifestName.
func New(manifestName string) *Paths {
	if manifestName == "" {
		manifestName = DefaultManifestName
	}
	return &Paths{manifestName: manifestName}
}

// ManifestName returns the configured manifest filename.
func (p *Paths) ManifestName() string {
	return p.manifestName
}

// ConfigDir returns the user-level configuration directory.
func (p *Paths) ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "linkmap")
}

// ConfigFile returns the user-level configuration file path.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir(), "config.toml")
}

// StateDir returns the state directory (log files live here).
func (p *Paths) StateDir() string {
	return filepath.Join(xdg.StateHome, "linkmap")
}

// FindManifest locates the manifest by walking up from startDir to the
// filesystem root, returning the first match. Walking up lets linkmap
// run from any subdirectory of a project, like version-control tools
// locate their metadata.
func (p *Paths) FindManifest(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrManifestNotFound,
			"cannot resolve directory %s", startDir)
	}

	for {
		candidate := filepath.Join(dir, p.manifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Newf(errors.ErrManifestNotFound,
				"no %s found in %s or any parent directory", p.manifestName, startDir)
		}
		dir = parent
	}
}
