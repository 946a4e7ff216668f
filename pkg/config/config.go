// Package config loads linkmap's layered configuration: embedded
// defaults, then the user config file, then the per-project config,
// then LINKMAP_* environment variables, with later layers winning.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	koanftoml "github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/linkmap/pkg/errors"
	"github.com/arthur-debert/linkmap/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// ProjectConfigName is the per-project config filename, looked up in
// the manifest's directory.
const ProjectConfigName = ".linkmap.toml"

// EnvPrefix is the prefix for environment overrides, e.g.
// LINKMAP_OUTPUT_FORMAT=json.
const EnvPrefix = "LINKMAP_"

// Config holds the effective configuration after all layers merge.
type Config struct {
	Editor   string         `koanf:"editor" toml:"editor"`
	Manifest ManifestConfig `koanf:"manifest" toml:"manifest"`
	Link     LinkConfig     `koanf:"link" toml:"link"`
	Output   OutputConfig   `koanf:"output" toml:"output"`
}

// ManifestConfig controls manifest lookup.
type ManifestConfig struct {
	// Name is the manifest filename discovered when no --file is given.
	Name string `koanf:"name" toml:"name"`
}

// LinkConfig holds default reconciliation flags.
type LinkConfig struct {
	Overwrite bool `koanf:"overwrite" toml:"overwrite"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	// Format is one of text, json, yaml.
	Format string `koanf:"format" toml:"format"`
	Color  bool   `koanf:"color" toml:"color"`
}

// rawBytesProvider feeds embedded bytes into koanf.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// LoadOptions selects the config sources. Zero values pick the
// defaults; tests point UserFile/ProjectDir at fixtures.
type LoadOptions struct {
	// UserFile overrides the user config location. Empty means the XDG
	// default.
	UserFile string

	// ProjectDir is the directory searched for ProjectConfigName.
	// Empty skips the project layer.
	ProjectDir string
}

// Load builds the effective configuration.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, koanftoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	userFile := opts.UserFile
	if userFile == "" {
		userFile = paths.New("").ConfigFile()
	}
	if _, err := os.Stat(userFile); err == nil {
		if err := k.Load(file.Provider(userFile), koanftoml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad,
				"failed to load user config from %s", userFile)
		}
	}

	if opts.ProjectDir != "" {
		projectFile := filepath.Join(opts.ProjectDir, ProjectConfigName)
		if _, err := os.Stat(projectFile); err == nil {
			if err := k.Load(file.Provider(projectFile), koanftoml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad,
					"failed to load project config from %s", projectFile)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// DumpTOML renders the effective configuration as TOML, for the
// `linkmap config` command.
func (c *Config) DumpTOML() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return out, nil
}
