// Package expand resolves manifest destination strings into absolute
// paths. Expansion is pure: the environment is an injected lookup, not
// the process environment, so tests are deterministic.
package expand

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/linkmap/pkg/errors"
)

// Env supplies variable values and the home directory for expansion.
type Env interface {
	// Lookup returns the value for a variable reference and whether it
	// is defined.
	Lookup(key string) (string, bool)

	// Home returns the user's home directory.
	Home() string
}

// OSEnv adapts the process environment. It is the production Env,
// constructed once at the CLI boundary.
type OSEnv struct {
	home string
}

// NewOSEnv builds an OSEnv, resolving the home directory from $HOME or
// the OS account database.
func NewOSEnv() OSEnv {
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return OSEnv{home: home}
}

func (e OSEnv) Lookup(key string) (string, bool) { return os.LookupEnv(key) }
func (e OSEnv) Home() string                     { return e.home }

// MapEnv is a fixed-map Env for tests.
type MapEnv struct {
	Vars    map[string]string
	HomeDir string
}

func (e MapEnv) Lookup(key string) (string, bool) {
	v, ok := e.Vars[key]
	return v, ok
}

func (e MapEnv) Home() string { return e.HomeDir }

// Expand resolves $VAR and ${VAR} references and a leading ~ in raw,
// then normalizes the result to an absolute path. A path that is still
// relative after expansion is joined to the home directory.
//
// An undefined variable fails with code UNRESOLVED_VAR; the caller
// scopes that failure to the single entry.
func Expand(raw string, env Env) (string, error) {
	s := raw

	if s == "~" || strings.HasPrefix(s, "~/") {
		s = env.Home() + s[1:]
	}

	var missing string
	s = os.Expand(s, func(key string) string {
		if v, ok := env.Lookup(key); ok {
			return v
		}
		if missing == "" {
			missing = key
		}
		return ""
	})
	if missing != "" {
		return "", errors.Newf(errors.ErrUnresolvedVar, "unresolved variable: %s", missing).
			WithDetail("raw", raw)
	}

	if !filepath.IsAbs(s) {
		s = filepath.Join(env.Home(), s)
	}

	return filepath.Clean(s), nil
}
