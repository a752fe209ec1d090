// Package settings stores user preferences in a JSON file.
//
// The file holds a single object. Two keys are always present after
// [Load]: "packagesDir", the directory searched for snippet packages, and
// "aliases", a map from short names to snippet names. Other keys are kept
// as-is and written back by [Settings.Save].
package settings

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/qosasa/qosasa/pkg"
)

// Setting keys.
const (
	KeyPackagesDir = "packagesDir"
	KeyAliases     = "aliases"
)

// FileName is the base name of the settings file in [pkg.ConfigDir].
const FileName = "settings.json"

var (
	ErrReadSettings  = pkg.NewError("cannot read settings")
	ErrWriteSettings = pkg.NewError("cannot save settings")
)

// DefaultPath returns the path of the settings file.
func DefaultPath() string { return filepath.Join(pkg.ConfigDir(), FileName) }

// DefaultPackagesDir returns the packages directory used when the settings
// file does not name one.
func DefaultPackagesDir() string { return filepath.Join(pkg.ConfigDir(), "packages") }

// Settings is a JSON-backed key/value store. It is safe for concurrent use.
type Settings struct {
	path string

	mu   sync.RWMutex
	data map[string]any
}

// Load reads the settings file at path. A missing or empty file yields the
// defaults.
func Load(path string) (*Settings, error) {
	s := New(path)

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// New returns settings holding only the defaults, backed by path. Nothing
// is read until [Settings.Load].
func New(path string) *Settings {
	data := make(map[string]any)
	fillMissing(data)

	return &Settings{path: path, data: data}
}

// Path returns the file backing s.
func (s *Settings) Path() string { return s.path }

// Load discards in-memory changes and rereads the settings file.
func (s *Settings) Load() error {
	data := make(map[string]any)

	b, err := os.ReadFile(s.path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return ErrReadSettings.Wrap(err).With(slog.String("path", s.path))
	case len(bytes.TrimSpace(b)) > 0:
		if err := json.Unmarshal(b, &data); err != nil {
			return ErrReadSettings.
				Wrap(errors.New("error parsing JSON file: " + s.path)).
				With(slog.String("path", s.path), slog.String("cause", err.Error()))
		}

		if data == nil {
			data = make(map[string]any)
		}
	}

	fillMissing(data)

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()

	return nil
}

func fillMissing(data map[string]any) {
	if _, ok := data[KeyPackagesDir]; !ok {
		data[KeyPackagesDir] = DefaultPackagesDir()
	}

	if _, ok := data[KeyAliases].(map[string]any); !ok {
		data[KeyAliases] = map[string]any{}
	}
}

// Save writes the settings to the file, creating its directory if needed.
func (s *Settings) Save() error {
	s.mu.RLock()
	b, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()

	if err != nil {
		return ErrWriteSettings.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return ErrWriteSettings.Wrap(err).With(slog.String("path", s.path))
	}

	if err := os.WriteFile(s.path, append(b, '\n'), 0o644); err != nil {
		return ErrWriteSettings.Wrap(err).With(slog.String("path", s.path))
	}

	return nil
}

// Get returns the value of setting name.
func (s *Settings) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[name]

	return v, ok && v != nil
}

// Has reports whether setting name exists and is not null.
func (s *Settings) Has(name string) bool {
	_, ok := s.Get(name)

	return ok
}

// Set stores v under name.
func (s *Settings) Set(name string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = v
}

// All returns a copy of every setting.
func (s *Settings) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.data)
}

// PackagesDir returns the packages directory with a leading "~" expanded.
func (s *Settings) PackagesDir() string {
	v, _ := s.Get(KeyPackagesDir)

	dir, ok := v.(string)
	if !ok || dir == "" {
		return DefaultPackagesDir()
	}

	return pkg.ExpandHome(dir)
}

// Aliases returns a copy of the alias table. Non-string targets are skipped.
func (s *Settings) Aliases() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, _ := s.data[KeyAliases].(map[string]any)
	out := make(map[string]string, len(raw))

	for k, v := range raw {
		if t, ok := v.(string); ok {
			out[k] = t
		}
	}

	return out
}

// SetAlias maps name to target. An empty target removes the alias.
func (s *Settings) SetAlias(name, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, _ := s.data[KeyAliases].(map[string]any)
	aliases := maps.Clone(raw)

	if aliases == nil {
		aliases = make(map[string]any)
	}

	if target == "" {
		delete(aliases, name)
	} else {
		aliases[name] = target
	}

	s.data[KeyAliases] = aliases
}
