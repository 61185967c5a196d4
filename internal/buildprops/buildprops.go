// Package buildprops reads and writes the project's declared version
// pair: which runtime and which tool version the build wants. The pair
// lives in a small YAML file of flat string keys, created interactively
// on first use.
package buildprops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/isabella232/sbt-zero-seven/internal/boot"
	"gopkg.in/yaml.v3"
)

// The two required keys. Both must hold a non-blank value before the
// launcher can proceed.
const (
	KeyRuntimeVersion = "scala.version"
	KeyToolVersion    = "sbt.version"
)

// ErrMissing is returned when a required version is absent and the user
// declined to supply one.
var ErrMissing = errors.New("required version properties not set")

// Prompter supplies interactive answers. ui.Console implements it;
// tests script it.
type Prompter interface {
	Ask(question string) string
}

// KeyFor maps an artifact kind to its properties key.
func KeyFor(k boot.Kind) string {
	if k == boot.KindTool {
		return KeyToolVersion
	}
	return KeyRuntimeVersion
}

// Store reads and persists the version pair for one project.
type Store struct {
	Path         string
	RuntimeLabel string // e.g. "Scala"
	ToolLabel    string // e.g. "sbt"
	Prompt       Prompter
}

// Read returns the declared version pair, prompting for (and
// persisting) any value that is absent or blank. The file itself is
// created lazily on first prompt.
func (s *Store) Read() (boot.VersionPair, error) {
	props, err := s.load()
	if err != nil {
		return boot.VersionPair{}, err
	}

	changed := false
	for _, key := range []string{KeyRuntimeVersion, KeyToolVersion} {
		if strings.TrimSpace(props[key]) != "" {
			continue
		}
		answer := strings.TrimSpace(s.Prompt.Ask(s.question(key)))
		if answer == "" {
			return boot.VersionPair{}, fmt.Errorf("%s: %w", key, ErrMissing)
		}
		props[key] = answer
		changed = true
	}

	if changed {
		if err := s.save(props); err != nil {
			return boot.VersionPair{}, err
		}
	}
	return pairFrom(props), nil
}

// ForcePrompt re-asks only the given keys, keeps the stored values for
// everything else, persists the merged result and returns it. A blank
// answer for a re-asked key counts as a decline.
func (s *Store) ForcePrompt(keys []string) (boot.VersionPair, error) {
	props, err := s.load()
	if err != nil {
		return boot.VersionPair{}, err
	}

	for _, key := range keys {
		answer := strings.TrimSpace(s.Prompt.Ask(s.question(key)))
		if answer == "" {
			return boot.VersionPair{}, fmt.Errorf("%s: %w", key, ErrMissing)
		}
		props[key] = answer
	}

	if err := s.save(props); err != nil {
		return boot.VersionPair{}, err
	}
	return pairFrom(props), nil
}

func (s *Store) question(key string) string {
	switch key {
	case KeyToolVersion:
		return s.ToolLabel + " version"
	default:
		return s.RuntimeLabel + " version"
	}
}

// load reads the properties file into a flat map. A missing file is an
// empty map, not an error.
func (s *Store) load() (map[string]string, error) {
	props := make(map[string]string)
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return props, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	if err := yaml.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path, err)
	}
	return props, nil
}

// save persists the properties atomically (write-to-temp-and-rename).
func (s *Store) save(props map[string]string) error {
	data, err := yaml.Marshal(props)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	return os.Rename(tmp, s.Path)
}

func pairFrom(props map[string]string) boot.VersionPair {
	return boot.VersionPair{
		RuntimeVersion: strings.TrimSpace(props[KeyRuntimeVersion]),
		ToolVersion:    strings.TrimSpace(props[KeyToolVersion]),
	}
}
