package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up in the working and
// home directories.
const DefaultConfigFile = ".llscan"

// XDGConfigFile is the configuration file name inside XDGConfigDir.
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned by LoadConfigFile for a missing file.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile parses the scan: and histogram: sections of a YAML file.
// Unknown keys are rejected so that a misspelt setting is not silently
// ignored.
func LoadConfigFile(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // the path comes from the user or the lookup below
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	defer f.Close()

	var cf File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cf, nil
}

// configCandidates lists the implicit lookup locations, first match wins:
// ./.llscan, ~/.llscan, then $XDG_CONFIG_HOME/llscan/config.yaml.
func configCandidates() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultConfigFile))
	}
	return append(paths, filepath.Join(XDGConfigDir(), XDGConfigFile))
}

// FindConfigFile returns the configuration file to load, or "" when there
// is none. An explicit configPath is returned only if it exists.
func FindConfigFile(configPath string) string {
	candidates := configCandidates()
	if configPath != "" {
		candidates = []string{configPath}
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
