// Package userdata resolves the per-user filesystem conventions: where
// packages are installed by default, where the index cache lives, and the
// environment overrides for both.
package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillset-labs/skillset/internal/branding"
)

// Directory and file name constants under the home dot-directory.
const (
	InstalledDir  = "installed"
	CacheFileName = "index-cache.json"
	RulesFileName = "rules.yaml"
)

// HomeRoot returns ~/.skillset (or the branded equivalent). It checks the
// SKILLSET_HOME environment variable first.
func HomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// InstalledRoot returns the default installation destination. It checks
// the SKILLSET_INSTALLED environment variable first.
func InstalledRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("INSTALLED")); v != "" {
		return v, nil
	}
	root, err := HomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, InstalledDir), nil
}

// CacheFile returns the path of the index cache file.
func CacheFile() (string, error) {
	root, err := HomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, CacheFileName), nil
}

// RulesFile returns the path of the optional user rules file. The file may
// not exist; callers fall back to the embedded defaults.
func RulesFile() (string, error) {
	root, err := HomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, RulesFileName), nil
}

// EnsureHome creates the home dot-directory if it does not exist.
func EnsureHome() error {
	root, err := HomeRoot()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", root, err)
	}
	return nil
}
