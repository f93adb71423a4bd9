package userdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInstalledRootEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SKILLSET_INSTALLED", dir)

	root, err := InstalledRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != dir {
		t.Errorf("expected env override %q, got %q", dir, root)
	}
}

func TestHomeRootDefault(t *testing.T) {
	t.Setenv("SKILLSET_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}

	root, err := HomeRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(root, home) {
		t.Errorf("expected root under %q, got %q", home, root)
	}
	if filepath.Base(root) != ".skillset" {
		t.Errorf("expected .skillset dot-directory, got %q", root)
	}
}

func TestHomeRootEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SKILLSET_HOME", dir)

	root, err := HomeRoot()
	if err != nil {
		t.Fatal(err)
	}
	if root != dir {
		t.Errorf("expected %q, got %q", dir, root)
	}

	cache, err := CacheFile()
	if err != nil {
		t.Fatal(err)
	}
	if cache != filepath.Join(dir, CacheFileName) {
		t.Errorf("expected cache under override, got %q", cache)
	}
}
