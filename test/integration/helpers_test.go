//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skillset-labs/skillset/internal/index"
	"github.com/skillset-labs/skillset/internal/rules"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // SKILLSET_HOME — contains catalog/
	InstalledDir string // SKILLSET_INSTALLED — where packages get installed
	ProjectDir   string // a mock project directory
}

// setupTestEnv creates isolated temp directories and points the environment
// at them so every operation is sandboxed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:      t.TempDir(),
		InstalledDir: t.TempDir(),
		ProjectDir:   t.TempDir(),
	}

	t.Setenv("SKILLSET_HOME", env.HomeDir)
	t.Setenv("SKILLSET_INSTALLED", env.InstalledDir)

	return env
}

// setupCatalog creates a synthetic catalog inside homeDir and returns its root.
func setupCatalog(t *testing.T, homeDir string) string {
	t.Helper()

	catalogDir := filepath.Join(homeDir, "catalog")

	writePackage(t, catalogDir, "build-app", `---
name: build-app
description: Build and archive the application
version: "1.0.0"
workers:
  - builds
---

# Build app

See [the build notes](references/notes.md) and [shared config](../shared/config.md).
`)
	writeFile(t, filepath.Join(catalogDir, "build-app", "references", "notes.md"), "# Notes\n")

	writePackage(t, catalogDir, "review-prs", `---
name: review-prs
description: Review open pull requests
version: "1.0.0"
workers:
  - reviews
---

# Review PRs
`)

	writePackage(t, catalogDir, "conventions", `---
name: conventions
description: House coding conventions
always: true
---

# Conventions
`)

	writeFile(t, filepath.Join(catalogDir, "shared", "config.md"), "# Shared config\n")

	return catalogDir
}

// testRules returns an inclusion rule set matching the synthetic catalog.
func testRules() *rules.Set {
	return &rules.Set{
		Presets:      map[string][]string{"release": {"builds", "reviews"}},
		Implications: map[string][]string{"reviews": {"builds"}},
	}
}

func catalogSources(catalogDir string) []index.Source {
	return []index.Source{{Name: "catalog", Path: catalogDir}}
}

func writePackage(t *testing.T, catalogDir, id, skillMD string) {
	t.Helper()
	writeFile(t, filepath.Join(catalogDir, id, "SKILL.md"), skillMD)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected directory %s: %v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", path)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file %s: %v", path, err)
	}
	if info.IsDir() {
		t.Fatalf("%s is a directory, expected file", path)
	}
}
