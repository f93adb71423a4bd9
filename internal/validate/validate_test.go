package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/index"
	"github.com/skillset-labs/skillset/internal/install"
	"github.com/skillset-labs/skillset/internal/resolve"
	"github.com/skillset-labs/skillset/internal/rules"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func buildIndex(t *testing.T, root string) *index.Index {
	t.Helper()
	idx, collected := index.Build([]index.Source{{Name: "corpus", Path: root}}, index.BuildOptions{})
	if len(collected) != 0 {
		t.Fatalf("unexpected findings: %v", collected)
	}
	return idx
}

func countKind(fs []*findings.Finding, kind findings.Kind) int {
	n := 0
	for _, f := range fs {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

func TestCatalogCleanTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "apps", "SKILL.md"),
		"---\nname: apps\ndescription: Manage app records\nworkers:\n  - apps\n---\n\nSee [the checklist](references/checklist.md).\n")
	writeFile(t, filepath.Join(root, "apps", "references", "checklist.md"), "# checklist\n")

	set := &rules.Set{Presets: map[string][]string{"p": {"apps"}}}
	result := Catalog(buildIndex(t, root), set)
	if len(result) != 0 {
		t.Errorf("expected no findings, got %v", result)
	}
}

func TestCatalogBrokenReference(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "apps", "SKILL.md"),
		"---\nname: apps\ndescription: Manage app records\n---\n\nSee [missing](references/missing.md).\n")

	result := Catalog(buildIndex(t, root), nil)
	if countKind(result, findings.BrokenReference) != 1 {
		t.Errorf("expected one broken reference, got %v", result)
	}
}

func TestCatalogRefEscapingPackage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "apps", "SKILL.md"),
		"---\nname: apps\ndescription: Manage app records\n---\n\nSee [other](../builds/SKILL.md).\n")
	writeFile(t, filepath.Join(root, "builds", "SKILL.md"),
		"---\nname: builds\ndescription: Manage builds\n---\n\nbody\n")

	result := Catalog(buildIndex(t, root), nil)
	// The target exists, but it is neither in the package nor in shared.
	if countKind(result, findings.BrokenReference) != 1 {
		t.Errorf("expected escape finding, got %v", result)
	}
}

func TestCatalogSharedReferenceOK(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "shared", "api.md"), "# api\n")
	writeFile(t, filepath.Join(root, "apps", "SKILL.md"),
		"---\nname: apps\ndescription: Manage app records\n---\n\nSee [api](../shared/api.md).\n")

	result := Catalog(buildIndex(t, root), nil)
	if len(result) != 0 {
		t.Errorf("shared references should validate, got %v", result)
	}
}

func TestCatalogNameMismatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "apps", "SKILL.md"),
		"---\nname: app-records\ndescription: Manage app records\n---\n\nbody\n")

	result := Catalog(buildIndex(t, root), nil)
	if countKind(result, findings.NameMismatch) != 1 {
		t.Errorf("expected name mismatch, got %v", result)
	}
}

func TestCatalogUnusedGroupAndMissingPin(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "apps", "SKILL.md"),
		"---\nname: apps\ndescription: Manage app records\nworkers:\n  - apps\n---\n\nbody\n")

	set := &rules.Set{
		Presets:       map[string][]string{"p": {"apps", "ghost"}},
		AlwaysInclude: []string{"not-there"},
	}
	result := Catalog(buildIndex(t, root), set)
	if countKind(result, findings.UnusedGroup) != 2 {
		t.Errorf("expected findings for ghost group and missing pin, got %v", result)
	}
}

func TestCatalogAmbiguousTrigger(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "apps", "SKILL.md"),
		"---\nname: apps\ndescription: Manage the store\n---\n\nbody\n")
	writeFile(t, filepath.Join(root, "builds", "SKILL.md"),
		"---\nname: builds\ndescription: Manage the store\n---\n\nbody\n")

	result := Catalog(buildIndex(t, root), nil)
	if countKind(result, findings.AmbiguousTrigger) != 1 {
		t.Errorf("expected ambiguous trigger finding, got %v", result)
	}
}

func TestInstalledTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "shared", "api.md"), "# api\n")
	writeFile(t, filepath.Join(root, "connect", "builds", "SKILL.md"),
		"---\nname: builds\ndescription: Manage builds\n---\n\nSee [api](../../shared/api.md).\n")

	idx := buildIndex(t, root)
	dest := t.TempDir()
	sel := &resolve.Selection{Packages: idx.All()}
	if _, err := install.Install(sel, install.Options{Dest: dest, Mode: install.ModeCopy}); err != nil {
		t.Fatal(err)
	}

	// After installation the rewritten references must still resolve.
	result := Installed(dest)
	if len(result) != 0 {
		t.Errorf("installed tree should validate cleanly, got %v", result)
	}
}

func TestInstalledLinkModeBrokenReference(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "apps", "SKILL.md"),
		"---\nname: apps\ndescription: Manage app records\n---\n\nSee [missing](references/missing.md).\n")

	idx, _ := index.Build([]index.Source{{Name: "corpus", Path: root}}, index.BuildOptions{})
	dest := t.TempDir()
	sel := &resolve.Selection{Packages: idx.All()}
	if _, err := install.Install(sel, install.Options{Dest: dest, Mode: install.ModeLink}); err != nil {
		t.Fatal(err)
	}

	// Symlinked packages are checked too, not skipped by the scan.
	result := Installed(dest)
	if countKind(result, findings.BrokenReference) != 1 {
		t.Errorf("expected broken reference through the link, got %v", result)
	}
}

func TestInstalledLinkModeCleanTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "shared", "api.md"), "# api\n")
	writeFile(t, filepath.Join(root, "connect", "builds", "SKILL.md"),
		"---\nname: builds\ndescription: Manage builds\n---\n\nSee [api](../../shared/api.md).\n")
	writeFile(t, filepath.Join(root, "connect", "builds", "references", "guide.md"), "# guide\n")

	idx := buildIndex(t, root)
	dest := t.TempDir()
	sel := &resolve.Selection{Packages: idx.All()}
	if _, err := install.Install(sel, install.Options{Dest: dest, Mode: install.ModeLink}); err != nil {
		t.Fatal(err)
	}

	// Link mode keeps the original traversals; they resolve through the
	// symlinked package to the source's shared directory.
	result := Installed(dest)
	if len(result) != 0 {
		t.Errorf("linked tree should validate cleanly, got %v", result)
	}
}

func TestInstalledDanglingLink(t *testing.T) {
	dest := t.TempDir()
	if err := os.Symlink(filepath.Join(dest, "gone"), filepath.Join(dest, "apps")); err != nil {
		t.Fatal(err)
	}

	result := Installed(dest)
	if countKind(result, findings.BrokenReference) != 1 {
		t.Errorf("expected a finding for the dangling link, got %v", result)
	}
}
