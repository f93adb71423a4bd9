// Package validate runs the diagnostic checks: every relative reference in
// a package body must resolve inside the package or the shared-resource
// directory, every tag the rule set names must be declared somewhere, and
// trigger descriptions must be unambiguous. Validation never mutates state;
// it only produces findings.
package validate

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/index"
	"github.com/skillset-labs/skillset/internal/manifest"
	"github.com/skillset-labs/skillset/internal/rules"
)

// Catalog checks a built index (pre-install) against the rule set. A nil
// rule set skips the rule checks.
func Catalog(idx *index.Index, set *rules.Set) []*findings.Finding {
	var result []*findings.Finding

	for _, pkg := range idx.All() {
		result = append(result, packageFindings(pkg)...)
	}
	result = append(result, triggerFindings(idx)...)
	if set != nil {
		result = append(result, ruleFindings(idx, set)...)
	}

	return result
}

// Installed checks a materialized tree (post-install). Destination entries
// are enumerated directly rather than rescanned as a source: link-mode
// installs place symlinked package directories, which a tree walk would
// skip. Each entry is resolved to its real directory first, so references
// inside linked packages are checked against the source location the link
// points at.
func Installed(dest string) []*findings.Finding {
	entries, err := os.ReadDir(dest)
	if err != nil {
		return nil
	}

	// In link mode dest/shared is itself a symlink; resolve it so shared
	// references from resolved package directories compare correctly.
	sharedDir := filepath.Join(dest, manifest.SharedDir)
	if resolved, err := filepath.EvalSymlinks(sharedDir); err == nil {
		sharedDir = resolved
	}

	var result []*findings.Finding
	for _, entry := range entries {
		if entry.Name() == manifest.SharedDir {
			continue
		}

		path := filepath.Join(dest, entry.Name())
		pkgDir, err := filepath.EvalSymlinks(path)
		if err != nil {
			result = append(result, findings.New(findings.BrokenReference, entry.Name(),
				"installed entry does not resolve: %v", err))
			continue
		}
		if info, err := os.Stat(pkgDir); err != nil || !info.IsDir() {
			continue
		}

		parsed, err := manifest.ParseFile(filepath.Join(pkgDir, manifest.FileName))
		if err != nil {
			result = append(result, findings.New(findings.ManifestInvalid, entry.Name(),
				"%v", err))
			continue
		}

		pkg := &index.Package{
			ID:       entry.Name(),
			Dir:      pkgDir,
			RelDir:   entry.Name(),
			Source:   "installed",
			Root:     dest,
			Manifest: parsed.Manifest,
			Refs:     parsed.Refs,
		}
		result = append(result, refFindings(pkg, sharedDir)...)
	}
	return result
}

// packageFindings checks one catalog package, with the shared directory
// derived from its source root.
func packageFindings(pkg *index.Package) []*findings.Finding {
	sharedDir, _ := filepath.Abs(filepath.Join(pkg.Root, manifest.SharedDir))
	return refFindings(pkg, sharedDir)
}

// refFindings checks name agreement and every body reference of one
// package against its directory and the given shared directory.
func refFindings(pkg *index.Package, sharedDir string) []*findings.Finding {
	var result []*findings.Finding

	if pkg.Manifest.Name != pkg.ID {
		result = append(result, findings.New(findings.NameMismatch, pkg.ID,
			"front matter declares name %q but the directory is %q", pkg.Manifest.Name, pkg.ID))
	}

	pkgDir, err := filepath.Abs(pkg.Dir)
	if err != nil {
		return result
	}

	for _, ref := range pkg.Refs {
		target := filepath.Clean(filepath.Join(pkgDir, filepath.FromSlash(ref)))

		if !within(target, pkgDir) && !within(target, sharedDir) {
			result = append(result, findings.New(findings.BrokenReference, pkg.ID,
				"%s escapes the package and the shared directory", ref))
			continue
		}
		if info, err := os.Stat(target); err != nil || info.IsDir() {
			result = append(result, findings.New(findings.BrokenReference, pkg.ID,
				"%s does not resolve to a file", ref))
		}
	}

	return result
}

// within reports whether path sits at or below dir.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}

// ruleFindings checks that every tag and package name the rule set refers
// to actually exists in the catalog.
func ruleFindings(idx *index.Index, set *rules.Set) []*findings.Finding {
	var result []*findings.Finding

	for _, tag := range set.ReferencedTags() {
		if !idx.HasGroup(tag) {
			result = append(result, findings.New(findings.UnusedGroup, "",
				"rule set names group %q but no package declares it", tag))
		}
	}
	for _, id := range set.AlwaysInclude {
		if _, ok := idx.Get(id); !ok {
			result = append(result, findings.New(findings.UnusedGroup, "",
				"rule set pins package %q which is not in the catalog", id))
		}
	}

	if err := set.Validate(); err != nil {
		var f *findings.Finding
		if errors.As(err, &f) {
			result = append(result, f)
		} else {
			result = append(result, findings.New(findings.CyclicInclusionRule, "", "%v", err))
		}
	}

	return result
}

// triggerFindings flags identical trigger descriptions across unrelated
// packages. The consuming agent routes on descriptions, so a duplicate is
// ambiguous even when the packages differ.
func triggerFindings(idx *index.Index) []*findings.Finding {
	byDesc := make(map[string][]string)
	for _, pkg := range idx.All() {
		desc := strings.TrimSpace(strings.ToLower(pkg.Manifest.Description))
		if desc == "" {
			continue
		}
		byDesc[desc] = append(byDesc[desc], pkg.ID)
	}

	descs := make([]string, 0, len(byDesc))
	for desc, ids := range byDesc {
		if len(ids) > 1 {
			descs = append(descs, desc)
		}
	}
	sort.Strings(descs)

	var result []*findings.Finding
	for _, desc := range descs {
		ids := byDesc[desc]
		result = append(result, findings.New(findings.AmbiguousTrigger, ids[0],
			"identical trigger description shared by %s", strings.Join(ids, ", ")))
	}
	return result
}
