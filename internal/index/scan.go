package index

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/logger"
	"github.com/skillset-labs/skillset/internal/manifest"
)

// defaultIgnoreGlobs are junk paths skipped during scanning. Callers may
// append their own patterns via BuildOptions.
var defaultIgnoreGlobs = []string{
	".git",
	"node_modules",
	"**/.git",
	"**/node_modules",
	"**/.DS_Store",
}

// candidate is a directory holding a SKILL.md, found during the walk.
// Candidates are collected in walk order, parsed in parallel, and merged
// deterministically afterwards.
type candidate struct {
	source Source
	dir    string
	relDir string
}

// findCandidates walks a single source root and returns package candidates
// in lexical walk order. The shared-resource directory and ignored paths
// are skipped; a directory that carries a manifest is a package boundary,
// so the walk does not descend into it.
func findCandidates(src Source, ignoreGlobs []string) []candidate {
	var result []candidate

	err := filepath.WalkDir(src.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if !d.IsDir() || path == src.Path {
			return nil
		}

		rel, err := filepath.Rel(src.Path, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if rel == manifest.SharedDir {
			return filepath.SkipDir
		}
		for _, glob := range ignoreGlobs {
			if ok, _ := doublestar.Match(glob, rel); ok {
				return filepath.SkipDir
			}
		}

		if _, err := os.Stat(filepath.Join(path, manifest.FileName)); err == nil {
			result = append(result, candidate{source: src, dir: path, relDir: rel})
			return filepath.SkipDir // packages do not nest
		}
		return nil
	})
	if err != nil {
		logger.WithField("source", src.Name).Debugf("walk failed: %v", err)
	}

	return result
}

// parseCandidates parses all candidate manifests concurrently. Results and
// per-candidate errors land at the candidate's slot, so the later merge is
// independent of goroutine scheduling.
func parseCandidates(candidates []candidate) ([]*Package, []*findings.Finding) {
	packages := make([]*Package, len(candidates))
	errs := make([]error, len(candidates))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			parsed, err := manifest.ParseFile(filepath.Join(c.dir, manifest.FileName))
			if err != nil {
				errs[i] = err
				return nil
			}
			packages[i] = &Package{
				ID:       filepath.Base(c.dir),
				Dir:      c.dir,
				RelDir:   c.relDir,
				Source:   c.source.Name,
				Root:     c.source.Path,
				Manifest: parsed.Manifest,
				Refs:     parsed.Refs,
			}
			return nil
		})
	}
	_ = g.Wait() // workers report through the errs slice

	var invalid []*findings.Finding
	for i, err := range errs {
		if err != nil {
			invalid = append(invalid, findings.New(findings.ManifestInvalid,
				filepath.Base(candidates[i].dir), "%v", err))
		}
	}
	return packages, invalid
}
