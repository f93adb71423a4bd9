package index

import (
	"os"
	"sort"

	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/logger"
)

// Index is the catalog of discovered packages, keyed by identity.
type Index struct {
	packages map[string]*Package
	ids      []string // sorted identities
}

// BuildOptions tunes catalog construction.
type BuildOptions struct {
	IgnoreGlobs []string // extra doublestar patterns skipped during the walk
}

// Build scans the sources and assembles the catalog. Manifest failures and
// duplicate identities are returned as findings; the index still contains
// every cleanly parsed, unambiguous package. Construction is deterministic
// for a given file tree regardless of parse scheduling.
func Build(sources []Source, opts BuildOptions) (*Index, []*findings.Finding) {
	ignore := append(append([]string{}, defaultIgnoreGlobs...), opts.IgnoreGlobs...)

	var candidates []candidate
	for _, src := range sources {
		if info, err := os.Stat(src.Path); err != nil || !info.IsDir() {
			logger.WithField("source", src.Name).Debug("source root missing, skipping")
			continue
		}
		found := findCandidates(src, ignore)
		logger.WithField("source", src.Name).Debugf("found %d package candidates", len(found))
		candidates = append(candidates, found...)
	}

	packages, collected := parseCandidates(candidates)

	idx := &Index{packages: make(map[string]*Package, len(packages))}
	poisoned := make(map[string]string) // identity -> first conflicting dir

	for _, pkg := range packages {
		if pkg == nil {
			continue // manifest failure, already a finding
		}
		existing, ok := idx.packages[pkg.ID]
		if !ok {
			// Third and later copies of an excluded identity still get
			// their path reported.
			if first, bad := poisoned[pkg.ID]; bad {
				collected = append(collected, findings.New(findings.DuplicatePackage, pkg.ID,
					"declared at both %s and %s", first, pkg.Dir))
				continue
			}
			idx.packages[pkg.ID] = pkg
			continue
		}

		// An overlay copy overrides the base copy silently; any other
		// duplicate identity excludes both copies from the catalog.
		if srcOverlay(sources, pkg.Source) && !srcOverlay(sources, existing.Source) {
			logger.WithField("package", pkg.ID).Debugf("overrides copy from %s", existing.Source)
			idx.packages[pkg.ID] = pkg
			continue
		}
		if srcOverlay(sources, existing.Source) && !srcOverlay(sources, pkg.Source) {
			logger.WithField("package", pkg.ID).Debugf("shadowed by overlay %s", existing.Source)
			continue
		}
		collected = append(collected, findings.New(findings.DuplicatePackage, pkg.ID,
			"declared at both %s and %s", existing.Dir, pkg.Dir))
		delete(idx.packages, pkg.ID)
		poisoned[pkg.ID] = existing.Dir
	}

	for id := range idx.packages {
		idx.ids = append(idx.ids, id)
	}
	sort.Strings(idx.ids)

	return idx, collected
}

func srcOverlay(sources []Source, name string) bool {
	for _, src := range sources {
		if src.Name == name {
			return src.Overlay
		}
	}
	return false
}

// Get returns the package with the given identity.
func (x *Index) Get(id string) (*Package, bool) {
	pkg, ok := x.packages[id]
	return pkg, ok
}

// IDs returns all package identities in sorted order.
func (x *Index) IDs() []string {
	return x.ids
}

// All returns all packages sorted by identity.
func (x *Index) All() []*Package {
	result := make([]*Package, 0, len(x.ids))
	for _, id := range x.ids {
		result = append(result, x.packages[id])
	}
	return result
}

// Len returns the number of indexed packages.
func (x *Index) Len() int {
	return len(x.ids)
}

// Groups returns every declared group tag mapped to the sorted identities
// of the packages declaring it.
func (x *Index) Groups() map[string][]string {
	groups := make(map[string][]string)
	for _, id := range x.ids {
		for _, tag := range x.packages[id].Manifest.Workers {
			groups[tag] = append(groups[tag], id)
		}
	}
	return groups
}

// HasGroup reports whether any package declares the given tag.
func (x *Index) HasGroup(tag string) bool {
	for _, id := range x.ids {
		if x.packages[id].Manifest.HasWorker(tag) {
			return true
		}
	}
	return false
}

// AlwaysInclude returns the sorted identities of packages flagged always.
func (x *Index) AlwaysInclude() []string {
	var result []string
	for _, id := range x.ids {
		if x.packages[id].Manifest.Always {
			result = append(result, id)
		}
	}
	return result
}

// fromPackages rebuilds an Index from a flat package list (cache load).
func fromPackages(packages []*Package) *Index {
	idx := &Index{packages: make(map[string]*Package, len(packages))}
	for _, pkg := range packages {
		idx.packages[pkg.ID] = pkg
	}
	for id := range idx.packages {
		idx.ids = append(idx.ids, id)
	}
	sort.Strings(idx.ids)
	return idx
}
