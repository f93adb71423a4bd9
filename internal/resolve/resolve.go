// Package resolve computes which packages to activate for a filter request.
// Given the catalog, the rule set, and a set of requested group tags (or a
// preset), it applies always-include packages and the implication closure,
// returning a selection sorted by package identity.
package resolve

import (
	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/index"
	"github.com/skillset-labs/skillset/internal/logger"
	"github.com/skillset-labs/skillset/internal/rules"
)

// Request names what the caller wants loaded: explicit group tags, or a
// preset that expands to them. Groups and Preset are mutually exclusive;
// the CLI enforces that before building a Request.
type Request struct {
	Groups []string
	Preset string
}

// Selection is the resolved package set.
type Selection struct {
	Packages []*index.Package // sorted by identity
	Tags     []string         // the closed tag set that was applied, sorted
}

// IDs returns the selected package identities in order.
func (s *Selection) IDs() []string {
	ids := make([]string, len(s.Packages))
	for i, pkg := range s.Packages {
		ids[i] = pkg.ID
	}
	return ids
}

// Resolve computes the selection for a request. Resolution-time failures
// (unknown group or preset, cyclic implication table) are fatal: the error
// is returned and no partial selection is produced. Resolving the same
// request against the same catalog twice yields the same selection.
func Resolve(idx *index.Index, set *rules.Set, req Request) (*Selection, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}

	requested := req.Groups
	if req.Preset != "" {
		expanded, err := set.ExpandPreset(req.Preset)
		if err != nil {
			return nil, err
		}
		requested = expanded
	}

	// Every explicitly requested tag must be declared by some package.
	// Tags that only appear through implications are the validator's
	// business, not a request error.
	for _, tag := range requested {
		if !idx.HasGroup(tag) {
			return nil, findings.New(findings.UnknownGroup, "",
				"group %q is not declared by any package", tag)
		}
	}

	closed := set.Close(requested)
	logger.WithField("tags", closed).Debug("closed tag set")

	selected := make(map[string]bool)

	// Always-on packages come first: the manifest flag plus any names the
	// rule set pins.
	for _, id := range idx.AlwaysInclude() {
		selected[id] = true
	}
	for _, id := range set.AlwaysInclude {
		if _, ok := idx.Get(id); ok {
			selected[id] = true
		}
	}

	closedSet := make(map[string]bool, len(closed))
	for _, tag := range closed {
		closedSet[tag] = true
	}
	for _, pkg := range idx.All() {
		for _, tag := range pkg.Manifest.Workers {
			if closedSet[tag] {
				selected[pkg.ID] = true
				break
			}
		}
	}

	// idx.All() is sorted, so the selection inherits identity order.
	sel := &Selection{Tags: closed}
	for _, pkg := range idx.All() {
		if selected[pkg.ID] {
			sel.Packages = append(sel.Packages, pkg)
		}
	}
	return sel, nil
}
