package resolve

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/index"
	"github.com/skillset-labs/skillset/internal/rules"
)

// corpusIndex builds a small catalog mirroring an App Store Connect corpus:
// apps, builds, versions, reviews plus an always-on conventions package.
func corpusIndex(t *testing.T) *index.Index {
	t.Helper()
	root := t.TempDir()

	packages := []struct {
		id      string
		workers []string
		always  bool
	}{
		{"apps", []string{"apps"}, false},
		{"builds", []string{"builds"}, false},
		{"versions", []string{"versions"}, false},
		{"reviews", []string{"reviews"}, false},
		{"conventions", nil, true},
	}
	for _, p := range packages {
		dir := filepath.Join(root, p.id)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		content := "---\nname: " + p.id + "\ndescription: Guidance for " + p.id + "\n"
		if len(p.workers) > 0 {
			content += "workers:\n"
			for _, w := range p.workers {
				content += "  - " + w + "\n"
			}
		}
		if p.always {
			content += "always: true\n"
		}
		content += "---\n\n# " + p.id + "\n"
		if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	idx, collected := index.Build([]index.Source{{Name: "corpus", Path: root}}, index.BuildOptions{})
	if len(collected) != 0 {
		t.Fatalf("unexpected findings: %v", collected)
	}
	return idx
}

func corpusRules() *rules.Set {
	return &rules.Set{
		Presets: map[string][]string{
			"release": {"apps", "builds", "versions", "reviews"},
		},
		Implications: map[string][]string{
			"reviews":  {"builds"},
			"versions": {"apps"},
		},
	}
}

func TestResolveImplicationScenario(t *testing.T) {
	// Requesting reviews alone pulls in builds via the implication table,
	// plus the always-include set.
	sel, err := Resolve(corpusIndex(t), corpusRules(), Request{Groups: []string{"reviews"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"builds", "conventions", "reviews"}
	if !reflect.DeepEqual(sel.IDs(), want) {
		t.Errorf("expected %v, got %v", want, sel.IDs())
	}
}

func TestResolvePresetScenario(t *testing.T) {
	sel, err := Resolve(corpusIndex(t), corpusRules(), Request{Preset: "release"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"apps", "builds", "conventions", "reviews", "versions"}
	if !reflect.DeepEqual(sel.IDs(), want) {
		t.Errorf("expected %v, got %v", want, sel.IDs())
	}
}

func TestResolveIdempotent(t *testing.T) {
	idx := corpusIndex(t)
	set := corpusRules()
	req := Request{Groups: []string{"reviews", "versions"}}

	first, err := Resolve(idx, set, req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Resolve(idx, set, req)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.IDs(), second.IDs()) {
		t.Errorf("resolution is not idempotent: %v vs %v", first.IDs(), second.IDs())
	}
	if !reflect.DeepEqual(first.Tags, second.Tags) {
		t.Errorf("tag closure differs: %v vs %v", first.Tags, second.Tags)
	}
}

func TestResolveAlwaysIncludeInvariance(t *testing.T) {
	idx := corpusIndex(t)
	set := corpusRules()

	requests := []Request{
		{Groups: []string{"apps"}},
		{Groups: []string{"builds"}},
		{Preset: "release"},
		{},
	}
	for _, req := range requests {
		sel, err := Resolve(idx, set, req)
		if err != nil {
			t.Fatalf("unexpected error for %+v: %v", req, err)
		}
		found := false
		for _, id := range sel.IDs() {
			if id == "conventions" {
				found = true
			}
		}
		if !found {
			t.Errorf("always-include package missing for request %+v: %v", req, sel.IDs())
		}
	}
}

func TestResolveSupersetProperty(t *testing.T) {
	// With reviews -> builds, requesting reviews yields a superset of the
	// packages tagged builds.
	idx := corpusIndex(t)
	set := corpusRules()

	withReviews, err := Resolve(idx, set, Request{Groups: []string{"reviews"}})
	if err != nil {
		t.Fatal(err)
	}
	withBuilds, err := Resolve(idx, set, Request{Groups: []string{"builds"}})
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[string]bool)
	for _, id := range withReviews.IDs() {
		got[id] = true
	}
	for _, id := range withBuilds.IDs() {
		if !got[id] {
			t.Errorf("requesting reviews should cover %q", id)
		}
	}
}

func TestResolveUnknownGroup(t *testing.T) {
	_, err := Resolve(corpusIndex(t), corpusRules(), Request{Groups: []string{"reviews", "bogus"}})
	if err == nil {
		t.Fatal("expected error for unknown group")
	}
	if !findings.IsKind(err, findings.UnknownGroup) {
		t.Errorf("expected UnknownGroup, got %v", err)
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	_, err := Resolve(corpusIndex(t), corpusRules(), Request{Preset: "bogus"})
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
	if !findings.IsKind(err, findings.UnknownPreset) {
		t.Errorf("expected UnknownPreset, got %v", err)
	}
}

func TestResolveCyclicRules(t *testing.T) {
	set := &rules.Set{
		Implications: map[string][]string{
			"apps":   {"builds"},
			"builds": {"apps"},
		},
	}
	_, err := Resolve(corpusIndex(t), set, Request{Groups: []string{"apps"}})
	if err == nil {
		t.Fatal("expected error for cyclic implications")
	}
	if !findings.IsKind(err, findings.CyclicInclusionRule) {
		t.Errorf("expected CyclicInclusionRule, got %v", err)
	}
}

func TestResolveRuleSetAlwaysInclude(t *testing.T) {
	set := corpusRules()
	set.AlwaysInclude = []string{"apps", "not-a-package"}

	sel, err := Resolve(corpusIndex(t), set, Request{Groups: []string{"builds"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"apps", "builds", "conventions"}
	if !reflect.DeepEqual(sel.IDs(), want) {
		t.Errorf("expected %v, got %v", want, sel.IDs())
	}
}
