// Package rules holds the static routing configuration the filter resolver
// consumes: named presets, the tag implication table, and extra always-on
// package names. A built-in rule set ships embedded; a YAML rules file can
// replace it wholesale.
package rules

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/skillset-labs/skillset/internal/findings"
)

//go:embed defaults.yaml
var defaultRules []byte

// Set is a complete rule configuration.
type Set struct {
	Presets       map[string][]string `yaml:"presets"`
	Implications  map[string][]string `yaml:"implications"`
	AlwaysInclude []string            `yaml:"always_include"`
}

// Default returns the embedded built-in rule set.
func Default() (*Set, error) {
	return parse(defaultRules)
}

// Load reads a rules file. The file replaces the built-in set entirely.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}
	set, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return set, nil
}

func parse(data []byte) (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("unmarshaling rules: %w", err)
	}
	if set.Presets == nil {
		set.Presets = map[string][]string{}
	}
	if set.Implications == nil {
		set.Implications = map[string][]string{}
	}
	return &set, nil
}

// Validate checks that the implication table is acyclic. The table must be
// acyclic by construction; a cycle is a configuration error, reported as a
// CyclicInclusionRule finding instead of looping at resolution time.
func (s *Set) Validate() error {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int)

	var visit func(tag string, trail []string) error
	visit = func(tag string, trail []string) error {
		switch state[tag] {
		case done:
			return nil
		case inStack:
			return findings.New(findings.CyclicInclusionRule, "",
				"implication cycle: %s", cycleString(trail, tag))
		}
		state[tag] = inStack
		for _, implied := range s.Implications[tag] {
			if err := visit(implied, append(trail, tag)); err != nil {
				return err
			}
		}
		state[tag] = done
		return nil
	}

	for _, tag := range sortedKeys(s.Implications) {
		if err := visit(tag, nil); err != nil {
			return err
		}
	}
	return nil
}

func cycleString(trail []string, repeat string) string {
	out := ""
	started := false
	for _, t := range trail {
		if t == repeat {
			started = true
		}
		if started {
			out += t + " -> "
		}
	}
	return out + repeat
}

// ExpandPreset returns the tag set a preset maps to, preserving its
// declared order.
func (s *Set) ExpandPreset(name string) ([]string, error) {
	tags, ok := s.Presets[name]
	if !ok {
		// Preset keywords come from user input; accept any casing.
		tags, ok = s.Presets[strings.ToLower(name)]
	}
	if !ok {
		return nil, findings.New(findings.UnknownPreset, "",
			"preset %q is not defined (known: %v)", name, s.PresetNames())
	}
	return append([]string{}, tags...), nil
}

// Close expands a tag set to its implication fixed point. The result is
// sorted. Termination is guaranteed because the set only grows and is
// bounded by the finite implication table.
func (s *Set) Close(tags []string) []string {
	closed := make(map[string]bool, len(tags))
	queue := append([]string{}, tags...)
	for len(queue) > 0 {
		tag := queue[0]
		queue = queue[1:]
		if closed[tag] {
			continue
		}
		closed[tag] = true
		queue = append(queue, s.Implications[tag]...)
	}

	result := make([]string, 0, len(closed))
	for tag := range closed {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

// PresetNames returns the sorted preset identifiers.
func (s *Set) PresetNames() []string {
	return sortedKeys(s.Presets)
}

// ReferencedTags returns every tag named anywhere in the rule set, sorted.
// The validator checks each against the catalog's declared groups.
func (s *Set) ReferencedTags() []string {
	seen := make(map[string]bool)
	for _, tags := range s.Presets {
		for _, t := range tags {
			seen[t] = true
		}
	}
	for trigger, implied := range s.Implications {
		seen[trigger] = true
		for _, t := range implied {
			seen[t] = true
		}
	}
	result := make([]string, 0, len(seen))
	for t := range seen {
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
