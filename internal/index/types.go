package index

import (
	"github.com/skillset-labs/skillset/internal/manifest"
)

// Source is a root directory scanned for skill packages.
type Source struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Overlay bool   `json:"overlay,omitempty"` // overlay copies override base copies instead of being reported as duplicates
}

// Package is one catalog entry: a skill package discovered under a source.
type Package struct {
	ID       string             `json:"id"`       // directory name, the package identity
	Dir      string             `json:"dir"`      // absolute path to the package directory
	RelDir   string             `json:"rel_dir"`  // slash path relative to the source root
	Source   string             `json:"source"`   // name of the source it was found in
	Root     string             `json:"root"`     // absolute path of the source root
	Manifest *manifest.Manifest `json:"manifest"`
	Refs     []string           `json:"refs,omitempty"` // relative resource references from the body
}
