package manifest

// FileName is the manifest file every skill package must carry.
const FileName = "SKILL.md"

// Conventional resource subdirectories inside a package.
var ResourceDirs = []string{"agents", "assets", "references", "scripts"}

// SharedDir is the shared-resource directory name at a source root.
// It is not a package; packages reach it via relative traversal.
const SharedDir = "shared"

// Manifest holds the declared metadata of a skill package.
type Manifest struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	License     string   `yaml:"license,omitempty" json:"license,omitempty"`
	Version     string   `yaml:"version,omitempty" json:"version,omitempty"`
	Workers     []string `yaml:"workers,omitempty" json:"workers,omitempty"`
	Always      bool     `yaml:"always,omitempty" json:"always,omitempty"`
}

// HasWorker reports whether the manifest declares the given group tag.
func (m *Manifest) HasWorker(tag string) bool {
	for _, w := range m.Workers {
		if w == tag {
			return true
		}
	}
	return false
}
