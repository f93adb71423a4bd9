package project

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/skillset-labs/skillset/internal/branding"
	"github.com/skillset-labs/skillset/internal/resolve"
)

const projectFile = "project.yaml"

// DefaultDest is where synced packages land relative to the project root.
// Agent tooling conventionally discovers skills there.
const DefaultDest = ".claude/skills"

// Config represents the .skillset/project.yaml structure.
type Config struct {
	Preset  string   `yaml:"preset,omitempty"`
	Workers []string `yaml:"workers,omitempty"`
	Mode    string   `yaml:"mode,omitempty"`
	Dest    string   `yaml:"dest,omitempty"`
}

// ConfigPath returns the full path to .skillset/project.yaml for a project.
func ConfigPath(projectPath string) string {
	return filepath.Join(projectPath, branding.HomeDir(), projectFile)
}

// Load reads and parses the project config from the given project directory.
func Load(projectPath string) (*Config, error) {
	path := ConfigPath(projectPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing project config: %w", err)
	}
	if config.Preset != "" && len(config.Workers) > 0 {
		return nil, fmt.Errorf("project config sets both preset and workers; pick one")
	}

	return &config, nil
}

// Save writes the project config to .skillset/project.yaml.
func Save(projectPath string, config *Config) error {
	path := ConfigPath(projectPath)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling project config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}

	return nil
}

// Init creates the .skillset/ directory with an initial project.yaml.
func Init(projectPath string, config *Config) error {
	dir := filepath.Join(projectPath, branding.HomeDir())

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", branding.HomeDir(), err)
	}

	if _, err := os.Stat(ConfigPath(projectPath)); err == nil {
		return fmt.Errorf("project already initialized at %s", ConfigPath(projectPath))
	}

	if config.Dest == "" {
		config.Dest = DefaultDest
	}
	return Save(projectPath, config)
}

// Request converts the config into a filter request.
func (c *Config) Request() resolve.Request {
	if c.Preset != "" {
		return resolve.Request{Preset: c.Preset}
	}
	return resolve.Request{Groups: append([]string{}, c.Workers...)}
}

// DestPath resolves the configured destination against the project root.
func (c *Config) DestPath(projectPath string) string {
	dest := c.Dest
	if dest == "" {
		dest = DefaultDest
	}
	if filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(projectPath, dest)
}

// AddWorker adds a group tag to the project config.
func AddWorker(projectPath, tag string) error {
	config, err := Load(projectPath)
	if err != nil {
		return err
	}
	if config.Preset != "" {
		return fmt.Errorf("project uses preset %q; clear it before adding workers", config.Preset)
	}
	if contains(config.Workers, tag) {
		return fmt.Errorf("%s is already linked", tag)
	}
	config.Workers = append(config.Workers, tag)
	return Save(projectPath, config)
}

// RemoveWorker removes a group tag from the project config.
func RemoveWorker(projectPath, tag string) error {
	config, err := Load(projectPath)
	if err != nil {
		return err
	}
	if !contains(config.Workers, tag) {
		return fmt.Errorf("%s is not currently linked", tag)
	}
	config.Workers = remove(config.Workers, tag)
	return Save(projectPath, config)
}

// contains checks if a string slice contains a value.
func contains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}

// remove returns a new slice with the given value removed.
func remove(slice []string, val string) []string {
	result := make([]string, 0, len(slice))
	for _, s := range slice {
		if s != val {
			result = append(result, s)
		}
	}
	return result
}
