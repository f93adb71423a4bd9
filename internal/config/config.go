// Package config layers the CLI configuration: a YAML file in the home
// dot-directory plus SKILLSET_* environment overrides, read through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/skillset-labs/skillset/internal/branding"
	"github.com/skillset-labs/skillset/internal/index"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Dir returns the path to the config directory (~/.skillset/).
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.skillset/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// sourceEntry mirrors one entry of the sources list in config.yaml.
type sourceEntry struct {
	Name    string `mapstructure:"name"`
	Path    string `mapstructure:"path"`
	Overlay bool   `mapstructure:"overlay"`
}

// Sources returns the configured source roots in declaration order.
func Sources() ([]index.Source, error) {
	var entries []sourceEntry
	if err := viper.UnmarshalKey("sources", &entries); err != nil {
		return nil, fmt.Errorf("parsing sources from config: %w", err)
	}

	result := make([]index.Source, 0, len(entries))
	for i, e := range entries {
		if e.Path == "" {
			return nil, fmt.Errorf("config sources[%d] is missing a path", i)
		}
		name := e.Name
		if name == "" {
			name = filepath.Base(e.Path)
		}
		result = append(result, index.Source{Name: name, Path: e.Path, Overlay: e.Overlay})
	}
	return result, nil
}

// RulesFile returns the configured rules file path, or empty.
func RulesFile() string {
	return viper.GetString("rules_file")
}

// IgnoreGlobs returns extra scan ignore patterns from config.
func IgnoreGlobs() []string {
	return viper.GetStringSlice("ignore")
}

// DefaultMode returns the configured default install mode, or empty.
func DefaultMode() string {
	return viper.GetString("install.mode")
}

// DefaultDest returns the configured default install destination, or empty.
func DefaultDest() string {
	return viper.GetString("install.dest")
}
