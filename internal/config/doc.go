// Package config manages user-level settings stored at ~/.skillset/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the source roots, the rules file path, and install defaults.
package config
