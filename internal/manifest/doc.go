// Package manifest parses and validates skill package manifests. A manifest
// is the YAML front matter of a package's SKILL.md file; the Markdown body
// is scanned for relative resource references. Front matter is validated
// against an embedded JSON Schema.
package manifest
