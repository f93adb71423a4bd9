// Package findings defines the tagged error and diagnostic kinds the
// pipeline reports: scan problems, resolution failures, install conflicts,
// and validator diagnostics. Findings carry the offending package identity
// so the end-of-run summary can group them by kind.
package findings

import (
	"errors"
	"fmt"
)

// Kind identifies a category of error or diagnostic finding.
type Kind string

const (
	ManifestInvalid     Kind = "manifest-invalid"
	DuplicatePackage    Kind = "duplicate-package"
	UnknownGroup        Kind = "unknown-group"
	UnknownPreset       Kind = "unknown-preset"
	CyclicInclusionRule Kind = "cyclic-inclusion-rule"
	InstallConflict     Kind = "install-conflict"
	BrokenReference     Kind = "broken-reference"

	// Validator-only diagnostics. These never fail a run on their own.
	UnusedGroup      Kind = "unused-group"
	AmbiguousTrigger Kind = "ambiguous-trigger"
	NameMismatch     Kind = "name-mismatch"
)

// fatalKinds are resolution-time kinds that make an invocation unsatisfiable.
var fatalKinds = map[Kind]bool{
	UnknownGroup:        true,
	UnknownPreset:       true,
	CyclicInclusionRule: true,
}

// diagnosticKinds are advisory; they only fail a run under --strict.
var diagnosticKinds = map[Kind]bool{
	UnusedGroup:      true,
	AmbiguousTrigger: true,
	NameMismatch:     true,
	BrokenReference:  true,
}

// Finding is a tagged error tied to a package identity.
type Finding struct {
	Kind    Kind
	Package string // package identity, empty for request-level errors
	Detail  string
}

// New creates a finding for the given package.
func New(kind Kind, pkg, format string, args ...interface{}) *Finding {
	return &Finding{
		Kind:    kind,
		Package: pkg,
		Detail:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (f *Finding) Error() string {
	if f.Package != "" {
		return fmt.Sprintf("%s: %s: %s", f.Kind, f.Package, f.Detail)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

// Fatal reports whether this finding's kind aborts the invocation.
func (f *Finding) Fatal() bool {
	return fatalKinds[f.Kind]
}

// Diagnostic reports whether this finding is advisory only.
func (f *Finding) Diagnostic() bool {
	return diagnosticKinds[f.Kind]
}

// KindOf extracts the finding kind from an error chain.
// Returns an empty Kind when the error carries no finding.
func KindOf(err error) Kind {
	var f *Finding
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsKind reports whether err carries a finding of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
