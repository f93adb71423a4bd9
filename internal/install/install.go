// Package install materializes a resolved selection at a destination, either
// as independent copies or as symbolic links back to the source. Shared
// resource directories are staged once before any package is placed, and
// pre-existing destination content is never removed unless the caller
// explicitly asks for an overwrite.
package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/index"
	"github.com/skillset-labs/skillset/internal/logger"
	"github.com/skillset-labs/skillset/internal/manifest"
	"github.com/skillset-labs/skillset/internal/platform"
	"github.com/skillset-labs/skillset/internal/resolve"
)

// Mode selects how packages are materialized.
type Mode string

const (
	ModeCopy Mode = "copy" // independent files, safe to mutate
	ModeLink Mode = "link" // symlink to source, shared lifecycle
)

// ParseMode validates a mode flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCopy, ModeLink:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown install mode %q (copy or link)", s)
	}
}

// Options configures an installation run.
type Options struct {
	Dest      string
	Mode      Mode
	Overwrite bool // replace conflicting destination entries
}

// Result captures the outcome of an installation run.
type Result struct {
	Installed []string            // package identities placed this run
	Skipped   []string            // already present, left untouched
	Conflicts []*findings.Finding // skipped due to non-matching destination entries
}

// excludedNames are files/directories never copied into a destination.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// Install places every selected package under opts.Dest. Packages land flat,
// keyed by identity, with shared resources staged at <dest>/shared. Install
// conflicts are recorded and skipped; they never abort the remaining
// packages.
func Install(sel *resolve.Selection, opts Options) (*Result, error) {
	if opts.Mode == "" {
		opts.Mode = ModeCopy
	}
	if err := os.MkdirAll(opts.Dest, 0755); err != nil {
		return nil, fmt.Errorf("creating destination %s: %w", opts.Dest, err)
	}

	result := &Result{}

	// Shared resources are staged in a dedicated pre-pass so per-package
	// placement never races or repeats the work.
	if err := stageShared(sel, opts); err != nil {
		return nil, err
	}

	for _, pkg := range sel.Packages {
		if err := installPackage(pkg, opts, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func installPackage(pkg *index.Package, opts Options, result *Result) error {
	dst := filepath.Join(opts.Dest, pkg.ID)

	switch state := destState(pkg, dst, opts.Mode); state {
	case destAbsent:
		// fall through to placement
	case destSame:
		logger.WithField("package", pkg.ID).Debug("already installed, skipping")
		result.Skipped = append(result.Skipped, pkg.ID)
		return nil
	case destConflict:
		if !opts.Overwrite {
			result.Conflicts = append(result.Conflicts, findings.New(
				findings.InstallConflict, pkg.ID,
				"destination %s already contains a non-matching entry", dst))
			return nil
		}
		// Overwrite is the one explicitly requested destructive action.
		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("replacing %s: %w", dst, err)
		}
	}

	var err error
	switch opts.Mode {
	case ModeCopy:
		err = copyPackage(pkg, dst)
	case ModeLink:
		err = platform.Symlink(pkg.Dir, dst)
	}
	if err != nil {
		return fmt.Errorf("installing %s: %w", pkg.ID, err)
	}

	result.Installed = append(result.Installed, pkg.ID)
	return nil
}

type destStateKind int

const (
	destAbsent destStateKind = iota
	destSame
	destConflict
)

// destState classifies what already sits at the destination path: nothing, a
// prior installation of this same package, or foreign content.
func destState(pkg *index.Package, dst string, mode Mode) destStateKind {
	info, err := os.Lstat(dst)
	if err != nil {
		return destAbsent
	}

	if mode == ModeLink {
		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := platform.ReadTarget(dst); err == nil && target == pkg.Dir {
				return destSame
			}
		}
		return destConflict
	}

	if !info.IsDir() {
		return destConflict
	}
	parsed, err := manifest.ParseFile(filepath.Join(dst, manifest.FileName))
	if err == nil && parsed.Manifest.Name == pkg.Manifest.Name {
		return destSame
	}
	return destConflict
}

// copyPackage duplicates a package directory, rewriting shared-resource
// references in Markdown files so they resolve from the flattened
// destination layout. A file nested inside the package traverses extra
// levels to reach shared, so the prefix is computed per file.
func copyPackage(pkg *index.Package, dst string) error {
	depth := relDirDepth(pkg.RelDir)
	return copyDir(pkg.Dir, dst, func(relPath string, data []byte) []byte {
		if filepath.Ext(relPath) != ".md" {
			return data
		}
		sub := strings.Count(filepath.ToSlash(relPath), "/")
		return rewriteSharedRefs(data, depth+sub, 1+sub)
	})
}

// copyDir recursively copies src to dst, excluding junk entries. transform,
// when non-nil, may rewrite file contents based on the path relative to the
// package root.
func copyDir(src, dst string, transform func(relPath string, data []byte) []byte) error {
	return copyDirRel(src, dst, "", transform)
}

func copyDirRel(src, dst, rel string, transform func(string, []byte) []byte) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		entryRel := filepath.Join(rel, entry.Name())

		if entry.IsDir() {
			if err := copyDirRel(srcPath, dstPath, entryRel, transform); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath, entryRel, transform); err != nil {
				return err
			}
		}
		// Symlinks and other special files are not copied.
	}

	return nil
}

func copyFile(src, dst, rel string, transform func(string, []byte) []byte) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if transform != nil {
		data = transform(rel, data)
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return err
	}
	// Preserve execute bits on package scripts.
	return platform.Chmod(dst, srcInfo.Mode())
}
