package install

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillset-labs/skillset/internal/index"
	"github.com/skillset-labs/skillset/internal/logger"
	"github.com/skillset-labs/skillset/internal/manifest"
	"github.com/skillset-labs/skillset/internal/platform"
	"github.com/skillset-labs/skillset/internal/resolve"
)

// stageShared materializes the shared-resource directory at <dest>/shared
// before any package is placed. Creation happens at most once: an existing
// destination entry is left untouched. When selected packages come from
// several roots that each carry a shared directory, the first root in
// selection order wins.
func stageShared(sel *resolve.Selection, opts Options) error {
	var roots []string
	seen := make(map[string]bool)
	for _, pkg := range sel.Packages {
		if !referencesShared(pkg) {
			continue
		}
		srcShared := filepath.Join(pkg.Root, manifest.SharedDir)
		if info, err := os.Stat(srcShared); err != nil || !info.IsDir() {
			continue
		}
		if !seen[srcShared] {
			seen[srcShared] = true
			roots = append(roots, srcShared)
		}
	}
	if len(roots) == 0 {
		return nil
	}
	if len(roots) > 1 {
		logger.WithField("shared", roots[1:]).Warn("multiple shared roots selected, using the first")
	}

	destShared := filepath.Join(opts.Dest, manifest.SharedDir)
	if _, err := os.Lstat(destShared); err == nil {
		return nil
	}

	logger.WithField("shared", roots[0]).Debug("staging shared resources")
	if opts.Mode == ModeLink {
		return platform.Symlink(roots[0], destShared)
	}
	return copyDir(roots[0], destShared, nil)
}

// referencesShared reports whether any body reference of pkg traverses up
// to the source root's shared directory.
func referencesShared(pkg *index.Package) bool {
	prefix := sharedPrefix(relDirDepth(pkg.RelDir))
	for _, ref := range pkg.Refs {
		if strings.HasPrefix(ref, prefix) {
			return true
		}
	}
	return false
}

// relDirDepth is how many levels a package sits below its source root.
func relDirDepth(relDir string) int {
	if relDir == "" || relDir == "." {
		return 0
	}
	return strings.Count(relDir, "/") + 1
}

// sharedPrefix is the relative prefix a package at the given depth uses to
// reach the shared directory: "../shared/", "../../shared/", ...
func sharedPrefix(depth int) string {
	return strings.Repeat("../", depth) + manifest.SharedDir + "/"
}

// rewriteSharedRefs adjusts shared-directory references for the flattened
// destination layout, where every package sits one level below the root.
// A file at package depth two in the source writes "../../shared/"; after
// flattening the correct traversal from the same file is "../shared/".
func rewriteSharedRefs(data []byte, srcDepth, dstDepth int) []byte {
	if srcDepth == dstDepth {
		return data
	}
	from := []byte(sharedPrefix(srcDepth))
	to := []byte(sharedPrefix(dstDepth))
	return bytes.ReplaceAll(data, from, to)
}
