package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Symlink creates a symbolic link at link pointing to target. Package links
// point at directories, so there is no copy fallback: if the platform cannot
// create the link, the caller should install in copy mode instead.
func Symlink(target, link string) error {
	if err := os.Symlink(target, link); err != nil {
		if runtime.GOOS == "windows" {
			return fmt.Errorf("creating symlink (enable developer mode or use copy mode): %w", err)
		}
		return err
	}
	return nil
}

// ReadTarget returns the target of a symlink.
func ReadTarget(path string) (string, error) {
	return os.Readlink(path)
}

// SymlinkSupported reports whether symlinks can be created inside dir.
// On Unix this is always true; on Windows it depends on developer mode,
// so a probe link is attempted and removed.
func SymlinkSupported(dir string) bool {
	if runtime.GOOS != "windows" {
		return true
	}

	probe := filepath.Join(dir, ".symlink-probe")
	defer os.Remove(probe)
	return os.Symlink(dir, probe) == nil
}
