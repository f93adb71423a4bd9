package platform

import (
	"os"
	"runtime"
)

// Chmod applies permission bits, preserving execute bits on package
// scripts. Windows has no Unix-style mode bits, so it is a no-op there.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
