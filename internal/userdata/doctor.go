package userdata

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/skillset-labs/skillset/internal/platform"
)

// interpreterForExt maps script file extensions to the interpreter expected
// on PATH. The corpus ships helper scripts alongside packages; doctor
// reports which interpreters the installed packages actually need.
var interpreterForExt = map[string]string{
	".py": "python3",
	".sh": "bash",
	".js": "node",
	".rb": "ruby",
}

// CheckHome verifies the home dot-directory exists and is writable.
func CheckHome(w io.Writer) error {
	root, err := HomeRoot()
	if err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		fmt.Fprintf(w, "  %s home directory %s missing (created on first install)\n", warn(), root)
		return nil
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", root)
	}
	fmt.Fprintf(w, "  %s home directory %s\n", ok(), root)
	return nil
}

// CheckSymlinkSupport verifies that link-mode installs can work at the
// given destination by creating and removing a probe link.
func CheckSymlinkSupport(w io.Writer, dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if !platform.SymlinkSupported(dest) {
		fmt.Fprintf(w, "  %s symlinks not supported at %s; use copy mode\n", warn(), dest)
		return nil
	}
	fmt.Fprintf(w, "  %s symlink support at %s\n", ok(), dest)
	return nil
}

// CheckInterpreters scans an installed tree's scripts directories and
// reports which script interpreters are missing from PATH.
func CheckInterpreters(w io.Writer, installedRoot string) error {
	needed := map[string]bool{}

	entries, err := os.ReadDir(installedRoot)
	if err != nil {
		fmt.Fprintf(w, "  %s nothing installed at %s\n", warn(), installedRoot)
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		scriptsDir := filepath.Join(installedRoot, entry.Name(), "scripts")
		scripts, err := os.ReadDir(scriptsDir)
		if err != nil {
			continue
		}
		for _, s := range scripts {
			if interp, found := interpreterForExt[strings.ToLower(filepath.Ext(s.Name()))]; found {
				needed[interp] = true
			}
		}
	}

	if len(needed) == 0 {
		fmt.Fprintf(w, "  %s no script interpreters required\n", ok())
		return nil
	}

	interps := make([]string, 0, len(needed))
	for interp := range needed {
		interps = append(interps, interp)
	}
	sort.Strings(interps)

	for _, interp := range interps {
		if _, err := exec.LookPath(interp); err != nil {
			fmt.Fprintf(w, "  %s %s not found on PATH\n", fail(), interp)
		} else {
			fmt.Fprintf(w, "  %s %s\n", ok(), interp)
		}
	}
	return nil
}

func ok() string   { return color.GreenString("✓") }
func warn() string { return color.YellowString("!") }
func fail() string { return color.RedString("✗") }
