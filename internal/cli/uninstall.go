package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/manifest"
	"github.com/skillset-labs/skillset/internal/userdata"
)

var uninstallDest string

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <package>...",
	Short: "Remove installed skill packages",
	Long: `Remove one or more installed packages by identity. Shared resources stay
in place: other packages may still reference them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().StringVar(&uninstallDest, "dest", "", "Destination directory to uninstall from")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	dest := uninstallDest
	if dest == "" {
		var err error
		dest, err = userdata.InstalledRoot()
		if err != nil {
			return fmt.Errorf("resolving installed root: %w", err)
		}
	}

	removed := 0
	for _, id := range args {
		if id == manifest.SharedDir {
			return fmt.Errorf("%s is the shared resource directory, not a package", id)
		}
		target := filepath.Join(dest, id)
		if _, err := os.Lstat(target); os.IsNotExist(err) {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s: not installed\n", id)
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("removing %s: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s\n", id)
		removed++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d packages from %s.\n", removed, dest)
	return nil
}
