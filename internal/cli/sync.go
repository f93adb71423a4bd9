package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/project"
)

var syncOverwrite bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Resolve and install this project's selection",
	Long: `Load the project config, resolve its worker groups or preset through the
inclusion rules, and install the result at the project destination.
Packages already in place are left alone.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncOverwrite, "overwrite", false, "Replace conflicting destination entries")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	idx, _, err := buildIndex(cmd)
	if err != nil {
		return err
	}
	set, err := loadRules()
	if err != nil {
		return err
	}

	result, err := project.Sync(cwd, idx, set, syncOverwrite)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Synced %d packages to %s.\n", len(result.Selection.Packages), result.Dest)
	return printInstallResult(cmd, result.Install)
}
