package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/userdata"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the local environment",
	Long: `Check the home directory layout, symlink support for link-mode installs,
and the interpreters needed by installed package scripts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if err := userdata.CheckHome(out); err != nil {
			return err
		}

		installedRoot, err := userdata.InstalledRoot()
		if err != nil {
			return fmt.Errorf("resolving installed root: %w", err)
		}

		if err := userdata.CheckSymlinkSupport(out, installedRoot); err != nil {
			return err
		}
		return userdata.CheckInterpreters(out, installedRoot)
	},
}
