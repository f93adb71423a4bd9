package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/project"
)

func init() {
	linkCmd.AddCommand(linkAddCmd)
	linkCmd.AddCommand(linkRemoveCmd)
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage this project's worker groups",
	Long: `Add or remove worker group tags in this project's config and re-sync the
destination.`,
}

var linkAddCmd = &cobra.Command{
	Use:   "add <group>",
	Short: "Link a worker group to this project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		if err := project.AddWorker(cwd, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Linked %s.\n", args[0])
		return runSync(cmd, nil)
	},
}

var linkRemoveCmd = &cobra.Command{
	Use:   "remove <group>",
	Short: "Unlink a worker group from this project",
	Long: `Remove a worker group tag from the project config. Packages already at
the destination are not deleted; uninstall them explicitly if needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		if err := project.RemoveWorker(cwd, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Unlinked %s.\n", args[0])
		return nil
	},
}
