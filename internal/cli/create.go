package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/scaffold"
)

var (
	createDescription string
	createWorkers     []string
	createOutput      string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new skill package",
	Long: `Generate a skill package skeleton: a directory named after the package
with a SKILL.md manifest and starter resource directories. The name must
be lowercase letters, digits, and hyphens.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Trigger description for the skill")
	createCmd.Flags().StringSliceVarP(&createWorkers, "group", "g", nil, "Worker group tag (repeatable)")
	createCmd.Flags().StringVarP(&createOutput, "output", "o", "", "Parent directory (default current directory)")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	parent := createOutput
	if parent == "" {
		var err error
		parent, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
	}

	data := scaffold.NewData(args[0], createDescription, createWorkers)
	result, err := scaffold.Generate(data, parent)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "  ⚠️  %s\n", w)
	}
	return nil
}
