package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/branding"
	"github.com/skillset-labs/skillset/internal/project"
)

var (
	initWorkers []string
	initPreset  string
	initMode    string
	initDest    string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize this project for skillset",
	Long: `Create ` + branding.HomeDir() + `/project.yaml in the current directory. The file records
which worker groups (or preset) this project wants and where synced
packages land. Run 'sync' afterwards to materialize the selection.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		if initPreset != "" && len(initWorkers) > 0 {
			return fmt.Errorf("--preset and --group are mutually exclusive")
		}

		config := &project.Config{
			Workers: initWorkers,
			Preset:  initPreset,
			Mode:    initMode,
			Dest:    initDest,
		}
		if err := project.Init(cwd, config); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Initialized %s\n", project.ConfigPath(cwd))
		fmt.Fprintf(cmd.OutOrStdout(), "Run '%s sync' to install the selection.\n", branding.CLIName())
		return nil
	},
}

func init() {
	initCmd.Flags().StringSliceVarP(&initWorkers, "group", "g", nil, "Worker group tag to link (repeatable)")
	initCmd.Flags().StringVar(&initPreset, "preset", "", "Named preset to link")
	initCmd.Flags().StringVar(&initMode, "mode", "", "Install mode: copy or link")
	initCmd.Flags().StringVar(&initDest, "dest", "", "Destination directory relative to the project")
	rootCmd.AddCommand(initCmd)
}
