package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/config"
	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/install"
	"github.com/skillset-labs/skillset/internal/resolve"
	"github.com/skillset-labs/skillset/internal/userdata"
)

var (
	installGroups    []string
	installPreset    string
	installMode      string
	installDest      string
	installOverwrite bool
	installYes       bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the packages a selection resolves to",
	Long: `Resolve a worker-group selection and install the resulting packages.
With no --dest, packages land under the user-level installed root. Copy
mode produces independent files; link mode symlinks back to the source so
edits show up immediately.`,
	Args: cobra.NoArgs,
	RunE: runInstallCmd,
}

func init() {
	installCmd.Flags().StringSliceVarP(&installGroups, "group", "g", nil, "Worker group tag to include (repeatable)")
	installCmd.Flags().StringVar(&installPreset, "preset", "", "Named preset to expand")
	installCmd.Flags().StringVar(&installMode, "mode", "", "Install mode: copy or link (default copy)")
	installCmd.Flags().StringVar(&installDest, "dest", "", "Destination directory")
	installCmd.Flags().BoolVar(&installOverwrite, "overwrite", false, "Replace conflicting destination entries")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installCmd)
}

func runInstallCmd(cmd *cobra.Command, args []string) error {
	req, err := selectionRequest(installGroups, installPreset)
	if err != nil {
		return err
	}

	mode := install.ModeCopy
	modeFlag := installMode
	if modeFlag == "" {
		modeFlag = config.DefaultMode()
	}
	if modeFlag != "" {
		mode, err = install.ParseMode(modeFlag)
		if err != nil {
			return err
		}
	}

	dest := installDest
	if dest == "" {
		dest = config.DefaultDest()
	}
	if dest == "" {
		dest, err = userdata.InstalledRoot()
		if err != nil {
			return fmt.Errorf("resolving installed root: %w", err)
		}
	}

	idx, _, err := buildIndex(cmd)
	if err != nil {
		return err
	}
	set, err := loadRules()
	if err != nil {
		return err
	}

	sel, err := resolve.Resolve(idx, set, req)
	if err != nil {
		return err
	}
	if len(sel.Packages) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to install — the selection resolves to no packages.")
		return nil
	}

	// Print the plan before touching the destination.
	fmt.Fprintf(cmd.OutOrStdout(), "Installing %d packages to %s (%s mode):\n", len(sel.Packages), dest, mode)
	for _, pkg := range sel.Packages {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", pkg.ID)
	}

	if !installYes {
		fmt.Fprint(cmd.OutOrStdout(), "? Proceed with installation? (Y/n) ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
			if answer != "" && answer != "y" && answer != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Installation cancelled.")
				return nil
			}
		}
	}

	result, err := install.Install(sel, install.Options{Dest: dest, Mode: mode, Overwrite: installOverwrite})
	if err != nil {
		return err
	}

	return printInstallResult(cmd, result)
}

func printInstallResult(cmd *cobra.Command, result *install.Result) error {
	out := cmd.OutOrStdout()
	if len(result.Installed) > 0 {
		fmt.Fprintf(out, "✓ Installed %d packages.", len(result.Installed))
		if len(result.Skipped) > 0 {
			fmt.Fprintf(out, " %d already installed (skipped).", len(result.Skipped))
		}
		fmt.Fprintln(out)
	} else if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "Nothing to do — %d packages already installed.\n", len(result.Skipped))
	}

	if len(result.Conflicts) > 0 {
		report := &findings.Report{}
		for _, f := range result.Conflicts {
			report.Add(f)
		}
		report.Print(cmd.ErrOrStderr())
		if rootStrict {
			return findings.Combine(result.Conflicts)
		}
		fmt.Fprintf(out, "%d conflicting entries were left untouched; rerun with --overwrite to replace them.\n", len(result.Conflicts))
	}
	return nil
}
