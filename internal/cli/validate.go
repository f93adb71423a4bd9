package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/config"
	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/index"
	"github.com/skillset-labs/skillset/internal/userdata"
	"github.com/skillset-labs/skillset/internal/validate"
)

var validateInstalled string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check catalog sources and rules for problems",
	Long: `Validate the catalog: manifest schemas, name/directory agreement,
relative reference targets, inclusion rules, and trigger ambiguity.
With --installed, validate an installed destination instead of the
sources. Diagnostics are warnings unless --strict is set.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateInstalled, "installed", "", "Validate this installed destination instead of the sources (use \"-\" for the user root)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var found []*findings.Finding

	if validateInstalled != "" {
		dest := validateInstalled
		if dest == "-" {
			var err error
			dest, err = userdata.InstalledRoot()
			if err != nil {
				return fmt.Errorf("resolving installed root: %w", err)
			}
		}
		found = validate.Installed(dest)
	} else {
		sources, err := buildSources()
		if err != nil {
			return err
		}
		set, err := loadRules()
		if err != nil {
			return err
		}
		// Scan fresh: validation should see the catalog as it is now,
		// including manifests the cached index would hide.
		idx, scanFindings := index.Build(sources, index.BuildOptions{IgnoreGlobs: config.IgnoreGlobs()})
		found = append(scanFindings, validate.Catalog(idx, set)...)
	}

	report := &findings.Report{}
	for _, f := range found {
		report.Add(f)
	}

	if report.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ No problems found.")
		return nil
	}

	report.Print(cmd.OutOrStdout())

	if report.HasErrors() {
		return fmt.Errorf("validation failed")
	}
	if rootStrict {
		return findings.Combine(report.Items())
	}
	return nil
}
