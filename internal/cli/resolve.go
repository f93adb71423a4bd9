package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/resolve"
)

var (
	resolveGroups []string
	resolvePreset string
	resolveJSON   bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show which packages a selection expands to",
	Long: `Resolve a worker-group selection through the inclusion rules without
installing anything. Prints the final package set after preset expansion
and implication closure.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringSliceVarP(&resolveGroups, "group", "g", nil, "Worker group tag to include (repeatable)")
	resolveCmd.Flags().StringVar(&resolvePreset, "preset", "", "Named preset to expand")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(resolveCmd)
}

func selectionRequest(groups []string, preset string) (resolve.Request, error) {
	if preset != "" && len(groups) > 0 {
		return resolve.Request{}, fmt.Errorf("--preset and --group are mutually exclusive")
	}
	if preset == "" && len(groups) == 0 {
		return resolve.Request{}, fmt.Errorf("nothing selected; pass --group or --preset")
	}
	return resolve.Request{Groups: groups, Preset: preset}, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	req, err := selectionRequest(resolveGroups, resolvePreset)
	if err != nil {
		return err
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

	if resolveJSON {
		out := struct {
			Tags     []string `json:"tags"`
			Packages []string `json:"packages"`
		}{Tags: sel.Tags, Packages: sel.IDs()}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling selection: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Tags after closure: %s\n", strings.Join(sel.Tags, ", "))
	fmt.Fprintf(cmd.OutOrStdout(), "Packages (%d):\n", len(sel.Packages))
	for _, pkg := range sel.Packages {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", pkg.ID)
	}
	return nil
}
