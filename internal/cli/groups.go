package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(groupsCmd)
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List worker groups, presets, and implications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, _, err := buildIndex(cmd)
		if err != nil {
			return err
		}
		set, err := loadRules()
		if err != nil {
			return err
		}

		groups := idx.Groups()
		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "GROUP\tPACKAGES\tIMPLIES")
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(groups[name]), strings.Join(set.Implications[name], ","))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		presets := set.PresetNames()
		if len(presets) > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "Presets:")
			for _, name := range presets {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", name, strings.Join(set.Presets[name], ", "))
			}
		}
		return nil
	},
}
