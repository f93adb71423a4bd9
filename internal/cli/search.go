package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	searchGroupFilter string
	searchJSON        bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for skill packages across all sources",
	Long: `Search catalog sources for skill packages. The query matches against
package identities and descriptions (case-insensitive substring). Use
--group to restrict results to a worker group.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchGroupFilter, "group", "", "Filter by worker group tag")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

// searchEntry represents a discovered package for display.
type searchEntry struct {
	Name        string   `json:"name"`
	Version     string   `json:"version,omitempty"`
	Description string   `json:"description"`
	Workers     []string `json:"workers,omitempty"`
	Source      string   `json:"source"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = strings.ToLower(args[0])
	}

	idx, _, err := buildIndex(cmd)
	if err != nil {
		return err
	}

	var entries []searchEntry
	for _, pkg := range idx.All() {
		if searchGroupFilter != "" && !pkg.Manifest.HasWorker(searchGroupFilter) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(pkg.ID), query) &&
			!strings.Contains(strings.ToLower(pkg.Manifest.Description), query) {
			continue
		}
		entries = append(entries, searchEntry{
			Name:        pkg.ID,
			Version:     pkg.Manifest.Version,
			Description: pkg.Manifest.Description,
			Workers:     pkg.Manifest.Workers,
			Source:      pkg.Source,
		})
	}

	if len(entries) == 0 {
		msg := "No packages found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		if searchGroupFilter != "" {
			msg += fmt.Sprintf(" with --group=%s", searchGroupFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg+".")
		return nil
	}

	if searchJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling search results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tWORKERS\tDESCRIPTION")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		desc := e.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, version, strings.Join(e.Workers, ","), desc)
	}
	return w.Flush()
}
