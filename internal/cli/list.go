package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/manifest"
	"github.com/skillset-labs/skillset/internal/userdata"
)

var (
	listDest string
	listJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed skill packages",
	Long: `List the skill packages installed at a destination. With no --dest the
user-level installed root is listed.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listDest, "dest", "", "Destination directory to list")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// installedEntry describes one installed package for display.
type installedEntry struct {
	Name        string   `json:"name"`
	Version     string   `json:"version,omitempty"`
	Workers     []string `json:"workers,omitempty"`
	Linked      bool     `json:"linked"`
	Description string   `json:"description,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	dest := listDest
	if dest == "" {
		var err error
		dest, err = userdata.InstalledRoot()
		if err != nil {
			return fmt.Errorf("resolving installed root: %w", err)
		}
	}

	entries, err := os.ReadDir(dest)
	if os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing installed at %s.\n", dest)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", dest, err)
	}

	var installed []installedEntry
	for _, entry := range entries {
		if entry.Name() == manifest.SharedDir {
			continue
		}
		skillFile := filepath.Join(dest, entry.Name(), manifest.FileName)
		parsed, err := manifest.ParseFile(skillFile)
		if err != nil {
			continue
		}
		linked := entry.Type()&os.ModeSymlink != 0
		installed = append(installed, installedEntry{
			Name:        entry.Name(),
			Version:     parsed.Manifest.Version,
			Workers:     parsed.Manifest.Workers,
			Linked:      linked,
			Description: parsed.Manifest.Description,
		})
	}
	sort.Slice(installed, func(i, j int) bool { return installed[i].Name < installed[j].Name })

	if len(installed) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing installed at %s.\n", dest)
		return nil
	}

	if listJSON {
		data, err := json.MarshalIndent(installed, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling list: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tWORKERS\tMODE")
	for _, e := range installed {
		version := e.Version
		if version == "" {
			version = "-"
		}
		mode := "copy"
		if e.Linked {
			mode = "link"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, version, strings.Join(e.Workers, ","), mode)
	}
	return w.Flush()
}
