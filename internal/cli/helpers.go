package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/config"
	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/index"
	"github.com/skillset-labs/skillset/internal/rules"
	"github.com/skillset-labs/skillset/internal/userdata"
)

// buildSources resolves catalog sources in priority order: --source flags,
// then the user config's sources list, then <home>/catalog.
func buildSources() ([]index.Source, error) {
	if len(rootSources) > 0 {
		var sources []index.Source
		for _, raw := range rootSources {
			name, path, overlay := parseSourceFlag(raw)
			info, err := os.Stat(path)
			if err != nil || !info.IsDir() {
				return nil, fmt.Errorf("source %s is not a directory", path)
			}
			sources = append(sources, index.Source{Name: name, Path: path, Overlay: overlay})
		}
		return sources, nil
	}

	sources, err := config.Sources()
	if err != nil {
		return nil, err
	}
	if len(sources) > 0 {
		return sources, nil
	}

	home, err := userdata.HomeRoot()
	if err != nil {
		return nil, err
	}
	catalogPath := filepath.Join(home, "catalog")
	if info, err := os.Stat(catalogPath); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("no catalog sources configured and %s does not exist; pass --source or set sources in %s", catalogPath, config.FilePath())
	}
	return []index.Source{{Name: "catalog", Path: catalogPath}}, nil
}

// parseSourceFlag splits a --source value of the form [name=]path[,overlay].
func parseSourceFlag(raw string) (name, path string, overlay bool) {
	if rest, found := strings.CutSuffix(raw, ",overlay"); found {
		raw = rest
		overlay = true
	}
	if n, p, found := strings.Cut(raw, "="); found && !strings.Contains(n, string(os.PathSeparator)) {
		return n, p, overlay
	}
	return filepath.Base(raw), raw, overlay
}

// loadRules resolves the inclusion rule set: --rules flag, then the config's
// rules_file, then <home>/rules.yaml if present, then the built-in defaults.
func loadRules() (*rules.Set, error) {
	if rootRules != "" {
		return rules.Load(rootRules)
	}
	if path := config.RulesFile(); path != "" {
		return rules.Load(path)
	}
	if path, err := userdata.RulesFile(); err == nil {
		if _, err := os.Stat(path); err == nil {
			return rules.Load(path)
		}
	}
	return rules.Default()
}

// buildIndex scans the configured sources through the mtime cache and prints
// any scan findings on stderr. Scan findings are never fatal on their own:
// invalid or duplicated packages are excluded and the rest of the catalog
// stays usable.
func buildIndex(cmd *cobra.Command) (*index.Index, *findings.Report, error) {
	sources, err := buildSources()
	if err != nil {
		return nil, nil, err
	}

	opts := index.BuildOptions{IgnoreGlobs: config.IgnoreGlobs()}

	cachePath, err := userdata.CacheFile()
	var idx *index.Index
	var found []*findings.Finding
	if err == nil {
		idx, found = index.BuildCached(sources, opts, cachePath)
	} else {
		idx, found = index.Build(sources, opts)
	}

	report := &findings.Report{}
	for _, f := range found {
		report.Add(f)
	}
	if !report.Empty() {
		report.Print(cmd.ErrOrStderr())
	}
	if rootStrict && !report.Empty() {
		return nil, nil, findings.Combine(report.Items())
	}
	return idx, report, nil
}
