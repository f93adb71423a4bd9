package project

import (
	"fmt"

	"github.com/skillset-labs/skillset/internal/index"
	"github.com/skillset-labs/skillset/internal/install"
	"github.com/skillset-labs/skillset/internal/resolve"
	"github.com/skillset-labs/skillset/internal/rules"
)

// SyncResult reports what a sync did.
type SyncResult struct {
	Selection *resolve.Selection
	Install   *install.Result
	Dest      string
}

// Sync loads the project config, resolves its selection against the given
// catalog and rules, and installs the result at the project destination.
func Sync(projectPath string, idx *index.Index, set *rules.Set, overwrite bool) (*SyncResult, error) {
	config, err := Load(projectPath)
	if err != nil {
		return nil, err
	}

	sel, err := resolve.Resolve(idx, set, config.Request())
	if err != nil {
		return nil, err
	}

	mode := install.ModeCopy
	if config.Mode != "" {
		mode, err = install.ParseMode(config.Mode)
		if err != nil {
			return nil, fmt.Errorf("project config: %w", err)
		}
	}

	dest := config.DestPath(projectPath)
	result, err := install.Install(sel, install.Options{
		Dest:      dest,
		Mode:      mode,
		Overwrite: overwrite,
	})
	if err != nil {
		return nil, err
	}

	return &SyncResult{Selection: sel, Install: result, Dest: dest}, nil
}
