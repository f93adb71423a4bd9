package cli

import (
	"github.com/spf13/cobra"

	"github.com/skillset-labs/skillset/internal/branding"
	"github.com/skillset-labs/skillset/internal/config"
	"github.com/skillset-labs/skillset/internal/logger"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootVerbose  bool
	rootLogLevel string
	rootSources  []string
	rootRules    string
	rootStrict   bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` discovers skill packages in catalog sources, resolves worker-group
selections through inclusion rules, and installs the result where AI coding
agents can load it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootVerbose {
			logger.SetVerbose(true)
		} else if rootLogLevel != "" {
			logger.SetLevel(rootLogLevel)
		}
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringArrayVar(&rootSources, "source", nil, "Catalog source directory (repeatable, overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootRules, "rules", "", "Inclusion rules file (overrides config and defaults)")
	rootCmd.PersistentFlags().BoolVar(&rootStrict, "strict", false, "Treat diagnostics as errors")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
