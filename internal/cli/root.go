package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/backfill-labs/backfill/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool

	// logger is shared by every command and handed to the engine.
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "backfill"})
)

var rootCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Plan and inspect compatibility-shim installation for versioned hosts",
	Long: `backfill decides, per declared capability, whether an older host release
needs a fallback implementation installed, under what name, and when.
Catalog files describe the capabilities; the plan and lint commands let
you inspect the decisions for any host version without loading a host.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		return err
	}
	return nil
}
