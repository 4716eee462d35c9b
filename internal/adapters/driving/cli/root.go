// Package cli implements the stacval command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/spatiolabs/stacval/internal/adapters/driven/config/file"
	"github.com/spatiolabs/stacval/internal/logger"
)

// version is the CLI version, overridable at build time.
var version = "0.2.0"

// Exit codes. Validation failures and incomplete crawls are
// distinguishable so scripts can tell "the tree is broken" from
// "the run did not cover the tree".
const (
	exitOK      = 0
	exitInvalid = 1
	exitFatal   = 2
)

var (
	verbose  bool
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "stacval",
	Short: "Validate STAC catalogs, collections and items",
	Long: `stacval validates SpatioTemporal Asset Catalog (STAC) documents
against their versioned core schemas and any declared extension schemas,
and can recursively crawl a linked catalog tree, validating every
reachable document.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
}

// Execute runs the root command and returns the process exit code:
// 0 when every visited document was valid and the run completed,
// 1 when validation failures were found, 2 for incomplete runs and
// fatal errors.
func Execute() int {
	exitCode = exitOK
	if err := rootCmd.Execute(); err != nil {
		return exitFatal
	}
	return exitCode
}

// loadConfig opens the config store, tolerating a missing or broken
// config file; flags then run against built-in defaults.
func loadConfig() *file.ConfigStore {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("Config unavailable: %v", err)
		return nil
	}
	return cfg
}
