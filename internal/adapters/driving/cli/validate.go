package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spatiolabs/stacval/internal/adapters/driven/config/file"
	"github.com/spatiolabs/stacval/internal/adapters/driven/fetch"
	"github.com/spatiolabs/stacval/internal/adapters/driven/schemacache"
	"github.com/spatiolabs/stacval/internal/adapters/driven/schemaregistry"
	"github.com/spatiolabs/stacval/internal/adapters/driven/storage/sqlite"
	"github.com/spatiolabs/stacval/internal/core/ports/driven"
	"github.com/spatiolabs/stacval/internal/core/ports/driving"
	"github.com/spatiolabs/stacval/internal/core/services"
)

var (
	validateRecursive   bool
	validateConcurrency int
	validateTimeout     time.Duration
	validateFailFast    bool
	validateCacheDir    string
	validateLenient     bool
	validateCoreOnly    bool
	validateCustom      string
	validateVersion     string
	validateLinks       bool
	validateAssets      bool
	validateMaxDepth    int
	validateJSON        bool
	validateLogFile     string
)

var validateCmd = &cobra.Command{
	Use:   "validate [location]",
	Short: "Validate a STAC document or catalog tree",
	Long: `Validates the STAC document at the given path or URL against its
core schema and any declared extension schemas. With --recursive, the
document's child and item links are crawled and every reachable
document is validated; each unique location is visited exactly once,
and broken links are reported without aborting the crawl.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	flags := validateCmd.Flags()
	flags.BoolVarP(&validateRecursive, "recursive", "r", false, "crawl child and item links")
	flags.IntVarP(&validateConcurrency, "concurrency", "c", services.DefaultConcurrency, "max parallel fetch/validate workers")
	flags.DurationVar(&validateTimeout, "timeout", fetch.DefaultTimeout, "per-fetch timeout")
	flags.BoolVar(&validateFailFast, "fail-fast", false, "stop crawling at the first invalid document")
	flags.StringVar(&validateCacheDir, "cache-dir", "", "persist fetched schemas under this directory")
	flags.BoolVar(&validateLenient, "lenient-extensions", false, "treat unreachable extension schemas as warnings")
	flags.BoolVar(&validateCoreOnly, "core", false, "validate against the core schema only")
	flags.StringVar(&validateCustom, "custom", "", "validate against this schema URL or path instead")
	flags.StringVar(&validateVersion, "stac-version", "", "validate against this STAC version instead of the declared one")
	flags.BoolVar(&validateLinks, "links", false, "probe link targets for reachability")
	flags.BoolVar(&validateAssets, "assets", false, "probe asset hrefs for reachability")
	flags.IntVar(&validateMaxDepth, "max-depth", 0, "bound crawl depth from the root (0 = unlimited)")
	flags.BoolVar(&validateJSON, "json", false, "output the full report as JSON")
	flags.StringVar(&validateLogFile, "log", "", "also write the JSON report to this file")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	location := args[0]
	cfg := loadConfig()

	runner, cleanup, err := buildRunner(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// External cancellation: let in-flight work finish, report partial.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := runner.Run(ctx, location, validateRecursive)
	if err != nil {
		return err
	}

	if validateLogFile != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling report: %w", err)
		}
		if err := os.WriteFile(validateLogFile, data, 0600); err != nil {
			return fmt.Errorf("writing report log: %w", err)
		}
	}

	if validateJSON {
		if err := outputReportJSON(cmd, report); err != nil {
			return err
		}
	} else {
		renderReport(cmd, report)
	}

	switch {
	case report.Invalid > 0:
		exitCode = exitInvalid
	case !report.Complete:
		exitCode = exitFatal
	default:
		exitCode = exitOK
	}
	return nil
}

// buildRunner assembles the validation pipeline from flags and config.
// Flag values win; unset flags fall back to config, then defaults.
func buildRunner(cmd *cobra.Command, cfg *file.ConfigStore) (driving.ValidationRunner, func(), error) {
	concurrency := validateConcurrency
	timeout := validateTimeout
	cacheDir := validateCacheDir
	lenient := validateLenient

	if cfg != nil {
		if !cmd.Flags().Changed("concurrency") {
			if v := cfg.GetInt("validate.concurrency"); v > 0 {
				concurrency = v
			}
		}
		if !cmd.Flags().Changed("timeout") {
			if v := cfg.GetDuration("validate.timeout"); v > 0 {
				timeout = v
			}
		}
		if !cmd.Flags().Changed("cache-dir") && cacheDir == "" {
			cacheDir = cfg.GetString("validate.cache_dir")
		}
		if !cmd.Flags().Changed("lenient-extensions") {
			lenient = cfg.GetBool("validate.lenient_extensions")
		}
	}

	var registryCfg schemaregistry.Config
	if cfg != nil {
		registryCfg = schemaregistry.Config{
			CoreURL:      cfg.GetString("registry.core_url"),
			LegacyURL:    cfg.GetString("registry.legacy_url"),
			ExtensionURL: cfg.GetString("registry.extension_url"),
		}
	}

	var blobs driven.SchemaBlobStore
	if cacheDir != "" {
		store, err := sqlite.NewStore(cacheDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening schema cache: %w", err)
		}
		blobs = store
	}

	fetcher := fetch.New(timeout)
	schemas := schemacache.New(schemaregistry.New(registryCfg), fetcher, blobs)

	runner := services.NewRunner(fetcher, schemas,
		driving.ValidateOptions{
			VersionOverride:   validateVersion,
			CoreOnly:          validateCoreOnly,
			CustomSchema:      validateCustom,
			LenientExtensions: lenient,
			CheckLinks:        validateLinks,
			CheckAssets:       validateAssets,
		},
		driving.CrawlOptions{
			Concurrency: concurrency,
			FailFast:    validateFailFast,
			MaxDepth:    validateMaxDepth,
		},
	)

	cleanup := func() {
		schemas.Close() //nolint:errcheck
	}
	return runner, cleanup, nil
}
