package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spatiolabs/stacval/internal/adapters/driven/storage/sqlite"
)

var cacheDir string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the on-disk schema cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show schema cache contents",
	Args:  cobra.NoArgs,
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached schemas",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "schema cache directory")
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCacheStore() (*sqlite.Store, error) {
	dir := cacheDir
	if dir == "" {
		if cfg := loadConfig(); cfg != nil {
			dir = cfg.GetString("validate.cache_dir")
		}
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening schema cache: %w", err)
	}
	return store, nil
}

func runCacheInfo(cmd *cobra.Command, _ []string) error {
	store, err := openCacheStore()
	if err != nil {
		return err
	}
	defer store.Close()

	count, size, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	cmd.Printf("Cache: %s\n", store.Path())
	cmd.Printf("Schemas: %d (%d bytes)\n", count, size)
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	store, err := openCacheStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(context.Background()); err != nil {
		return err
	}

	cmd.Println("Schema cache cleared.")
	return nil
}
