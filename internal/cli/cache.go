package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/postdeck/internal/cache"
	"github.com/rshade/postdeck/internal/config"
)

// cacheStatsOutput is the structured form of cache stats.
type cacheStatsOutput struct {
	Enabled    bool   `json:"enabled"              yaml:"enabled"`
	Directory  string `json:"directory,omitempty"  yaml:"directory,omitempty"`
	TTLSeconds int    `json:"ttl_seconds,omitempty" yaml:"ttl_seconds,omitempty"`
	Entries    int    `json:"entries"              yaml:"entries"`
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clean the response cache",
		Long: `The response cache keeps GET responses from the backend on disk for
cache.ttl_seconds. It is off unless cache.enabled is set.`,
	}
	cmd.AddCommand(newCacheStatsCmd(), newCachePruneCmd(), newCacheClearCmd())
	return cmd
}

// openCache opens the configured cache directory. A disabled cache yields a
// store whose IsEnabled is false.
func openCache() (*cache.FileStore, error) {
	cfg := config.GetGlobalConfig()
	store, err := cache.NewFileStore(cfg.Cache.Directory, cfg.Cache.Enabled, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the cache location, ttl and entry count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			store, err := openCache()
			if err != nil {
				return err
			}

			stats := cacheStatsOutput{Enabled: store.IsEnabled()}
			if stats.Enabled {
				stats.Directory = store.Directory()
				stats.TTLSeconds = store.TTL()
				if stats.Entries, err = store.Count(); err != nil {
					return fmt.Errorf("counting cache entries: %w", err)
				}
			}

			if format != outputTable {
				return writeStructured(cmd.OutOrStdout(), format, stats)
			}

			out := cmd.OutOrStdout()
			if !stats.Enabled {
				fmt.Fprintln(out, "Cache: disabled")
				return nil
			}
			ttl := time.Duration(stats.TTLSeconds) * time.Second
			fmt.Fprintf(out, "Cache: %s\n", stats.Directory)
			fmt.Fprintf(out, "TTL: %s\n", cache.FormatDuration(ttl))
			fmt.Fprintf(out, "Entries: %s\n", formatCount(stats.Entries))
			return nil
		},
	}
}

func newCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache()
			if err != nil {
				return err
			}
			removed, err := store.CleanupExpired()
			if err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
			logger.Debug().Int("removed", removed).Str("dir", store.Directory()).Msg("cache pruned")
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s expired entries\n", formatCount(removed))
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cache entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache()
			if err != nil {
				return err
			}
			if err = store.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		},
	}
}
