// Command ingest is the AFL Stats data ingestion CLI.
//
// Usage:
//
//	aflstats-ingest load games --file games.csv
//	aflstats-ingest refresh
//	aflstats-ingest fixtures sync
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/backpocket/aflstats-data/internal/config"
	"github.com/backpocket/aflstats-data/internal/db"
	"github.com/backpocket/aflstats-data/internal/feed"
	"github.com/backpocket/aflstats-data/internal/maintenance"
	"github.com/backpocket/aflstats-data/internal/seed"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "aflstats-ingest",
		Short: "AFL Stats data ingestion CLI",
	}

	root.AddCommand(loadCmd())
	root.AddCommand(refreshCmd())
	root.AddCommand(fixturesCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// load command
// --------------------------------------------------------------------------

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load historical data exports",
	}
	cmd.AddCommand(loadGamesCmd())
	return cmd
}

func loadGamesCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Bulk-load player game rows from a CSV export",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result, err := seed.LoadGames(ctx, pool.Pool, file, logger)
				if err != nil {
					return err
				}
				logger.Info("Load finished",
					"duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("load error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to the games CSV export")
	return cmd
}

// --------------------------------------------------------------------------
// refresh command
// --------------------------------------------------------------------------

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh career and season aggregate views",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				return maintenance.RefreshAggregates(ctx, pool.Pool, logger)
			})
		},
	}
}

// --------------------------------------------------------------------------
// fixtures command
// --------------------------------------------------------------------------

func fixturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Fixture operations",
	}
	cmd.AddCommand(fixturesSyncCmd())
	return cmd
}

func fixturesSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync upcoming fixtures from the feed service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := feed.NewClient(cfg.LiveFeedURL, cfg.LiveClientSignature, cfg.LiveFeedTimeout)
				start := time.Now()
				result, err := seed.SyncFixtures(ctx, pool.Pool, client, logger)
				if err != nil {
					return err
				}
				logger.Info("Fixture sync finished",
					"duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("sync error", "error", e)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// withPool loads config, opens the pool, and runs fn under a signal-aware
// context.
func withPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
