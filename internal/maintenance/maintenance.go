// Package maintenance runs periodic background tasks as Go tickers.
// Replaces pg_cron — all scheduled work is driven from Go since the API
// is already a persistent, long-running service.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	RefreshInterval time.Duration // Career/season aggregate refresh
	CleanupInterval time.Duration // Stale fixture rows
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 6 * time.Hour,
		CleanupInterval: 24 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, pool *pgxpool.Pool, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"refresh", cfg.RefreshInterval,
		"cleanup", cfg.CleanupInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Refresh: keep the precomputed career/season aggregates in step with
	// newly loaded game rows.
	if cfg.RefreshInterval > 0 {
		t := time.NewTicker(cfg.RefreshInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() {
			if err := RefreshAggregates(ctx, pool, logger); err != nil {
				logger.Warn("Aggregate refresh failed", "error", err)
			}
		})
	}

	// Cleanup: drop fixtures whose start time is long past — they exist as
	// matches by then and only clutter the upcoming-fixtures query.
	if cfg.CleanupInterval > 0 {
		t := time.NewTicker(cfg.CleanupInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { cleanupFixtures(ctx, pool, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

func cleanupFixtures(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) {
	tag, err := pool.Exec(ctx, `
		DELETE FROM fixtures
		WHERE start_time < NOW() - INTERVAL '7 days'`)
	if err != nil {
		logger.Warn("Cleanup: failed to purge stale fixtures", "error", err)
	} else if tag.RowsAffected() > 0 {
		logger.Info("Cleanup: purged stale fixtures", "count", tag.RowsAffected())
	}
}
