package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RefreshAggregates refreshes the precomputed career and season aggregates
// after game rows change. Uses CONCURRENTLY so reads are not blocked during
// refresh. Called by the refresh ticker and by `aflstats-ingest refresh`.
func RefreshAggregates(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	views := []string{
		"season_totals",
		"career_profiles",
	}

	for _, v := range views {
		start := time.Now()
		_, err := pool.Exec(ctx, fmt.Sprintf("REFRESH MATERIALIZED VIEW CONCURRENTLY %s", v))
		dur := time.Since(start).Round(time.Millisecond)

		if err != nil {
			logger.Warn("Failed to refresh materialized view",
				"view", v, "duration", dur, "error", err)
			return fmt.Errorf("refresh %s: %w", v, err)
		}
		logger.Info("Refreshed materialized view", "view", v, "duration", dur)
	}
	return nil
}
