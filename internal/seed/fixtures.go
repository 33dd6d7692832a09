package seed

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/backpocket/aflstats-data/internal/feed"
)

// SyncFixtures pulls the upcoming-fixtures document from the feed service
// and upserts each fixture. Individual upsert failures are recorded but do
// not abort the sync.
func SyncFixtures(ctx context.Context, pool *pgxpool.Pool, client *feed.Client, logger *slog.Logger) (Result, error) {
	var result Result

	fixtures, err := client.UpcomingFixtures(ctx)
	if err != nil {
		return result, err
	}

	for _, f := range fixtures {
		_, err := pool.Exec(ctx, "upsert_fixture",
			f.ID, f.Season, f.Round, f.Venue, f.HomeTeam, f.AwayTeam, f.StartTime)
		if err != nil {
			result.AddErrorf("upsert fixture %d: %v", f.ID, err)
			continue
		}
		result.FixturesUpserted++
	}

	logger.Info("Fixtures synced",
		"fetched", len(fixtures), "upserted", result.FixturesUpserted, "errors", len(result.Errors))
	return result, nil
}
