// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/backpocket/aflstats-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and ingestion
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Career resolver: precomputed lifetime aggregate (may be absent)
		"player_profile": `SELECT name, games, first_season, last_season,
			disposals, goals, kicks, handballs, marks, tackles
			FROM career_profiles WHERE player_id = $1`,

		// Career resolver: per-season aggregates
		"player_seasons": `SELECT season, team, games,
			disposals, goals, kicks, handballs, marks, tackles
			FROM season_totals WHERE player_id = $1 ORDER BY season`,

		// Career resolver: descending-date page window over raw game rows
		"player_games_page": `SELECT match_id, player_name, game_date, season, round, venue,
			home_team, away_team, team, guernsey,
			disposals, goals, kicks, handballs, marks, tackles
			FROM player_games WHERE player_id = $1
			ORDER BY game_date DESC, match_id DESC
			LIMIT $2 OFFSET $3`,

		// Career resolver: full-history single-game bests (page-independent)
		"player_stat_maxes": `SELECT MAX(disposals), MAX(goals), MAX(kicks),
			MAX(handballs), MAX(marks), MAX(tackles)
			FROM player_games WHERE player_id = $1`,

		// Career resolver: earliest game, smallest match id breaks ties
		"player_debut": `SELECT match_id, player_name, game_date, season, round, venue,
			home_team, away_team, team, guernsey,
			disposals, goals, kicks, handballs, marks, tackles
			FROM player_games WHERE player_id = $1
			ORDER BY game_date ASC, match_id ASC
			LIMIT 1`,

		// Career resolver: full ascending scan for team/guernsey stints
		"player_stint_rows": `SELECT team, guernsey, game_date
			FROM player_games WHERE player_id = $1
			ORDER BY game_date ASC, match_id ASC`,

		// Teams list (Postgres returns complete JSON)
		"teams_list": `SELECT json_agg(row_to_json(t) ORDER BY t.name) FROM teams t`,

		// Upcoming fixtures
		"upcoming_fixtures": `SELECT json_agg(row_to_json(f) ORDER BY f.start_time)
			FROM fixtures f WHERE f.start_time > NOW()`,

		// Records: match rows ranked by winning score / margin
		"record_high_scores": `SELECT id, season, round, venue,
			home_team, away_team, home_points, away_points
			FROM matches
			ORDER BY GREATEST(home_points, away_points) DESC, id ASC
			LIMIT $1`,
		"record_margins": `SELECT id, season, round, venue,
			home_team, away_team, home_points, away_points
			FROM matches
			ORDER BY ABS(home_points - away_points) DESC, id ASC
			LIMIT $1`,

		// Ingestion: fixture upsert from the upstream feed
		"upsert_fixture": `INSERT INTO fixtures (id, season, round, venue, home_team, away_team, start_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				round = EXCLUDED.round,
				venue = EXCLUDED.venue,
				home_team = EXCLUDED.home_team,
				away_team = EXCLUDED.away_team,
				start_time = EXCLUDED.start_time`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
