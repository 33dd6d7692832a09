package career

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store over the pool's prepared statements.
// It is the single conforming adapter to the hosted database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store over an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var _ Store = (*PostgresStore)(nil)

// Profile fetches the career_profiles row. Absence is not an error.
func (s *PostgresStore) Profile(ctx context.Context, playerID int) (*Profile, error) {
	p := Profile{PlayerID: playerID}
	err := s.pool.QueryRow(ctx, "player_profile", playerID).Scan(
		&p.Name, &p.Games, &p.FirstSeason, &p.LastSeason,
		&p.Totals.Disposals, &p.Totals.Goals, &p.Totals.Kicks,
		&p.Totals.Handballs, &p.Totals.Marks, &p.Totals.Tackles,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("player profile %d: %w", playerID, err)
	}
	return &p, nil
}

// SeasonTotals fetches per-season rows, ascending by season.
func (s *PostgresStore) SeasonTotals(ctx context.Context, playerID int) ([]SeasonTotal, error) {
	rows, err := s.pool.Query(ctx, "player_seasons", playerID)
	if err != nil {
		return nil, fmt.Errorf("player seasons %d: %w", playerID, err)
	}
	defer rows.Close()

	var seasons []SeasonTotal
	for rows.Next() {
		var st SeasonTotal
		if err := rows.Scan(
			&st.Season, &st.Team, &st.Games,
			&st.Totals.Disposals, &st.Totals.Goals, &st.Totals.Kicks,
			&st.Totals.Handballs, &st.Totals.Marks, &st.Totals.Tackles,
		); err != nil {
			return nil, fmt.Errorf("scan season row: %w", err)
		}
		seasons = append(seasons, st)
	}
	return seasons, rows.Err()
}

// GamesPage fetches one descending-date window of game rows.
func (s *PostgresStore) GamesPage(ctx context.Context, playerID, limit, offset int) ([]GameRow, error) {
	rows, err := s.pool.Query(ctx, "player_games_page", playerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("player games page %d: %w", playerID, err)
	}
	defer rows.Close()
	return scanGameRows(rows)
}

// StatMaxes fetches the full-history maximum of each stat column.
// MAX over zero rows yields NULLs, which map to an empty StatLine.
func (s *PostgresStore) StatMaxes(ctx context.Context, playerID int) (StatLine, error) {
	var line StatLine
	err := s.pool.QueryRow(ctx, "player_stat_maxes", playerID).Scan(
		&line.Disposals, &line.Goals, &line.Kicks,
		&line.Handballs, &line.Marks, &line.Tackles,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return StatLine{}, nil
	}
	if err != nil {
		return StatLine{}, fmt.Errorf("player stat maxes %d: %w", playerID, err)
	}
	return line, nil
}

// Debut fetches the earliest game, smallest match id breaking ties.
func (s *PostgresStore) Debut(ctx context.Context, playerID int) (*GameRow, error) {
	rows, err := s.pool.Query(ctx, "player_debut", playerID)
	if err != nil {
		return nil, fmt.Errorf("player debut %d: %w", playerID, err)
	}
	defer rows.Close()

	games, err := scanGameRows(rows)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}
	return &games[0], nil
}

// StintRows fetches the full ascending (team, guernsey, date) history.
func (s *PostgresStore) StintRows(ctx context.Context, playerID int) ([]StintRow, error) {
	rows, err := s.pool.Query(ctx, "player_stint_rows", playerID)
	if err != nil {
		return nil, fmt.Errorf("player stint rows %d: %w", playerID, err)
	}
	defer rows.Close()

	var out []StintRow
	for rows.Next() {
		var sr StintRow
		if err := rows.Scan(&sr.Team, &sr.Guernsey, &sr.Date); err != nil {
			return nil, fmt.Errorf("scan stint row: %w", err)
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func scanGameRows(rows pgx.Rows) ([]GameRow, error) {
	var games []GameRow
	for rows.Next() {
		var g GameRow
		if err := rows.Scan(
			&g.MatchID, &g.PlayerName, &g.Date, &g.Season, &g.Round, &g.Venue,
			&g.HomeTeam, &g.AwayTeam, &g.Team, &g.Guernsey,
			&g.Stats.Disposals, &g.Stats.Goals, &g.Stats.Kicks,
			&g.Stats.Handballs, &g.Stats.Marks, &g.Stats.Tackles,
		); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
