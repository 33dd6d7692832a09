package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// gameColumns is the player_games column order used for bulk loading.
// It matches the header expected in the CSV export.
var gameColumns = []string{
	"player_id", "player_name", "match_id", "game_date", "season", "round",
	"venue", "home_team", "away_team", "team", "guernsey",
	"disposals", "goals", "kicks", "handballs", "marks", "tackles",
}

const dateLayout = "2006-01-02"

// LoadGames bulk-loads historical game rows from a CSV export using COPY.
// Blank stat cells become NULL — older games legitimately lack modern stat
// categories, and NULL must stay distinguishable from zero.
func LoadGames(ctx context.Context, pool *pgxpool.Pool, path string, logger *slog.Logger) (Result, error) {
	var result Result

	f, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(gameColumns) {
		return result, fmt.Errorf("unexpected header: got %d columns, want %d", len(header), len(gameColumns))
	}

	var rows [][]interface{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.AddErrorf("line %d: %v", line, err)
			result.RowsSkipped++
			continue
		}

		row, err := parseGameRecord(record)
		if err != nil {
			result.AddErrorf("line %d: %v", line, err)
			result.RowsSkipped++
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		logger.Warn("No loadable rows in file", "path", path, "skipped", result.RowsSkipped)
		return result, nil
	}

	copied, err := pool.CopyFrom(ctx, pgx.Identifier{"player_games"}, gameColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return result, fmt.Errorf("copy into player_games: %w", err)
	}
	result.GamesLoaded = int(copied)

	logger.Info("Game rows loaded", "path", path,
		"loaded", result.GamesLoaded, "skipped", result.RowsSkipped)
	return result, nil
}

func parseGameRecord(record []string) ([]interface{}, error) {
	playerID, err := strconv.Atoi(record[0])
	if err != nil {
		return nil, fmt.Errorf("player_id %q: %w", record[0], err)
	}
	matchID, err := strconv.Atoi(record[2])
	if err != nil {
		return nil, fmt.Errorf("match_id %q: %w", record[2], err)
	}
	gameDate, err := time.Parse(dateLayout, record[3])
	if err != nil {
		return nil, fmt.Errorf("game_date %q: %w", record[3], err)
	}
	season, err := strconv.Atoi(record[4])
	if err != nil {
		return nil, fmt.Errorf("season %q: %w", record[4], err)
	}

	row := []interface{}{
		playerID, record[1], matchID, gameDate, season,
		record[5], record[6], record[7], record[8], record[9],
	}
	// Guernsey and stat columns: blank means NULL.
	for _, cell := range record[10:] {
		v, err := nullableInt(cell)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}

func nullableInt(cell string) (interface{}, error) {
	if cell == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return nil, fmt.Errorf("numeric cell %q: %w", cell, err)
	}
	return n, nil
}
