// Package career resolves a player's full career view from three partially
// overlapping sources: the precomputed career_profiles aggregate, per-season
// totals, and raw per-game rows. Any of the three may be absent or stale;
// the resolver reconciles them without ever mixing two sources for one field.
package career

import (
	"context"
	"time"
)

// StatLine holds the tracked stat set. Nil means the value is unknown —
// the stat schema expanded over the decades, so older games legitimately
// have fewer populated fields. Nil is never treated as zero.
type StatLine struct {
	Disposals *int `json:"disposals"`
	Goals     *int `json:"goals"`
	Kicks     *int `json:"kicks"`
	Handballs *int `json:"handballs"`
	Marks     *int `json:"marks"`
	Tackles   *int `json:"tackles"`
}

// AverageLine holds per-game averages, rounded to one decimal place.
type AverageLine struct {
	Disposals *float64 `json:"disposals"`
	Goals     *float64 `json:"goals"`
	Kicks     *float64 `json:"kicks"`
	Handballs *float64 `json:"handballs"`
	Marks     *float64 `json:"marks"`
	Tackles   *float64 `json:"tackles"`
}

// Profile is the precomputed lifetime aggregate row for a player.
// Fields may be nil when the upstream aggregate lacks them.
type Profile struct {
	PlayerID    int
	Name        string
	Games       *int
	FirstSeason *int
	LastSeason  *int
	Totals      StatLine
}

// SeasonTotal is one (player, season) aggregate row.
type SeasonTotal struct {
	Season int      `json:"season"`
	Team   string   `json:"team"`
	Games  int      `json:"games"`
	Totals StatLine `json:"totals"`
}

// GameRow is one match's worth of raw stats for one player.
type GameRow struct {
	MatchID    int       `json:"match_id"`
	PlayerName string    `json:"-"`
	Date       time.Time `json:"date"`
	Season     int       `json:"season"`
	Round      string    `json:"round"`
	Venue      string    `json:"venue"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	Team       string    `json:"team"`
	Guernsey   *int      `json:"guernsey"`
	Stats      StatLine  `json:"stats"`
}

// StintRow is the minimal projection used to build team stints:
// one row per game, ordered ascending by date then match id.
type StintRow struct {
	Team     string
	Guernsey *int
	Date     time.Time
}

// Stint is a period a player spent registered to one team, ordered by the
// team's first appearance. Guernseys are listed in first-worn order.
type Stint struct {
	Team      string `json:"team"`
	Games     int    `json:"games"`
	Guernseys []int  `json:"guernseys"`
}

// ResolvedProfile is the merged career header. Sources records which source
// supplied each numeric field ("profile", "seasons", or "games_page" — the
// last is pagination-biased and therefore lower confidence).
type ResolvedProfile struct {
	PlayerID    int               `json:"player_id"`
	Name        string            `json:"name"`
	TotalGames  *int              `json:"total_games"`
	FirstSeason *int              `json:"first_season"`
	LastSeason  *int              `json:"last_season"`
	Totals      StatLine          `json:"totals"`
	Averages    AverageLine       `json:"averages"`
	Best        StatLine          `json:"best"`
	Sources     map[string]string `json:"sources"`
}

// Resolved is the assembled response for one career request.
type Resolved struct {
	Profile    ResolvedProfile `json:"profile"`
	Seasons    []SeasonTotal   `json:"seasons"`
	Games      []GameRow       `json:"games"`
	Debut      *GameRow        `json:"debut"`
	TeamStints []Stint         `json:"team_stints"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

// Store is the collaborator contract against the hosted database. Each call
// returns zero or more uniform rows; (nil, nil) means "no data", a non-nil
// error means the backend call itself failed. The two must stay
// distinguishable — the fallback chain depends on it.
type Store interface {
	// Profile returns the precomputed lifetime aggregate, or nil if absent.
	Profile(ctx context.Context, playerID int) (*Profile, error)
	// SeasonTotals returns per-season rows ordered ascending by season.
	SeasonTotals(ctx context.Context, playerID int) ([]SeasonTotal, error)
	// GamesPage returns one descending-date window of game rows.
	GamesPage(ctx context.Context, playerID, limit, offset int) ([]GameRow, error)
	// StatMaxes returns the maximum of each stat across the full history.
	StatMaxes(ctx context.Context, playerID int) (StatLine, error)
	// Debut returns the chronologically earliest game, or nil if none.
	Debut(ctx context.Context, playerID int) (*GameRow, error)
	// StintRows returns the full history as (team, guernsey, date) rows,
	// ordered ascending by date then match id.
	StintRows(ctx context.Context, playerID int) ([]StintRow, error)
}
