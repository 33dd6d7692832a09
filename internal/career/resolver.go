package career

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
)

// PageSize is the fixed game-page window size.
const PageSize = 50

// Resolver assembles a coherent career view for one player per request.
// It holds no cross-request state.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

// NewResolver creates a resolver over the given store.
func NewResolver(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve fetches and merges all career sources for playerID. page is
// 1-based; values below 1 are normalized to 1.
//
// The three primary fetches (profile, seasons, game page) run concurrently,
// as do the enrichment fetches (bests, debut, stints). A failed enrichment
// fetch degrades to null/empty. The request errors only when every primary
// fetch fails — a syntactically valid player id otherwise always yields a
// response body, even with no data at all.
func (r *Resolver) Resolve(ctx context.Context, playerID, page int) (*Resolved, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	var (
		wg sync.WaitGroup

		profile  *Profile
		seasons  []SeasonTotal
		games    []GameRow
		maxes    StatLine
		debut    *GameRow
		stints   []StintRow
		profErr  error
		seasErr  error
		gamesErr error
		maxErr   error
		debutErr error
		stintErr error
	)

	wg.Add(6)
	go func() { defer wg.Done(); profile, profErr = r.store.Profile(ctx, playerID) }()
	go func() { defer wg.Done(); seasons, seasErr = r.store.SeasonTotals(ctx, playerID) }()
	go func() { defer wg.Done(); games, gamesErr = r.store.GamesPage(ctx, playerID, PageSize, offset) }()
	go func() { defer wg.Done(); maxes, maxErr = r.store.StatMaxes(ctx, playerID) }()
	go func() { defer wg.Done(); debut, debutErr = r.store.Debut(ctx, playerID) }()
	go func() { defer wg.Done(); stints, stintErr = r.store.StintRows(ctx, playerID) }()
	wg.Wait()

	if profErr != nil && seasErr != nil && gamesErr != nil {
		return nil, fmt.Errorf("resolve player %d: all primary fetches failed: %w", playerID, gamesErr)
	}

	// Degrade failed fetches to "absent" and continue down the chain.
	if profErr != nil {
		r.logger.Warn("profile fetch failed, falling back", "player_id", playerID, "error", profErr)
		profile = nil
	}
	if seasErr != nil {
		r.logger.Warn("season totals fetch failed, falling back", "player_id", playerID, "error", seasErr)
		seasons = nil
	}
	if gamesErr != nil {
		r.logger.Warn("game page fetch failed", "player_id", playerID, "page", page, "error", gamesErr)
		games = nil
	}
	if maxErr != nil {
		r.logger.Warn("stat maxes fetch failed", "player_id", playerID, "error", maxErr)
		maxes = StatLine{}
	}
	if debutErr != nil {
		r.logger.Warn("debut fetch failed", "player_id", playerID, "error", debutErr)
		debut = nil
	}
	if stintErr != nil {
		r.logger.Warn("stint rows fetch failed", "player_id", playerID, "error", stintErr)
		stints = nil
	}

	header := mergeProfile(playerID, profile, seasons, games)
	header.Best = maxes
	header.Averages = deriveAverages(header.TotalGames, header.Totals)

	out := &Resolved{
		Profile:    header,
		Seasons:    seasons,
		Games:      games,
		Debut:      debut,
		TeamStints: buildStints(stints),
		Page:       page,
		Limit:      PageSize,
	}
	if out.Seasons == nil {
		out.Seasons = []SeasonTotal{}
	}
	if out.Games == nil {
		out.Games = []GameRow{}
	}
	return out, nil
}

// mergeProfile merges the three sources field by field using the preference
// order profile → season-sum → page-sum. Two sources are never averaged or
// otherwise combined for the same field.
func mergeProfile(playerID int, profile *Profile, seasons []SeasonTotal, games []GameRow) ResolvedProfile {
	out := ResolvedProfile{
		PlayerID: playerID,
		Sources:  map[string]string{},
	}

	seasonSum := sumSeasons(seasons)
	pageSum := sumGames(games)

	// Display name: profile, else any game row.
	if profile != nil && profile.Name != "" {
		out.Name = profile.Name
	} else if len(games) > 0 {
		out.Name = games[0].PlayerName
	}

	// Games count. Only fall back to the page-derived count when no upstream
	// total exists at all, so total_games can never undercount the visible set.
	switch {
	case profile != nil && nonZero(profile.Games):
		out.TotalGames = profile.Games
		out.Sources["total_games"] = "profile"
	case seasonSum.games > 0:
		out.TotalGames = intp(seasonSum.games)
		out.Sources["total_games"] = "seasons"
	case len(games) > 0:
		out.TotalGames = intp(len(games))
		out.Sources["total_games"] = "games_page"
	}

	// Career span.
	if profile != nil && profile.FirstSeason != nil && profile.LastSeason != nil {
		out.FirstSeason = profile.FirstSeason
		out.LastSeason = profile.LastSeason
		out.Sources["seasons_span"] = "profile"
	} else if len(seasons) > 0 {
		out.FirstSeason = intp(seasons[0].Season)
		out.LastSeason = intp(seasons[len(seasons)-1].Season)
		out.Sources["seasons_span"] = "seasons"
	} else if len(games) > 0 {
		first, last := games[len(games)-1].Season, games[0].Season
		out.FirstSeason = intp(first)
		out.LastSeason = intp(last)
		out.Sources["seasons_span"] = "games_page"
	}

	var profTotals StatLine
	if profile != nil {
		profTotals = profile.Totals
	}
	out.Totals.Disposals = mergeStat(out.Sources, "disposals", profTotals.Disposals, seasonSum.totals.Disposals, pageSum.totals.Disposals)
	out.Totals.Goals = mergeStat(out.Sources, "goals", profTotals.Goals, seasonSum.totals.Goals, pageSum.totals.Goals)
	out.Totals.Kicks = mergeStat(out.Sources, "kicks", profTotals.Kicks, seasonSum.totals.Kicks, pageSum.totals.Kicks)
	out.Totals.Handballs = mergeStat(out.Sources, "handballs", profTotals.Handballs, seasonSum.totals.Handballs, pageSum.totals.Handballs)
	out.Totals.Marks = mergeStat(out.Sources, "marks", profTotals.Marks, seasonSum.totals.Marks, pageSum.totals.Marks)
	out.Totals.Tackles = mergeStat(out.Sources, "tackles", profTotals.Tackles, seasonSum.totals.Tackles, pageSum.totals.Tackles)

	return out
}

// mergeStat picks one source for a stat total and records which one won.
func mergeStat(sources map[string]string, key string, profile, seasonSum, pageSum *int) *int {
	switch {
	case nonZero(profile):
		sources[key] = "profile"
		return profile
	case nonZero(seasonSum):
		sources[key] = "seasons"
		return seasonSum
	case nonZero(pageSum):
		sources[key] = "games_page"
		return pageSum
	}
	return nil
}

type aggregate struct {
	games  int
	totals StatLine
}

// sumSeasons aggregates the season rows. A stat stays nil unless at least
// one season carries it.
func sumSeasons(seasons []SeasonTotal) aggregate {
	var agg aggregate
	for _, s := range seasons {
		agg.games += s.Games
		addStat(&agg.totals.Disposals, s.Totals.Disposals)
		addStat(&agg.totals.Goals, s.Totals.Goals)
		addStat(&agg.totals.Kicks, s.Totals.Kicks)
		addStat(&agg.totals.Handballs, s.Totals.Handballs)
		addStat(&agg.totals.Marks, s.Totals.Marks)
		addStat(&agg.totals.Tackles, s.Totals.Tackles)
	}
	return agg
}

// sumGames aggregates the visible page window. Pagination-biased: only used
// as the last fallback, and flagged as such by mergeStat.
func sumGames(games []GameRow) aggregate {
	var agg aggregate
	agg.games = len(games)
	for _, g := range games {
		addStat(&agg.totals.Disposals, g.Stats.Disposals)
		addStat(&agg.totals.Goals, g.Stats.Goals)
		addStat(&agg.totals.Kicks, g.Stats.Kicks)
		addStat(&agg.totals.Handballs, g.Stats.Handballs)
		addStat(&agg.totals.Marks, g.Stats.Marks)
		addStat(&agg.totals.Tackles, g.Stats.Tackles)
	}
	return agg
}

func addStat(dst **int, v *int) {
	if v == nil {
		return
	}
	if *dst == nil {
		*dst = intp(0)
	}
	**dst += *v
}

// deriveAverages computes per-game averages only when a games count is
// available, rounding half-up to one decimal place.
func deriveAverages(games *int, totals StatLine) AverageLine {
	var avg AverageLine
	if games == nil || *games <= 0 {
		return avg
	}
	n := float64(*games)
	avg.Disposals = avgOf(totals.Disposals, n)
	avg.Goals = avgOf(totals.Goals, n)
	avg.Kicks = avgOf(totals.Kicks, n)
	avg.Handballs = avgOf(totals.Handballs, n)
	avg.Marks = avgOf(totals.Marks, n)
	avg.Tackles = avgOf(totals.Tackles, n)
	return avg
}

func avgOf(total *int, games float64) *float64 {
	if total == nil {
		return nil
	}
	v := round1(float64(*total) / games)
	return &v
}

// round1 rounds half-up to one decimal place.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// buildStints groups the full ascending game history into one stint per team,
// ordered by each team's first appearance. Guernsey numbers are recorded the
// first time they are seen per team.
func buildStints(rows []StintRow) []Stint {
	stints := []Stint{}
	index := map[string]int{} // team -> position in stints
	seen := map[string]map[int]bool{}

	for _, row := range rows {
		i, ok := index[row.Team]
		if !ok {
			i = len(stints)
			index[row.Team] = i
			stints = append(stints, Stint{Team: row.Team, Guernseys: []int{}})
			seen[row.Team] = map[int]bool{}
		}
		stints[i].Games++
		if row.Guernsey != nil && !seen[row.Team][*row.Guernsey] {
			seen[row.Team][*row.Guernsey] = true
			stints[i].Guernseys = append(stints[i].Guernseys, *row.Guernsey)
		}
	}
	return stints
}

func nonZero(v *int) bool {
	return v != nil && *v != 0
}

func intp(v int) *int {
	return &v
}
