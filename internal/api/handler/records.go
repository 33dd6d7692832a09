package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/backpocket/aflstats-data/internal/api/respond"
	"github.com/backpocket/aflstats-data/internal/cache"
)

const recordLimit = 10

// matchRow is one match with both team scores, as stored.
type matchRow struct {
	ID         int
	Season     int
	Round      string
	Venue      string
	HomeTeam   string
	AwayTeam   string
	HomePoints int
	AwayPoints int
}

// ScoreRecord is a single-team high score derived from a match row.
type ScoreRecord struct {
	MatchID  int    `json:"match_id"`
	Season   int    `json:"season"`
	Round    string `json:"round"`
	Venue    string `json:"venue"`
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
	Points   int    `json:"points"`
}

// MarginRecord is a winning margin derived from a match row.
type MarginRecord struct {
	MatchID int    `json:"match_id"`
	Season  int    `json:"season"`
	Round   string `json:"round"`
	Venue   string `json:"venue"`
	Winner  string `json:"winner"`
	Loser   string `json:"loser"`
	Margin  int    `json:"margin"`
}

// GetRecords returns all-time highest scores and biggest winning margins.
// @Summary Get all-time records
// @Description Returns the highest single-team scores and biggest winning margins across all recorded matches.
// @Tags records
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /records [get]
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "records:all"
	ttl := cache.TTLRecords

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	highRows, err := h.queryMatches(r, "record_high_scores")
	if err != nil {
		h.logger.Error("high score records query failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "BACKEND_FAILURE", "Failed to load records")
		return
	}
	marginRows, err := h.queryMatches(r, "record_margins")
	if err != nil {
		h.logger.Error("margin records query failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "BACKEND_FAILURE", "Failed to load records")
		return
	}

	payload := map[string]interface{}{
		"highest_scores":  shapeScores(highRows),
		"biggest_margins": shapeMargins(marginRows),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODING_FAILURE", "Failed to encode records")
		return
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}

func (h *Handler) queryMatches(r *http.Request, stmt string) ([]matchRow, error) {
	rows, err := h.pool.Query(r.Context(), stmt, recordLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatchRows(rows)
}

func scanMatchRows(rows pgx.Rows) ([]matchRow, error) {
	var out []matchRow
	for rows.Next() {
		var m matchRow
		if err := rows.Scan(&m.ID, &m.Season, &m.Round, &m.Venue,
			&m.HomeTeam, &m.AwayTeam, &m.HomePoints, &m.AwayPoints); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// shapeScores picks the higher of the home/away scores per match.
// Duplicate match rows from the denormalized source collapse to one record.
func shapeScores(rows []matchRow) []ScoreRecord {
	records := []ScoreRecord{}
	seen := map[int]bool{}
	for _, m := range rows {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true

		rec := ScoreRecord{
			MatchID: m.ID, Season: m.Season, Round: m.Round, Venue: m.Venue,
			Team: m.HomeTeam, Opponent: m.AwayTeam, Points: m.HomePoints,
		}
		if m.AwayPoints > m.HomePoints {
			rec.Team, rec.Opponent, rec.Points = m.AwayTeam, m.HomeTeam, m.AwayPoints
		}
		records = append(records, rec)
	}
	return records
}

// shapeMargins derives winner/loser and margin per match. Draws carry a
// zero margin and keep the home side first.
func shapeMargins(rows []matchRow) []MarginRecord {
	records := []MarginRecord{}
	seen := map[int]bool{}
	for _, m := range rows {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true

		rec := MarginRecord{
			MatchID: m.ID, Season: m.Season, Round: m.Round, Venue: m.Venue,
			Winner: m.HomeTeam, Loser: m.AwayTeam, Margin: m.HomePoints - m.AwayPoints,
		}
		if m.AwayPoints > m.HomePoints {
			rec.Winner, rec.Loser, rec.Margin = m.AwayTeam, m.HomeTeam, m.AwayPoints-m.HomePoints
		}
		records = append(records, rec)
	}
	return records
}
