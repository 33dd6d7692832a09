package handler

import (
	"net/http"

	"github.com/backpocket/aflstats-data/internal/api/respond"
	"github.com/backpocket/aflstats-data/internal/cache"
)

// GetTeams returns the full team list.
// Read-through cached: stale reads up to the TTL are acceptable.
// @Summary Get team list
// @Description Returns all AFL teams as JSON, served through the in-memory cache.
// @Tags teams
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "teams:all"
	ttl := cache.TTLTeams

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var raw []byte
	err := h.pool.QueryRow(r.Context(), "teams_list").Scan(&raw)
	if err != nil {
		h.logger.Error("teams list query failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "BACKEND_FAILURE", "Failed to load teams")
		return
	}
	// json_agg over zero rows yields NULL — an empty result is not an error.
	if raw == nil {
		raw = []byte("[]")
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// GetUpcomingFixtures returns fixtures that have not started yet.
// @Summary Get upcoming fixtures
// @Description Returns upcoming fixtures ordered by start time, served through the in-memory cache.
// @Tags fixtures
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /fixtures/upcoming [get]
func (h *Handler) GetUpcomingFixtures(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "fixtures:upcoming"
	ttl := cache.TTLFixtures

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var raw []byte
	err := h.pool.QueryRow(r.Context(), "upcoming_fixtures").Scan(&raw)
	if err != nil {
		h.logger.Error("upcoming fixtures query failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "BACKEND_FAILURE", "Failed to load fixtures")
		return
	}
	if raw == nil {
		raw = []byte("[]")
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}
