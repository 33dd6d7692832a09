package handler

import (
	"net/http"
	"strconv"

	"github.com/backpocket/aflstats-data/internal/api/respond"
)

// GetPlayerCareer returns the resolved career view for one player.
// @Summary Get player career
// @Description Returns the merged career profile, season breakdown, one page of game history, debut game, and team stints for a player. Totals are reconciled across the precomputed profile, season totals, and the visible game page.
// @Tags players
// @Produce json
// @Param playerId query int true "Player ID"
// @Param page query int false "Game history page (1-based, 50 games per page)"
// @Success 200 {object} career.Resolved
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /players/career [get]
func (h *Handler) GetPlayerCareer(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("playerId")
	if idStr == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PLAYER_ID", "playerId query parameter is required")
		return
	}
	playerID, err := strconv.Atoi(idStr)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PLAYER_ID", "playerId must be an integer")
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		page, err = strconv.Atoi(p)
		if err != nil || page < 1 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_PAGE", "page must be an integer >= 1")
			return
		}
	}

	resolved, err := h.resolver.Resolve(r.Context(), playerID, page)
	if err != nil {
		h.logger.Error("career resolve failed", "player_id", playerID, "page", page, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "BACKEND_FAILURE", "Failed to resolve player career")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, resolved)
}
