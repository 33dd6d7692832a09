package handler

import (
	"net/http"

	"github.com/backpocket/aflstats-data/internal/live"
)

// GetLiveStream relays the upstream live-score feed to the client.
// @Summary Live score stream
// @Description Opens a text/event-stream relay of the upstream live-score feed, optionally scoped to one game or one team. game takes precedence when both are given. The relay never retries; clients should use an auto-reconnecting event-stream consumer.
// @Tags live
// @Produce text/event-stream
// @Param game query string false "Game ID to scope the stream to"
// @Param team query string false "Team ID to scope the stream to"
// @Success 200 {string} string "event stream"
// @Router /live/stream [get]
func (h *Handler) GetLiveStream(w http.ResponseWriter, r *http.Request) {
	scope := live.Scope{
		Game: r.URL.Query().Get("game"),
		Team: r.URL.Query().Get("team"),
	}
	h.relay.Serve(w, r, scope)
}
