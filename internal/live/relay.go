// Package live relays an upstream live-score event stream to a connected
// browser. One relay instance serves one client with exactly one upstream
// subscription; bytes are forwarded unmodified and immediately. The relay
// never retries — reconnection is the client's concern.
package live

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Scope selects which slice of the feed to subscribe to.
// Game takes precedence over Team when both are set.
type Scope struct {
	Game string
	Team string
}

// Path returns the upstream path segment for the scope, or "" for the
// unscoped firehose.
func (s Scope) Path() string {
	if s.Game != "" {
		return "/games/" + s.Game
	}
	if s.Team != "" {
		return "/teams/" + s.Team
	}
	return ""
}

// Relay subscribes to the upstream feed and pipes it to one client.
type Relay struct {
	baseURL   string
	signature string
	client    *http.Client
	logger    *slog.Logger
}

// NewRelay creates a relay against the feed at baseURL. signature is sent as
// the identifying User-Agent on every upstream subscription. The HTTP client
// carries no overall timeout — the stream is long-lived; cancellation comes
// from the downstream request context.
func NewRelay(baseURL string, signature string, logger *slog.Logger) *Relay {
	return &Relay{
		baseURL:   strings.TrimRight(baseURL, "/"),
		signature: signature,
		client:    &http.Client{},
		logger:    logger,
	}
}

// Serve streams the scoped feed to the client as text/event-stream.
// The upstream subscription shares the request context, so a client
// disconnect aborts the upstream read and closes its body before Serve
// returns — no orphaned upstream connections.
func (r *Relay) Serve(w http.ResponseWriter, req *http.Request, scope Scope) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	body, err := r.subscribe(req.Context(), scope)
	if err != nil {
		r.logger.Warn("live feed subscription failed", "scope", scope.Path(), "error", err)
		writeErrorEvent(w, flusher, "upstream unavailable")
		return
	}
	defer body.Close()

	r.logger.Info("live relay streaming", "scope", scope.Path())

	buf := make([]byte, 4096)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				// Client went away; the deferred Close tears down upstream.
				r.logger.Info("live relay client disconnected", "scope", scope.Path())
				return
			}
			flusher.Flush()
		}
		if readErr != nil {
			switch {
			case readErr == io.EOF:
				r.logger.Info("live feed ended", "scope", scope.Path())
			case req.Context().Err() != nil:
				r.logger.Info("live relay client disconnected", "scope", scope.Path())
			default:
				r.logger.Warn("live feed read failed", "scope", scope.Path(), "error", readErr)
				writeErrorEvent(w, flusher, "upstream stream error")
			}
			return
		}
	}
}

// subscribe opens the single upstream subscription for the scope. A non-2xx
// response is a failure: the body is drained and closed here, and the caller
// reports it to the client exactly once.
func (r *Relay) subscribe(ctx context.Context, scope Scope) (io.ReadCloser, error) {
	url := r.baseURL + scope.Path()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build subscription request: %w", err)
	}
	req.Header.Set("User-Agent", r.signature)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("subscribe %s: upstream status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// writeErrorEvent emits the single terminal error event. Best-effort: the
// client may already be gone.
func writeErrorEvent(w io.Writer, flusher http.Flusher, msg string) {
	fmt.Fprintf(w, "event: error\ndata: %s\n\n", msg)
	flusher.Flush()
}
