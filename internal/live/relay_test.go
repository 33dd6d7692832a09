package live_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/backpocket/aflstats-data/internal/live"
)

func testRelay(upstreamURL string) *live.Relay {
	return live.NewRelay(upstreamURL, "aflstats-test/1.0", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScopePrecedence(t *testing.T) {
	require.Equal(t, "", live.Scope{}.Path())
	require.Equal(t, "/teams/14", live.Scope{Team: "14"}.Path())
	require.Equal(t, "/games/77", live.Scope{Game: "77"}.Path())
	// game wins when both are given
	require.Equal(t, "/games/77", live.Scope{Game: "77", Team: "14"}.Path())
}

func TestRelayForwardsVerbatim(t *testing.T) {
	const frames = "event: score\ndata: {\"goal\":1}\n\nevent: score\ndata: {\"goal\":2}\n\n"

	var gotPath, gotAgent string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, frames)
	}))
	defer upstream.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/live/stream?game=77", nil)
	testRelay(upstream.URL).Serve(rec, req, live.Scope{Game: "77"})

	require.Equal(t, "/games/77", gotPath)
	require.Equal(t, "aflstats-test/1.0", gotAgent)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	require.Equal(t, frames, rec.Body.String())
}

// A non-success upstream response yields exactly one terminal error event and
// a closed stream — no retry, no hang.
func TestRelayUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "feed offline", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/live/stream", nil)
	testRelay(upstream.URL).Serve(rec, req, live.Scope{})

	body := rec.Body.String()
	require.Equal(t, 1, strings.Count(body, "event: error"))
	require.NotContains(t, body, "feed offline") // upstream body is not forwarded
}

// When the client disconnects, the upstream subscription is torn down before
// Serve returns — no orphaned upstream connections.
func TestRelayClientDisconnectClosesUpstream(t *testing.T) {
	upstreamClosed := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: score\ndata: {}\n\n")
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		select {
		case <-r.Context().Done():
			close(upstreamClosed)
		case <-time.After(5 * time.Second):
		}
	}))
	defer upstream.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/live/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	served := make(chan struct{})
	go func() {
		testRelay(upstream.URL).Serve(rec, req, live.Scope{})
		close(served)
	}()

	time.Sleep(100 * time.Millisecond) // let the stream establish
	cancel()

	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after client disconnect")
	}
	select {
	case <-upstreamClosed:
	case <-time.After(2 * time.Second):
		t.Fatal("upstream subscription was not terminated")
	}
}

// When the upstream feed ends cleanly, the relay ends the response without
// emitting an error event.
func TestRelayUpstreamEOF(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: final_siren\ndata: {}\n\n")
	}))
	defer upstream.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/live/stream", nil)
	testRelay(upstream.URL).Serve(rec, req, live.Scope{})

	require.Contains(t, rec.Body.String(), "final_siren")
	require.NotContains(t, rec.Body.String(), "event: error")
}
