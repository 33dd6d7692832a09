package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingFixtures(t *testing.T) {
	var gotPath, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fixtures":[
			{"id":501,"season":2026,"round":"1","venue":"MCG",
			 "home_team":"Richmond","away_team":"Carlton",
			 "start_time":"2026-03-19T19:20:00+11:00"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "aflstats-test/1.0", time.Second)
	fixtures, err := client.UpcomingFixtures(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/fixtures/upcoming", gotPath)
	assert.Equal(t, "aflstats-test/1.0", gotAgent)
	require.Len(t, fixtures, 1)
	assert.Equal(t, 501, fixtures[0].ID)
	assert.Equal(t, "Richmond", fixtures[0].HomeTeam)
}

func TestUpcomingFixturesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "aflstats-test/1.0", time.Second).UpcomingFixtures(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestStreamURL(t *testing.T) {
	c := NewClient("https://feed.example.com/", "sig", 0)
	assert.Equal(t, "https://feed.example.com/sse", c.StreamURL())
}
