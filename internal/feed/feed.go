// Package feed provides the client for the upstream live-score and fixture
// service. The streaming endpoint is consumed by internal/live; this package
// covers the plain request/response endpoints.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Fixture is one scheduled match from the upstream fixture document.
type Fixture struct {
	ID        int       `json:"id"`
	Season    int       `json:"season"`
	Round     string    `json:"round"`
	Venue     string    `json:"venue"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	StartTime time.Time `json:"start_time"`
}

// Client is a thin HTTP client for the feed service.
type Client struct {
	baseURL    string
	signature  string
	httpClient *http.Client
}

// NewClient creates a feed client. signature is sent as the User-Agent on
// every request. A zero timeout falls back to the default.
func NewClient(baseURL, signature string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		signature: signature,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// StreamURL returns the base URL of the streaming endpoint, for internal/live.
func (c *Client) StreamURL() string {
	return c.baseURL + "/sse"
}

// UpcomingFixtures fetches the upcoming-fixtures document.
func (c *Client) UpcomingFixtures(ctx context.Context) ([]Fixture, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/fixtures/upcoming", nil)
	if err != nil {
		return nil, fmt.Errorf("build fixtures request: %w", err)
	}
	req.Header.Set("User-Agent", c.signature)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch fixtures: upstream status %d", resp.StatusCode)
	}

	var payload struct {
		Fixtures []Fixture `json:"fixtures"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return payload.Fixtures, nil
}
