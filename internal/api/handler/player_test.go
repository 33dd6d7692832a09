package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backpocket/aflstats-data/internal/career"
)

type fakeResolver struct {
	resolved *career.Resolved
	err      error

	gotPlayerID int
	gotPage     int
}

func (f *fakeResolver) Resolve(_ context.Context, playerID, page int) (*career.Resolved, error) {
	f.gotPlayerID, f.gotPage = playerID, page
	return f.resolved, f.err
}

func careerHandler(r CareerResolver) *Handler {
	return &Handler{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		resolver: r,
	}
}

func doCareerRequest(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.GetPlayerCareer(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetPlayerCareerValidation(t *testing.T) {
	cases := []struct {
		name   string
		target string
		code   string
	}{
		{"missing playerId", "/api/v1/players/career", "MISSING_PLAYER_ID"},
		{"non-numeric playerId", "/api/v1/players/career?playerId=abc", "INVALID_PLAYER_ID"},
		{"non-numeric page", "/api/v1/players/career?playerId=5&page=x", "INVALID_PAGE"},
		{"zero page", "/api/v1/players/career?playerId=5&page=0", "INVALID_PAGE"},
		{"negative page", "/api/v1/players/career?playerId=5&page=-2", "INVALID_PAGE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &fakeResolver{}
			rec := doCareerRequest(t, careerHandler(resolver), tc.target)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Zero(t, resolver.gotPlayerID, "resolver must not run on invalid input")
		})
	}
}

func TestGetPlayerCareerSuccess(t *testing.T) {
	games := 204
	resolver := &fakeResolver{
		resolved: &career.Resolved{
			Profile: career.ResolvedProfile{
				PlayerID:   4022,
				Name:       "L. Hodge",
				TotalGames: &games,
				Sources:    map[string]string{"total_games": "profile"},
			},
			Page:  2,
			Limit: career.PageSize,
		},
	}
	rec := doCareerRequest(t, careerHandler(resolver), "/api/v1/players/career?playerId=4022&page=2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4022, resolver.gotPlayerID)
	assert.Equal(t, 2, resolver.gotPage)

	var body struct {
		Profile struct {
			Name       string `json:"name"`
			TotalGames *int   `json:"total_games"`
		} `json:"profile"`
		Page int `json:"page"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "L. Hodge", body.Profile.Name)
	require.NotNil(t, body.Profile.TotalGames)
	assert.Equal(t, 204, *body.Profile.TotalGames)
	assert.Equal(t, 2, body.Page)
}

func TestGetPlayerCareerDefaultsPage(t *testing.T) {
	resolver := &fakeResolver{resolved: &career.Resolved{Page: 1, Limit: career.PageSize}}
	rec := doCareerRequest(t, careerHandler(resolver), "/api/v1/players/career?playerId=7")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resolver.gotPage)
}

func TestGetPlayerCareerBackendFailure(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("all career sources failed")}
	rec := doCareerRequest(t, careerHandler(resolver), "/api/v1/players/career?playerId=7")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BACKEND_FAILURE", body.Error.Code)
}
