package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordMatch(id, homePts, awayPts int) matchRow {
	return matchRow{
		ID: id, Season: 1979, Round: "17", Venue: "Waverley Park",
		HomeTeam: "Fitzroy", AwayTeam: "Melbourne",
		HomePoints: homePts, AwayPoints: awayPts,
	}
}

func TestShapeScoresPicksHigherSide(t *testing.T) {
	records := shapeScores([]matchRow{
		recordMatch(1, 238, 130),
		recordMatch(2, 87, 196),
	})
	require.Len(t, records, 2)

	assert.Equal(t, "Fitzroy", records[0].Team)
	assert.Equal(t, "Melbourne", records[0].Opponent)
	assert.Equal(t, 238, records[0].Points)

	assert.Equal(t, "Melbourne", records[1].Team)
	assert.Equal(t, "Fitzroy", records[1].Opponent)
	assert.Equal(t, 196, records[1].Points)
}

func TestShapeScoresDeduplicatesMatches(t *testing.T) {
	records := shapeScores([]matchRow{
		recordMatch(1, 238, 130),
		recordMatch(1, 238, 130),
	})
	assert.Len(t, records, 1)
}

func TestShapeScoresEmptyIsNotNil(t *testing.T) {
	// Empty slices marshal to [] rather than null.
	assert.NotNil(t, shapeScores(nil))
	assert.NotNil(t, shapeMargins(nil))
}

func TestShapeMargins(t *testing.T) {
	records := shapeMargins([]matchRow{
		recordMatch(1, 238, 48),
		recordMatch(2, 60, 190),
	})
	require.Len(t, records, 2)

	assert.Equal(t, "Fitzroy", records[0].Winner)
	assert.Equal(t, "Melbourne", records[0].Loser)
	assert.Equal(t, 190, records[0].Margin)

	assert.Equal(t, "Melbourne", records[1].Winner)
	assert.Equal(t, 130, records[1].Margin)
}

func TestShapeMarginsDrawKeepsHomeFirst(t *testing.T) {
	records := shapeMargins([]matchRow{recordMatch(1, 100, 100)})
	require.Len(t, records, 1)
	assert.Equal(t, "Fitzroy", records[0].Winner)
	assert.Equal(t, "Melbourne", records[0].Loser)
	assert.Equal(t, 0, records[0].Margin)
}
