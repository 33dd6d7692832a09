package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameRecord(t *testing.T) {
	record := []string{
		"4022", "L. Hodge", "9131", "2008-09-27", "2008", "GF",
		"MCG", "Hawthorn", "Geelong", "Hawthorn", "15",
		"22", "0", "14", "8", "6", "2",
	}
	row, err := parseGameRecord(record)
	require.NoError(t, err)
	require.Len(t, row, 17)

	assert.Equal(t, 4022, row[0])
	assert.Equal(t, "L. Hodge", row[1])
	assert.Equal(t, 9131, row[2])
	assert.Equal(t, time.Date(2008, 9, 27, 0, 0, 0, 0, time.UTC), row[3])
	assert.Equal(t, 2008, row[4])
	assert.Equal(t, 22, row[11])
}

func TestParseGameRecordBlankStatsBecomeNull(t *testing.T) {
	// A 1920s row: no guernsey and no tackle count on record.
	record := []string{
		"88", "R. Cazaly", "412", "1921-05-07", "1921", "4",
		"Junction Oval", "St Kilda", "Carlton", "St Kilda", "",
		"", "3", "11", "", "9", "",
	}
	row, err := parseGameRecord(record)
	require.NoError(t, err)

	assert.Nil(t, row[10], "blank guernsey is NULL")
	assert.Nil(t, row[11], "blank disposals is NULL")
	assert.Equal(t, 3, row[12])
	assert.Nil(t, row[16], "blank tackles is NULL")
}

func TestParseGameRecordRejectsBadCells(t *testing.T) {
	cases := []struct {
		name string
		idx  int
		cell string
	}{
		{"player_id", 0, "not-a-number"},
		{"match_id", 2, ""},
		{"game_date", 3, "27/09/2008"},
		{"season", 4, "two thousand"},
		{"stat cell", 11, "22.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := []string{
				"4022", "L. Hodge", "9131", "2008-09-27", "2008", "GF",
				"MCG", "Hawthorn", "Geelong", "Hawthorn", "15",
				"22", "0", "14", "8", "6", "2",
			}
			record[tc.idx] = tc.cell
			_, err := parseGameRecord(record)
			assert.Error(t, err)
		})
	}
}

func TestResultSummary(t *testing.T) {
	var r Result
	r.GamesLoaded = 120
	r.RowsSkipped = 3
	r.AddErrorf("line %d: bad cell", 7)

	s := r.Summary()
	assert.Contains(t, s, "120")
	assert.Contains(t, s, "3")
	require.Len(t, r.Errors, 1)
}
