// Package seed loads historical AFL data into Postgres and syncs fixtures
// from the upstream feed.
package seed

import "fmt"

// Result tracks counts and errors from a load operation.
type Result struct {
	GamesLoaded      int
	FixturesUpserted int
	RowsSkipped      int
	Errors           []string
}

// AddError records an error message.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the operation.
func (r *Result) Summary() string {
	return fmt.Sprintf("games=%d fixtures=%d skipped=%d errors=%d",
		r.GamesLoaded, r.FixturesUpserted, r.RowsSkipped, len(r.Errors))
}
