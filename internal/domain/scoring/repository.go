package scoring

import (
	"context"
	"time"
)

// Repository owns the event ledger, the materialized wrestler point totals
// it feeds, and the weekly win records.
type Repository interface {
	// ReplaceEventEntries wipes and rewrites every entry of one
	// (eventName, eventDate) pair and, in the same atomic unit, adjusts
	// each affected wrestler's cumulative points by the difference between
	// its new and previous contribution for that event. Re-importing an
	// edited event therefore converges instead of double counting.
	ReplaceEventEntries(ctx context.Context, eventName string, eventDate time.Time, entries []EventEntry) error

	ListEntriesByEvent(ctx context.Context, eventName string, eventDate time.Time) ([]EventEntry, error)
	ListEntries(ctx context.Context) ([]EventEntry, error)

	// SumPointsByWrestler derives every wrestler's total from the event
	// ledger, the source of truth for recompute.
	SumPointsByWrestler(ctx context.Context) (map[string]int, error)

	// ListWeeklyScores sums starter snapshot points per (week, team).
	// Weeks are bucketed on the anchor weekday in loc, the league's home
	// timezone.
	ListWeeklyScores(ctx context.Context, anchor time.Weekday, loc *time.Location) ([]WeeklyScore, error)

	// InsertWeeklyWins records the winners of one week. Fails with
	// ErrAlreadyRecorded when that week already has rows, checked
	// atomically with the insert.
	InsertWeeklyWins(ctx context.Context, weekStart time.Time, teamIDs []string) error
	ListWeeklyWins(ctx context.Context) ([]WeeklyWin, error)
}
