package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/scoring"
	qb "github.com/riskibarqy/fantasy-wrestling/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

// ReplaceEventEntries rewrites one event inside a single transaction and
// shifts each affected wrestler's total by the difference between its new and
// previous contribution, so a re-import converges instead of double counting.
func (r *ScoringRepository) ReplaceEventEntries(ctx context.Context, eventName string, eventDate time.Time, entries []scoring.EventEntry) error {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("validate event entry: %w", err)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace event entries: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var previous []struct {
		WrestlerID string `db:"wrestler_id"`
		Points     int    `db:"points"`
	}
	err = tx.SelectContext(ctx, &previous, `
SELECT wrestler_id, COALESCE(SUM(points), 0) AS points
FROM event_entries
WHERE event_name = $1 AND event_date = $2
GROUP BY wrestler_id`, eventName, eventDate.UTC())
	if err != nil {
		return fmt.Errorf("sum previous event contributions: %w", err)
	}

	deltas := make(map[string]int, len(previous)+len(entries))
	for _, row := range previous {
		deltas[row.WrestlerID] -= row.Points
	}
	for _, entry := range entries {
		deltas[entry.WrestlerID] += entry.Points
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM event_entries WHERE event_name = $1 AND event_date = $2`,
		eventName, eventDate.UTC()); err != nil {
		return fmt.Errorf("delete previous event entries: %w", err)
	}

	for _, entry := range entries {
		insertModel := eventEntryInsertModel{
			EventName:   entry.EventName,
			EventDate:   entry.EventDate.UTC(),
			WrestlerID:  entry.WrestlerID,
			TeamID:      stringPtrToNullString(entry.TeamID),
			IsStarter:   entry.IsStarter,
			Points:      entry.Points,
			Description: entry.Description,
		}
		query, args, err := qb.InsertModel("event_entries", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert event entry query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert event entry wrestler=%s: %w", entry.WrestlerID, err)
		}
	}

	for wrestlerID, delta := range deltas {
		if delta == 0 {
			continue
		}
		query, args, err := qb.Update("wrestlers").
			SetExpr("points", "points + ?", delta).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", wrestlerID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build adjust points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("adjust points wrestler=%s: %w", wrestlerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace event entries tx: %w", err)
	}
	return nil
}

func (r *ScoringRepository) ListEntriesByEvent(ctx context.Context, eventName string, eventDate time.Time) ([]scoring.EventEntry, error) {
	builder := qb.Select("*").From("event_entries").
		Where(
			qb.Eq("event_name", eventName),
			qb.Eq("event_date", eventDate.UTC()),
		).
		OrderBy("id")
	return r.selectEntries(ctx, builder)
}

func (r *ScoringRepository) ListEntries(ctx context.Context) ([]scoring.EventEntry, error) {
	return r.selectEntries(ctx, qb.Select("*").From("event_entries").OrderBy("event_date", "id"))
}

func (r *ScoringRepository) SumPointsByWrestler(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		WrestlerID string `db:"wrestler_id"`
		Points     int    `db:"points"`
	}
	err := r.db.SelectContext(ctx, &rows, `
SELECT wrestler_id, COALESCE(SUM(points), 0) AS points
FROM event_entries
GROUP BY wrestler_id`)
	if err != nil {
		return nil, fmt.Errorf("sum points by wrestler: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.WrestlerID] = row.Points
	}
	return out, nil
}

// ListWeeklyScores buckets starter snapshot entries by week in Go, because
// the week anchor and league timezone are league configuration rather than
// database constants.
func (r *ScoringRepository) ListWeeklyScores(ctx context.Context, anchor time.Weekday, loc *time.Location) ([]scoring.WeeklyScore, error) {
	builder := qb.Select("*").From("event_entries").
		Where(
			qb.Eq("is_starter", true),
			qb.Expr("team_id IS NOT NULL"),
		).
		OrderBy("event_date", "id")
	entries, err := r.selectEntries(ctx, builder)
	if err != nil {
		return nil, err
	}

	type bucketKey struct {
		weekStart time.Time
		teamID    string
	}
	totals := make(map[bucketKey]int)
	for _, entry := range entries {
		key := bucketKey{
			weekStart: scoring.WeekStart(entry.EventDate, anchor, loc),
			teamID:    *entry.TeamID,
		}
		totals[key] += entry.Points
	}

	out := make([]scoring.WeeklyScore, 0, len(totals))
	for key, points := range totals {
		out = append(out, scoring.WeeklyScore{
			WeekStart: key.weekStart,
			TeamID:    key.teamID,
			Points:    points,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WeekStart.Equal(out[j].WeekStart) {
			return out[i].WeekStart.Before(out[j].WeekStart)
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

// InsertWeeklyWins records all winners of one week in a single statement
// whose existence check runs atomically with the insert.
func (r *ScoringRepository) InsertWeeklyWins(ctx context.Context, weekStart time.Time, teamIDs []string) error {
	if len(teamIDs) == 0 {
		return fmt.Errorf("weekly win team ids are required")
	}

	result, err := r.db.ExecContext(ctx, `
INSERT INTO weekly_wins (week_start, team_id)
SELECT $1, unnest($2::text[])
WHERE NOT EXISTS (SELECT 1 FROM weekly_wins WHERE week_start = $1)`,
		weekStart.UTC(), pq.Array(teamIDs))
	if err != nil {
		return fmt.Errorf("insert weekly wins: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert weekly wins rows affected: %w", err)
	}
	if affected == 0 {
		return scoring.ErrAlreadyRecorded
	}

	return nil
}

func (r *ScoringRepository) ListWeeklyWins(ctx context.Context) ([]scoring.WeeklyWin, error) {
	query, args, err := qb.Select("*").From("weekly_wins").
		OrderBy("week_start", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly wins query: %w", err)
	}

	var rows []weeklyWinTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weekly wins: %w", err)
	}

	out := make([]scoring.WeeklyWin, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.WeeklyWin{WeekStart: row.WeekStart, TeamID: row.TeamID})
	}
	return out, nil
}

func (r *ScoringRepository) selectEntries(ctx context.Context, builder *qb.SelectBuilder) ([]scoring.EventEntry, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select event entries query: %w", err)
	}

	var rows []eventEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select event entries: %w", err)
	}

	out := make([]scoring.EventEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventEntryFromRow(row))
	}
	return out, nil
}
