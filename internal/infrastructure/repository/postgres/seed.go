package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-wrestling/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo league into an empty database. A database
// that already has wrestlers is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM wrestlers`); err != nil {
		return fmt.Errorf("count wrestlers for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (id, name)
VALUES (:id, :name)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":   t.ID,
			"name": t.Name,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, w := range memory.SeedWrestlers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO wrestlers (id, name, brand, points, team_id, is_starter)
VALUES (:id, :name, :brand, :points, :team_id, :is_starter)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         w.ID,
			"name":       w.Name,
			"brand":      w.Brand,
			"points":     w.Points,
			"team_id":    stringPtrToNullString(w.TeamID),
			"is_starter": w.IsStarter,
		})
		if err != nil {
			return fmt.Errorf("bind seed wrestler %s query: %w", w.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed wrestler %s: %w", w.ID, err)
		}
	}

	for _, w := range memory.SeedWindows() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO restricted_windows (id, day, start_hour, end_hour)
VALUES (:id, :day, :start_hour, :end_hour)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         w.ID,
			"day":        w.Day,
			"start_hour": w.StartHour,
			"end_hour":   w.EndHour,
		})
		if err != nil {
			return fmt.Errorf("bind seed window %s query: %w", w.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed window %s: %w", w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
