package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/window"
	qb "github.com/riskibarqy/fantasy-wrestling/internal/platform/querybuilder"
)

type windowTableModel struct {
	ID        string    `db:"id"`
	Day       int       `db:"day"`
	StartHour int       `db:"start_hour"`
	EndHour   int       `db:"end_hour"`
	CreatedAt time.Time `db:"created_at"`
}

type WindowRepository struct {
	db *sqlx.DB
}

func NewWindowRepository(db *sqlx.DB) *WindowRepository {
	return &WindowRepository{db: db}
}

func (r *WindowRepository) List(ctx context.Context) ([]window.Window, error) {
	query, args, err := qb.Select("*").From("restricted_windows").
		OrderBy("day", "start_hour").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select windows query: %w", err)
	}

	var rows []windowTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select windows: %w", err)
	}

	out := make([]window.Window, 0, len(rows))
	for _, row := range rows {
		out = append(out, window.Window{
			ID:        row.ID,
			Day:       row.Day,
			StartHour: row.StartHour,
			EndHour:   row.EndHour,
		})
	}
	return out, nil
}

func (r *WindowRepository) Create(ctx context.Context, item window.Window) error {
	query, args, err := qb.InsertInto("restricted_windows").
		Columns("id", "day", "start_hour", "end_hour").
		Values(item.ID, item.Day, item.StartHour, item.EndHour).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert window query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert window: %w", err)
	}

	return nil
}

func (r *WindowRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM restricted_windows WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete window %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete window rows affected: %w", err)
	}

	return affected > 0, nil
}
