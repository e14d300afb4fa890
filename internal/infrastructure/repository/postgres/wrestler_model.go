package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
)

type wrestlerTableModel struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Brand     string         `db:"brand"`
	Points    int            `db:"points"`
	TeamID    sql.NullString `db:"team_id"`
	IsStarter bool           `db:"is_starter"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func wrestlerFromRow(row wrestlerTableModel) wrestler.Wrestler {
	return wrestler.Wrestler{
		ID:        row.ID,
		Name:      row.Name,
		Brand:     row.Brand,
		Points:    row.Points,
		TeamID:    nullStringToStringPtr(row.TeamID),
		IsStarter: row.IsStarter,
	}
}
