package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/scoring"
)

type eventEntryTableModel struct {
	ID          int64          `db:"id"`
	EventName   string         `db:"event_name"`
	EventDate   time.Time      `db:"event_date"`
	WrestlerID  string         `db:"wrestler_id"`
	TeamID      sql.NullString `db:"team_id"`
	IsStarter   bool           `db:"is_starter"`
	Points      int            `db:"points"`
	Description string         `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

type eventEntryInsertModel struct {
	EventName   string         `db:"event_name"`
	EventDate   time.Time      `db:"event_date"`
	WrestlerID  string         `db:"wrestler_id"`
	TeamID      sql.NullString `db:"team_id"`
	IsStarter   bool           `db:"is_starter"`
	Points      int            `db:"points"`
	Description string         `db:"description"`
}

type weeklyWinTableModel struct {
	WeekStart time.Time `db:"week_start"`
	TeamID    string    `db:"team_id"`
}

func eventEntryFromRow(row eventEntryTableModel) scoring.EventEntry {
	return scoring.EventEntry{
		EventName:   row.EventName,
		EventDate:   row.EventDate,
		WrestlerID:  row.WrestlerID,
		TeamID:      nullStringToStringPtr(row.TeamID),
		IsStarter:   row.IsStarter,
		Points:      row.Points,
		Description: row.Description,
	}
}
