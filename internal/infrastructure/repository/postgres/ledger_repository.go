package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/ledger"
	qb "github.com/riskibarqy/fantasy-wrestling/internal/platform/querybuilder"
)

type transactionTableModel struct {
	ID           string    `db:"id"`
	WrestlerName string    `db:"wrestler_name"`
	TeamName     string    `db:"team_name"`
	Action       string    `db:"action"`
	HappenedAt   time.Time `db:"happened_at"`
}

// LedgerRepository persists the append-only transaction log. Nothing updates
// or deletes rows.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Append(ctx context.Context, item ledger.Transaction) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}

	insertModel := transactionTableModel{
		ID:           item.ID,
		WrestlerName: item.WrestlerName,
		TeamName:     item.TeamName,
		Action:       string(item.Action),
		HappenedAt:   item.Timestamp.UTC(),
	}
	query, args, err := qb.InsertModel("transactions", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert transaction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}

func (r *LedgerRepository) List(ctx context.Context) ([]ledger.Transaction, error) {
	query, args, err := qb.Select("*").From("transactions").
		OrderBy("happened_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select transactions query: %w", err)
	}

	var rows []transactionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}

	out := make([]ledger.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, ledger.Transaction{
			ID:           row.ID,
			WrestlerName: row.WrestlerName,
			TeamName:     row.TeamName,
			Action:       ledger.Action(row.Action),
			Timestamp:    row.HappenedAt,
		})
	}
	return out, nil
}
