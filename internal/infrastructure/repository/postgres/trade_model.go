package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/trade"
)

type tradeProposalTableModel struct {
	ID            string         `db:"id"`
	OfferingTeam  string         `db:"offering_team"`
	ReceivingTeam string         `db:"receiving_team"`
	Offered       pq.StringArray `db:"offered"`
	Requested     pq.StringArray `db:"requested"`
	Status        string         `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
	RespondedAt   sql.NullTime   `db:"responded_at"`
}

func tradeProposalFromRow(row tradeProposalTableModel) trade.Proposal {
	return trade.Proposal{
		ID:            row.ID,
		OfferingTeam:  row.OfferingTeam,
		ReceivingTeam: row.ReceivingTeam,
		Offered:       append([]string(nil), row.Offered...),
		Requested:     append([]string(nil), row.Requested...),
		Status:        trade.Status(row.Status),
		CreatedAt:     row.CreatedAt,
		RespondedAt:   nullTimeToTimePtr(row.RespondedAt),
	}
}
