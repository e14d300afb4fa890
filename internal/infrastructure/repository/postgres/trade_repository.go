package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/trade"
	qb "github.com/riskibarqy/fantasy-wrestling/internal/platform/querybuilder"
)

type TradeRepository struct {
	db *sqlx.DB
}

func NewTradeRepository(db *sqlx.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

func (r *TradeRepository) Create(ctx context.Context, proposal trade.Proposal) error {
	if err := proposal.Validate(); err != nil {
		return fmt.Errorf("validate trade proposal: %w", err)
	}

	query, args, err := qb.InsertInto("trade_proposals").
		Columns("id", "offering_team", "receiving_team", "offered", "requested", "status", "created_at").
		Values(
			proposal.ID,
			proposal.OfferingTeam,
			proposal.ReceivingTeam,
			pq.StringArray(proposal.Offered),
			pq.StringArray(proposal.Requested),
			string(proposal.Status),
			proposal.CreatedAt.UTC(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert trade proposal query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert trade proposal: %w", err)
	}

	return nil
}

func (r *TradeRepository) GetByID(ctx context.Context, id string) (trade.Proposal, bool, error) {
	query, args, err := qb.Select("*").From("trade_proposals").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return trade.Proposal{}, false, fmt.Errorf("build get trade proposal query: %w", err)
	}

	var row tradeProposalTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return trade.Proposal{}, false, nil
		}
		return trade.Proposal{}, false, fmt.Errorf("get trade proposal: %w", err)
	}

	return tradeProposalFromRow(row), true, nil
}

func (r *TradeRepository) List(ctx context.Context) ([]trade.Proposal, error) {
	return r.selectProposals(ctx, qb.Select("*").From("trade_proposals").OrderBy("created_at", "id"))
}

func (r *TradeRepository) ListPendingByReceivingTeam(ctx context.Context, teamName string) ([]trade.Proposal, error) {
	builder := qb.Select("*").From("trade_proposals").
		Where(
			qb.Expr("LOWER(receiving_team) = LOWER(?)", teamName),
			qb.Eq("status", string(trade.StatusPending)),
		).
		OrderBy("created_at", "id")
	return r.selectProposals(ctx, builder)
}

func (r *TradeRepository) Reject(ctx context.Context, id string, respondedAt time.Time) error {
	query, args, err := qb.Update("trade_proposals").
		Set("status", string(trade.StatusRejected)).
		Set("responded_at", respondedAt.UTC()).
		Where(
			qb.Eq("id", id),
			qb.Eq("status", string(trade.StatusPending)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reject trade proposal query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("reject trade proposal %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reject trade proposal rows affected: %w", err)
	}
	if affected == 0 {
		return r.classifyMissedUpdate(ctx, id)
	}

	return nil
}

// ExecuteAccept applies the whole accept inside one transaction: the guarded
// status flip, both roster reassignments, and the audit rows. The guard
// doubles as a concurrency check, so a second responder loses the race with
// trade.ErrNotPending instead of re-applying the swap.
func (r *TradeRepository) ExecuteAccept(ctx context.Context, swap trade.AcceptSwap) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx accept trade: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	flipQuery, flipArgs, err := qb.Update("trade_proposals").
		Set("status", string(trade.StatusAccepted)).
		Set("responded_at", swap.RespondedAt.UTC()).
		Where(
			qb.Eq("id", swap.ProposalID),
			qb.Eq("status", string(trade.StatusPending)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build accept trade proposal query: %w", err)
	}
	result, err := tx.ExecContext(ctx, flipQuery, flipArgs...)
	if err != nil {
		return fmt.Errorf("accept trade proposal %s: %w", swap.ProposalID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("accept trade proposal rows affected: %w", err)
	}
	if affected == 0 {
		return r.classifyMissedUpdate(ctx, swap.ProposalID)
	}

	for _, ref := range swap.Offered {
		if err := reassignWrestler(ctx, tx, ref.ID, swap.ReceivingTeamID); err != nil {
			return err
		}
	}
	for _, ref := range swap.Requested {
		if err := reassignWrestler(ctx, tx, ref.ID, swap.OfferingTeamID); err != nil {
			return err
		}
	}

	for _, item := range swap.Audit {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("validate trade audit row: %w", err)
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
			return fmt.Errorf("build insert trade audit query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert trade audit row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit accept trade tx: %w", err)
	}
	return nil
}

func (r *TradeRepository) selectProposals(ctx context.Context, builder *qb.SelectBuilder) ([]trade.Proposal, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select trade proposals query: %w", err)
	}

	var rows []tradeProposalTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select trade proposals: %w", err)
	}

	out := make([]trade.Proposal, 0, len(rows))
	for _, row := range rows {
		out = append(out, tradeProposalFromRow(row))
	}
	return out, nil
}

// classifyMissedUpdate distinguishes a responded proposal from a missing one
// after a guarded update touched zero rows.
func (r *TradeRepository) classifyMissedUpdate(ctx context.Context, id string) error {
	_, exists, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("trade proposal not found: %s", id)
	}
	return trade.ErrNotPending
}

// reassignWrestler moves a wrestler between teams without roster checks. The
// starter flag travels with the wrestler.
func reassignWrestler(ctx context.Context, tx *sqlx.Tx, wrestlerID, teamID string) error {
	query, args, err := qb.Update("wrestlers").
		Set("team_id", teamID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", wrestlerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reassign wrestler query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("reassign wrestler %s: %w", wrestlerID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reassign wrestler rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("wrestler not found: %s", wrestlerID)
	}

	return nil
}
