package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/trade"
)

// TradeRepository owns the proposal log and executes accepted swaps against
// the wrestler and ledger repositories. Its mutex serializes every status
// transition, so a proposal can never be responded to twice.
type TradeRepository struct {
	mu        sync.RWMutex
	proposals []trade.Proposal
	wrestlers *WrestlerRepository
	ledger    *LedgerRepository
}

func NewTradeRepository(wrestlers *WrestlerRepository, ledgerRepo *LedgerRepository) *TradeRepository {
	return &TradeRepository{
		wrestlers: wrestlers,
		ledger:    ledgerRepo,
	}
}

func (r *TradeRepository) Create(_ context.Context, proposal trade.Proposal) error {
	if err := proposal.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	r.proposals = append(r.proposals, cloneProposal(proposal))
	r.mu.Unlock()

	return nil
}

func (r *TradeRepository) GetByID(_ context.Context, id string) (trade.Proposal, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.proposals {
		if item.ID == id {
			return cloneProposal(item), true, nil
		}
	}

	return trade.Proposal{}, false, nil
}

func (r *TradeRepository) List(_ context.Context) ([]trade.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]trade.Proposal, 0, len(r.proposals))
	for _, item := range r.proposals {
		out = append(out, cloneProposal(item))
	}

	return out, nil
}

func (r *TradeRepository) ListPendingByReceivingTeam(_ context.Context, teamName string) ([]trade.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]trade.Proposal, 0)
	for _, item := range r.proposals {
		if item.IsPending() && strings.EqualFold(item.ReceivingTeam, teamName) {
			out = append(out, cloneProposal(item))
		}
	}

	return out, nil
}

func (r *TradeRepository) Reject(_ context.Context, id string, respondedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, err := r.pendingIndexLocked(id)
	if err != nil {
		return err
	}

	r.proposals[idx].Status = trade.StatusRejected
	r.proposals[idx].RespondedAt = &respondedAt

	return nil
}

func (r *TradeRepository) ExecuteAccept(ctx context.Context, swap trade.AcceptSwap) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, err := r.pendingIndexLocked(swap.ProposalID)
	if err != nil {
		return err
	}

	for _, ref := range swap.Offered {
		if err := r.wrestlers.reassign(ref.ID, swap.ReceivingTeamID); err != nil {
			return fmt.Errorf("reassign offered wrestler=%s: %w", ref.ID, err)
		}
	}
	for _, ref := range swap.Requested {
		if err := r.wrestlers.reassign(ref.ID, swap.OfferingTeamID); err != nil {
			return fmt.Errorf("reassign requested wrestler=%s: %w", ref.ID, err)
		}
	}

	for _, row := range swap.Audit {
		if err := r.ledger.Append(ctx, row); err != nil {
			return fmt.Errorf("append trade audit row: %w", err)
		}
	}

	respondedAt := swap.RespondedAt
	r.proposals[idx].Status = trade.StatusAccepted
	r.proposals[idx].RespondedAt = &respondedAt

	return nil
}

func (r *TradeRepository) pendingIndexLocked(id string) (int, error) {
	for idx, item := range r.proposals {
		if item.ID != id {
			continue
		}
		if !item.IsPending() {
			return 0, trade.ErrNotPending
		}
		return idx, nil
	}

	return 0, fmt.Errorf("trade proposal not found: %s", id)
}

func cloneProposal(item trade.Proposal) trade.Proposal {
	item.Offered = append([]string(nil), item.Offered...)
	item.Requested = append([]string(nil), item.Requested...)
	if item.RespondedAt != nil {
		respondedAt := *item.RespondedAt
		item.RespondedAt = &respondedAt
	}
	return item
}
