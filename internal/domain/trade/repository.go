package trade

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/ledger"
)

// WrestlerRef names one wrestler moving in a trade.
type WrestlerRef struct {
	ID   string
	Name string
}

// AcceptSwap carries everything the accept path must apply as one atomic
// unit: the status flip, both roster reassignments, and the audit rows.
// Offered wrestlers move to the receiving team, Requested wrestlers to the
// offering team.
type AcceptSwap struct {
	ProposalID        string
	OfferingTeamID    string
	OfferingTeamName  string
	ReceivingTeamID   string
	ReceivingTeamName string
	Offered           []WrestlerRef
	Requested         []WrestlerRef
	Audit             []ledger.Transaction
	RespondedAt       time.Time
}

type Repository interface {
	Create(ctx context.Context, proposal Proposal) error
	GetByID(ctx context.Context, id string) (Proposal, bool, error)
	List(ctx context.Context) ([]Proposal, error)
	ListPendingByReceivingTeam(ctx context.Context, teamName string) ([]Proposal, error)

	// Reject flips a pending proposal to rejected. Fails with ErrNotPending
	// when the proposal was already responded to.
	Reject(ctx context.Context, id string, respondedAt time.Time) error

	// ExecuteAccept performs the whole accept in one atomic unit: it flips
	// the status (failing with ErrNotPending when not pending anymore),
	// reassigns every wrestler on both sides, and appends the trade audit
	// rows. A crash can never leave a half-applied trade.
	ExecuteAccept(ctx context.Context, swap AcceptSwap) error
}
