package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/team"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/trade"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
	idgen "github.com/riskibarqy/fantasy-wrestling/internal/platform/id"
)

const (
	TradeActionAccept = "accept"
	TradeActionReject = "reject"
)

type ProposeTradeInput struct {
	OfferingTeam  string
	ReceivingTeam string
	Offered       []string
	Requested     []string
}

// TradeService runs the proposal state machine. A proposal transitions
// exactly once; the accept path hands the whole swap to the repository as one
// atomic unit so a crash can never strand wrestlers mid-trade.
type TradeService struct {
	tradeRepo    trade.Repository
	teamRepo     team.Repository
	wrestlerRepo wrestler.Repository
	guard        moveGuard
	idGen        idgen.Generator
	now          func() time.Time
}

func NewTradeService(
	tradeRepo trade.Repository,
	teamRepo team.Repository,
	wrestlerRepo wrestler.Repository,
	guard moveGuard,
	idGen idgen.Generator,
) *TradeService {
	return &TradeService{
		tradeRepo:    tradeRepo,
		teamRepo:     teamRepo,
		wrestlerRepo: wrestlerRepo,
		guard:        guard,
		idGen:        idGen,
		now:          time.Now,
	}
}

func (s *TradeService) List(ctx context.Context) ([]trade.Proposal, error) {
	items, err := s.tradeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trade proposals: %w", err)
	}

	return items, nil
}

// PendingForTeam is the receiving team's inbox: proposals it has not
// responded to yet.
func (s *TradeService) PendingForTeam(ctx context.Context, teamName string) ([]trade.Proposal, error) {
	receiving, err := s.resolveTeam(ctx, teamName)
	if err != nil {
		return nil, err
	}

	items, err := s.tradeRepo.ListPendingByReceivingTeam(ctx, receiving.Name)
	if err != nil {
		return nil, fmt.Errorf("list pending trades team=%s: %w", receiving.Name, err)
	}

	return items, nil
}

func (s *TradeService) Propose(ctx context.Context, input ProposeTradeInput) (trade.Proposal, error) {
	if err := s.guard.EnsureUnrestricted(ctx); err != nil {
		return trade.Proposal{}, err
	}

	offering, err := s.resolveTeam(ctx, input.OfferingTeam)
	if err != nil {
		return trade.Proposal{}, err
	}
	receiving, err := s.resolveTeam(ctx, input.ReceivingTeam)
	if err != nil {
		return trade.Proposal{}, err
	}

	proposalID, err := s.idGen.NewID()
	if err != nil {
		return trade.Proposal{}, fmt.Errorf("generate trade proposal id: %w", err)
	}

	proposal := trade.Proposal{
		ID:            proposalID,
		OfferingTeam:  offering.Name,
		ReceivingTeam: receiving.Name,
		Offered:       normalizeNames(input.Offered),
		Requested:     normalizeNames(input.Requested),
		Status:        trade.StatusPending,
		CreatedAt:     s.now().UTC(),
	}
	if err := proposal.Validate(); err != nil {
		return trade.Proposal{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.verifyOwnership(ctx, proposal.Offered, offering); err != nil {
		return trade.Proposal{}, err
	}
	if err := s.verifyOwnership(ctx, proposal.Requested, receiving); err != nil {
		return trade.Proposal{}, err
	}

	if err := s.tradeRepo.Create(ctx, proposal); err != nil {
		return trade.Proposal{}, fmt.Errorf("create trade proposal: %w", err)
	}

	return proposal, nil
}

func (s *TradeService) Respond(ctx context.Context, tradeID, action string) (trade.Proposal, error) {
	tradeID = strings.TrimSpace(tradeID)
	if tradeID == "" {
		return trade.Proposal{}, fmt.Errorf("%w: trade id is required", ErrInvalidInput)
	}

	proposal, exists, err := s.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return trade.Proposal{}, fmt.Errorf("get trade proposal: %w", err)
	}
	if !exists {
		return trade.Proposal{}, fmt.Errorf("%w: trade=%s", ErrNotFound, tradeID)
	}

	respondedAt := s.now().UTC()

	switch strings.ToLower(strings.TrimSpace(action)) {
	case TradeActionReject:
		if err := s.tradeRepo.Reject(ctx, proposal.ID, respondedAt); err != nil {
			return trade.Proposal{}, fmt.Errorf("reject trade=%s: %w", proposal.ID, err)
		}
		proposal.Status = trade.StatusRejected
	case TradeActionAccept:
		if err := s.guard.EnsureUnrestricted(ctx); err != nil {
			return trade.Proposal{}, err
		}
		if err := s.accept(ctx, proposal, respondedAt); err != nil {
			return trade.Proposal{}, err
		}
		proposal.Status = trade.StatusAccepted
	default:
		return trade.Proposal{}, fmt.Errorf("%w: action must be %q or %q", ErrInvalidInput, TradeActionAccept, TradeActionReject)
	}

	proposal.RespondedAt = &respondedAt
	return proposal, nil
}

func (s *TradeService) accept(ctx context.Context, proposal trade.Proposal, respondedAt time.Time) error {
	offering, err := s.resolveTeam(ctx, proposal.OfferingTeam)
	if err != nil {
		return err
	}
	receiving, err := s.resolveTeam(ctx, proposal.ReceivingTeam)
	if err != nil {
		return err
	}

	offered, err := s.resolveRefs(ctx, proposal.Offered)
	if err != nil {
		return err
	}
	requested, err := s.resolveRefs(ctx, proposal.Requested)
	if err != nil {
		return err
	}

	// Each outgoing wrestler is audited against the team that gave it up,
	// matching the league's established audit convention.
	audit := make([]ledger.Transaction, 0, len(offered)+len(requested))
	for _, ref := range offered {
		row, err := s.auditRow(ref.Name, offering.Name, respondedAt)
		if err != nil {
			return err
		}
		audit = append(audit, row)
	}
	for _, ref := range requested {
		row, err := s.auditRow(ref.Name, receiving.Name, respondedAt)
		if err != nil {
			return err
		}
		audit = append(audit, row)
	}

	swap := trade.AcceptSwap{
		ProposalID:        proposal.ID,
		OfferingTeamID:    offering.ID,
		OfferingTeamName:  offering.Name,
		ReceivingTeamID:   receiving.ID,
		ReceivingTeamName: receiving.Name,
		Offered:           offered,
		Requested:         requested,
		Audit:             audit,
		RespondedAt:       respondedAt,
	}
	if err := s.tradeRepo.ExecuteAccept(ctx, swap); err != nil {
		return fmt.Errorf("accept trade=%s: %w", proposal.ID, err)
	}

	return nil
}

func (s *TradeService) auditRow(wrestlerName, teamName string, respondedAt time.Time) (ledger.Transaction, error) {
	txID, err := s.idGen.NewID()
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("generate transaction id: %w", err)
	}

	return ledger.Transaction{
		ID:           txID,
		WrestlerName: wrestlerName,
		TeamName:     teamName,
		Action:       ledger.ActionTradeOut,
		Timestamp:    respondedAt,
	}, nil
}

func (s *TradeService) resolveTeam(ctx context.Context, teamName string) (team.Team, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByName(ctx, teamName)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by name: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamName)
	}

	return item, nil
}

func (s *TradeService) resolveRefs(ctx context.Context, names []string) ([]trade.WrestlerRef, error) {
	refs := make([]trade.WrestlerRef, 0, len(names))
	for _, name := range names {
		item, exists, err := s.wrestlerRepo.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("get wrestler by name: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: wrestler=%s", ErrNotFound, name)
		}
		refs = append(refs, trade.WrestlerRef{ID: item.ID, Name: item.Name})
	}

	return refs, nil
}

func (s *TradeService) verifyOwnership(ctx context.Context, names []string, owner team.Team) error {
	for _, name := range names {
		item, exists, err := s.wrestlerRepo.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("get wrestler by name: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: wrestler=%s", ErrNotFound, name)
		}
		if item.TeamID == nil || *item.TeamID != owner.ID {
			return fmt.Errorf("%w: wrestler %s is not on team %s", ErrInvalidInput, item.Name, owner.Name)
		}
	}

	return nil
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}
