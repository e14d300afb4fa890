package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/roster"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/team"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
	idgen "github.com/riskibarqy/fantasy-wrestling/internal/platform/id"
)

// moveGuard blocks roster and trade mutations during restricted windows.
type moveGuard interface {
	EnsureUnrestricted(ctx context.Context) error
}

// RosterService executes add, drop and starter-toggle moves. The capacity and
// ownership preconditions live in the repository write itself, so two
// concurrent moves against the same wrestler can never both succeed; this
// layer resolves names, runs the window guard and writes the audit trail.
type RosterService struct {
	wrestlerRepo wrestler.Repository
	teamRepo     team.Repository
	ledgerRepo   ledger.Repository
	guard        moveGuard
	rules        roster.Rules
	idGen        idgen.Generator
	now          func() time.Time
}

func NewRosterService(
	wrestlerRepo wrestler.Repository,
	teamRepo team.Repository,
	ledgerRepo ledger.Repository,
	guard moveGuard,
	rules roster.Rules,
	idGen idgen.Generator,
) *RosterService {
	return &RosterService{
		wrestlerRepo: wrestlerRepo,
		teamRepo:     teamRepo,
		ledgerRepo:   ledgerRepo,
		guard:        guard,
		rules:        rules,
		idGen:        idGen,
		now:          time.Now,
	}
}

func (s *RosterService) GetAvailableWrestlers(ctx context.Context) ([]wrestler.Wrestler, error) {
	items, err := s.wrestlerRepo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available wrestlers: %w", err)
	}

	return items, nil
}

func (s *RosterService) GetRoster(ctx context.Context, teamName string) (team.Team, []wrestler.Wrestler, error) {
	owner, err := s.resolveTeam(ctx, teamName)
	if err != nil {
		return team.Team{}, nil, err
	}

	items, err := s.wrestlerRepo.ListByTeam(ctx, owner.ID)
	if err != nil {
		return team.Team{}, nil, fmt.Errorf("list roster team=%s: %w", owner.ID, err)
	}

	return owner, items, nil
}

func (s *RosterService) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	items, err := s.ledgerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return items, nil
}

func (s *RosterService) Add(ctx context.Context, teamName, wrestlerName string) error {
	if err := s.guard.EnsureUnrestricted(ctx); err != nil {
		return err
	}

	owner, err := s.resolveTeam(ctx, teamName)
	if err != nil {
		return err
	}
	target, err := s.resolveWrestler(ctx, wrestlerName)
	if err != nil {
		return err
	}

	if err := s.wrestlerRepo.AssignToTeam(ctx, target.ID, owner.ID, s.rules); err != nil {
		return fmt.Errorf("add wrestler=%s team=%s: %w", target.ID, owner.ID, err)
	}

	return s.appendTransaction(ctx, target.Name, owner.Name, ledger.ActionAdd)
}

func (s *RosterService) Drop(ctx context.Context, teamName, wrestlerName string) error {
	if err := s.guard.EnsureUnrestricted(ctx); err != nil {
		return err
	}

	owner, err := s.resolveTeam(ctx, teamName)
	if err != nil {
		return err
	}
	target, err := s.resolveWrestler(ctx, wrestlerName)
	if err != nil {
		return err
	}

	if err := s.wrestlerRepo.Release(ctx, target.ID, owner.ID); err != nil {
		return fmt.Errorf("drop wrestler=%s team=%s: %w", target.ID, owner.ID, err)
	}

	return s.appendTransaction(ctx, target.Name, owner.Name, ledger.ActionDrop)
}

func (s *RosterService) SetStarter(ctx context.Context, wrestlerName string, isStarter bool) error {
	if err := s.guard.EnsureUnrestricted(ctx); err != nil {
		return err
	}

	target, err := s.resolveWrestler(ctx, wrestlerName)
	if err != nil {
		return err
	}
	if target.IsFreeAgent() {
		return fmt.Errorf("%w: wrestler %s is not on a team", ErrInvalidInput, target.Name)
	}

	if err := s.wrestlerRepo.SetStarter(ctx, target.ID, isStarter, s.rules); err != nil {
		return fmt.Errorf("set starter wrestler=%s: %w", target.ID, err)
	}

	return nil
}

func (s *RosterService) resolveTeam(ctx context.Context, teamName string) (team.Team, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	owner, exists, err := s.teamRepo.GetByName(ctx, teamName)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by name: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamName)
	}

	return owner, nil
}

func (s *RosterService) resolveWrestler(ctx context.Context, wrestlerName string) (wrestler.Wrestler, error) {
	wrestlerName = strings.TrimSpace(wrestlerName)
	if wrestlerName == "" {
		return wrestler.Wrestler{}, fmt.Errorf("%w: wrestler name is required", ErrInvalidInput)
	}

	target, exists, err := s.wrestlerRepo.GetByName(ctx, wrestlerName)
	if err != nil {
		return wrestler.Wrestler{}, fmt.Errorf("get wrestler by name: %w", err)
	}
	if !exists {
		return wrestler.Wrestler{}, fmt.Errorf("%w: wrestler=%s", ErrNotFound, wrestlerName)
	}

	return target, nil
}

func (s *RosterService) appendTransaction(ctx context.Context, wrestlerName, teamName string, action ledger.Action) error {
	txID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate transaction id: %w", err)
	}

	tx := ledger.Transaction{
		ID:           txID,
		WrestlerName: wrestlerName,
		TeamName:     teamName,
		Action:       action,
		Timestamp:    s.now().UTC(),
	}
	if err := s.ledgerRepo.Append(ctx, tx); err != nil {
		return fmt.Errorf("append %s transaction: %w", action, err)
	}

	return nil
}
