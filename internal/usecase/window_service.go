package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/window"
	idgen "github.com/riskibarqy/fantasy-wrestling/internal/platform/id"
)

// WindowService manages restricted windows and gates every roster and trade
// mutation on them. The guard evaluates the current time in the league
// timezone, never the server's local zone.
type WindowService struct {
	windowRepo window.Repository
	location   *time.Location
	idGen      idgen.Generator
	now        func() time.Time
}

func NewWindowService(windowRepo window.Repository, location *time.Location, idGen idgen.Generator) *WindowService {
	if location == nil {
		location = time.UTC
	}
	return &WindowService{
		windowRepo: windowRepo,
		location:   location,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *WindowService) List(ctx context.Context) ([]window.Window, error) {
	items, err := s.windowRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restricted windows: %w", err)
	}

	return items, nil
}

func (s *WindowService) Create(ctx context.Context, day, startHour, endHour int) (window.Window, error) {
	item := window.Window{
		Day:       day,
		StartHour: startHour,
		EndHour:   endHour,
	}
	if err := item.Validate(); err != nil {
		return window.Window{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	windowID, err := s.idGen.NewID()
	if err != nil {
		return window.Window{}, fmt.Errorf("generate window id: %w", err)
	}
	item.ID = windowID

	if err := s.windowRepo.Create(ctx, item); err != nil {
		return window.Window{}, fmt.Errorf("create restricted window: %w", err)
	}

	return item, nil
}

func (s *WindowService) Delete(ctx context.Context, windowID string) error {
	windowID = strings.TrimSpace(windowID)
	if windowID == "" {
		return fmt.Errorf("%w: window id is required", ErrInvalidInput)
	}

	deleted, err := s.windowRepo.Delete(ctx, windowID)
	if err != nil {
		return fmt.Errorf("delete restricted window: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: window=%s", ErrNotFound, windowID)
	}

	return nil
}

// EnsureUnrestricted fails with window.ErrRestricted when the current league
// time falls inside any configured window. Mutating services call it before
// touching any state.
func (s *WindowService) EnsureUnrestricted(ctx context.Context) error {
	windows, err := s.windowRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list restricted windows: %w", err)
	}

	if window.IsRestricted(windows, s.now().In(s.location)) {
		return window.ErrRestricted
	}

	return nil
}
