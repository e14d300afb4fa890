package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/roster"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
)

// WrestlerRepository keeps the wrestler pool behind one mutex. Every guarded
// mutation re-checks its precondition inside the critical section, so
// concurrent moves against the same wrestler serialize correctly.
type WrestlerRepository struct {
	mu        sync.RWMutex
	wrestlers map[string]wrestler.Wrestler
}

func NewWrestlerRepository(items []wrestler.Wrestler) *WrestlerRepository {
	wrestlers := make(map[string]wrestler.Wrestler, len(items))
	for _, item := range items {
		wrestlers[item.ID] = cloneWrestler(item)
	}

	return &WrestlerRepository{wrestlers: wrestlers}
}

func (r *WrestlerRepository) List(_ context.Context) ([]wrestler.Wrestler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(func(wrestler.Wrestler) bool { return true }), nil
}

func (r *WrestlerRepository) ListAvailable(_ context.Context) ([]wrestler.Wrestler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(func(item wrestler.Wrestler) bool { return item.TeamID == nil }), nil
}

func (r *WrestlerRepository) ListByTeam(_ context.Context, teamID string) ([]wrestler.Wrestler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(func(item wrestler.Wrestler) bool {
		return item.TeamID != nil && *item.TeamID == teamID
	}), nil
}

func (r *WrestlerRepository) GetByName(_ context.Context, name string) (wrestler.Wrestler, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.wrestlers {
		if strings.EqualFold(item.Name, name) {
			return cloneWrestler(item), true, nil
		}
	}

	return wrestler.Wrestler{}, false, nil
}

func (r *WrestlerRepository) AssignToTeam(_ context.Context, wrestlerID, teamID string, rules roster.Rules) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.wrestlers[wrestlerID]
	if !ok {
		return fmt.Errorf("wrestler not found: %s", wrestlerID)
	}
	if item.TeamID != nil {
		return roster.ErrAlreadyRostered
	}
	if !roster.CanAdd(r.rosterSizeLocked(teamID), rules) {
		return roster.ErrRosterFull
	}

	item.TeamID = &teamID
	item.IsStarter = false
	r.wrestlers[wrestlerID] = item

	return nil
}

func (r *WrestlerRepository) Release(_ context.Context, wrestlerID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.wrestlers[wrestlerID]
	if !ok {
		return fmt.Errorf("wrestler not found: %s", wrestlerID)
	}
	if item.TeamID == nil || *item.TeamID != teamID {
		return roster.ErrNotOnTeam
	}

	item.TeamID = nil
	item.IsStarter = false
	r.wrestlers[wrestlerID] = item

	return nil
}

func (r *WrestlerRepository) SetStarter(_ context.Context, wrestlerID string, isStarter bool, rules roster.Rules) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.wrestlers[wrestlerID]
	if !ok {
		return fmt.Errorf("wrestler not found: %s", wrestlerID)
	}
	if item.TeamID == nil {
		return roster.ErrNotOnTeam
	}
	if isStarter && !item.IsStarter && !roster.CanPromote(r.starterCountLocked(*item.TeamID), rules) {
		return roster.ErrStarterLimitReached
	}

	item.IsStarter = isStarter
	r.wrestlers[wrestlerID] = item

	return nil
}

func (r *WrestlerRepository) SetPoints(_ context.Context, wrestlerID string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.wrestlers[wrestlerID]
	if !ok {
		return fmt.Errorf("wrestler not found: %s", wrestlerID)
	}

	item.Points = points
	r.wrestlers[wrestlerID] = item

	return nil
}

// reassign moves a wrestler between teams without roster checks. Only the
// trade repository uses it, inside an accepted swap.
func (r *WrestlerRepository) reassign(wrestlerID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.wrestlers[wrestlerID]
	if !ok {
		return fmt.Errorf("wrestler not found: %s", wrestlerID)
	}

	item.TeamID = &teamID
	r.wrestlers[wrestlerID] = item

	return nil
}

// adjustPoints shifts a wrestler's cumulative total by delta. Only the
// scoring repository uses it, inside an event replace.
func (r *WrestlerRepository) adjustPoints(wrestlerID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.wrestlers[wrestlerID]
	if !ok {
		return fmt.Errorf("wrestler not found: %s", wrestlerID)
	}

	item.Points += delta
	r.wrestlers[wrestlerID] = item

	return nil
}

func (r *WrestlerRepository) listLocked(keep func(wrestler.Wrestler) bool) []wrestler.Wrestler {
	out := make([]wrestler.Wrestler, 0, len(r.wrestlers))
	for _, item := range r.wrestlers {
		if keep(item) {
			out = append(out, cloneWrestler(item))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func (r *WrestlerRepository) rosterSizeLocked(teamID string) int {
	count := 0
	for _, item := range r.wrestlers {
		if item.TeamID != nil && *item.TeamID == teamID {
			count++
		}
	}
	return count
}

func (r *WrestlerRepository) starterCountLocked(teamID string) int {
	count := 0
	for _, item := range r.wrestlers {
		if item.TeamID != nil && *item.TeamID == teamID && item.IsStarter {
			count++
		}
	}
	return count
}

func cloneWrestler(item wrestler.Wrestler) wrestler.Wrestler {
	if item.TeamID != nil {
		teamID := *item.TeamID
		item.TeamID = &teamID
	}
	return item
}
