package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamRepository(items []team.Team) *TeamRepository {
	teams := make([]team.Team, len(items))
	copy(teams, items)

	return &TeamRepository{teams: teams}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, len(r.teams))
	copy(out, r.teams)

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teams {
		if item.ID == id {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teams {
		if strings.EqualFold(item.Name, name) {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}
