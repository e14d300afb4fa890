package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/scoring"
)

// ScoringRepository stores the event ledger and weekly win records. Its
// mutex serializes event replaces, so the delta applied to wrestler totals
// always matches the rows that were actually swapped out.
type ScoringRepository struct {
	mu         sync.RWMutex
	entries    []scoring.EventEntry
	weeklyWins []scoring.WeeklyWin
	wrestlers  *WrestlerRepository
}

func NewScoringRepository(wrestlers *WrestlerRepository) *ScoringRepository {
	return &ScoringRepository{wrestlers: wrestlers}
}

func (r *ScoringRepository) ReplaceEventEntries(_ context.Context, eventName string, eventDate time.Time, entries []scoring.EventEntry) error {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	deltas := make(map[string]int)

	kept := make([]scoring.EventEntry, 0, len(r.entries))
	for _, row := range r.entries {
		if row.EventName == eventName && row.EventDate.Equal(eventDate) {
			deltas[row.WrestlerID] -= row.Points
			continue
		}
		kept = append(kept, row)
	}

	for _, entry := range entries {
		deltas[entry.WrestlerID] += entry.Points
		kept = append(kept, entry)
	}
	r.entries = kept

	for wrestlerID, delta := range deltas {
		if delta == 0 {
			continue
		}
		if err := r.wrestlers.adjustPoints(wrestlerID, delta); err != nil {
			return err
		}
	}

	return nil
}

func (r *ScoringRepository) ListEntriesByEvent(_ context.Context, eventName string, eventDate time.Time) ([]scoring.EventEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.EventEntry, 0)
	for _, row := range r.entries {
		if row.EventName == eventName && row.EventDate.Equal(eventDate) {
			out = append(out, cloneEntry(row))
		}
	}

	return out, nil
}

func (r *ScoringRepository) ListEntries(_ context.Context) ([]scoring.EventEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.EventEntry, 0, len(r.entries))
	for _, row := range r.entries {
		out = append(out, cloneEntry(row))
	}

	return out, nil
}

func (r *ScoringRepository) SumPointsByWrestler(_ context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int)
	for _, row := range r.entries {
		out[row.WrestlerID] += row.Points
	}

	return out, nil
}

func (r *ScoringRepository) ListWeeklyScores(_ context.Context, anchor time.Weekday, loc *time.Location) ([]scoring.WeeklyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type bucket struct {
		weekStart time.Time
		teamID    string
	}

	sums := make(map[bucket]int)
	for _, row := range r.entries {
		if row.TeamID == nil || !row.IsStarter {
			continue
		}
		key := bucket{
			weekStart: scoring.WeekStart(row.EventDate, anchor, loc),
			teamID:    *row.TeamID,
		}
		sums[key] += row.Points
	}

	out := make([]scoring.WeeklyScore, 0, len(sums))
	for key, points := range sums {
		out = append(out, scoring.WeeklyScore{
			WeekStart: key.weekStart,
			TeamID:    key.teamID,
			Points:    points,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].WeekStart.Equal(out[j].WeekStart) {
			return out[i].WeekStart.Before(out[j].WeekStart)
		}
		return out[i].TeamID < out[j].TeamID
	})

	return out, nil
}

func (r *ScoringRepository) InsertWeeklyWins(_ context.Context, weekStart time.Time, teamIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.weeklyWins {
		if row.WeekStart.Equal(weekStart) {
			return scoring.ErrAlreadyRecorded
		}
	}

	for _, teamID := range teamIDs {
		r.weeklyWins = append(r.weeklyWins, scoring.WeeklyWin{
			WeekStart: weekStart,
			TeamID:    teamID,
		})
	}

	return nil
}

func (r *ScoringRepository) ListWeeklyWins(_ context.Context) ([]scoring.WeeklyWin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.WeeklyWin, len(r.weeklyWins))
	copy(out, r.weeklyWins)

	return out, nil
}

func cloneEntry(row scoring.EventEntry) scoring.EventEntry {
	if row.TeamID != nil {
		teamID := *row.TeamID
		row.TeamID = &teamID
	}
	return row
}
