package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/team"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
	"github.com/riskibarqy/fantasy-wrestling/internal/platform/cache"
)

const (
	standingsCacheKey   = "standings:totals"
	weeklyScoreCacheKey = "standings:weekly"
)

type TeamStanding struct {
	Rank     int    `json:"rank"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Points   int    `json:"points"`
}

type TeamWeeklyScore struct {
	WeekStart time.Time `json:"week_start"`
	TeamID    string    `json:"team_id"`
	TeamName  string    `json:"team_name"`
	Points    int       `json:"points"`
}

type TeamWinTally struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Wins     int    `json:"wins"`
}

type WrestlerEventLine struct {
	EventName   string    `json:"event_name"`
	EventDate   time.Time `json:"event_date"`
	Points      int       `json:"points"`
	Description string    `json:"description"`
}

type WrestlerProfile struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	TeamID    *string             `json:"team_id"`
	TeamName  string              `json:"team_name,omitempty"`
	IsStarter bool                `json:"is_starter"`
	Points    int                 `json:"points"`
	Events    []WrestlerEventLine `json:"events"`
}

type EventSummary struct {
	EventName   string    `json:"event_name"`
	EventDate   time.Time `json:"event_date"`
	TotalPoints int       `json:"total_points"`
	EntryCount  int       `json:"entry_count"`
}

// StandingsService is a read-only consumer of wrestler and scoring state.
// Aggregations are cached for a short TTL; a stale read of a few hundred
// milliseconds is acceptable here.
type StandingsService struct {
	wrestlerRepo wrestler.Repository
	teamRepo     team.Repository
	scoringRepo  scoring.Repository
	cache        *cache.Store
	starterOnly  bool
	anchor       time.Weekday
	location     *time.Location
}

func NewStandingsService(
	wrestlerRepo wrestler.Repository,
	teamRepo team.Repository,
	scoringRepo scoring.Repository,
	cacheStore *cache.Store,
	starterOnly bool,
	anchor time.Weekday,
	location *time.Location,
) *StandingsService {
	if location == nil {
		location = time.UTC
	}
	return &StandingsService{
		wrestlerRepo: wrestlerRepo,
		teamRepo:     teamRepo,
		scoringRepo:  scoringRepo,
		cache:        cacheStore,
		starterOnly:  starterOnly,
		anchor:       anchor,
		location:     location,
	}
}

func (s *StandingsService) Standings(ctx context.Context) ([]TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	value, err := s.cache.GetOrLoad(ctx, standingsCacheKey, func(ctx context.Context) (any, error) {
		return s.computeStandings(ctx)
	})
	if err != nil {
		return nil, err
	}

	items, ok := value.([]TeamStanding)
	if !ok {
		return nil, fmt.Errorf("unexpected standings cache payload %T", value)
	}
	return items, nil
}

func (s *StandingsService) computeStandings(ctx context.Context) ([]TeamStanding, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	wrestlers, err := s.wrestlerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wrestlers: %w", err)
	}

	totals := make(map[string]int, len(teams))
	for _, item := range wrestlers {
		if item.TeamID == nil {
			continue
		}
		if s.starterOnly && !item.IsStarter {
			continue
		}
		totals[*item.TeamID] += item.Points
	}

	out := make([]TeamStanding, 0, len(teams))
	for _, item := range teams {
		out = append(out, TeamStanding{
			TeamID:   item.ID,
			TeamName: item.Name,
			Points:   totals[item.ID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return strings.ToLower(out[i].TeamName) < strings.ToLower(out[j].TeamName)
	})

	// Positional rank: tied teams still occupy distinct positions.
	for i := range out {
		out[i].Rank = i + 1
	}

	return out, nil
}

func (s *StandingsService) WeeklyScores(ctx context.Context) ([]TeamWeeklyScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.WeeklyScores")
	defer span.End()

	value, err := s.cache.GetOrLoad(ctx, weeklyScoreCacheKey, func(ctx context.Context) (any, error) {
		return s.computeWeeklyScores(ctx)
	})
	if err != nil {
		return nil, err
	}

	items, ok := value.([]TeamWeeklyScore)
	if !ok {
		return nil, fmt.Errorf("unexpected weekly score cache payload %T", value)
	}
	return items, nil
}

func (s *StandingsService) computeWeeklyScores(ctx context.Context) ([]TeamWeeklyScore, error) {
	scores, err := s.scoringRepo.ListWeeklyScores(ctx, s.anchor, s.location)
	if err != nil {
		return nil, fmt.Errorf("list weekly scores: %w", err)
	}

	names, err := s.teamNamesByID(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TeamWeeklyScore, 0, len(scores))
	for _, row := range scores {
		out = append(out, TeamWeeklyScore{
			WeekStart: row.WeekStart,
			TeamID:    row.TeamID,
			TeamName:  names[row.TeamID],
			Points:    row.Points,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].WeekStart.Equal(out[j].WeekStart) {
			return out[i].WeekStart.Before(out[j].WeekStart)
		}
		return out[i].Points > out[j].Points
	})

	return out, nil
}

// CalculateWeeklyWins credits every team that reached the maximum starter
// score of the given week. A tied week yields one row per tied team. The
// week can be recorded only once.
func (s *StandingsService) CalculateWeeklyWins(ctx context.Context, week time.Time) ([]scoring.WeeklyWin, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.CalculateWeeklyWins")
	defer span.End()

	if week.IsZero() {
		return nil, fmt.Errorf("%w: week is required", ErrInvalidInput)
	}
	weekStart := scoring.WeekStart(week, s.anchor, s.location)

	scores, err := s.scoringRepo.ListWeeklyScores(ctx, s.anchor, s.location)
	if err != nil {
		return nil, fmt.Errorf("list weekly scores: %w", err)
	}

	best := 0
	winners := make([]string, 0, 2)
	found := false
	for _, row := range scores {
		if !row.WeekStart.Equal(weekStart) {
			continue
		}
		switch {
		case !found || row.Points > best:
			best = row.Points
			winners = winners[:0]
			winners = append(winners, row.TeamID)
			found = true
		case row.Points == best:
			winners = append(winners, row.TeamID)
		}
	}
	if !found {
		return nil, fmt.Errorf("week=%s: %w", weekStart.Format(time.DateOnly), scoring.ErrNoScores)
	}

	if err := s.scoringRepo.InsertWeeklyWins(ctx, weekStart, winners); err != nil {
		return nil, fmt.Errorf("insert weekly wins week=%s: %w", weekStart.Format(time.DateOnly), err)
	}

	out := make([]scoring.WeeklyWin, 0, len(winners))
	for _, teamID := range winners {
		out = append(out, scoring.WeeklyWin{WeekStart: weekStart, TeamID: teamID})
	}
	return out, nil
}

func (s *StandingsService) WeeklyWinTally(ctx context.Context) ([]TeamWinTally, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.WeeklyWinTally")
	defer span.End()

	wins, err := s.scoringRepo.ListWeeklyWins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weekly wins: %w", err)
	}

	names, err := s.teamNamesByID(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, row := range wins {
		counts[row.TeamID]++
	}

	out := make([]TeamWinTally, 0, len(counts))
	for teamID, winCount := range counts {
		out = append(out, TeamWinTally{
			TeamID:   teamID,
			TeamName: names[teamID],
			Wins:     winCount,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return strings.ToLower(out[i].TeamName) < strings.ToLower(out[j].TeamName)
	})

	return out, nil
}

// WrestlerProfile resolves one wrestler by name together with every event
// line they scored, newest event first.
func (s *StandingsService) WrestlerProfile(ctx context.Context, name string) (WrestlerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.WrestlerProfile")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return WrestlerProfile{}, fmt.Errorf("%w: wrestler name is required", ErrInvalidInput)
	}

	item, exists, err := s.wrestlerRepo.GetByName(ctx, name)
	if err != nil {
		return WrestlerProfile{}, fmt.Errorf("get wrestler by name: %w", err)
	}
	if !exists {
		return WrestlerProfile{}, fmt.Errorf("%w: wrestler=%s", ErrNotFound, name)
	}

	entries, err := s.scoringRepo.ListEntries(ctx)
	if err != nil {
		return WrestlerProfile{}, fmt.Errorf("list event entries: %w", err)
	}

	lines := make([]WrestlerEventLine, 0)
	for _, entry := range entries {
		if entry.WrestlerID != item.ID {
			continue
		}
		lines = append(lines, WrestlerEventLine{
			EventName:   entry.EventName,
			EventDate:   entry.EventDate,
			Points:      entry.Points,
			Description: entry.Description,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].EventDate.Equal(lines[j].EventDate) {
			return lines[i].EventDate.After(lines[j].EventDate)
		}
		return lines[i].EventName < lines[j].EventName
	})

	profile := WrestlerProfile{
		ID:        item.ID,
		Name:      item.Name,
		TeamID:    item.TeamID,
		IsStarter: item.IsStarter,
		Points:    item.Points,
		Events:    lines,
	}
	if item.TeamID != nil {
		names, err := s.teamNamesByID(ctx)
		if err != nil {
			return WrestlerProfile{}, err
		}
		profile.TeamName = names[*item.TeamID]
	}

	return profile, nil
}

// EventSummaries rolls the event ledger up to one row per imported event,
// newest first.
func (s *StandingsService) EventSummaries(ctx context.Context) ([]EventSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.EventSummaries")
	defer span.End()

	entries, err := s.scoringRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event entries: %w", err)
	}

	type eventKey struct {
		name string
		date time.Time
	}
	totals := make(map[eventKey]*EventSummary)
	order := make([]eventKey, 0)
	for _, entry := range entries {
		key := eventKey{name: entry.EventName, date: entry.EventDate.UTC()}
		row, ok := totals[key]
		if !ok {
			row = &EventSummary{EventName: entry.EventName, EventDate: entry.EventDate}
			totals[key] = row
			order = append(order, key)
		}
		row.TotalPoints += entry.Points
		row.EntryCount++
	}

	out := make([]EventSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *totals[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.After(out[j].EventDate)
		}
		return out[i].EventName < out[j].EventName
	})

	return out, nil
}

func (s *StandingsService) teamNamesByID(ctx context.Context) (map[string]string, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	names := make(map[string]string, len(teams))
	for _, item := range teams {
		names[item.ID] = item.Name
	}
	return names, nil
}
