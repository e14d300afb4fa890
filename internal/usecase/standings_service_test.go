package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
	"github.com/riskibarqy/fantasy-wrestling/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-wrestling/internal/platform/cache"
)

func newStandingsFixture(wrestlers []wrestler.Wrestler, starterOnly bool) (*StandingsService, *memory.ScoringRepository) {
	wrestlerRepo := memory.NewWrestlerRepository(wrestlers)
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	scoringRepo := memory.NewScoringRepository(wrestlerRepo)

	svc := NewStandingsService(
		wrestlerRepo,
		teamRepo,
		scoringRepo,
		cache.NewStore(0),
		starterOnly,
		time.Monday,
		time.UTC,
	)
	return svc, scoringRepo
}

func standingsTestWrestlers() []wrestler.Wrestler {
	heavyweights := memory.TeamIDHeavyweights
	ringGenerals := memory.TeamIDRingGenerals
	mainEventers := memory.TeamIDMainEventers

	return []wrestler.Wrestler{
		{ID: "w1", Name: "Alpha", Points: 20, TeamID: &heavyweights, IsStarter: true},
		{ID: "w2", Name: "Bravo", Points: 7, TeamID: &heavyweights, IsStarter: false},
		{ID: "w3", Name: "Charlie", Points: 20, TeamID: &ringGenerals, IsStarter: true},
		{ID: "w4", Name: "Delta", Points: 5, TeamID: &mainEventers, IsStarter: true},
		{ID: "w5", Name: "Echo", Points: 99},
	}
}

func TestStandingsService_TotalsAndPositionalRank(t *testing.T) {
	svc, _ := newStandingsFixture(standingsTestWrestlers(), false)

	standings, err := svc.Standings(t.Context())
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(standings) != 4 {
		t.Fatalf("expected all 4 teams, got %d", len(standings))
	}

	// Free agent points count for nobody; bench points count when the
	// starter-only flag is off.
	if standings[0].Points != 27 || standings[0].TeamID != memory.TeamIDHeavyweights {
		t.Fatalf("unexpected leader %+v", standings[0])
	}
	if standings[1].Points != 20 || standings[1].TeamID != memory.TeamIDRingGenerals {
		t.Fatalf("unexpected runner-up %+v", standings[1])
	}

	for idx, row := range standings {
		if row.Rank != idx+1 {
			t.Fatalf("rank %d at position %d", row.Rank, idx)
		}
	}
}

func TestStandingsService_StarterOnlyTotals(t *testing.T) {
	svc, _ := newStandingsFixture(standingsTestWrestlers(), true)

	standings, err := svc.Standings(t.Context())
	if err != nil {
		t.Fatalf("standings: %v", err)
	}

	// Bench points drop out, leaving the two leaders tied at 20. Ties still
	// occupy distinct positions.
	if standings[0].Points != 20 || standings[1].Points != 20 {
		t.Fatalf("expected tied leaders at 20, got %+v", standings[:2])
	}
	if standings[0].Rank != 1 || standings[1].Rank != 2 {
		t.Fatalf("expected positional ranks 1 and 2, got %d and %d", standings[0].Rank, standings[1].Rank)
	}
}

func seedWeeklyEntries(t *testing.T, scoringRepo *memory.ScoringRepository, week time.Time) {
	t.Helper()
	heavyweights := memory.TeamIDHeavyweights
	ringGenerals := memory.TeamIDRingGenerals

	err := scoringRepo.ReplaceEventEntries(t.Context(), "Weekly Show", week, []scoring.EventEntry{
		{EventName: "Weekly Show", EventDate: week, WrestlerID: "w1", TeamID: &heavyweights, IsStarter: true, Points: 10},
		{EventName: "Weekly Show", EventDate: week, WrestlerID: "w3", TeamID: &ringGenerals, IsStarter: true, Points: 10},
		{EventName: "Weekly Show", EventDate: week, WrestlerID: "w2", TeamID: &heavyweights, IsStarter: false, Points: 4},
	})
	if err != nil {
		t.Fatalf("seed weekly entries: %v", err)
	}
}

func TestStandingsService_WeeklyScoresUseStarterSnapshots(t *testing.T) {
	svc, scoringRepo := newStandingsFixture(standingsTestWrestlers(), false)
	week := time.Date(2026, 9, 2, 21, 0, 0, 0, time.UTC)
	seedWeeklyEntries(t, scoringRepo, week)

	scores, err := svc.WeeklyScores(t.Context())
	if err != nil {
		t.Fatalf("weekly scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 team buckets, got %d", len(scores))
	}

	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	for _, row := range scores {
		if !row.WeekStart.Equal(monday) {
			t.Fatalf("week start %v, want %v", row.WeekStart, monday)
		}
		// The bench snapshot entry (4 pts) must not count.
		if row.Points != 10 {
			t.Fatalf("unexpected weekly points %+v", row)
		}
		if row.TeamName == "" {
			t.Fatalf("missing team name in %+v", row)
		}
	}
}

func TestStandingsService_TiedWeekProducesTwoWins(t *testing.T) {
	svc, scoringRepo := newStandingsFixture(standingsTestWrestlers(), false)
	week := time.Date(2026, 9, 2, 21, 0, 0, 0, time.UTC)
	seedWeeklyEntries(t, scoringRepo, week)

	wins, err := svc.CalculateWeeklyWins(t.Context(), week)
	if err != nil {
		t.Fatalf("calculate weekly wins: %v", err)
	}
	if len(wins) != 2 {
		t.Fatalf("expected 2 tied winners, got %d", len(wins))
	}

	tally, err := svc.WeeklyWinTally(t.Context())
	if err != nil {
		t.Fatalf("weekly win tally: %v", err)
	}
	if len(tally) != 2 || tally[0].Wins != 1 || tally[1].Wins != 1 {
		t.Fatalf("unexpected tally %+v", tally)
	}
}

func TestStandingsService_WeeklyWinsAcrossTimezones(t *testing.T) {
	// Event dates arrive in UTC while the league runs in a western zone.
	// Both the ledger rows and the requested week must land in the same
	// league-local bucket.
	leagueZone := time.FixedZone("UTC-5", -5*60*60)

	wrestlerRepo := memory.NewWrestlerRepository(standingsTestWrestlers())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	scoringRepo := memory.NewScoringRepository(wrestlerRepo)
	svc := NewStandingsService(
		wrestlerRepo,
		teamRepo,
		scoringRepo,
		cache.NewStore(0),
		false,
		time.Monday,
		leagueZone,
	)

	week := time.Date(2026, 9, 2, 21, 0, 0, 0, time.UTC)
	seedWeeklyEntries(t, scoringRepo, week)

	wins, err := svc.CalculateWeeklyWins(t.Context(), week)
	if err != nil {
		t.Fatalf("calculate weekly wins: %v", err)
	}
	if len(wins) != 2 {
		t.Fatalf("expected 2 tied winners, got %d", len(wins))
	}

	wantWeek := time.Date(2026, 8, 31, 0, 0, 0, 0, leagueZone)
	for _, row := range wins {
		if !row.WeekStart.Equal(wantWeek) {
			t.Fatalf("win bucketed at %v, want %v", row.WeekStart, wantWeek)
		}
	}
}

func TestStandingsService_WeekRecordedOnce(t *testing.T) {
	svc, scoringRepo := newStandingsFixture(standingsTestWrestlers(), false)
	week := time.Date(2026, 9, 2, 21, 0, 0, 0, time.UTC)
	seedWeeklyEntries(t, scoringRepo, week)

	if _, err := svc.CalculateWeeklyWins(t.Context(), week); err != nil {
		t.Fatalf("first calculation: %v", err)
	}

	// Any timestamp inside the same week hits the recorded guard.
	_, err := svc.CalculateWeeklyWins(t.Context(), week.Add(48*time.Hour))
	if !errors.Is(err, scoring.ErrAlreadyRecorded) {
		t.Fatalf("expected ErrAlreadyRecorded, got %v", err)
	}
}

func TestStandingsService_WrestlerProfile(t *testing.T) {
	svc, scoringRepo := newStandingsFixture(standingsTestWrestlers(), false)
	week := time.Date(2026, 9, 2, 21, 0, 0, 0, time.UTC)
	seedWeeklyEntries(t, scoringRepo, week)

	profile, err := svc.WrestlerProfile(t.Context(), "alpha")
	if err != nil {
		t.Fatalf("wrestler profile: %v", err)
	}
	if profile.ID != "w1" || profile.Name != "Alpha" {
		t.Fatalf("unexpected wrestler %+v", profile)
	}
	if profile.TeamName == "" {
		t.Fatalf("expected team name on rostered wrestler, got %+v", profile)
	}
	if len(profile.Events) != 1 || profile.Events[0].Points != 10 {
		t.Fatalf("unexpected event lines %+v", profile.Events)
	}

	// Free agents resolve too, with no team name attached.
	freeAgent, err := svc.WrestlerProfile(t.Context(), "Echo")
	if err != nil {
		t.Fatalf("free agent profile: %v", err)
	}
	if freeAgent.TeamID != nil || freeAgent.TeamName != "" {
		t.Fatalf("expected no team on free agent, got %+v", freeAgent)
	}

	if _, err := svc.WrestlerProfile(t.Context(), "Nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.WrestlerProfile(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStandingsService_EventSummaries(t *testing.T) {
	svc, scoringRepo := newStandingsFixture(standingsTestWrestlers(), false)
	heavyweights := memory.TeamIDHeavyweights

	older := time.Date(2026, 8, 26, 20, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 9, 2, 21, 0, 0, 0, time.UTC)
	seedWeeklyEntries(t, scoringRepo, newer)
	err := scoringRepo.ReplaceEventEntries(t.Context(), "House Show", older, []scoring.EventEntry{
		{EventName: "House Show", EventDate: older, WrestlerID: "w1", TeamID: &heavyweights, IsStarter: true, Points: 3},
	})
	if err != nil {
		t.Fatalf("seed older event: %v", err)
	}

	summaries, err := svc.EventSummaries(t.Context())
	if err != nil {
		t.Fatalf("event summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 events, got %d", len(summaries))
	}

	// Newest event first; bench entries count toward the event total.
	if summaries[0].EventName != "Weekly Show" || summaries[0].TotalPoints != 24 || summaries[0].EntryCount != 3 {
		t.Fatalf("unexpected first summary %+v", summaries[0])
	}
	if summaries[1].EventName != "House Show" || summaries[1].TotalPoints != 3 || summaries[1].EntryCount != 1 {
		t.Fatalf("unexpected second summary %+v", summaries[1])
	}
}

func TestStandingsService_WeekWithoutScores(t *testing.T) {
	svc, _ := newStandingsFixture(standingsTestWrestlers(), false)

	_, err := svc.CalculateWeeklyWins(t.Context(), time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, scoring.ErrNoScores) {
		t.Fatalf("expected ErrNoScores, got %v", err)
	}

	_, err = svc.CalculateWeeklyWins(t.Context(), time.Time{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero week, got %v", err)
	}
}
