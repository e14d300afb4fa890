package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-wrestling/internal/ingest"
	"github.com/riskibarqy/fantasy-wrestling/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fantasy-wrestling/internal/platform/id"
)

type importFixture struct {
	svc       *ImportService
	wrestlers *memory.WrestlerRepository
	scoring   *memory.ScoringRepository
	ledger    *memory.LedgerRepository
}

func newImportFixture() importFixture {
	wrestlerRepo := memory.NewWrestlerRepository(memory.SeedWrestlers())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	scoringRepo := memory.NewScoringRepository(wrestlerRepo)
	ledgerRepo := memory.NewLedgerRepository()

	svc := NewImportService(wrestlerRepo, teamRepo, scoringRepo, ledgerRepo, idgen.NewRandomGenerator())
	svc.now = func() time.Time { return tuesdayNoon }

	return importFixture{svc: svc, wrestlers: wrestlerRepo, scoring: scoringRepo, ledger: ledgerRepo}
}

func (f importFixture) pointsOf(t *testing.T, name string) int {
	t.Helper()
	item, exists, err := f.wrestlers.GetByName(t.Context(), name)
	if err != nil || !exists {
		t.Fatalf("wrestler %s: exists=%v err=%v", name, exists, err)
	}
	return item.Points
}

const seedEventContent = `Matches
Becky Lynch 10 pts defeated Bayley
Roman Reigns 5 pts defeated Kevin Owens
Gunther 5 pts defeated Chad Gable
Seth Rollins 7 pts won a ladder match
Hulk Hogan 5 pts defeated nobody

Bonus Points
Becky Lynch — 3 pts — Signature moves
`

func seedEventInput() ImportEventInput {
	return ImportEventInput{
		EventName:   "Monday Night Mayhem",
		EventDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Content:     seedEventContent,
		ContentType: ingest.ContentTypeText,
	}
}

func TestImportService_StarterOnlyPolicy(t *testing.T) {
	f := newImportFixture()

	result, err := f.svc.ImportEvent(t.Context(), seedEventInput())
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	// Becky Lynch appears twice and Roman Reigns once; Gunther (free agent),
	// Seth Rollins (bench) and Hulk Hogan (unknown) are skipped.
	if result.Applied != 3 {
		t.Fatalf("expected 3 applied entries, got %d", result.Applied)
	}

	reasons := make(map[string]string, len(result.Skipped))
	for _, item := range result.Skipped {
		reasons[item.WrestlerName] = item.Reason
	}
	if reasons["Gunther"] != "not rostered" {
		t.Fatalf("unexpected skip reason for Gunther: %q", reasons["Gunther"])
	}
	if reasons["Seth Rollins"] != "not a starter" {
		t.Fatalf("unexpected skip reason for Seth Rollins: %q", reasons["Seth Rollins"])
	}
	if reasons["Hulk Hogan"] != "unknown wrestler" {
		t.Fatalf("unexpected skip reason for Hulk Hogan: %q", reasons["Hulk Hogan"])
	}

	if got := f.pointsOf(t, "Becky Lynch"); got != 13 {
		t.Fatalf("Becky Lynch points = %d, want 13", got)
	}
	if got := f.pointsOf(t, "Roman Reigns"); got != 5 {
		t.Fatalf("Roman Reigns points = %d, want 5", got)
	}
	if got := f.pointsOf(t, "Gunther"); got != 0 {
		t.Fatalf("Gunther points = %d, want 0", got)
	}
	if got := f.pointsOf(t, "Seth Rollins"); got != 0 {
		t.Fatalf("Seth Rollins points = %d, want 0", got)
	}
}

func TestImportService_ReimportConverges(t *testing.T) {
	f := newImportFixture()
	input := seedEventInput()

	if _, err := f.svc.ImportEvent(t.Context(), input); err != nil {
		t.Fatalf("first import: %v", err)
	}
	firstRows, err := f.scoring.ListEntriesByEvent(t.Context(), input.EventName, input.EventDate)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}

	if _, err := f.svc.ImportEvent(t.Context(), input); err != nil {
		t.Fatalf("second import: %v", err)
	}
	secondRows, err := f.scoring.ListEntriesByEvent(t.Context(), input.EventName, input.EventDate)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}

	if len(firstRows) != len(secondRows) {
		t.Fatalf("re-import changed row count %d -> %d", len(firstRows), len(secondRows))
	}
	if got := f.pointsOf(t, "Becky Lynch"); got != 13 {
		t.Fatalf("re-import doubled points: got %d, want 13", got)
	}
}

func TestImportService_ReimportAppliesDelta(t *testing.T) {
	f := newImportFixture()
	input := seedEventInput()

	if _, err := f.svc.ImportEvent(t.Context(), input); err != nil {
		t.Fatalf("first import: %v", err)
	}

	// The corrected sheet halves Becky's match score.
	input.Content = `Matches
Becky Lynch 5 pts defeated Bayley
Roman Reigns 5 pts defeated Kevin Owens
`
	if _, err := f.svc.ImportEvent(t.Context(), input); err != nil {
		t.Fatalf("corrected import: %v", err)
	}

	if got := f.pointsOf(t, "Becky Lynch"); got != 5 {
		t.Fatalf("Becky Lynch points = %d, want 5 after correction", got)
	}
	if got := f.pointsOf(t, "Roman Reigns"); got != 5 {
		t.Fatalf("Roman Reigns points = %d, want 5 after correction", got)
	}
}

func TestImportService_ScoreTransactions(t *testing.T) {
	f := newImportFixture()

	if _, err := f.svc.ImportEvent(t.Context(), seedEventInput()); err != nil {
		t.Fatalf("import: %v", err)
	}

	rows, err := f.ledger.List(t.Context())
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	// One score row per scored wrestler, not per entry.
	if len(rows) != 2 {
		t.Fatalf("expected 2 score transactions, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Action != ledger.ActionScore {
			t.Fatalf("expected score action, got %s", row.Action)
		}
	}
}

func TestImportService_NoScorableContent(t *testing.T) {
	f := newImportFixture()
	input := seedEventInput()
	input.Content = "nothing that parses"

	_, err := f.svc.ImportEvent(t.Context(), input)
	if !errors.Is(err, ingest.ErrNoScorableContent) {
		t.Fatalf("expected ErrNoScorableContent, got %v", err)
	}

	rows, err := f.scoring.ListEntries(t.Context())
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("unparsable import must not write entries, got %d", len(rows))
	}
}

func TestImportService_InputValidation(t *testing.T) {
	f := newImportFixture()

	input := seedEventInput()
	input.EventName = " "
	if _, err := f.svc.ImportEvent(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}

	input = seedEventInput()
	input.EventDate = time.Time{}
	if _, err := f.svc.ImportEvent(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero date, got %v", err)
	}

	input = seedEventInput()
	input.ContentType = "pdf"
	if _, err := f.svc.ImportEvent(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unsupported content type, got %v", err)
	}
}

type stubFetcher struct {
	content string
	err     error
	lastURL string
}

func (s *stubFetcher) FetchRaw(_ context.Context, url string) (string, error) {
	s.lastURL = url
	return s.content, s.err
}

func TestImportService_ImportEventFromURL(t *testing.T) {
	f := newImportFixture()

	fetcher := &stubFetcher{content: seedEventContent}
	f.svc.SetFetcher(fetcher)

	result, err := f.svc.ImportEventFromURL(t.Context(), ImportEventFromURLInput{
		EventName:   "Monday Night Mayhem",
		EventDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		URL:         "https://results.example/mayhem",
		ContentType: ingest.ContentTypeText,
	})
	if err != nil {
		t.Fatalf("import from url: %v", err)
	}
	if result.Applied != 3 {
		t.Fatalf("expected 3 applied entries, got %d", result.Applied)
	}
	if fetcher.lastURL != "https://results.example/mayhem" {
		t.Fatalf("unexpected fetched url %q", fetcher.lastURL)
	}
}

func TestImportService_ImportEventFromURLWithoutFetcher(t *testing.T) {
	f := newImportFixture()

	_, err := f.svc.ImportEventFromURL(t.Context(), ImportEventFromURLInput{
		EventName:   "Monday Night Mayhem",
		EventDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		URL:         "https://results.example/mayhem",
		ContentType: ingest.ContentTypeText,
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
