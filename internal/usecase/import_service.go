package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/team"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
	"github.com/riskibarqy/fantasy-wrestling/internal/ingest"
	idgen "github.com/riskibarqy/fantasy-wrestling/internal/platform/id"
)

const (
	skipReasonUnknownWrestler = "unknown wrestler"
	skipReasonFreeAgent       = "not rostered"
	skipReasonBench           = "not a starter"
)

type ImportEventInput struct {
	EventName   string
	EventDate   time.Time
	Content     string
	ContentType ingest.ContentType
}

type ImportEventFromURLInput struct {
	EventName   string
	EventDate   time.Time
	URL         string
	ContentType ingest.ContentType
}

type SkippedEntry struct {
	WrestlerName string `json:"wrestler_name"`
	Reason       string `json:"reason"`
}

type ImportResult struct {
	Applied int            `json:"applied"`
	Skipped []SkippedEntry `json:"skipped"`
}

type eventFetcher interface {
	FetchRaw(ctx context.Context, url string) (string, error)
}

// ImportService turns raw event content into scored ledger entries. Only
// entries for current starters are applied; everything else lands in the
// skipped summary. Re-importing the same (name, date) pair replaces that
// event's rows and moves cumulative points by the contribution delta, so
// repeat imports converge instead of double counting.
type ImportService struct {
	wrestlerRepo wrestler.Repository
	teamRepo     team.Repository
	scoringRepo  scoring.Repository
	ledgerRepo   ledger.Repository
	fetcher      eventFetcher
	idGen        idgen.Generator
	now          func() time.Time
}

func NewImportService(
	wrestlerRepo wrestler.Repository,
	teamRepo team.Repository,
	scoringRepo scoring.Repository,
	ledgerRepo ledger.Repository,
	idGen idgen.Generator,
) *ImportService {
	return &ImportService{
		wrestlerRepo: wrestlerRepo,
		teamRepo:     teamRepo,
		scoringRepo:  scoringRepo,
		ledgerRepo:   ledgerRepo,
		idGen:        idGen,
		now:          time.Now,
	}
}

// SetFetcher enables URL-based imports. Without a fetcher ImportEventFromURL
// fails with ErrDependencyUnavailable.
func (s *ImportService) SetFetcher(fetcher eventFetcher) {
	s.fetcher = fetcher
}

func (s *ImportService) ImportEvent(ctx context.Context, input ImportEventInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportEvent")
	defer span.End()

	input.EventName = strings.TrimSpace(input.EventName)
	if input.EventName == "" {
		return ImportResult{}, fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}
	if input.EventDate.IsZero() {
		return ImportResult{}, fmt.Errorf("%w: event date is required", ErrInvalidInput)
	}

	parser, ok := ingest.ParserFor(input.ContentType)
	if !ok {
		return ImportResult{}, fmt.Errorf("%w: unsupported content type %q", ErrInvalidInput, input.ContentType)
	}

	parsed, err := parser.Parse(input.Content)
	if err != nil {
		return ImportResult{}, fmt.Errorf("parse event %s: %w", input.EventName, err)
	}

	applied := make([]scoring.EventEntry, 0, len(parsed))
	skipped := make([]SkippedEntry, 0)
	resolved := make(map[string]*wrestler.Wrestler)
	namesByID := make(map[string]string)

	for _, entry := range parsed {
		key := strings.ToLower(entry.WrestlerName)
		cached, seen := resolved[key]
		if !seen {
			item, exists, err := s.wrestlerRepo.GetByName(ctx, entry.WrestlerName)
			if err != nil {
				return ImportResult{}, fmt.Errorf("get wrestler by name: %w", err)
			}
			if exists {
				cached = &item
			}
			resolved[key] = cached
		}

		if cached == nil {
			skipped = append(skipped, SkippedEntry{WrestlerName: entry.WrestlerName, Reason: skipReasonUnknownWrestler})
			continue
		}
		if cached.IsFreeAgent() {
			skipped = append(skipped, SkippedEntry{WrestlerName: cached.Name, Reason: skipReasonFreeAgent})
			continue
		}
		if !cached.IsStarter {
			skipped = append(skipped, SkippedEntry{WrestlerName: cached.Name, Reason: skipReasonBench})
			continue
		}

		namesByID[cached.ID] = cached.Name
		applied = append(applied, scoring.EventEntry{
			EventName:   input.EventName,
			EventDate:   input.EventDate,
			WrestlerID:  cached.ID,
			TeamID:      cached.TeamID,
			IsStarter:   cached.IsStarter,
			Points:      entry.Points,
			Description: entry.Description,
		})
	}

	if err := s.scoringRepo.ReplaceEventEntries(ctx, input.EventName, input.EventDate, applied); err != nil {
		return ImportResult{}, fmt.Errorf("replace event entries event=%s: %w", input.EventName, err)
	}

	if err := s.appendScoreTransactions(ctx, applied, namesByID); err != nil {
		return ImportResult{}, err
	}

	return ImportResult{Applied: len(applied), Skipped: skipped}, nil
}

func (s *ImportService) ImportEventFromURL(ctx context.Context, input ImportEventFromURLInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportEventFromURL")
	defer span.End()

	input.URL = strings.TrimSpace(input.URL)
	if input.URL == "" {
		return ImportResult{}, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	if s.fetcher == nil {
		return ImportResult{}, fmt.Errorf("%w: event page fetching is disabled", ErrDependencyUnavailable)
	}

	content, err := s.fetcher.FetchRaw(ctx, input.URL)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: fetch event page: %v", ErrDependencyUnavailable, err)
	}

	return s.ImportEvent(ctx, ImportEventInput{
		EventName:   input.EventName,
		EventDate:   input.EventDate,
		Content:     content,
		ContentType: input.ContentType,
	})
}

// appendScoreTransactions writes one score row per scored wrestler. These are
// observability rows, not roster moves.
func (s *ImportService) appendScoreTransactions(ctx context.Context, applied []scoring.EventEntry, namesByID map[string]string) error {
	teamNames := make(map[string]string)
	seen := make(map[string]struct{}, len(applied))
	recordedAt := s.now().UTC()

	for _, entry := range applied {
		if _, done := seen[entry.WrestlerID]; done {
			continue
		}
		seen[entry.WrestlerID] = struct{}{}
		if entry.TeamID == nil {
			continue
		}

		teamName, ok := teamNames[*entry.TeamID]
		if !ok {
			owner, exists, err := s.teamRepo.GetByID(ctx, *entry.TeamID)
			if err != nil {
				return fmt.Errorf("get team by id: %w", err)
			}
			if !exists {
				continue
			}
			teamName = owner.Name
			teamNames[*entry.TeamID] = teamName
		}

		txID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate transaction id: %w", err)
		}
		tx := ledger.Transaction{
			ID:           txID,
			WrestlerName: namesByID[entry.WrestlerID],
			TeamName:     teamName,
			Action:       ledger.ActionScore,
			Timestamp:    recordedAt,
		}
		if err := s.ledgerRepo.Append(ctx, tx); err != nil {
			return fmt.Errorf("append score transaction: %w", err)
		}
	}

	return nil
}
