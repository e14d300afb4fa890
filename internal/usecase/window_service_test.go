package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/window"
	"github.com/riskibarqy/fantasy-wrestling/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fantasy-wrestling/internal/platform/id"
)

func TestWindowService_CreateAndDelete(t *testing.T) {
	svc := NewWindowService(memory.NewWindowRepository(nil), time.UTC, idgen.NewRandomGenerator())

	created, err := svc.Create(t.Context(), 1, 20, 23)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated window id")
	}

	items, err := svc.List(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 window, got %d", len(items))
	}

	if err := svc.Delete(t.Context(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(t.Context(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestWindowService_CreateValidation(t *testing.T) {
	svc := NewWindowService(memory.NewWindowRepository(nil), time.UTC, idgen.NewRandomGenerator())

	for _, tc := range []struct{ day, start, end int }{
		{7, 20, 23},
		{-1, 20, 23},
		{1, 24, 25},
		{1, 20, 20},
		{1, 20, 19},
		{1, 20, 25},
	} {
		if _, err := svc.Create(t.Context(), tc.day, tc.start, tc.end); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("day=%d start=%d end=%d: expected ErrInvalidInput, got %v", tc.day, tc.start, tc.end, err)
		}
	}
}

func TestWindowService_GuardUsesLeagueTimezone(t *testing.T) {
	// Friday show window, 20:00-23:00 league time.
	windows := []window.Window{{ID: "w", Day: 5, StartHour: 20, EndHour: 23}}
	newYork := time.FixedZone("UTC-5", -5*60*60)

	svc := NewWindowService(memory.NewWindowRepository(windows), newYork, idgen.NewRandomGenerator())

	// 2026-09-05 02:00 UTC is still Friday 21:00 in UTC-5.
	svc.now = func() time.Time { return time.Date(2026, 9, 5, 2, 0, 0, 0, time.UTC) }
	if err := svc.EnsureUnrestricted(t.Context()); !errors.Is(err, window.ErrRestricted) {
		t.Fatalf("expected ErrRestricted, got %v", err)
	}

	// Same instant in a UTC league is Saturday, outside the window.
	utcSvc := NewWindowService(memory.NewWindowRepository(windows), time.UTC, idgen.NewRandomGenerator())
	utcSvc.now = func() time.Time { return time.Date(2026, 9, 5, 2, 0, 0, 0, time.UTC) }
	if err := utcSvc.EnsureUnrestricted(t.Context()); err != nil {
		t.Fatalf("expected unrestricted, got %v", err)
	}
}

func TestWindowService_GuardBoundaries(t *testing.T) {
	windows := []window.Window{{ID: "w", Day: 1, StartHour: 20, EndHour: 23}}
	svc := NewWindowService(memory.NewWindowRepository(windows), time.UTC, idgen.NewRandomGenerator())

	// Start hour is inclusive.
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC) }
	if err := svc.EnsureUnrestricted(t.Context()); !errors.Is(err, window.ErrRestricted) {
		t.Fatalf("expected ErrRestricted at start hour, got %v", err)
	}

	// End hour is exclusive.
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC) }
	if err := svc.EnsureUnrestricted(t.Context()); err != nil {
		t.Fatalf("expected unrestricted at end hour, got %v", err)
	}
}
