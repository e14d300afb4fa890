package postgres

import (
	"database/sql"
	"testing"
	"time"
)

func TestNullStringToStringPtr(t *testing.T) {
	t.Run("returns value for valid string", func(t *testing.T) {
		got := nullStringToStringPtr(sql.NullString{String: "team-heavyweights", Valid: true})
		if got == nil || *got != "team-heavyweights" {
			t.Fatalf("unexpected pointer %v", got)
		}
	})

	t.Run("returns nil for null", func(t *testing.T) {
		if got := nullStringToStringPtr(sql.NullString{}); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})
}

func TestStringPtrRoundTrip(t *testing.T) {
	teamID := "team-ring-generals"
	if got := stringPtrToNullString(&teamID); !got.Valid || got.String != teamID {
		t.Fatalf("unexpected null string %v", got)
	}
	if got := stringPtrToNullString(nil); got.Valid {
		t.Fatalf("expected invalid null string, got %v", got)
	}
}

func TestTimePtrRoundTrip(t *testing.T) {
	at := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)

	asNull := timePtrToNullTime(&at)
	if !asNull.Valid || !asNull.Time.Equal(at) {
		t.Fatalf("unexpected null time %v", asNull)
	}

	back := nullTimeToTimePtr(asNull)
	if back == nil || !back.Equal(at) {
		t.Fatalf("unexpected pointer %v", back)
	}

	if got := nullTimeToTimePtr(sql.NullTime{}); got != nil {
		t.Fatalf("expected nil for null time, got %v", got)
	}
}
