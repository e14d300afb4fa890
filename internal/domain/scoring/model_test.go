package scoring

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)

	tests := []struct {
		name   string
		in     time.Time
		anchor time.Weekday
		want   time.Time
	}{
		{
			name:   "midweek snaps back to monday",
			in:     time.Date(2026, time.September, 2, 21, 30, 0, 0, loc),
			anchor: time.Monday,
			want:   time.Date(2026, time.August, 31, 0, 0, 0, 0, loc),
		},
		{
			name:   "anchor day truncates to its own midnight",
			in:     time.Date(2026, time.August, 31, 23, 59, 59, 0, loc),
			anchor: time.Monday,
			want:   time.Date(2026, time.August, 31, 0, 0, 0, 0, loc),
		},
		{
			name:   "sunday belongs to the previous monday week",
			in:     time.Date(2026, time.September, 6, 1, 0, 0, 0, loc),
			anchor: time.Monday,
			want:   time.Date(2026, time.August, 31, 0, 0, 0, 0, loc),
		},
		{
			name:   "sunday anchor",
			in:     time.Date(2026, time.September, 2, 12, 0, 0, 0, loc),
			anchor: time.Sunday,
			want:   time.Date(2026, time.August, 30, 0, 0, 0, 0, loc),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WeekStart(tc.in, tc.anchor, loc)
			if !got.Equal(tc.want) {
				t.Fatalf("WeekStart(%v, %v) = %v, want %v", tc.in, tc.anchor, got, tc.want)
			}
			if got.Location() != loc {
				t.Fatalf("week start changed location to %v", got.Location())
			}
		})
	}
}

func TestWeekStart_CrossZoneInputsShareOneBucket(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)

	// A UTC event timestamp and a local one from the same league week must
	// resolve to the same instant when bucketed in the league zone.
	utcEvent := time.Date(2026, time.September, 2, 21, 0, 0, 0, time.UTC)
	localWeek := time.Date(2026, time.September, 4, 8, 0, 0, 0, loc)

	a := WeekStart(utcEvent, time.Monday, loc)
	b := WeekStart(localWeek, time.Monday, loc)
	if !a.Equal(b) {
		t.Fatalf("buckets diverge: %v vs %v", a, b)
	}

	want := time.Date(2026, time.August, 31, 0, 0, 0, 0, loc)
	if !a.Equal(want) {
		t.Fatalf("week start %v, want %v", a, want)
	}
}

func TestWeekStart_NilLocationKeepsInputZone(t *testing.T) {
	in := time.Date(2026, time.September, 2, 21, 0, 0, 0, time.UTC)
	got := WeekStart(in, time.Monday, nil)
	want := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("week start %v, want %v", got, want)
	}
}

func TestEventEntryValidate(t *testing.T) {
	valid := EventEntry{
		EventName:  "Clash at the Castle",
		EventDate:  time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
		WrestlerID: "w-1",
		Points:     5,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missingName := valid
	missingName.EventName = ""
	if err := missingName.Validate(); err == nil {
		t.Fatal("expected error for missing event name")
	}

	missingDate := valid
	missingDate.EventDate = time.Time{}
	if err := missingDate.Validate(); err == nil {
		t.Fatal("expected error for missing event date")
	}

	missingWrestler := valid
	missingWrestler.WrestlerID = ""
	if err := missingWrestler.Validate(); err == nil {
		t.Fatal("expected error for missing wrestler id")
	}
}
