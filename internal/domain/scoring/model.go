package scoring

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAlreadyRecorded = errors.New("weekly wins already recorded for this week")
	ErrNoScores        = errors.New("no starter scores recorded for this week")
)

// EventEntry is one scored line of an imported event. TeamID and IsStarter
// are snapshots of the wrestler's roster state at import time, not live
// references.
type EventEntry struct {
	EventName   string
	EventDate   time.Time
	WrestlerID  string
	TeamID      *string
	IsStarter   bool
	Points      int
	Description string
}

func (e EventEntry) Validate() error {
	if e.EventName == "" {
		return fmt.Errorf("event name is required")
	}
	if e.EventDate.IsZero() {
		return fmt.Errorf("event date is required")
	}
	if e.WrestlerID == "" {
		return fmt.Errorf("event entry wrestler id is required")
	}

	return nil
}

// WeeklyScore is a team's starter-snapshot point total for one week.
type WeeklyScore struct {
	WeekStart time.Time
	TeamID    string
	Points    int
}

// WeeklyWin credits one team with winning one week. Tied weeks produce one
// row per tied team.
type WeeklyWin struct {
	WeekStart time.Time
	TeamID    string
}

// WeekStart truncates t to the start of its week anchored on the given
// weekday. Bucketing happens in loc so that event dates and requested weeks
// land in the same bucket no matter which zone each arrived in. A nil loc
// falls back to t's location.
func WeekStart(t time.Time, anchor time.Weekday, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) - int(anchor) + 7) % 7
	return day.AddDate(0, 0, -offset)
}
