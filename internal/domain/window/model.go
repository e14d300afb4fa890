package window

import (
	"errors"
	"fmt"
	"time"
)

var ErrRestricted = errors.New("roster moves are restricted during show hours")

// Window is one recurring restricted interval: mutations are blocked on the
// given weekday between StartHour (inclusive) and EndHour (exclusive).
type Window struct {
	ID        string
	Day       int
	StartHour int
	EndHour   int
}

func (w Window) Validate() error {
	if w.Day < 0 || w.Day > 6 {
		return fmt.Errorf("day must be between 0 and 6, got %d", w.Day)
	}
	if w.StartHour < 0 || w.StartHour > 23 {
		return fmt.Errorf("start hour must be between 0 and 23, got %d", w.StartHour)
	}
	if w.EndHour <= w.StartHour || w.EndHour > 24 {
		return fmt.Errorf("end hour must be between %d and 24, got %d", w.StartHour+1, w.EndHour)
	}

	return nil
}

// Contains reports whether now falls inside this window. The caller is
// responsible for normalizing now to the league timezone.
func (w Window) Contains(now time.Time) bool {
	if int(now.Weekday()) != w.Day {
		return false
	}
	hour := now.Hour()
	return hour >= w.StartHour && hour < w.EndHour
}

// IsRestricted reports whether any configured window covers now.
func IsRestricted(windows []Window, now time.Time) bool {
	for _, w := range windows {
		if w.Contains(now) {
			return true
		}
	}
	return false
}
