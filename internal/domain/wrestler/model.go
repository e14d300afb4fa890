package wrestler

import "fmt"

// Wrestler is the long-lived scoring unit of the league. Points are mutated
// only by event imports and recompute; TeamID and IsStarter only by roster
// and trade operations.
type Wrestler struct {
	ID        string
	Name      string
	Brand     string
	Points    int
	TeamID    *string
	IsStarter bool
}

func (w Wrestler) ValidateBasic() error {
	if w.ID == "" {
		return fmt.Errorf("wrestler id is required")
	}
	if w.Name == "" {
		return fmt.Errorf("wrestler name is required")
	}

	return nil
}

// IsFreeAgent reports whether the wrestler is unowned.
func (w Wrestler) IsFreeAgent() bool {
	return w.TeamID == nil
}
