package team

import "fmt"

// Team owns a roster of wrestlers by reference: a wrestler belongs to the
// team whose ID its TeamID points at.
type Team struct {
	ID   string
	Name string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
