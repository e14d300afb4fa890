package roster

import "errors"

var (
	ErrAlreadyRostered     = errors.New("wrestler is already on a team")
	ErrRosterFull          = errors.New("team roster is full")
	ErrNotOnTeam           = errors.New("wrestler is not on this team")
	ErrStarterLimitReached = errors.New("starter limit reached")
)

// Rules stores roster validation parameters.
type Rules struct {
	RosterCap  int
	StarterCap int
}

func DefaultRules() Rules {
	return Rules{
		RosterCap:  9,
		StarterCap: 6,
	}
}

// CanAdd reports whether a team with the given roster size may claim
// another wrestler.
func CanAdd(rosterSize int, rules Rules) bool {
	return rosterSize < rules.RosterCap
}

// CanPromote reports whether a team with the given starter count may flag
// another starter.
func CanPromote(starterCount int, rules Rules) bool {
	return starterCount < rules.StarterCap
}
