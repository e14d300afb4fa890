package wrestler

import (
	"context"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/roster"
)

// Repository provides wrestler persistence. The mutating methods re-validate
// their roster preconditions atomically with the write, so two concurrent
// callers can never both succeed against the same precondition.
type Repository interface {
	List(ctx context.Context) ([]Wrestler, error)
	ListAvailable(ctx context.Context) ([]Wrestler, error)
	ListByTeam(ctx context.Context, teamID string) ([]Wrestler, error)
	GetByName(ctx context.Context, name string) (Wrestler, bool, error)

	// AssignToTeam claims a free agent for a team. Fails with
	// roster.ErrAlreadyRostered when the wrestler is owned and
	// roster.ErrRosterFull when the team is at capacity.
	AssignToTeam(ctx context.Context, wrestlerID, teamID string, rules roster.Rules) error

	// Release returns a wrestler to free agency. Fails with
	// roster.ErrNotOnTeam when the wrestler is not on the given team.
	Release(ctx context.Context, wrestlerID, teamID string) error

	// SetStarter toggles the starter flag. Promotion fails with
	// roster.ErrStarterLimitReached when the team is at its starter cap.
	SetStarter(ctx context.Context, wrestlerID string, isStarter bool, rules roster.Rules) error

	SetPoints(ctx context.Context, wrestlerID string, points int) error
}
