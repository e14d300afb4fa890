package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, id string) (Team, bool, error)
	// GetByName resolves a team case-insensitively, matching how the
	// unauthenticated HTTP layer identifies teams.
	GetByName(ctx context.Context, name string) (Team, bool, error)
}
