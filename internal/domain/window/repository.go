package window

import "context"

type Repository interface {
	List(ctx context.Context) ([]Window, error)
	Create(ctx context.Context, w Window) error
	Delete(ctx context.Context, id string) (bool, error)
}
