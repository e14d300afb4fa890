package ledger

import "context"

// Repository is the append-only transaction log.
type Repository interface {
	Append(ctx context.Context, tx Transaction) error
	List(ctx context.Context) ([]Transaction, error)
}
