package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/ledger"
)

// LedgerRepository is the append-only transaction log. Rows keep their
// insertion order.
type LedgerRepository struct {
	mu   sync.RWMutex
	rows []ledger.Transaction
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

func (r *LedgerRepository) Append(_ context.Context, tx ledger.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	r.rows = append(r.rows, tx)
	r.mu.Unlock()

	return nil
}

func (r *LedgerRepository) List(_ context.Context) ([]ledger.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ledger.Transaction, len(r.rows))
	copy(out, r.rows)

	return out, nil
}
