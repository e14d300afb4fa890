package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/window"
)

type WindowRepository struct {
	mu      sync.RWMutex
	windows []window.Window
}

func NewWindowRepository(items []window.Window) *WindowRepository {
	windows := make([]window.Window, len(items))
	copy(windows, items)

	return &WindowRepository{windows: windows}
}

func (r *WindowRepository) List(_ context.Context) ([]window.Window, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]window.Window, len(r.windows))
	copy(out, r.windows)

	return out, nil
}

func (r *WindowRepository) Create(_ context.Context, w window.Window) error {
	r.mu.Lock()
	r.windows = append(r.windows, w)
	r.mu.Unlock()

	return nil
}

func (r *WindowRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx, item := range r.windows {
		if item.ID == id {
			r.windows = append(r.windows[:idx], r.windows[idx+1:]...)
			return true, nil
		}
	}

	return false, nil
}
