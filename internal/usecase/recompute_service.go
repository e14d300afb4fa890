package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
)

const recomputeMaxWorkers = 4

type RecomputeResult struct {
	WrestlerCount int `json:"wrestler_count"`
	UpdatedCount  int `json:"updated_count"`
	FailedCount   int `json:"failed_count"`
	WorkerCount   int `json:"worker_count"`
}

// RecomputeService re-derives every wrestler's cumulative points as the sum
// over the event ledger. It is the escape hatch when the incrementally
// maintained totals are suspected to have drifted; the ledger is the source
// of truth.
type RecomputeService struct {
	wrestlerRepo wrestler.Repository
	scoringRepo  scoring.Repository
}

func NewRecomputeService(wrestlerRepo wrestler.Repository, scoringRepo scoring.Repository) *RecomputeService {
	return &RecomputeService{
		wrestlerRepo: wrestlerRepo,
		scoringRepo:  scoringRepo,
	}
}

func (s *RecomputeService) RecomputePoints(ctx context.Context, maxWorkers int) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.RecomputePoints")
	defer span.End()

	totals, err := s.scoringRepo.SumPointsByWrestler(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("sum points by wrestler: %w", err)
	}

	items, err := s.wrestlerRepo.List(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list wrestlers: %w", err)
	}

	workerCount := normalizeRecomputeWorkerCount(maxWorkers, len(items))
	result := RecomputeResult{
		WrestlerCount: len(items),
		WorkerCount:   workerCount,
	}
	if len(items) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var updatedCount atomic.Int32
	var failedCount atomic.Int32

	var errMu sync.Mutex
	var firstErr error

	var workers sync.WaitGroup
	for _, item := range items {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if err := s.wrestlerRepo.SetPoints(ctx, item.ID, totals[item.ID]); err != nil {
				failedCount.Add(1)
				errMu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("set points wrestler=%s: %w", item.ID, err)
				}
				errMu.Unlock()
				return
			}
			updatedCount.Add(1)
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()

	result.UpdatedCount = int(updatedCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, firstErr
}

func normalizeRecomputeWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > recomputeMaxWorkers {
		value = recomputeMaxWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
