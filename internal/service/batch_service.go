package service

import (
	"context"
	"sync"

	"taskflow/internal/domain"
)

// BatchStore is the slice of the task store the coordinator needs:
// independent creates for the fan-out and the one-pass set delete.
type BatchStore interface {
	Create(ctx context.Context, d *domain.TaskDraft) (*domain.Task, error)
	BulkDelete(ctx context.Context, ids []int64, requesterID int64) ([]*domain.Task, error)
}

// BatchOutcome is the result of one item in a batch create: either the
// created task or the reason it was rejected. One item failing never
// aborts the others.
type BatchOutcome struct {
	Index int
	Task  *domain.Task
	Err   error
}

// BulkDeleteResult reports what a bulk delete actually removed. Ids
// that matched nothing the requester could touch are simply absent.
type BulkDeleteResult struct {
	DeletedCount int            `json:"deletedCount"`
	Deleted      []*domain.Task `json:"deleted"`
}

// BatchService fans batched operations out to the task store.
type BatchService struct {
	store BatchStore
}

func NewBatchService(store BatchStore) *BatchService {
	return &BatchService{store: store}
}

// CreateBatch submits every draft to the store independently and
// concurrently, then joins all of them. Outcomes come back in input
// order; there is no surrounding transaction, so a partial failure is
// a normal terminal state and the caller reconciles with the subset
// that succeeded.
func (s *BatchService) CreateBatch(ctx context.Context, drafts []*domain.TaskDraft) []BatchOutcome {
	outcomes := make([]BatchOutcome, len(drafts))

	var wg sync.WaitGroup
	for i, d := range drafts {
		outcomes[i].Index = i

		if err := ValidateDraft(d); err != nil {
			outcomes[i].Err = err
			continue
		}

		wg.Add(1)
		go func(i int, d *domain.TaskDraft) {
			defer wg.Done()
			task, err := s.store.Create(ctx, d)
			outcomes[i].Task = task
			outcomes[i].Err = err
		}(i, d)
	}
	wg.Wait()

	return outcomes
}

// BulkDelete removes the requester-owned subset of ids in a single
// store pass. Non-matching ids are skipped, not reported as errors.
func (s *BatchService) BulkDelete(ctx context.Context, ids []int64, requesterID int64) (*BulkDeleteResult, error) {
	deleted, err := s.store.BulkDelete(ctx, ids, requesterID)
	if err != nil {
		return nil, err
	}
	return &BulkDeleteResult{
		DeletedCount: len(deleted),
		Deleted:      deleted,
	}, nil
}
