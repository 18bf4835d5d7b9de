package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"taskflow/internal/domain"
)

type fakeStore struct {
	nextID  int64
	failOn  map[string]error
	deleted []int64
	owned   map[int64]bool
}

func (f *fakeStore) Create(ctx context.Context, d *domain.TaskDraft) (*domain.Task, error) {
	if err, ok := f.failOn[d.Title]; ok {
		return nil, err
	}
	id := atomic.AddInt64(&f.nextID, 1)
	return &domain.Task{ID: id, Title: d.Title, Priority: d.Priority, Status: domain.StatusToDo}, nil
}

func (f *fakeStore) BulkDelete(ctx context.Context, ids []int64, requesterID int64) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, id := range ids {
		if f.owned[id] {
			f.deleted = append(f.deleted, id)
			out = append(out, &domain.Task{ID: id})
		}
	}
	return out, nil
}

func draft(title string) *domain.TaskDraft {
	return &domain.TaskDraft{Title: title, Priority: domain.PriorityMedium, CreatorEmail: "owner@example.com"}
}

func TestCreateBatch_PartialFailure(t *testing.T) {
	store := &fakeStore{failOn: map[string]error{}}
	svc := NewBatchService(store)

	drafts := []*domain.TaskDraft{
		draft("first"),
		{Priority: domain.PriorityLow}, // missing title
		draft("third"),
	}

	outcomes := svc.CreateBatch(context.Background(), drafts)
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes; want 3", len(outcomes))
	}

	if outcomes[0].Err != nil || outcomes[0].Task == nil {
		t.Fatalf("item 0 should succeed: %v", outcomes[0].Err)
	}
	if !errors.Is(outcomes[1].Err, ErrEmptyTitle) {
		t.Fatalf("item 1 err = %v; want ErrEmptyTitle", outcomes[1].Err)
	}
	if outcomes[2].Err != nil || outcomes[2].Task == nil {
		t.Fatalf("item 2 should succeed despite item 1 failing: %v", outcomes[2].Err)
	}

	// outcomes preserve input order regardless of completion order
	if outcomes[0].Task.Title != "first" || outcomes[2].Task.Title != "third" {
		t.Fatalf("outcomes out of order: %q, %q", outcomes[0].Task.Title, outcomes[2].Task.Title)
	}
}

func TestCreateBatch_StoreErrorDoesNotAbortGroup(t *testing.T) {
	boom := errors.New("insert failed")
	store := &fakeStore{failOn: map[string]error{"bad": boom}}
	svc := NewBatchService(store)

	outcomes := svc.CreateBatch(context.Background(), []*domain.TaskDraft{
		draft("ok-1"), draft("bad"), draft("ok-2"),
	})

	var created int
	for _, o := range outcomes {
		if o.Err == nil {
			created++
		}
	}
	if created != 2 {
		t.Fatalf("created = %d; want 2", created)
	}
	if !errors.Is(outcomes[1].Err, boom) {
		t.Fatalf("item 1 err = %v; want store error", outcomes[1].Err)
	}
}

func TestBulkDelete_SkipsUnownedSilently(t *testing.T) {
	store := &fakeStore{owned: map[int64]bool{1: true, 3: true}}
	svc := NewBatchService(store)

	res, err := svc.BulkDelete(context.Background(), []int64{1, 2, 3}, 7)
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if res.DeletedCount != 2 {
		t.Fatalf("deletedCount = %d; want 2", res.DeletedCount)
	}
	for _, task := range res.Deleted {
		if task.ID == 2 {
			t.Fatalf("unowned id 2 reported as deleted")
		}
	}
}
