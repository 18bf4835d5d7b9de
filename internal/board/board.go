// Package board holds the client-side mirror of a user's or project's
// tasks, partitioned into the three status columns. Mutations are
// optimistic: the columns change synchronously, then the authoritative
// store is asked to agree; if it refuses, the board rolls back to the
// snapshot captured just before the mutation.
package board

import (
	"context"
	"errors"
	"sync"

	"taskflow/internal/domain"
)

var (
	ErrTaskNotInColumn = errors.New("task not found at source position")
)

// StatusUpdater is the reconciling request the board issues after an
// optimistic cross-column move.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, taskID int64, status string) error
}

// Board is the status-partitioned mirror. It is cooperative: the local
// mutation completes before any network call starts, so a reader never
// sees the pre-move layout while a request is in flight.
type Board struct {
	mu       sync.Mutex
	columns  map[string][]*domain.Task
	snapshot map[string][]*domain.Task
	updater  StatusUpdater
}

func New(updater StatusUpdater) *Board {
	b := &Board{updater: updater}
	b.columns = emptyColumns()
	b.snapshot = emptyColumns()
	return b
}

func emptyColumns() map[string][]*domain.Task {
	return map[string][]*domain.Task{
		domain.StatusToDo:       nil,
		domain.StatusInProgress: nil,
		domain.StatusCompleted:  nil,
	}
}

// Load replaces the board contents from an authoritative task list,
// preserving list order within each column, and marks the result as
// the known-good state.
func (b *Board) Load(tasks []*domain.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cols := emptyColumns()
	for _, t := range tasks {
		if _, ok := cols[t.Status]; !ok {
			continue
		}
		cols[t.Status] = append(cols[t.Status], t)
	}
	b.columns = cols
	b.snapshot = copyColumns(cols)
}

// Add appends a task to its status column (used after a confirmed
// create) and refreshes the snapshot.
func (b *Board) Add(t *domain.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.columns[t.Status]; !ok {
		return
	}
	b.columns[t.Status] = append(b.columns[t.Status], t)
	b.snapshot = copyColumns(b.columns)
}

// Column returns a copy of one column's current order.
func (b *Board) Column(status string) []*domain.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*domain.Task, len(b.columns[status]))
	copy(out, b.columns[status])
	return out
}

// Snapshot returns a copy of the last-known-good layout.
func (b *Board) Snapshot() map[string][]*domain.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return copyColumns(b.snapshot)
}

// Move relocates the task at column from, position fromIdx to column
// to, position toIdx.
//
// Same column and same position is a no-op. A same-column move is a
// pure local reorder: position has no server representation, so no
// request is emitted. A cross-column move is applied locally first
// (remove, splice, status change in memory), then confirmed with a
// status update; on failure the whole board reverts to the snapshot
// taken immediately before the move and the error is returned.
func (b *Board) Move(ctx context.Context, taskID int64, from string, fromIdx int, to string, toIdx int) error {
	if !domain.ValidStatus(from) || !domain.ValidStatus(to) {
		return domain.ErrInvalidStatus
	}
	if from == to && fromIdx == toIdx {
		return nil
	}

	b.mu.Lock()

	src := b.columns[from]
	if fromIdx < 0 || fromIdx >= len(src) || src[fromIdx].ID != taskID {
		b.mu.Unlock()
		return ErrTaskNotInColumn
	}

	// The snapshot is re-captured before every optimistic mutation so a
	// rollback always lands on the latest confirmed layout, never on a
	// stale one.
	b.snapshot = copyColumns(b.columns)

	task := src[fromIdx]
	b.columns[from] = append(src[:fromIdx:fromIdx], src[fromIdx+1:]...)

	if from == to {
		b.columns[to] = spliceAt(b.columns[to], task, toIdx)
		b.snapshot = copyColumns(b.columns)
		b.mu.Unlock()
		return nil
	}

	// Moved copy carries the new status; the snapshot keeps the
	// original task untouched for rollback.
	moved := *task
	moved.Status = to
	b.columns[to] = spliceAt(b.columns[to], &moved, toIdx)
	b.mu.Unlock()

	if err := b.updater.UpdateStatus(ctx, taskID, to); err != nil {
		b.mu.Lock()
		b.columns = copyColumns(b.snapshot)
		b.mu.Unlock()
		return err
	}

	// Confirmed; the optimistic layout becomes the known-good state.
	b.mu.Lock()
	b.snapshot = copyColumns(b.columns)
	b.mu.Unlock()
	return nil
}

func spliceAt(col []*domain.Task, t *domain.Task, idx int) []*domain.Task {
	if idx < 0 {
		idx = 0
	}
	if idx > len(col) {
		idx = len(col)
	}
	out := make([]*domain.Task, 0, len(col)+1)
	out = append(out, col[:idx]...)
	out = append(out, t)
	out = append(out, col[idx:]...)
	return out
}

func copyColumns(cols map[string][]*domain.Task) map[string][]*domain.Task {
	out := make(map[string][]*domain.Task, len(cols))
	for status, col := range cols {
		dup := make([]*domain.Task, len(col))
		copy(dup, col)
		out[status] = dup
	}
	return out
}
