package service

import (
	"context"

	"taskflow/internal/board"
)

// boardUpdater adapts the task service to the board's reconciliation
// contract, discarding the refreshed task the service returns.
type boardUpdater struct {
	tasks *TaskService
}

func (u boardUpdater) UpdateStatus(ctx context.Context, taskID int64, status string) error {
	_, err := u.tasks.UpdateStatus(ctx, taskID, status)
	return err
}

// NewBoard builds a board whose cross-column moves reconcile through
// the task service.
func NewBoard(tasks *TaskService) *board.Board {
	return board.New(boardUpdater{tasks: tasks})
}
