package domain

import (
	"errors"
	"testing"
	"time"
)

func TestApplyStatus_AllTransitions(t *testing.T) {
	states := []string{StatusToDo, StatusInProgress, StatusCompleted}
	now := time.Now()

	for _, from := range states {
		for _, to := range states {
			task := &Task{Status: from}
			if from == StatusCompleted {
				task.CompletedAt = &now
			}

			if err := task.ApplyStatus(to, now); err != nil {
				t.Fatalf("ApplyStatus(%s -> %s): %v", from, to, err)
			}
			if task.Status != to {
				t.Fatalf("status = %s; want %s", task.Status, to)
			}

			// completed_at must be set iff the task is COMPLETED
			if to == StatusCompleted && task.CompletedAt == nil {
				t.Fatalf("%s -> COMPLETED: completed_at not stamped", from)
			}
			if to != StatusCompleted && task.CompletedAt != nil {
				t.Fatalf("%s -> %s: completed_at not cleared", from, to)
			}
		}
	}
}

func TestApplyStatus_RejectsUnknown(t *testing.T) {
	for _, s := range []string{"DONE", "todo", "", "IN PROGRESS"} {
		task := &Task{Status: StatusToDo}
		err := task.ApplyStatus(s, time.Now())
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("ApplyStatus(%q) = %v; want ErrInvalidStatus", s, err)
		}
		if task.Status != StatusToDo {
			t.Fatalf("status mutated on rejected transition: %s", task.Status)
		}
	}
}

func TestApplyAssignment(t *testing.T) {
	userA := int64(1)
	userB := int64(2)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := base.Add(time.Hour)

	t.Run("nil to user stamps assigned_at", func(t *testing.T) {
		task := &Task{UpdatedAt: base}
		task.ApplyAssignment(&userA, later)
		if task.AssignedAt == nil || !task.AssignedAt.Equal(later) {
			t.Fatalf("assigned_at = %v; want %v", task.AssignedAt, later)
		}
		if task.AssignedAt.Before(base) {
			t.Fatalf("assigned_at %v before previous updated_at %v", task.AssignedAt, base)
		}
	})

	t.Run("same assignee leaves stamp untouched", func(t *testing.T) {
		task := &Task{AssignedTo: &userA, AssignedAt: &base}
		task.ApplyAssignment(&userA, later)
		if !task.AssignedAt.Equal(base) {
			t.Fatalf("assigned_at moved on idempotent re-assignment: %v", task.AssignedAt)
		}
	})

	t.Run("different assignee moves stamp", func(t *testing.T) {
		task := &Task{AssignedTo: &userA, AssignedAt: &base}
		task.ApplyAssignment(&userB, later)
		if !task.AssignedAt.Equal(later) {
			t.Fatalf("assigned_at = %v; want %v", task.AssignedAt, later)
		}
	})

	t.Run("clearing keeps old stamp", func(t *testing.T) {
		task := &Task{AssignedTo: &userA, AssignedAt: &base}
		task.ApplyAssignment(nil, later)
		if task.AssignedTo != nil {
			t.Fatalf("assignee not cleared")
		}
		if !task.AssignedAt.Equal(base) {
			t.Fatalf("assigned_at = %v; want %v", task.AssignedAt, base)
		}
	})
}
