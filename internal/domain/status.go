package domain

import (
	"errors"
	"time"
)

var ErrInvalidStatus = errors.New("invalid status")

// ValidStatus reports whether s is one of the three lifecycle states.
func ValidStatus(s string) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether p is in the closed priority set.
func ValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ApplyStatus moves the task to status at time now. Every transition
// between distinct states is legal; entering COMPLETED stamps
// completed_at, leaving it clears the stamp. All status-changing paths
// go through here (or the equivalent SQL in TaskRepository), never
// around it.
func (t *Task) ApplyStatus(status string, now time.Time) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	t.Status = status
	t.UpdatedAt = now
	if status == StatusCompleted {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return nil
}

// ApplyAssignment sets the assignee in memory. assigned_at moves only
// when the assignee actually changes to a different non-nil user;
// re-submitting the same assignee is a no-op for the stamp.
func (t *Task) ApplyAssignment(assignee *int64, now time.Time) {
	changed := false
	switch {
	case assignee == nil:
		changed = t.AssignedTo != nil
	case t.AssignedTo == nil:
		changed = true
	default:
		changed = *t.AssignedTo != *assignee
	}

	t.AssignedTo = assignee
	t.UpdatedAt = now
	if changed && assignee != nil {
		t.AssignedAt = &now
	}
}
