package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUserNotFound = errors.New("user not found")
	ErrEmptyTitle   = errors.New("title is required")
	ErrBadPriority  = errors.New("invalid priority")
)

// TaskService runs single-task lifecycle operations. Every status
// change passes the domain validator before it is allowed near the
// store.
type TaskService struct {
	tasks *repository.TaskRepository
}

func NewTaskService(db *pgxpool.Pool) *TaskService {
	return &TaskService{tasks: repository.NewTaskRepository(db)}
}

// ValidateDraft checks a draft against the closed sets before any
// insert. Batch creation runs the same check per item.
func ValidateDraft(d *domain.TaskDraft) error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if !domain.ValidPriority(d.Priority) {
		return ErrBadPriority
	}
	if d.Status != "" && !domain.ValidStatus(d.Status) {
		return domain.ErrInvalidStatus
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, d *domain.TaskDraft) (*domain.Task, error) {
	if err := ValidateDraft(d); err != nil {
		return nil, err
	}
	task, err := s.tasks.Create(ctx, d)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *TaskService) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

// UpdateStatus moves a task through the lifecycle. The status value is
// validated here; the repository stamps or clears completed_at.
func (s *TaskService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Task, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	task, err := s.tasks.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) UpdateDueDate(ctx context.Context, id int64, dueDate *time.Time) (*domain.Task, error) {
	task, err := s.tasks.UpdateDueDate(ctx, id, dueDate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Delete removes a task on behalf of requesterID. A task the requester
// neither owns nor is assigned to reports ErrTaskNotFound, same as a
// missing one.
func (s *TaskService) Delete(ctx context.Context, id, requesterID int64) (*domain.Task, error) {
	task, err := s.tasks.Delete(ctx, id, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Statistics(ctx context.Context, userID int64) (*domain.TaskStatistics, error) {
	return s.tasks.Statistics(ctx, userID)
}
