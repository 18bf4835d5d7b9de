package service

import (
	"context"
	"errors"

	"taskflow/internal/domain"
	"taskflow/internal/logger"
	"taskflow/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrAlreadyCollaborator  = errors.New("user is already a collaborator on this project")
	ErrCollaboratorNotFound = errors.New("collaborator not found")
)

// Notifier delivers collaboration emails. Failures are the sender's
// problem: CollabService logs them and the triggering operation still
// succeeds.
type Notifier interface {
	SendProjectInvitation(ctx context.Context, to string, project *domain.Project, inviterName string) error
	SendTaskAssignment(ctx context.Context, to string, task *domain.Task) error
}

// CollabService owns project sharing, collaborator membership and task
// assignment.
type CollabService struct {
	projects *repository.ProjectRepository
	users    *repository.UserRepository
	tasks    *repository.TaskRepository
	notifier Notifier
}

func NewCollabService(db *pgxpool.Pool, notifier Notifier) *CollabService {
	return &CollabService{
		projects: repository.NewProjectRepository(db),
		users:    repository.NewUserRepository(db),
		tasks:    repository.NewTaskRepository(db),
		notifier: notifier,
	}
}

// ShareProject adds the invitee as a collaborator and sends an
// invitation, unless the inviter is inviting themselves. Sharing with
// an existing collaborator is rejected, not silently accepted.
func (s *CollabService) ShareProject(ctx context.Context, projectID int64, inviteeEmail, inviterEmail string) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	invitee, err := s.users.GetByEmail(ctx, inviteeEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	already, err := s.projects.IsCollaborator(ctx, projectID, invitee.ID)
	if err != nil {
		return err
	}
	if already {
		return ErrAlreadyCollaborator
	}

	if _, err := s.projects.AddCollaborator(ctx, projectID, invitee.ID, domain.RoleMember); err != nil {
		return err
	}

	if inviteeEmail != inviterEmail {
		inviterName := inviterEmail
		if inviter, err := s.users.GetByEmail(ctx, inviterEmail); err == nil {
			inviterName = inviter.Name
		}
		if err := s.notifier.SendProjectInvitation(ctx, inviteeEmail, project, inviterName); err != nil {
			logger.Error("project invitation email failed",
				"project_id", projectID, "to", inviteeEmail, "error", err)
		}
	}

	return nil
}

func (s *CollabService) RemoveCollaborator(ctx context.Context, projectID, userID int64) error {
	err := s.projects.RemoveCollaborator(ctx, projectID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCollaboratorNotFound
	}
	return err
}

func (s *CollabService) ListCollaborators(ctx context.Context, projectID int64) ([]*domain.Collaborator, error) {
	return s.projects.ListCollaborators(ctx, projectID)
}

// AssignTask resolves the assignee email (nil or empty clears the
// assignment), applies it through the store and notifies the assignee
// when they are not the task's creator. The store keeps assigned_at
// honest: it only moves when the assignee actually changes.
func (s *CollabService) AssignTask(ctx context.Context, taskID int64, assigneeEmail *string, description *string) (*domain.Task, error) {
	var assigneeID *int64
	var assignee *domain.User

	if assigneeEmail != nil && *assigneeEmail != "" {
		u, err := s.users.GetByEmail(ctx, *assigneeEmail)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		assignee = u
		assigneeID = &u.ID
	}

	task, err := s.tasks.UpdateAssignment(ctx, taskID, assigneeID, description)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if assignee != nil && assignee.ID != task.CreatedBy {
		if err := s.notifier.SendTaskAssignment(ctx, assignee.Email, task); err != nil {
			logger.Error("assignment email failed",
				"task_id", taskID, "to", assignee.Email, "error", err)
		}
	}

	return task, nil
}
