package service

import (
	"context"
	"errors"
	"strings"

	"taskflow/internal/domain"
	"taskflow/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrEmptyComment    = errors.New("comment body is required")
	ErrCommentNotFound = errors.New("comment not found")
)

// CommentService is the thread engine: top-level comments plus
// one-level replies. Comments are append-only; there is no edit or
// delete path.
type CommentService struct {
	comments *repository.CommentRepository
	tasks    *repository.TaskRepository
}

func NewCommentService(db *pgxpool.Pool) *CommentService {
	return &CommentService{
		comments: repository.NewCommentRepository(db),
		tasks:    repository.NewTaskRepository(db),
	}
}

func (s *CommentService) PostComment(ctx context.Context, taskID, authorID int64, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return s.comments.Create(ctx, taskID, authorID, body)
}

func (s *CommentService) PostReply(ctx context.Context, parentID, taskID, authorID int64, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.comments.GetByID(ctx, parentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return s.comments.CreateReply(ctx, parentID, taskID, authorID, body)
}

func (s *CommentService) ListTaskComments(ctx context.Context, taskID int64) ([]*domain.Comment, error) {
	return s.comments.ListTopLevel(ctx, taskID)
}

func (s *CommentService) ListReplies(ctx context.Context, parentID int64) ([]*domain.Comment, error) {
	return s.comments.ListReplies(ctx, parentID)
}

// ListUserComments is the aggregated feed: top-level comments on every
// task the user owns or is assigned to, newest first, with reply
// counts.
func (s *CommentService) ListUserComments(ctx context.Context, userID int64) ([]*domain.UserComment, error) {
	return s.comments.ListByUserTasks(ctx, userID)
}
