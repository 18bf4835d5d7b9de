package repository

import (
	"context"
	"errors"

	"taskflow/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	db *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a top-level comment. Comments are never updated or
// deleted afterwards; the thread is an append-only trail.
func (r *CommentRepository) Create(ctx context.Context, taskID, userID int64, body string) (*domain.Comment, error) {
	var cm domain.Comment
	err := r.db.QueryRow(ctx, `
		INSERT INTO task_comments (task_id, user_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id, task_id, user_id, comment, parent_comment_id, created_at`,
		taskID, userID, body,
	).Scan(&cm.ID, &cm.TaskID, &cm.UserID, &cm.Comment, &cm.ParentCommentID, &cm.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// CreateReply inserts a one-level reply under parentID.
func (r *CommentRepository) CreateReply(ctx context.Context, parentID, taskID, userID int64, body string) (*domain.Comment, error) {
	var cm domain.Comment
	err := r.db.QueryRow(ctx, `
		INSERT INTO task_comments (task_id, user_id, comment, parent_comment_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, task_id, user_id, comment, parent_comment_id, created_at`,
		taskID, userID, body, parentID,
	).Scan(&cm.ID, &cm.TaskID, &cm.UserID, &cm.Comment, &cm.ParentCommentID, &cm.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// ListTopLevel returns a task's top-level comments, newest first.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var cm domain.Comment
	err := r.db.QueryRow(ctx, `
		SELECT id, task_id, user_id, comment, parent_comment_id, created_at
		FROM task_comments
		WHERE id = $1`,
		id,
	).Scan(&cm.ID, &cm.TaskID, &cm.UserID, &cm.Comment, &cm.ParentCommentID, &cm.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cm, nil
}

func (r *CommentRepository) ListTopLevel(ctx context.Context, taskID int64) ([]*domain.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT tc.id, tc.task_id, tc.user_id, tc.comment, tc.parent_comment_id, tc.created_at,
			u.name, u.email
		FROM task_comments tc
		JOIN users u ON tc.user_id = u.id
		WHERE tc.task_id = $1 AND tc.parent_comment_id IS NULL
		ORDER BY tc.created_at DESC`,
		taskID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Comment
	for rows.Next() {
		var cm domain.Comment
		if err := rows.Scan(
			&cm.ID, &cm.TaskID, &cm.UserID, &cm.Comment, &cm.ParentCommentID, &cm.CreatedAt,
			&cm.UserName, &cm.UserEmail,
		); err != nil {
			return nil, err
		}
		res = append(res, &cm)
	}
	return res, rows.Err()
}

// ListReplies returns the replies under a comment, oldest first.
func (r *CommentRepository) ListReplies(ctx context.Context, parentID int64) ([]*domain.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT tc.id, tc.task_id, tc.user_id, tc.comment, tc.parent_comment_id, tc.created_at,
			u.name, u.email
		FROM task_comments tc
		JOIN users u ON tc.user_id = u.id
		WHERE tc.parent_comment_id = $1
		ORDER BY tc.created_at ASC`,
		parentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Comment
	for rows.Next() {
		var cm domain.Comment
		if err := rows.Scan(
			&cm.ID, &cm.TaskID, &cm.UserID, &cm.Comment, &cm.ParentCommentID, &cm.CreatedAt,
			&cm.UserName, &cm.UserEmail,
		); err != nil {
			return nil, err
		}
		res = append(res, &cm)
	}
	return res, rows.Err()
}

// ListByUserTasks returns top-level comments across every task the
// user owns or is assigned to, newest first, each with a task summary
// and the number of replies underneath it.
func (r *CommentRepository) ListByUserTasks(ctx context.Context, userID int64) ([]*domain.UserComment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT tc.id, tc.task_id, tc.user_id, tc.comment, tc.parent_comment_id, tc.created_at,
			u.name,
			t.title, t.status, t.priority,
			(SELECT COUNT(*) FROM task_comments tc2 WHERE tc2.parent_comment_id = tc.id)
		FROM task_comments tc
		JOIN users u ON tc.user_id = u.id
		JOIN tasks t ON tc.task_id = t.id
		WHERE (t.created_by = $1 OR t.assigned_to = $1)
			AND tc.parent_comment_id IS NULL
		ORDER BY tc.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.UserComment
	for rows.Next() {
		var uc domain.UserComment
		if err := rows.Scan(
			&uc.ID, &uc.TaskID, &uc.UserID, &uc.Comment, &uc.ParentCommentID, &uc.CreatedAt,
			&uc.CommenterName,
			&uc.TaskTitle, &uc.TaskStatus, &uc.TaskPriority,
			&uc.ReplyCount,
		); err != nil {
			return nil, err
		}
		res = append(res, &uc)
	}
	return res, rows.Err()
}
