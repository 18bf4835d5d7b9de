package repository

import (
	"context"
	"errors"

	"taskflow/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO projects (title, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		p.Title, p.Description, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.title, p.description, p.created_by, p.created_at, p.updated_at,
			u.name, COUNT(t.id)
		FROM projects p
		JOIN users u ON p.created_by = u.id
		LEFT JOIN tasks t ON t.project_id = p.id
		WHERE p.created_by = $1
		GROUP BY p.id, u.name
		ORDER BY p.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
			&p.CreatorName, &p.TaskCount,
		); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.title, p.description, p.created_by, p.created_at, p.updated_at,
			u.name, COUNT(t.id)
		FROM projects p
		JOIN users u ON p.created_by = u.id
		LEFT JOIN tasks t ON t.project_id = p.id
		WHERE p.id = $1
		GROUP BY p.id, u.name`,
		id,
	).Scan(
		&p.ID, &p.Title, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		&p.CreatorName, &p.TaskCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id int64, title string, description *string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRow(ctx, `
		UPDATE projects
		SET title = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, title, description, created_by, created_at, updated_at`,
		title, description, id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) AddCollaborator(ctx context.Context, projectID, userID int64, role string) (*domain.Collaborator, error) {
	var col domain.Collaborator
	err := r.db.QueryRow(ctx, `
		INSERT INTO project_collaborators (project_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING project_id, user_id, role, added_at`,
		projectID, userID, role,
	).Scan(&col.ProjectID, &col.UserID, &col.Role, &col.AddedAt)
	if err != nil {
		return nil, err
	}
	return &col, nil
}

func (r *ProjectRepository) RemoveCollaborator(ctx context.Context, projectID, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM project_collaborators WHERE project_id = $1 AND user_id = $2`,
		projectID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) ListCollaborators(ctx context.Context, projectID int64) ([]*domain.Collaborator, error) {
	rows, err := r.db.Query(ctx, `
		SELECT pc.project_id, pc.user_id, pc.role, pc.added_at, u.name, u.email
		FROM project_collaborators pc
		JOIN users u ON pc.user_id = u.id
		WHERE pc.project_id = $1
		ORDER BY pc.added_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Collaborator
	for rows.Next() {
		var col domain.Collaborator
		if err := rows.Scan(&col.ProjectID, &col.UserID, &col.Role, &col.AddedAt, &col.Name, &col.Email); err != nil {
			return nil, err
		}
		res = append(res, &col)
	}
	return res, rows.Err()
}

func (r *ProjectRepository) IsCollaborator(ctx context.Context, projectID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM project_collaborators
			WHERE project_id = $1 AND user_id = $2
		)`,
		projectID, userID,
	).Scan(&exists)
	return exists, err
}
