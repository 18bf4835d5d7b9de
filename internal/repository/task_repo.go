package repository

import (
	"context"
	"errors"
	"time"

	"taskflow/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound covers both a genuinely missing row and a row the
// requester has no claim on; predicate-qualified statements make the
// two indistinguishable on purpose.
var ErrNotFound = errors.New("not found")

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// taskColumns is the join used by every task read: base row plus
// creator/assignee identity and the project title.
const taskColumns = `
	t.id, t.title, t.description, t.priority, t.status,
	t.created_by, t.assigned_to, t.project_id, t.due_date,
	t.created_at, t.updated_at, t.completed_at, t.assigned_at,
	t.calendar_event_id,
	c.name, c.email, a.name, a.email, p.title`

const taskJoins = `
	FROM tasks t
	JOIN users c ON t.created_by = c.id
	LEFT JOIN users a ON t.assigned_to = a.id
	LEFT JOIN projects p ON t.project_id = p.id`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.CreatedBy, &t.AssignedTo, &t.ProjectID, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt, &t.CompletedAt, &t.AssignedAt,
		&t.CalendarEventID,
		&t.CreatorName, &t.CreatorEmail, &t.AssigneeName, &t.AssigneeEmail,
		&t.ProjectTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()
	var res []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// Create inserts a draft, resolving creator and assignee by email.
// A missing creator yields ErrNotFound (the CTE inserts nothing).
func (r *TaskRepository) Create(ctx context.Context, d *domain.TaskDraft) (*domain.Task, error) {
	status := d.Status
	if status == "" {
		status = domain.StatusToDo
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		WITH creator AS (
			SELECT id FROM users WHERE email = $1
		),
		assignee AS (
			SELECT id FROM users WHERE email = $2
		)
		INSERT INTO tasks (title, description, status, priority, created_by, assigned_to, project_id, due_date, assigned_at)
		SELECT $3, $4, $5, $6,
			creator.id,
			assignee.id,
			$7, $8,
			CASE WHEN assignee.id IS NOT NULL THEN now() END
		FROM creator
		LEFT JOIN assignee ON true
		RETURNING id`,
		d.CreatorEmail, d.AssigneeEmail, d.Title, d.Description, status, d.Priority, d.ProjectID, d.DueDate,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT`+taskColumns+taskJoins+` WHERE t.id = $1`, id)
	return scanTask(row)
}

// ListByUser returns tasks the user owns or is assigned to. Tasks with
// a due date come first, soonest due date on top; undated tasks follow,
// newest created first. This ordering is the scheduling contract the
// board relies on, not a cosmetic default.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+taskColumns+taskJoins+`
		WHERE t.created_by = $1 OR t.assigned_to = $1
		ORDER BY (t.due_date IS NULL), t.due_date ASC, t.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+taskColumns+taskJoins+`
		WHERE t.project_id = $1
		ORDER BY t.created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// UpdateStatus applies a lifecycle transition. completed_at is stamped
// on entry to COMPLETED and cleared on exit, mirroring
// domain.ApplyStatus. The status value must already be validated.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Task, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE tasks
		SET status = $1,
			updated_at = now(),
			completed_at = CASE WHEN $1 = 'COMPLETED' THEN now() END
		WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// UpdateAssignment sets the assignee (nil clears it) and optionally
// patches the description. assigned_at moves only when the assignee
// changes to a different non-null user; the CASE reads the pre-update
// row, so re-submitting the same assignee leaves the stamp alone.
func (r *TaskRepository) UpdateAssignment(ctx context.Context, id int64, assigneeID *int64, description *string) (*domain.Task, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE tasks
		SET assigned_to = $1,
			description = COALESCE($2, description),
			updated_at = now(),
			assigned_at = CASE
				WHEN $1 IS NOT NULL AND assigned_to IS DISTINCT FROM $1 THEN now()
				ELSE assigned_at
			END
		WHERE id = $3`,
		assigneeID, description, id,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TaskRepository) UpdateDueDate(ctx context.Context, id int64, dueDate *time.Time) (*domain.Task, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET due_date = $1, updated_at = now() WHERE id = $2`,
		dueDate, id,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the task if the requester owns it or is assigned to
// it. Anything else is ErrNotFound.
func (r *TaskRepository) Delete(ctx context.Context, id, requesterID int64) (*domain.Task, error) {
	task, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, `
		DELETE FROM tasks
		WHERE id = $1 AND (created_by = $2 OR assigned_to = $2)`,
		id, requesterID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return task, nil
}

// BulkDelete removes, in one statement, the subset of ids the
// requester owns or is assigned to. Ids outside that subset are
// skipped silently; the caller gets back only what was deleted.
func (r *TaskRepository) BulkDelete(ctx context.Context, ids []int64, requesterID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `
		DELETE FROM tasks
		WHERE id = ANY($1)
		AND (created_by = $2 OR assigned_to = $2)
		RETURNING id, title, description, priority, status, created_by, assigned_to, project_id,
			due_date, created_at, updated_at, completed_at, assigned_at, calendar_event_id`,
		ids, requesterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deleted []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status,
			&t.CreatedBy, &t.AssignedTo, &t.ProjectID, &t.DueDate,
			&t.CreatedAt, &t.UpdatedAt, &t.CompletedAt, &t.AssignedAt,
			&t.CalendarEventID,
		); err != nil {
			return nil, err
		}
		deleted = append(deleted, &t)
	}
	return deleted, rows.Err()
}

// Statistics aggregates per-status counts and completion durations for
// tasks the user owns or is assigned to.
func (r *TaskRepository) Statistics(ctx context.Context, userID int64) (*domain.TaskStatistics, error) {
	var stats domain.TaskStatistics
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'TO_DO'),
			COUNT(*) FILTER (WHERE status = 'IN_PROGRESS'),
			COUNT(*) FILTER (WHERE status = 'COMPLETED'),
			COUNT(*)
		FROM tasks
		WHERE created_by = $1 OR assigned_to = $1`,
		userID,
	).Scan(&stats.TodoCount, &stats.InProgressCount, &stats.CompletedCount, &stats.TotalTasks)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT title, created_at, completed_at,
			EXTRACT(EPOCH FROM (completed_at - created_at))/3600
		FROM tasks
		WHERE (created_by = $1 OR assigned_to = $1)
			AND status = 'COMPLETED'
			AND completed_at IS NOT NULL
		ORDER BY completed_at DESC
		LIMIT 10`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ct domain.CompletionTime
		if err := rows.Scan(&ct.Title, &ct.CreatedAt, &ct.CompletedAt, &ct.CompletionTime); err != nil {
			return nil, err
		}
		stats.CompletionTimes = append(stats.CompletionTimes, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `
		SELECT AVG(EXTRACT(EPOCH FROM (completed_at - created_at))/3600)
		FROM tasks
		WHERE (created_by = $1 OR assigned_to = $1)
			AND status = 'COMPLETED'
			AND completed_at IS NOT NULL`,
		userID,
	).Scan(&stats.AverageCompletionTime)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
