package domain

import "time"

// Project groups tasks and collaborators under an owner.
type Project struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	CreatedBy   int64     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	CreatorName string `json:"creator_name,omitempty"`
	TaskCount   int64  `json:"task_count"`
}

// Collaborator is one (project, user, role) membership row.
// At most one row exists per (project, user).
type Collaborator struct {
	ProjectID int64     `db:"project_id" json:"project_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Role      string    `db:"role" json:"role"`
	AddedAt   time.Time `db:"added_at" json:"added_at"`

	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

const RoleMember = "member"
