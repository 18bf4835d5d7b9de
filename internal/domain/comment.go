package domain

import "time"

// Comment is an immutable note on a task. ParentCommentID nil means a
// top-level comment; non-nil means a one-level reply. Nothing deeper is
// written by the API, by convention rather than constraint.
type Comment struct {
	ID              int64     `db:"id" json:"id"`
	TaskID          int64     `db:"task_id" json:"task_id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	Comment         string    `db:"comment" json:"comment"`
	ParentCommentID *int64    `db:"parent_comment_id" json:"parent_comment_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`

	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// UserComment is one row of the per-user aggregated comment feed:
// a top-level comment on a task the user owns or is assigned to,
// annotated with a task summary and its reply count.
type UserComment struct {
	Comment
	CommenterName string `json:"commenter_name"`
	TaskTitle     string `json:"task_title"`
	TaskStatus    string `json:"task_status"`
	TaskPriority  string `json:"task_priority"`
	ReplyCount    int64  `json:"reply_count"`
}
