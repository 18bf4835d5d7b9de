package domain

import "time"

// Lifecycle states. The set is closed; anything else is rejected
// by ApplyStatus before it can reach storage.
const (
	StatusToDo       = "TO_DO"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Task is the authoritative task row plus the joined creator/assignee
// identity fields used on the wire.
type Task struct {
	ID              int64      `db:"id" json:"id"`
	Title           string     `db:"title" json:"title"`
	Description     *string    `db:"description" json:"description"`
	Priority        string     `db:"priority" json:"priority"`
	Status          string     `db:"status" json:"status"`
	CreatedBy       int64      `db:"created_by" json:"created_by"`
	AssignedTo      *int64     `db:"assigned_to" json:"assigned_to"`
	ProjectID       *int64     `db:"project_id" json:"project_id"`
	DueDate         *time.Time `db:"due_date" json:"due_date"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
	CompletedAt     *time.Time `db:"completed_at" json:"completed_at"`
	AssignedAt      *time.Time `db:"assigned_at" json:"assigned_at"`
	CalendarEventID *string    `db:"calendar_event_id" json:"external_calendar_ref"`

	CreatorName   string  `json:"creator_name"`
	CreatorEmail  string  `json:"creator_email"`
	AssigneeName  *string `json:"assignee_name"`
	AssigneeEmail *string `json:"assignee_email"`
	ProjectTitle  *string `json:"project_title,omitempty"`
}

// TaskDraft is the input to task creation, single or batched.
type TaskDraft struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	CreatorEmail  string     `json:"creator_email"`
	AssigneeEmail *string    `json:"assignee_email"`
	ProjectID     *int64     `json:"project_id"`
	DueDate       *time.Time `json:"due_date"`
}

// TaskStatistics aggregates per-user completion numbers.
type TaskStatistics struct {
	TodoCount             int              `json:"todoCount"`
	InProgressCount       int              `json:"inProgressCount"`
	CompletedCount        int              `json:"completedCount"`
	TotalTasks            int              `json:"totalTasks"`
	CompletionTimes       []CompletionTime `json:"completionTimes"`
	AverageCompletionTime *float64         `json:"averageCompletionTime"`
}

// CompletionTime is one completed task's duration in hours.
type CompletionTime struct {
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
	CompletedAt    time.Time `json:"completed_at"`
	CompletionTime float64   `json:"completion_time"`
}
