package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + param})
		return 0, false
	}
	return id, true
}

// CreateTask creates a single task from a draft.
func (h *Handler) CreateTask(c *gin.Context) {
	var draft domain.TaskDraft
	if err := c.BindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	ctx := c.Request.Context()
	task, err := h.TaskService.Create(ctx, &draft)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTitle),
			errors.Is(err, service.ErrBadPriority),
			errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create task"})
		}
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetUserTasks lists tasks the user owns or is assigned to, due-dated
// first.
func (h *Handler) GetUserTasks(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	tasks, err := h.TaskService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetUserBoard returns the user's tasks partitioned into status
// columns, preserving the list order inside each column.
func (h *Handler) GetUserBoard(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	tasks, err := h.TaskService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch tasks"})
		return
	}

	b := service.NewBoard(h.TaskService)
	b.Load(tasks)
	c.JSON(http.StatusOK, gin.H{
		"todo":       b.Column(domain.StatusToDo),
		"inProgress": b.Column(domain.StatusInProgress),
		"completed":  b.Column(domain.StatusCompleted),
	})
}

func (h *Handler) GetProjectTasks(c *gin.Context) {
	projectID, ok := parseID(c, "projectId")
	if !ok {
		return
	}

	tasks, err := h.TaskService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTaskStatistics(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	stats, err := h.TaskService.Statistics(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpdateTaskStatus applies a lifecycle transition. Drag relocation on
// the board issues exactly this request.
func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	taskID, ok := parseID(c, "taskId")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	task, err := h.TaskService.UpdateStatus(c.Request.Context(), taskID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update status"})
		}
		return
	}

	TaskTransitions.WithLabelValues(task.Status).Inc()
	c.JSON(http.StatusOK, task)
}

// UpdateTask patches assignment and/or description. A null or absent
// assignee_email clears the assignment.
func (h *Handler) UpdateTask(c *gin.Context) {
	taskID, ok := parseID(c, "taskId")
	if !ok {
		return
	}

	var req struct {
		AssigneeEmail *string `json:"assignee_email"`
		Description   *string `json:"description"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	task, err := h.CollabService.AssignTask(c.Request.Context(), taskID, req.AssigneeEmail, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update task"})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTaskDueDate(c *gin.Context) {
	taskID, ok := parseID(c, "taskId")
	if !ok {
		return
	}

	var req struct {
		DueDate *time.Time `json:"due_date"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	task, err := h.TaskService.UpdateDueDate(c.Request.Context(), taskID, req.DueDate)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update due date"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task when the requester owns it or is assigned
// to it; anything else is a 404, matching the store predicate.
func (h *Handler) DeleteTask(c *gin.Context) {
	taskID, ok := parseID(c, "taskId")
	if !ok {
		return
	}

	var req struct {
		UserID int64 `json:"userId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	task, err := h.TaskService.Delete(c.Request.Context(), taskID, req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// BulkDeleteTasks deletes the requester-owned subset of the given ids
// in one pass. Ids the requester cannot touch are skipped silently.
func (h *Handler) BulkDeleteTasks(c *gin.Context) {
	var req struct {
		TaskIDs []int64 `json:"taskIds"`
		UserID  int64   `json:"userId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}
	if len(req.TaskIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "taskIds is required"})
		return
	}

	res, err := h.BatchService.BulkDelete(c.Request.Context(), req.TaskIDs, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletedCount": res.DeletedCount})
}

// CreateBatchTasks fans the drafts out as independent creates and
// returns the subset that succeeded; failed items are simply absent.
func (h *Handler) CreateBatchTasks(c *gin.Context) {
	var req struct {
		Tasks []*domain.TaskDraft `json:"tasks"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}
	if len(req.Tasks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "tasks is required"})
		return
	}

	outcomes := h.BatchService.CreateBatch(c.Request.Context(), req.Tasks)

	created := make([]*domain.Task, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			BatchOutcomes.WithLabelValues("failure").Inc()
			continue
		}
		BatchOutcomes.WithLabelValues("success").Inc()
		created = append(created, o.Task)
	}

	c.JSON(http.StatusCreated, created)
}
