package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/domain"
	"taskflow/internal/logger"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
)

// GenerateTasks asks the draft-generation service for tasks from a
// project description, keeps only the drafts that pass schema
// validation, and commits them through the batch coordinator. Each
// draft is persisted independently; drafts that fail to persist are
// absent from the response.
func (h *Handler) GenerateTasks(c *gin.Context) {
	var req struct {
		ProjectDescription string `json:"projectDescription"`
		UserID             int64  `json:"userId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}
	if req.ProjectDescription == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "projectDescription is required"})
		return
	}

	ctx := c.Request.Context()

	creator, err := h.Users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch user"})
		return
	}

	drafts, discarded, err := h.AI.GenerateDrafts(ctx, req.ProjectDescription)
	if err != nil {
		logger.Error("draft generation failed", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate tasks"})
		return
	}
	if discarded > 0 {
		logger.Warn("discarded invalid drafts", "count", discarded, "user_id", req.UserID)
	}
	if len(drafts) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "AI returned no usable tasks"})
		return
	}

	taskDrafts := make([]*domain.TaskDraft, len(drafts))
	for i := range drafts {
		taskDrafts[i] = drafts[i].ToTaskDraft(creator.Email)
	}

	outcomes := h.BatchService.CreateBatch(ctx, taskDrafts)

	created := make([]*domain.Task, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			BatchOutcomes.WithLabelValues("failure").Inc()
			logger.Error("draft persist failed", "index", o.Index, "error", o.Err)
			continue
		}
		BatchOutcomes.WithLabelValues("success").Inc()
		created = append(created, o.Task)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks generated successfully",
		"tasks":   created,
	})
}
