package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateComment(c *gin.Context) {
	taskID, ok := parseID(c, "taskId")
	if !ok {
		return
	}

	var req struct {
		UserID  int64  `json:"userId"`
		Comment string `json:"comment"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	comment, err := h.CommentService.PostComment(c.Request.Context(), taskID, req.UserID, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyComment):
			c.JSON(http.StatusBadRequest, gin.H{"message": "comment is required"})
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) GetTaskComments(c *gin.Context) {
	taskID, ok := parseID(c, "taskId")
	if !ok {
		return
	}

	comments, err := h.CommentService.ListTaskComments(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) CreateReply(c *gin.Context) {
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}

	var req struct {
		UserID  int64  `json:"userId"`
		TaskID  int64  `json:"taskId"`
		Comment string `json:"comment"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	reply, err := h.CommentService.PostReply(c.Request.Context(), commentID, req.TaskID, req.UserID, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyComment):
			c.JSON(http.StatusBadRequest, gin.H{"message": "comment is required"})
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create reply"})
		}
		return
	}

	c.JSON(http.StatusCreated, reply)
}

func (h *Handler) GetCommentReplies(c *gin.Context) {
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}

	replies, err := h.CommentService.ListReplies(c.Request.Context(), commentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch replies"})
		return
	}
	c.JSON(http.StatusOK, replies)
}

// GetUserComments returns the aggregated feed of top-level comments on
// tasks the user owns or is assigned to, each with its reply count.
func (h *Handler) GetUserComments(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	comments, err := h.CommentService.ListUserComments(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}
