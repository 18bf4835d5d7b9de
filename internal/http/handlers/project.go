package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateProject(c *gin.Context) {
	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		CreatedBy   int64   `json:"created_by"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required"})
		return
	}

	project := &domain.Project{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
	}
	if err := h.Projects.Create(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *Handler) GetUserProjects(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	projects, err := h.Projects.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(c *gin.Context) {
	projectID, ok := parseID(c, "projectId")
	if !ok {
		return
	}

	project, err := h.Projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	projectID, ok := parseID(c, "projectId")
	if !ok {
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	project, err := h.Projects.Update(c.Request.Context(), projectID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	projectID, ok := parseID(c, "projectId")
	if !ok {
		return
	}

	if err := h.Projects.Delete(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// ShareProject invites a user (by email) as a collaborator. Re-inviting
// an existing collaborator fails with 400 rather than succeeding
// silently.
func (h *Handler) ShareProject(c *gin.Context) {
	projectID, ok := parseID(c, "projectId")
	if !ok {
		return
	}

	var req struct {
		Email        string `json:"email"`
		CreatorEmail string `json:"creator_email"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	err := h.CollabService.ShareProject(c.Request.Context(), projectID, req.Email, req.CreatorEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, service.ErrAlreadyCollaborator):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User is already a collaborator on this project"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to share project"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project shared successfully"})
}

func (h *Handler) RemoveCollaborator(c *gin.Context) {
	projectID, ok := parseID(c, "projectId")
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

	if err := h.CollabService.RemoveCollaborator(c.Request.Context(), projectID, req.UserID); err != nil {
		if errors.Is(err, service.ErrCollaboratorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Collaborator not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to remove collaborator"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator removed successfully"})
}

func (h *Handler) GetProjectCollaborators(c *gin.Context) {
	projectID, ok := parseID(c, "projectId")
	if !ok {
		return
	}

	collaborators, err := h.CollabService.ListCollaborators(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch collaborators"})
		return
	}
	c.JSON(http.StatusOK, collaborators)
}
