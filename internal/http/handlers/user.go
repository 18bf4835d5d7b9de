package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/domain"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
)

// CreateUser mirrors an identity-provider user into the local table.
func (h *Handler) CreateUser(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}
	if req.Email == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and name are required"})
		return
	}

	user := &domain.User{Email: req.Email, Name: req.Name}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) GetUserByEmail(c *gin.Context) {
	email := c.Param("email")

	user, err := h.Users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
