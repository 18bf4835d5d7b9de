package middleware

import (
	"net/http"
	"strings"

	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
)

// Auth verifies the bearer token issued by the identity provider and
// puts the stable user id into the request context under "user_id".
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		userID, err := service.ParseJWT(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
