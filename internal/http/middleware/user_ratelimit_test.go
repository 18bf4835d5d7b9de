package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// Without a Redis client the limiter must fail open and let requests
// through untouched.
func TestUserRateLimitFailOpen(t *testing.T) {
	saved := redisClient
	redisClient = nil
	defer func() { redisClient = saved }()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/limited", UserRateLimit(1, time.Second), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		r.ServeHTTP(w, req)
		if w.Code != 200 {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}
