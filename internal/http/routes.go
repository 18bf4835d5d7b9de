package http

import (
	"os"
	"strconv"
	"time"

	"taskflow/internal/ai"
	"taskflow/internal/config"
	"taskflow/internal/email"
	"taskflow/internal/http/handlers"
	"taskflow/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	notifier := email.New(email.Config{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUsername,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.SMTPFrom,
		FromName:    cfg.SMTPFromName,
		FrontendURL: cfg.FrontendURL,
	})
	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)

	h := handlers.NewHandler(db, notifier, aiClient)
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Per-user limit on expensive fan-out endpoints
	mutationRL := middleware.UserRateLimit(cfg.MutationRateLimit, time.Duration(cfg.MutationRateWindow)*time.Second)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, mutationRL)

	// Legacy /api routes (kept for older frontend builds)
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, mutationRL)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, mutationRL gin.HandlerFunc) {
	auth := middleware.Auth()

	// Users (bootstrap endpoints; identity itself lives with the
	// external provider)
	users := api.Group("/users")
	{
		users.POST("", middleware.SimpleRateLimit(10, time.Minute), h.CreateUser)
		users.GET("/email/:email", h.GetUserByEmail)
		users.GET("/:id", h.GetUser)
	}

	// Tasks: specific routes before parameterized ones
	tasks := api.Group("/tasks")
	tasks.Use(auth)
	{
		tasks.POST("", h.CreateTask)
		tasks.POST("/batch", mutationRL, h.CreateBatchTasks)
		tasks.DELETE("/bulk-delete", h.BulkDeleteTasks)

		tasks.GET("/user/:userId", h.GetUserTasks)
		tasks.GET("/board/:userId", h.GetUserBoard)
		tasks.GET("/project/:projectId", h.GetProjectTasks)
		tasks.GET("/statistics/:userId", h.GetTaskStatistics)

		tasks.PATCH("/:taskId/status", h.UpdateTaskStatus)
		tasks.PATCH("/:taskId/due-date", h.UpdateTaskDueDate)
		tasks.PATCH("/:taskId", h.UpdateTask)
		tasks.DELETE("/:taskId", h.DeleteTask)

		tasks.POST("/:taskId/comments", h.CreateComment)
		tasks.GET("/:taskId/comments", h.GetTaskComments)
	}

	// Projects and collaboration
	projects := api.Group("/projects")
	projects.Use(auth)
	{
		projects.POST("", h.CreateProject)
		projects.GET("/user/:userId", h.GetUserProjects)
		projects.GET("/:projectId", h.GetProject)
		projects.PUT("/:projectId", h.UpdateProject)
		projects.DELETE("/:projectId", h.DeleteProject)

		projects.POST("/:projectId/share", h.ShareProject)
		projects.DELETE("/:projectId/collaborators", h.RemoveCollaborator)
		projects.GET("/:projectId/collaborators", h.GetProjectCollaborators)
	}

	// Comment replies and the per-user feed
	comments := api.Group("/comments")
	comments.Use(auth)
	{
		comments.POST("/:commentId/replies", h.CreateReply)
		comments.GET("/:commentId/replies", h.GetCommentReplies)
		comments.GET("/user/:userId", h.GetUserComments)
	}

	// AI draft generation
	aiGroup := api.Group("/ai")
	aiGroup.Use(auth)
	{
		aiGroup.POST("/generate-tasks", mutationRL, h.GenerateTasks)
	}
}
