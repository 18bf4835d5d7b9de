package handlers

import (
	"taskflow/internal/ai"
	"taskflow/internal/email"
	"taskflow/internal/repository"
	"taskflow/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB             *pgxpool.Pool
	Users          *repository.UserRepository
	Projects       *repository.ProjectRepository
	TaskService    *service.TaskService
	BatchService   *service.BatchService
	CollabService  *service.CollabService
	CommentService *service.CommentService
	AI             *ai.Client
}

func NewHandler(db *pgxpool.Pool, notifier email.Service, aiClient *ai.Client) *Handler {
	return &Handler{
		DB:             db,
		Users:          repository.NewUserRepository(db),
		Projects:       repository.NewProjectRepository(db),
		TaskService:    service.NewTaskService(db),
		BatchService:   service.NewBatchService(repository.NewTaskRepository(db)),
		CollabService:  service.NewCollabService(db, notifier),
		CommentService: service.NewCommentService(db),
		AI:             aiClient,
	}
}
