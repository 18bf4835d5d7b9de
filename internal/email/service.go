// Package email sends collaboration notifications over SMTP. Delivery
// is best-effort by contract: callers log failures and carry on.
package email

import (
	"context"

	"taskflow/internal/domain"
	"taskflow/internal/logger"
)

// Service delivers invitation and assignment notifications.
type Service interface {
	SendProjectInvitation(ctx context.Context, to string, project *domain.Project, inviterName string) error
	SendTaskAssignment(ctx context.Context, to string, task *domain.Task) error
}

// Config holds SMTP settings. An empty Host disables real delivery.
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	FrontendURL string
	AppName     string
}

// New returns an SMTP-backed service, or a log-only one when no host
// is configured (local development, tests).
func New(cfg Config) Service {
	if cfg.Host == "" {
		return &logService{}
	}
	return NewSMTPService(cfg)
}

// logService records what would have been sent. Used when SMTP is not
// configured.
type logService struct{}

func (l *logService) SendProjectInvitation(ctx context.Context, to string, project *domain.Project, inviterName string) error {
	logger.Info("email delivery disabled, skipping project invitation",
		"to", to, "project_id", project.ID, "inviter", inviterName)
	return nil
}

func (l *logService) SendTaskAssignment(ctx context.Context, to string, task *domain.Task) error {
	logger.Info("email delivery disabled, skipping assignment notification",
		"to", to, "task_id", task.ID)
	return nil
}
