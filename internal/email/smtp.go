package email

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"

	"taskflow/internal/domain"
)

// SMTPService implements Service over plain SMTP with AUTH PLAIN.
type SMTPService struct {
	cfg        Config
	auth       smtp.Auth
	invitation *template.Template
	assignment *template.Template
}

func NewSMTPService(cfg Config) *SMTPService {
	if cfg.AppName == "" {
		cfg.AppName = "TaskFlow"
	}
	return &SMTPService{
		cfg:        cfg,
		auth:       smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		invitation: template.Must(template.New("invitation").Parse(invitationTemplate)),
		assignment: template.Must(template.New("assignment").Parse(assignmentTemplate)),
	}
}

const invitationTemplate = `Subject: You've been invited to collaborate on a project: {{.ProjectTitle}}
From: {{.FromName}} <{{.From}}>
To: {{.To}}
MIME-Version: 1.0
Content-Type: text/plain; charset=UTF-8

Hello,

{{.InviterName}} has invited you to collaborate on a project in {{.AppName}}.

Project: {{.ProjectTitle}}
{{if .ProjectDescription}}Description: {{.ProjectDescription}}
{{end}}
Open it here: {{.FrontendURL}}/projects/{{.ProjectID}}

Best regards,
{{.AppName}} Team
`

const assignmentTemplate = `Subject: You've been assigned a task: {{.TaskTitle}}
From: {{.FromName}} <{{.From}}>
To: {{.To}}
MIME-Version: 1.0
Content-Type: text/plain; charset=UTF-8

Hello,

A task in {{.AppName}} has been assigned to you.

Task: {{.TaskTitle}}
Priority: {{.TaskPriority}}
{{if .TaskDescription}}Description: {{.TaskDescription}}
{{end}}
Open it here: {{.FrontendURL}}/tasks/{{.TaskID}}

Best regards,
{{.AppName}} Team
`

type invitationData struct {
	From               string
	FromName           string
	To                 string
	AppName            string
	FrontendURL        string
	InviterName        string
	ProjectID          int64
	ProjectTitle       string
	ProjectDescription string
}

type assignmentData struct {
	From            string
	FromName        string
	To              string
	AppName         string
	FrontendURL     string
	TaskID          int64
	TaskTitle       string
	TaskPriority    string
	TaskDescription string
}

func (s *SMTPService) SendProjectInvitation(ctx context.Context, to string, project *domain.Project, inviterName string) error {
	data := invitationData{
		From:         s.cfg.FromAddress,
		FromName:     s.cfg.FromName,
		To:           to,
		AppName:      s.cfg.AppName,
		FrontendURL:  s.cfg.FrontendURL,
		InviterName:  inviterName,
		ProjectID:    project.ID,
		ProjectTitle: project.Title,
	}
	if project.Description != nil {
		data.ProjectDescription = *project.Description
	}
	return s.send(ctx, to, s.invitation, data)
}

func (s *SMTPService) SendTaskAssignment(ctx context.Context, to string, task *domain.Task) error {
	data := assignmentData{
		From:         s.cfg.FromAddress,
		FromName:     s.cfg.FromName,
		To:           to,
		AppName:      s.cfg.AppName,
		FrontendURL:  s.cfg.FrontendURL,
		TaskID:       task.ID,
		TaskTitle:    task.Title,
		TaskPriority: task.Priority,
	}
	if task.Description != nil {
		data.TaskDescription = *task.Description
	}
	return s.send(ctx, to, s.assignment, data)
}

func (s *SMTPService) send(ctx context.Context, to string, tmpl *template.Template, data any) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, s.auth, s.cfg.FromAddress, []string{to}, body.Bytes())
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
