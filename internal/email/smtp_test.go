package email

import (
	"bytes"
	"strings"
	"testing"

	"taskflow/internal/domain"
)

func TestInvitationTemplateRenders(t *testing.T) {
	s := NewSMTPService(Config{
		Host:        "smtp.example.com",
		Port:        587,
		FromAddress: "noreply@example.com",
		FromName:    "TaskFlow",
		FrontendURL: "https://app.example.com",
	})

	desc := "Quarterly planning board"
	data := invitationData{
		From:         s.cfg.FromAddress,
		FromName:     s.cfg.FromName,
		To:           "invitee@example.com",
		AppName:      s.cfg.AppName,
		FrontendURL:  s.cfg.FrontendURL,
		InviterName:  "Alice",
		ProjectID:    42,
		ProjectTitle: "Q3 Planning",
	}
	data.ProjectDescription = desc

	var buf bytes.Buffer
	if err := s.invitation.Execute(&buf, data); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Subject: You've been invited to collaborate on a project: Q3 Planning",
		"Alice has invited you",
		"https://app.example.com/projects/42",
		desc,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered email missing %q:\n%s", want, out)
		}
	}
}

func TestAssignmentTemplateOmitsEmptyDescription(t *testing.T) {
	s := NewSMTPService(Config{Host: "smtp.example.com", FromAddress: "n@e.com"})

	var buf bytes.Buffer
	err := s.assignment.Execute(&buf, assignmentData{
		To:           "dev@example.com",
		AppName:      s.cfg.AppName,
		TaskID:       7,
		TaskTitle:    "Fix login",
		TaskPriority: domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "Description:") {
		t.Fatalf("empty description should be omitted:\n%s", buf.String())
	}
}

func TestNewReturnsLogServiceWithoutHost(t *testing.T) {
	svc := New(Config{})
	if _, ok := svc.(*logService); !ok {
		t.Fatalf("New with empty host = %T; want *logService", svc)
	}
}
