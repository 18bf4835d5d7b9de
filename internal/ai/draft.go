package ai

import (
	"errors"
	"strings"

	"taskflow/internal/domain"
)

// Draft is one candidate task as returned by the generation service.
type Draft struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Priority      string  `json:"priority"`
	Status        string  `json:"status"`
	EstimatedTime float64 `json:"estimated_time"`
}

var (
	errNoTitle       = errors.New("draft missing title")
	errNoDescription = errors.New("draft missing description")
	errBadPriority   = errors.New("draft priority outside closed set")
	errBadEstimate   = errors.New("draft estimated_time not positive")
)

// Validate normalizes the draft in place (priority uppercased, status
// forced to TO_DO) and rejects anything the schema does not allow.
// Silently coerced values are not admitted.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errNoTitle
	}
	if strings.TrimSpace(d.Description) == "" {
		return errNoDescription
	}
	d.Priority = strings.ToUpper(strings.TrimSpace(d.Priority))
	if !domain.ValidPriority(d.Priority) {
		return errBadPriority
	}
	if d.EstimatedTime <= 0 {
		return errBadEstimate
	}
	d.Status = domain.StatusToDo
	return nil
}

// FilterValid keeps the drafts that pass validation, in order, and
// counts the discards.
func FilterValid(drafts []Draft) (valid []Draft, discarded int) {
	for _, d := range drafts {
		if err := d.Validate(); err != nil {
			discarded++
			continue
		}
		valid = append(valid, d)
	}
	return valid, discarded
}

// ToTaskDraft converts a validated draft into a store draft for the
// given creator.
func (d *Draft) ToTaskDraft(creatorEmail string) *domain.TaskDraft {
	desc := d.Description
	return &domain.TaskDraft{
		Title:        d.Title,
		Description:  &desc,
		Priority:     d.Priority,
		Status:       domain.StatusToDo,
		CreatorEmail: creatorEmail,
	}
}
