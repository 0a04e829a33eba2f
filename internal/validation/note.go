package validation

import (
	"strings"

	"github.com/etfolio/etf-tracker-backend/internal/api/request"
)

// ValidateCreateNote validates a strategy note creation request.
func ValidateCreateNote(req request.CreateNoteRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Title) == "" {
		errors["title"] = "title is required"
	}
	if strings.TrimSpace(req.Body) == "" {
		errors["body"] = "body is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateNote validates a strategy note update request.
// All fields are optional, but a provided title or body must be non-empty.
func ValidateUpdateNote(req request.UpdateNoteRequest) error {
	errors := make(map[string]string)

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		errors["title"] = "title cannot be empty"
	}
	if req.Body != nil && strings.TrimSpace(*req.Body) == "" {
		errors["body"] = "body cannot be empty"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
