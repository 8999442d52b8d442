package tasks

import (
	"strings"
	"time"

	"github.com/xyz-asif/gotasks/internal/pkg/response"
)

const maxTitleLength = 200

func validPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidateCreateTask checks task creation data and returns per-field errors,
// or nil when the payload is valid.
func ValidateCreateTask(req *CreateTaskRequest) response.FieldErrors {
	errs := response.FieldErrors{}

	validateTitle(req.Title, errs)
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		errs["description"] = append(errs["description"], "Description cannot be empty")
	}
	if req.Priority != "" && !validPriority(req.Priority) {
		errs["priority"] = append(errs["priority"], "Priority must be one of: low, medium, high.")
	}
	validateDueDate(req.DueDate, errs)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateUpdateTask checks a partial update. Only fields that are set are
// validated; a set title must still be non-empty.
func ValidateUpdateTask(req *UpdateTaskRequest) response.FieldErrors {
	errs := response.FieldErrors{}

	if req.Title != nil {
		validateTitle(*req.Title, errs)
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		errs["description"] = append(errs["description"], "Description cannot be empty")
	}
	if req.Priority != nil && !validPriority(*req.Priority) {
		errs["priority"] = append(errs["priority"], "Priority must be one of: low, medium, high.")
	}
	validateDueDate(req.DueDate, errs)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateTitle(title string, errs response.FieldErrors) {
	switch {
	case strings.TrimSpace(title) == "":
		errs["title"] = append(errs["title"], "This field is required.")
	case len(title) > maxTitleLength:
		errs["title"] = append(errs["title"], "Ensure this field has no more than 200 characters.")
	}
}

func validateDueDate(dueDate *string, errs response.FieldErrors) {
	if dueDate == nil || *dueDate == "" {
		return
	}
	if _, err := time.Parse(DateFormat, *dueDate); err != nil {
		errs["due_date"] = append(errs["due_date"], "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
	}
}
