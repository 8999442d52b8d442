package categories

import (
	"strings"

	"github.com/xyz-asif/gotasks/internal/pkg/response"
)

const maxNameLength = 50

// ValidateCreateCategory checks category creation data and returns
// per-field errors, or nil when the payload is valid.
func ValidateCreateCategory(req *CreateCategoryRequest) response.FieldErrors {
	errs := response.FieldErrors{}

	switch {
	case strings.TrimSpace(req.Name) == "":
		errs["name"] = append(errs["name"], "This field is required.")
	case len(req.Name) > maxNameLength:
		errs["name"] = append(errs["name"], "Ensure this field has no more than 50 characters.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
