package auth

import (
	"regexp"
	"strings"

	"github.com/xyz-asif/gotasks/internal/pkg/response"
)

const maxUsernameLength = 150

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateRegister checks the registration payload and returns per-field
// error messages, or nil when the payload is valid.
func ValidateRegister(req *RegisterRequest) response.FieldErrors {
	errs := response.FieldErrors{}

	username := strings.TrimSpace(req.Username)
	switch {
	case username == "":
		errs["username"] = append(errs["username"], "This field is required.")
	case len(username) > maxUsernameLength:
		errs["username"] = append(errs["username"], "Ensure this field has no more than 150 characters.")
	case !usernameRegex.MatchString(username):
		errs["username"] = append(errs["username"], "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	if req.Password == "" {
		errs["password"] = append(errs["password"], "This field is required.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
