package auth

import (
	"errors"

	apperrors "github.com/xyz-asif/gotasks/pkg/errors"
)

func isDuplicate(err error) bool {
	return errors.Is(err, apperrors.ErrDuplicate)
}
