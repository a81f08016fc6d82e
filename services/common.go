package services

import (
	"errors"
	"fmt"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
	"gorm.io/gorm"
)

// dbError turns gorm sentinels into apperr kinds; anything else is wrapped
// as is.
func dbError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, apperr.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, apperr.ErrInvalidInput)...)
}

const dateLayout = "2006-01-02"
