package usecase

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrMissingArgument    = errors.New("missing argument")
	ErrUserNotFound       = errors.New("user not found")
	ErrConflict           = errors.New("email already in use")
	ErrRoleMismatch       = errors.New("role mismatch")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDomainMismatch     = errors.New("login domain does not match account role")
	ErrAccessDenied       = errors.New("role not permitted")
)

// ValidationError carries the user-facing reason of an ErrValidation
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationError(message string) error {
	return &ValidationError{Message: message}
}

// isDuplicateKeyError reports a unique constraint violation, either translated by gorm
// or raw from PostgreSQL (code 23505)
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
