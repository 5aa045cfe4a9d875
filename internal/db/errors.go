package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the row doesn't exist. Repositories usually return
	// nil instead, but Translate maps gorm.ErrRecordNotFound here for the
	// places that pass driver errors straight through.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is a unique-constraint violation surfaced by Postgres.
	// The constraint is authoritative; any pre-insert existence check is a
	// fast path only.
	ErrDuplicate = errors.New("duplicate record")
)

// ValidationError carries a field-level message safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// uniqueViolation is the Postgres error code for unique_violation.
const uniqueViolation = "23505"

// Translate converts driver/gorm errors into the package sentinels so callers
// never match on raw storage errors.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return fmt.Errorf("storage error: %w", err)
}

// IsDuplicate reports whether err is a unique-constraint violation, either
// already translated or straight from the driver.
func IsDuplicate(err error) bool {
	if errors.Is(err, ErrDuplicate) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
