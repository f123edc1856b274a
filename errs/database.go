package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrMigrationFailed           = errors.New("migration failed")
)

// NewNotFound returns the 404 for a missing entity, e.g. "Project not found".
func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrNotFound,
		Message:    fmt.Sprintf("%s not found", capitalize(entity)),
	}
}

// NewStoreError wraps any engine failure. The client only ever sees
// "Failed to <operation> <entity>"; the cause is kept for logging.
func NewStoreError(operation, entity string, cause error) *ApiErr {
	if errors.Is(cause, ErrUniqueConstraintViolation) || errors.Is(cause, ErrNotFound) {
		var apiErr *ApiErr
		if errors.As(cause, &apiErr) {
			return apiErr
		}
	}
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Message:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

// NewDatabaseConnectionError is returned when the store cannot be reached at startup.
func NewDatabaseConnectionError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrDatabaseConnection,
		Details:    "Unable to connect to database",
		Cause:      cause,
	}
}

// NewUniqueConstraintViolationError keeps the 500 status of every other store
// failure but names the conflicting field in the message.
func NewUniqueConstraintViolationError(operation, entity, field string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrUniqueConstraintViolation,
		Message:    fmt.Sprintf("Failed to %s %s: %s already exists", operation, entity, field),
		Details:    fmt.Sprintf("Unique constraint violation on %s.%s", entity, field),
		Cause:      cause,
		Field:      field,
	}
}

func NewMigrationError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMigrationFailed,
		Cause:      cause,
	}
}

func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrUniqueConstraintViolation)
}

func IsDatabaseConnectionError(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}

func IsDatabaseQueryError(err error) bool {
	return errors.Is(err, ErrDatabaseQuery)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
