package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrUnauthorized     = errors.New("authentication required")
	ErrInternal         = errors.New("internal server error")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrCORSBlocked      = errors.New("request blocked by CORS policy")
)

// ApiErr is an error that knows which HTTP status it maps to.
//
// Message is what the client sees. Cause is only ever logged.
type ApiErr struct {
	StatusCode int
	err        error
	Message    string       // Client-facing message, defaults to the sentinel text
	Details    string       // Additional details about the error
	Field      string       // Field that caused the error (for validation errors)
	Issues     []FieldIssue // Field-level validation problems
	Cause      error        // The underlying cause of the error
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	msg := e.PublicMessage()
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// PublicMessage is the text written to the "error" field of a response.
func (e *ApiErr) PublicMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var apiErr *ApiErr
		if errors.As(e.Cause, &apiErr) {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause, so
// errors.Is(err, ErrNotFound) and errors.Is(err, gorm.ErrRecordNotFound)
// both work on the same value.
func (e *ApiErr) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.err}
	}
	return []error{e.err, e.Cause}
}

// IsServerError reports whether the error must be hidden from the client.
func (e *ApiErr) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// NewRouteNotFoundError is returned for paths no route matches.
func NewRouteNotFoundError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, err: ErrNotFound, Message: "Route not found"}
}

func NewMethodNotAllowedError(method string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusMethodNotAllowed,
		err:        ErrMethodNotAllowed,
		Message:    "Method not allowed",
		Details:    fmt.Sprintf("%s is not supported on this route", method),
	}
}

// NewAuthRequiredError is returned when a mutating request carries no bearer token.
func NewAuthRequiredError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrUnauthorized, Message: "Authentication required"}
}

// NewInvalidTokenError is returned when a bearer token fails verification.
func NewInvalidTokenError(cause error) *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrUnauthorized, Message: "Invalid token", Cause: cause}
}

// NewPanicError carries a recovered panic value to the logs behind a plain 500.
func NewPanicError(recovered any) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrInternal,
		Message:    "Internal Server Error",
		Cause:      fmt.Errorf("panic: %v", recovered),
	}
}

func NewCORSError(origin string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrCORSBlocked,
		Details:    fmt.Sprintf("Origin '%s' is not allowed by CORS policy", origin),
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
