package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Request & Input-Validation Errors
var (
	ErrValidation           = errors.New("validation error")
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrInvalidJSON          = errors.New("invalid JSON")
)

// FieldIssue is one field-level validation problem.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Validation collects field issues while a request body is checked.
// The zero value is ready to use.
type Validation struct {
	issues []FieldIssue
}

func (v *Validation) Add(path, format string, args ...any) {
	v.issues = append(v.issues, FieldIssue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Required records an issue when value is blank.
func (v *Validation) Required(path, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(path, "%s is required", path)
	}
}

func (v *Validation) Issues() []FieldIssue {
	return v.issues
}

// Err returns nil when no issue was recorded.
func (v *Validation) Err() error {
	if len(v.issues) == 0 {
		return nil
	}
	return NewValidationError(v.issues...)
}

// NewValidationError is the 400 returned for any malformed or incomplete body.
func NewValidationError(issues ...FieldIssue) *ApiErr {
	e := &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Message:    "Validation error",
		Issues:     issues,
	}
	if len(issues) == 1 {
		e.Field = issues[0].Path
	}
	return e
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// Request & Input-Validation Error Constructors
func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	e := NewValidationError(FieldIssue{Path: fieldName, Message: fmt.Sprintf("%s is required", fieldName)})
	e.Cause = ErrMissingRequiredField
	return e
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	e := NewValidationError(FieldIssue{Path: fieldName, Message: reason})
	e.Cause = ErrInvalidField
	return e
}

// NewInvalidJSONError turns a decoder failure into a validation error that
// names the offending field whenever the decoder knows it.
func NewInvalidJSONError(cause error) *ApiErr {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		issue     FieldIssue
	)
	switch {
	case errors.As(cause, &typeErr):
		issue = FieldIssue{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
		if issue.Path != "" {
			issue.Message = fmt.Sprintf("%s: %s", issue.Path, issue.Message)
		}
	case errors.As(cause, &syntaxErr):
		issue = FieldIssue{Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	default:
		issue = FieldIssue{Message: cause.Error()}
	}
	e := NewValidationError(issue)
	e.Cause = fmt.Errorf("%w: %w", ErrInvalidJSON, cause)
	return e
}

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	e := NewValidationError(FieldIssue{Path: "payload", Message: fmt.Sprintf("Malformed %s payload", payloadType)})
	e.Cause = fmt.Errorf("%w: %w", ErrMalformedPayload, cause)
	return e
}

func NewUnsupportedMediaTypeError(contentType string, allowedTypes []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnsupportedMediaType,
		err:        ErrUnsupportedMediaType,
		Details:    fmt.Sprintf("Unsupported media type: %s. Allowed types: %v", contentType, allowedTypes),
		Field:      "content_type",
	}
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		err:        ErrMaxBodySizeExceeded,
		Details:    fmt.Sprintf("Request body size exceeded maximum allowed size of %d bytes", maxSize),
		Field:      "body_size",
	}
}

// Request & Input-Validation Error Type Checkers
func IsMalformedPayloadError(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}

func IsUnsupportedMediaTypeError(err error) bool {
	return errors.Is(err, ErrUnsupportedMediaType)
}

func IsMaxBodySizeExceededError(err error) bool {
	return errors.Is(err, ErrMaxBodySizeExceeded)
}

func IsInvalidJSONError(err error) bool {
	return errors.Is(err, ErrInvalidJSON)
}
