package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Object Storage Errors
var (
	ErrUpload              = errors.New("upload failed")
	ErrUploaderUnavailable = errors.New("uploads are not configured")
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileTypeNotAllowed  = errors.New("file type not allowed")
)

// Configuration Errors
var (
	ErrConfigMissing = errors.New("missing configuration")
	ErrConfigInvalid = errors.New("invalid configuration")
)

func NewUploadError(bucket, path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUpload,
		Message:    "Failed to upload file",
		Details:    fmt.Sprintf("bucket=%s path=%s", bucket, path),
		Cause:      cause,
	}
}

func NewUploaderUnavailableError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrUploaderUnavailable,
		Message:    "File uploads are not configured",
	}
}

func NewFileTooLargeError(size, limit int64) *ApiErr {
	e := NewValidationError(FieldIssue{
		Path:    "file",
		Message: fmt.Sprintf("file is %d bytes, the limit is %d bytes", size, limit),
	})
	e.Cause = ErrFileTooLarge
	return e
}

func NewFileTypeNotAllowedError(contentType string) *ApiErr {
	e := NewValidationError(FieldIssue{
		Path:    "file",
		Message: fmt.Sprintf("file type %q is not allowed, use an image or video", contentType),
	})
	e.Cause = ErrFileTypeNotAllowed
	return e
}

// NewConfigMissingError is fatal at startup.
func NewConfigMissingError(keys ...string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("required environment variables not set: %v", keys),
	}
}

func NewConfigInvalidError(key string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("%s is invalid", key),
		Field:      key,
		Cause:      cause,
	}
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrUpload)
}

func IsConfigMissingError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}

func IsUploaderUnavailableError(err error) bool {
	return errors.Is(err, ErrUploaderUnavailable)
}
