package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared across the portal.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrAlreadyExists   = errors.New("resource already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInternal        = errors.New("internal error")
	ErrUnknownSubject  = errors.New("unknown subject")
	ErrStorageUnavail  = errors.New("storage unavailable")
)

// AppError is a structured application error with an HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// AlreadyExists creates a 409 error.
func AlreadyExists(resource, field, value string) *AppError {
	return &AppError{
		Code:    "ALREADY_EXISTS",
		Message: fmt.Sprintf("%s with %s %q already exists", resource, field, value),
		Status:  http.StatusConflict,
		Err:     ErrAlreadyExists,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// UnknownSubject creates a 422 error for a course prefix that does not map
// to any canonical subject.
func UnknownSubject(courseID string) *AppError {
	return &AppError{
		Code:    "UNKNOWN_SUBJECT",
		Message: fmt.Sprintf("course %q does not resolve to a known subject", courseID),
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrUnknownSubject,
	}
}

// UnresolvedCourse creates a 422 error for the store-level re-check of the
// course prefix at submit time.
func UnresolvedCourse(courseID string) *AppError {
	return &AppError{
		Code:    "UNRESOLVED_COURSE",
		Message: fmt.Sprintf("course %q could not be resolved for review storage", courseID),
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrUnknownSubject,
	}
}

// ValidationFailed creates a 400 error naming the missing required field.
func ValidationFailed(field string) *AppError {
	return &AppError{
		Code:    "VALIDATION_FAILED",
		Message: fmt.Sprintf("required field %q is missing", field),
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// InvalidRating creates a 400 error for a rating value outside 1..5.
func InvalidRating(field string, value int) *AppError {
	return &AppError{
		Code:    "INVALID_RATING",
		Message: fmt.Sprintf("%s must be between 1 and 5, got %d", field, value),
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// AuthenticationRequired creates a 401 error. The SPA treats this as a
// redirect signal to its login error route.
func AuthenticationRequired(message string) *AppError {
	return &AppError{
		Code:    "AUTHENTICATION_REQUIRED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// StorageUnavailable creates a 503 error for transient storage failures. The
// message is deliberately generic; callers may retry.
func StorageUnavailable(err error) *AppError {
	return &AppError{
		Code:    "STORAGE_UNAVAILABLE",
		Message: "storage is temporarily unavailable, please try again",
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownSubject):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrStorageUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
