package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := UnknownSubject("XXXXX101")
	assert.Contains(t, err.Error(), "UNKNOWN_SUBJECT")
	assert.Contains(t, err.Error(), "XXXXX101")
}

func TestAppError_Unwrap(t *testing.T) {
	assert.True(t, errors.Is(UnknownSubject("BADPF100"), ErrUnknownSubject))
	assert.True(t, errors.Is(ValidationFailed("professor"), ErrInvalidInput))
	assert.True(t, errors.Is(InvalidRating("usefulness", 9), ErrInvalidInput))
	assert.True(t, errors.Is(AuthenticationRequired("no session"), ErrUnauthorized))
	assert.True(t, errors.Is(AlreadyExists("review", "submission_token", "tok"), ErrAlreadyExists))
}

func TestValidationFailed_NamesField(t *testing.T) {
	err := ValidationFailed("difficulty")
	assert.Contains(t, err.Message, "difficulty")
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestInvalidRating_Message(t *testing.T) {
	err := InvalidRating("rating", 0)
	assert.Contains(t, err.Message, "between 1 and 5")
	assert.Contains(t, err.Message, "0")
}

func TestStorageUnavailable_GenericMessage(t *testing.T) {
	cause := fmt.Errorf("dial tcp 127.0.0.1:5432: connection refused")
	err := StorageUnavailable(cause)
	assert.NotContains(t, err.Message, "5432")
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"app error", UnknownSubject("ABCDE1"), http.StatusUnprocessableEntity},
		{"wrapped app error", fmt.Errorf("submit: %w", StorageUnavailable(errors.New("x"))), http.StatusServiceUnavailable},
		{"not found sentinel", ErrNotFound, http.StatusNotFound},
		{"invalid input sentinel", ErrInvalidInput, http.StatusBadRequest},
		{"unknown subject sentinel", ErrUnknownSubject, http.StatusUnprocessableEntity},
		{"unauthorized sentinel", ErrUnauthorized, http.StatusUnauthorized},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}
