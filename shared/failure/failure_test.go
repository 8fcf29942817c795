package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"staysync/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct {
	code int
}

func (e codedError) Error() string { return "coded" }

func (e codedError) HTTPCode() int { return e.code }

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("end before start")), code: http.StatusBadRequest, message: "end before start"},
		{name: "bad request from string", err: failure.BadRequestFromString("unsupported sort field"), code: http.StatusBadRequest, message: "unsupported sort field"},
		{name: "not found", err: failure.NotFound("listing not found"), code: http.StatusNotFound, message: "listing not found"},
		{name: "conflict", err: failure.Conflict("booking already exists"), code: http.StatusConflict, message: "booking already exists"},
		{name: "invalid page", err: failure.InvalidPageParam, code: http.StatusBadRequest, message: "invalid page parameter"},
		{name: "invalid limit", err: failure.InvalidLimitParam, code: http.StatusBadRequest, message: "invalid limit parameter"},
		{name: "invalid api key", err: failure.InvalidAPIKey, code: http.StatusUnauthorized, message: "invalid api key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "wrapped failure",
			input:    fmt.Errorf("failed to sync channel: %w", failure.NotFound("channel not found")),
			expected: http.StatusNotFound,
		},
		{
			name:     "domain error with http code",
			input:    fmt.Errorf("wrapped: %w", codedError{code: http.StatusUnprocessableEntity}),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "plain error",
			input:    errors.New("feed fetch timed out"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestIsClientError(t *testing.T) {
	assert.True(t, failure.IsClientError(failure.Conflict("booking is cancelled")))
	assert.True(t, failure.IsClientError(codedError{code: http.StatusUnprocessableEntity}))
	assert.False(t, failure.IsClientError(errors.New("connection reset")))
	assert.False(t, failure.IsClientError(failure.Persistence(errors.New("connection reset"))))
	assert.False(t, failure.IsClientError(nil))
}

func TestPersistence(t *testing.T) {
	require.NoError(t, failure.Persistence(nil))

	cause := errors.New("connection reset")
	err := fmt.Errorf("failed to replace blocks: %w", failure.Persistence(cause))

	require.ErrorIs(t, err, failure.ErrPersistence)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to replace blocks: persistence error: connection reset", err.Error())
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}
