package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomofocus/internal/config"
	apperrors "pomofocus/internal/errors"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "should surface the message of a validation error",
			operation: "bootstrap admin",
			err:       apperrors.NewValidationError("Invalid email address.", nil),
			expected:  "failed to bootstrap admin: Invalid email address.",
		},
		{
			name:      "should hide database details",
			operation: "migrate",
			err:       apperrors.NewDatabaseError("insert", errors.New("disk I/O error")),
			expected:  "failed to migrate: A database error occurred. Please try again.",
		},
		{
			name:      "should name the offending configuration field",
			operation: "start server",
			err:       fmt.Errorf("configuration: %w", &config.ConfigError{Field: "http.port", Message: "port cannot be empty"}),
			expected:  "failed to start server: invalid configuration: http.port: port cannot be empty",
		},
		{
			name:      "should wrap a plain error",
			operation: "serve",
			err:       errors.New("address already in use"),
			expected:  "failed to serve: address already in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			require.Error(t, result)
			assert.Equal(t, tt.expected, result.Error())
		})
	}

	t.Run("should pass nil through", func(t *testing.T) {
		assert.NoError(t, eh.Handle("anything", nil))
	})
}

func TestErrorHandler_ExitCode(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"should exit cleanly without an error", nil, 0},
		{"should flag bad input", apperrors.NewBadRequestError("Email and password are required."), 2},
		{"should flag validation failures", apperrors.NewValidationError("bad", nil), 2},
		{"should fail generically otherwise", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eh.ExitCode(tt.err))
		})
	}
}
