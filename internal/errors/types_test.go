package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeDatabase, "database"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeTimeout, "timeout"},
		{ErrorTypePermission, "permission"},
		{ErrorTypeUnauthorized, "unauthorized"},
		{ErrorTypeConflict, "conflict"},
		{ErrorTypeRateLimited, "rate_limited"},
		{ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errorType.String())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	t.Run("should include the cause when present", func(t *testing.T) {
		err := &AppError{Type: ErrorTypeDatabase, Message: "insert failed", Cause: errors.New("locked")}
		assert.Equal(t, "database: insert failed (caused by: locked)", err.Error())
	})

	t.Run("should omit the cause when absent", func(t *testing.T) {
		err := &AppError{Type: ErrorTypeNotFound, Message: "Task not found."}
		assert.Equal(t, "not_found: Task not found.", err.Error())
	})
}

func TestAppError_Is(t *testing.T) {
	a := &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}
	b := &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND", Message: "other"}
	c := &AppError{Type: ErrorTypeConflict, Code: "CONFLICT"}

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
	assert.False(t, a.Is(errors.New("plain")))
}

func TestAppError_Context(t *testing.T) {
	err := &AppError{Type: ErrorTypeValidation}

	_, ok := err.GetContext("field")
	assert.False(t, ok)

	err.WithContext("field", "title").WithContext("max", 255)

	v, ok := err.GetContext("field")
	assert.True(t, ok)
	assert.Equal(t, "title", v)

	v, ok = err.GetContext("max")
	assert.True(t, ok)
	assert.Equal(t, 255, v)
}

func TestAppError_UnwrapAndType(t *testing.T) {
	cause := errors.New("root")
	err := &AppError{Type: ErrorTypeTimeout, Cause: cause}

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, err.IsType(ErrorTypeTimeout))
	assert.False(t, err.IsType(ErrorTypeDatabase))
}
