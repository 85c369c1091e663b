package cli

import (
	stderrors "errors"
	"fmt"

	"pomofocus/internal/config"
	"pomofocus/internal/errors"
)

// ErrorHandler turns errors into messages fit for a terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes err with the failed operation. Application errors are
// reduced to their user message; configuration errors name the field.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	var cfgErr *config.ConfigError
	if stderrors.As(err, &cfgErr) {
		return fmt.Errorf("failed to %s: invalid configuration: %s", operation, cfgErr.Error())
	}
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// ExitCode maps an error onto a process exit status
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsErrorType(err, errors.ErrorTypeValidation), errors.IsErrorType(err, errors.ErrorTypeInvalidInput):
		return 2
	default:
		return 1
	}
}
