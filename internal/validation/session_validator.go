package validation

import (
	"pomofocus/internal/domain"
)

// maxSessionSeconds rejects durations longer than a working day.
const maxSessionSeconds = 24 * 60 * 60

// ValidateSession checks a completed session submitted by a client
func (v *Validator) ValidateSession(durationSeconds int, sessionType string) error {
	ve := NewValidationError()

	if durationSeconds <= 0 {
		ve.AddRequiredError("duration_seconds")
	} else if durationSeconds > maxSessionSeconds {
		ve.AddInvalidRangeError("duration_seconds", durationSeconds, 1, maxSessionSeconds)
	}

	if sessionType == "" {
		ve.AddRequiredError("type")
	} else if !domain.SessionType(sessionType).IsValid() {
		ve.AddInvalidValueError("type", sessionType, "must be pomodoro, shortBreak or longBreak")
	}

	return ve.OrNil()
}
