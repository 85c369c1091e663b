package validation

import (
	"pomofocus/internal/domain"
)

// UserValidator validates account fields
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a new user validator
func NewUserValidator(v *Validator) *UserValidator {
	if v == nil {
		v = NewValidator()
	}
	return &UserValidator{validator: v}
}

// ValidateCredentials checks a new account's email and password and returns
// the normalised email
func (uv *UserValidator) ValidateCredentials(email, password string) (string, error) {
	ve := NewValidationError()
	normalized := domain.NormalizeEmail(email)

	if normalized == "" {
		ve.AddRequiredError("email")
	} else if !uv.validator.IsValidEmail(normalized) {
		ve.AddInvalidFormatError("email", normalized, "an email address")
	}
	ve.Merge(uv.ValidatePassword("password", password))

	if ve.HasErrors() {
		return "", ve
	}
	return normalized, nil
}

// ValidatePassword enforces the minimum password length
func (uv *UserValidator) ValidatePassword(field, password string) error {
	ve := NewValidationError()
	if password == "" {
		ve.AddRequiredError(field)
	} else if len([]rune(password)) < uv.validator.PasswordMinLength() {
		ve.AddInvalidLengthError(field, nil, uv.validator.PasswordMinLength(), 0)
	}
	return ve.OrNil()
}

// ValidateDailyGoal bounds the daily pomodoro target
func (uv *UserValidator) ValidateDailyGoal(goal int) error {
	ve := NewValidationError()
	if !uv.validator.IsInRange(goal, 1, 48) {
		ve.AddInvalidRangeError("daily_goal", goal, 1, 48)
	}
	return ve.OrNil()
}

// ValidateAccountUpdate checks the admin-editable fields of an account
func (uv *UserValidator) ValidateAccountUpdate(role *string, plan *string) error {
	ve := NewValidationError()
	if role != nil && !domain.Role(*role).IsValid() {
		ve.AddInvalidValueError("role", *role, "must be user, admin or superadmin")
	}
	if plan != nil && !domain.Plan(*plan).IsValid() {
		ve.AddInvalidValueError("subscription_plan", *plan, "must be free or pro")
	}
	return ve.OrNil()
}
