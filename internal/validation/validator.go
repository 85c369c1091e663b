package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"pomofocus/internal/config"
	"pomofocus/internal/domain"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator provides common validation utilities
type Validator struct {
	config *config.ValidationConfig
}

// NewValidator creates a new validator instance using default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configured limits
func NewValidatorWithConfig(cfg *config.ValidationConfig) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks the trimmed rune count against the range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidEmail performs a shape check on an email address
func (v *Validator) IsValidEmail(email string) bool {
	return len(email) <= 120 && emailRegex.MatchString(email)
}

// IsInRange checks min <= n <= max
func (v *Validator) IsInRange(n, min, max int) bool {
	return n >= min && n <= max
}

// IsValidDate checks a YYYY-MM-DD calendar day
func (v *Validator) IsValidDate(s string) bool {
	return domain.IsValidDate(s)
}

// TrimString trims surrounding whitespace
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}

// TitleMaxLength returns the configured maximum title length
func (v *Validator) TitleMaxLength() int {
	if v.config != nil && v.config.TitleMaxLength > 0 {
		return v.config.TitleMaxLength
	}
	return 255
}

// PasswordMinLength returns the configured minimum password length
func (v *Validator) PasswordMinLength() int {
	if v.config != nil && v.config.PasswordMinLength > 0 {
		return v.config.PasswordMinLength
	}
	return 6
}

// validateTitle checks a required, length-bounded free-text field
func (v *Validator) validateTitle(ve *ValidationError, field, value string) string {
	trimmed := v.TrimString(value)
	if !v.IsNonEmptyString(trimmed) {
		ve.AddRequiredError(field)
		return ""
	}
	if !v.IsValidStringLength(trimmed, 1, v.TitleMaxLength()) {
		ve.AddInvalidLengthError(field, trimmed, 0, v.TitleMaxLength())
	}
	return trimmed
}
