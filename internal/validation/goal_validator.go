package validation

// ValidateGoalTitle validates and trims a goal title
func (v *Validator) ValidateGoalTitle(title string) (string, error) {
	ve := NewValidationError()
	trimmed := v.validateTitle(ve, "title", title)
	return trimmed, ve.OrNil()
}

// ValidateStepText validates and trims the text of a goal step
func (v *Validator) ValidateStepText(text string) (string, error) {
	ve := NewValidationError()
	trimmed := v.validateTitle(ve, "text", text)
	return trimmed, ve.OrNil()
}

// ValidateOptionalDate accepts an empty value or a YYYY-MM-DD day
func (v *Validator) ValidateOptionalDate(field, value string) error {
	ve := NewValidationError()
	if value != "" && !v.IsValidDate(value) {
		ve.AddInvalidFormatError(field, value, "YYYY-MM-DD")
	}
	return ve.OrNil()
}
