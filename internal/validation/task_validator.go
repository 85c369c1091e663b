package validation

// TaskValidator provides validation for to-do list tasks
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator(v *Validator) *TaskValidator {
	if v == nil {
		v = NewValidator()
	}
	return &TaskValidator{validator: v}
}

// ValidateTitle validates a task title and returns it trimmed
func (tv *TaskValidator) ValidateTitle(title string) (string, error) {
	ve := NewValidationError()
	trimmed := tv.validator.validateTitle(ve, "title", title)
	if ve.HasErrors() {
		return "", ve
	}
	return trimmed, nil
}

// ValidateTitleUpdate validates an optional title of a partial update
func (tv *TaskValidator) ValidateTitleUpdate(title *string) error {
	if title == nil {
		return nil
	}
	trimmed, err := tv.ValidateTitle(*title)
	if err != nil {
		return err
	}
	*title = trimmed
	return nil
}
