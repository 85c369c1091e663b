package validation

import (
	"pomofocus/internal/domain"
)

// ValidateProjectName validates and trims a project name
func (v *Validator) ValidateProjectName(name string) (string, error) {
	ve := NewValidationError()
	trimmed := v.validateTitle(ve, "name", name)
	return trimmed, ve.OrNil()
}

// ValidateProjectStatus rejects statuses outside the kanban columns
func (v *Validator) ValidateProjectStatus(status string) error {
	ve := NewValidationError()
	if !domain.ProjectStatus(status).IsValid() {
		ve.AddInvalidValueError("status", status, "must be backlog, in-progress, review or completed")
	}
	return ve.OrNil()
}

// ValidateReorder checks a kanban column move
func (v *Validator) ValidateReorder(status string, orderedIDs []string) error {
	ve := NewValidationError()
	if status != "" && !domain.ProjectStatus(status).IsValid() {
		ve.AddInvalidValueError("status", status, "must be backlog, in-progress, review or completed")
	}
	if orderedIDs == nil {
		ve.AddRequiredError("ordered_ids")
	}
	return ve.OrNil()
}
