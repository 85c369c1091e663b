package validation

// ValidateApplication checks the identifying fields of a job application
func (v *Validator) ValidateApplication(companyName, role string) error {
	ve := NewValidationError()
	v.validateTitle(ve, "company_name", companyName)
	v.validateTitle(ve, "role", role)
	return ve.OrNil()
}

// ValidateApplicationUpdate checks identifying fields present in a partial update
func (v *Validator) ValidateApplicationUpdate(companyName, role *string) error {
	ve := NewValidationError()
	if companyName != nil {
		v.validateTitle(ve, "company_name", *companyName)
	}
	if role != nil {
		v.validateTitle(ve, "role", *role)
	}
	return ve.OrNil()
}
