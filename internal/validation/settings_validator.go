package validation

import (
	"pomofocus/internal/domain"
)

// ValidateSettings bounds timer durations and checks the dashboard layout
func (v *Validator) ValidateSettings(s domain.Settings) error {
	ve := NewValidationError()

	minutes := []struct {
		field string
		value int
	}{
		{"focus_duration", s.FocusMinutes},
		{"short_break", s.ShortBreakMinutes},
		{"long_break", s.LongBreakMinutes},
	}
	for _, m := range minutes {
		if !v.IsInRange(m.value, 1, 180) {
			ve.AddInvalidRangeError(m.field, m.value, 1, 180)
		}
	}
	if !v.IsInRange(s.LongBreakInterval, 1, 12) {
		ve.AddInvalidRangeError("long_break_interval", s.LongBreakInterval, 1, 12)
	}

	seen := make(map[string]bool, len(s.DashboardLayout))
	for _, id := range s.DashboardLayout {
		if !domain.IsKnownWidget(id) {
			ve.AddInvalidValueError("dashboard_layout", id, "unknown widget "+id)
			continue
		}
		if seen[id] {
			ve.AddInvalidValueError("dashboard_layout", id, "duplicate widget "+id)
		}
		seen[id] = true
	}

	return ve.OrNil()
}

// ValidateRoutineDate checks the day a routine is stored under
func (v *Validator) ValidateRoutineDate(date string) error {
	ve := NewValidationError()
	if !v.IsValidDate(date) {
		ve.AddInvalidFormatError("date", date, "YYYY-MM-DD")
	}
	return ve.OrNil()
}

// ValidateTemplateName validates and trims a routine template name
func (v *Validator) ValidateTemplateName(name string) (string, error) {
	ve := NewValidationError()
	trimmed := v.TrimString(name)
	if trimmed == "" {
		ve.AddRequiredError("name")
	} else if !v.IsValidStringLength(trimmed, 1, 100) {
		ve.AddInvalidLengthError("name", trimmed, 0, 100)
	}
	return trimmed, ve.OrNil()
}
