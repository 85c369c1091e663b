package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format used by routines, goal deadlines and
// every date-typed query parameter.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar day as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// IsValidDate reports whether s is a YYYY-MM-DD calendar day.
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// FormatDate formats t as a YYYY-MM-DD calendar day in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// StartOfDay truncates t to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseFlexibleTime accepts either a calendar day or an ISO-8601 timestamp
// (a trailing Z or a numeric offset). Calendar days resolve to UTC midnight.
func ParseFlexibleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "T") {
		return ParseDate(s)
	}
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02T15:04:05.999999999",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// OptionalTime is a tri-state field for partial updates: absent, explicitly
// cleared, or set.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// ParseOptionalTime follows the lenient update rule used across the API: an
// empty string clears the value and an unparsable string leaves it untouched.
func ParseOptionalTime(raw *string) OptionalTime {
	if raw == nil {
		return OptionalTime{}
	}
	if strings.TrimSpace(*raw) == "" {
		return OptionalTime{Set: true}
	}
	t, err := ParseFlexibleTime(*raw)
	if err != nil {
		return OptionalTime{}
	}
	return OptionalTime{Set: true, Value: &t}
}
