package services

import (
	"time"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// Now returns the current UTC time
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// TimeRange represents a half-open time period [Start, End)
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// GetDateRange returns the full UTC day containing date
func GetDateRange(date time.Time) TimeRange {
	start := domain.StartOfDay(date)
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}
}

// GetWeekRange returns the seven UTC days ending with the day of today
func GetWeekRange(today time.Time) TimeRange {
	day := GetDateRange(today)
	return TimeRange{Start: day.Start.AddDate(0, 0, -6), End: day.End}
}

// GetMonthBounds returns the first and last calendar day of t's month
func GetMonthBounds(t time.Time) (first, last string) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return domain.FormatDate(start), domain.FormatDate(end)
}

// ParseDateParam parses an optional YYYY-MM-DD query value, falling back to
// the day of fallback when empty
func ParseDateParam(field, value string, fallback time.Time) (string, time.Time, error) {
	if value == "" {
		day := domain.StartOfDay(fallback)
		return domain.FormatDate(day), day, nil
	}
	day, err := domain.ParseDate(value)
	if err != nil {
		return "", time.Time{}, errors.NewInvalidInputError(field, value, "expected YYYY-MM-DD")
	}
	return domain.FormatDate(day), day, nil
}
