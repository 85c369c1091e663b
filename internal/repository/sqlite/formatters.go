package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"pomofocus/internal/repository/sqlite/migrations"
)

// TimestampLayout is the fixed-width UTC storage format for timestamps
const TimestampLayout = migrations.TimestampLayout

// FormatTimeForDB formats a time.Time value in UTC for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses a stored timestamp. RFC3339 values written by
// other tools are accepted as well.
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseNullTimeFromDB parses a nullable timestamp column
func ParseNullTimeFromDB(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NullableString maps nil to SQL NULL
func NullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// StringPtr maps SQL NULL to nil
func StringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// EncodeJSON serializes v for a JSON text column. nil slices are stored as [].
func EncodeJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}
