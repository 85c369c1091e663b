package migrations

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the storage format of every timestamp column. It is
// fixed width and UTC so that text comparison orders rows chronologically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

func init() {
	RegisterGoMigration(3, Up_000003_normalize_timestamps, Down_000003_normalize_timestamps)
}

// timestampColumns lists every column holding a timestamp, keyed by table
var timestampColumns = []struct {
	table   string
	key     string
	columns []string
}{
	{"users", "id", []string{"created_at"}},
	{"user_settings", "user_id", []string{"updated_at"}},
	{"tasks", "id", []string{"created_at"}},
	{"projects", "id", []string{"due_date", "created_at", "updated_at"}},
	{"project_tasks", "id", []string{"due_date", "created_at"}},
	{"project_activity", "id", []string{"created_at"}},
	{"pomodoro_sessions", "id", []string{"completed_at"}},
	{"applications", "id", []string{"applied_date", "interview_date", "created_at", "updated_at"}},
	{"goals", "id", []string{"created_at", "updated_at"}},
	{"routine_templates", "id", []string{"created_at"}},
}

// Up_000003_normalize_timestamps rewrites timestamps written by other tools
// (sqlite CURRENT_TIMESTAMP, RFC3339 with offsets, Go's default String
// format) into TimestampLayout. Values that cannot be parsed are left alone.
func Up_000003_normalize_timestamps(tx *sql.Tx) error {
	for _, tc := range timestampColumns {
		exists, err := tableExists(tx, tc.table)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		for _, column := range tc.columns {
			if err := normalizeColumn(tx, tc.table, tc.key, column); err != nil {
				return err
			}
		}
	}
	return nil
}

// Down_000003_normalize_timestamps is a no-op: the canonical form is a valid
// input for every reader.
func Down_000003_normalize_timestamps(tx *sql.Tx) error {
	return nil
}

func tableExists(tx *sql.Tx, table string) (bool, error) {
	var n int
	err := tx.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up table %s: %w", table, err)
	}
	return n > 0, nil
}

func normalizeColumn(tx *sql.Tx, table, key, column string) error {
	// Read all rows into memory first to avoid locking issues
	type value struct {
		key string
		raw string
	}
	var values []value

	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s IS NOT NULL AND %s != ''", key, column, table, column, column)
	rows, err := tx.Query(query)
	if err != nil {
		return fmt.Errorf("failed to query %s.%s: %w", table, column, err)
	}
	for rows.Next() {
		var v value
		if err := rows.Scan(&v.key, &v.raw); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan %s.%s: %w", table, column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating %s.%s: %w", table, column, err)
	}
	rows.Close()

	stmt, err := tx.Prepare(fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", table, column, key))
	if err != nil {
		return fmt.Errorf("failed to prepare %s.%s update: %w", table, column, err)
	}
	defer stmt.Close()

	for _, v := range values {
		normalized, err := normalizeTimestamp(v.raw)
		if err != nil || normalized == v.raw {
			continue
		}
		if _, err := stmt.Exec(normalized, v.key); err != nil {
			return fmt.Errorf("failed to update %s.%s for %s: %w", table, column, v.key, err)
		}
	}
	return nil
}

// normalizeTimestamp parses the formats found in practice and renders them
// in TimestampLayout
func normalizeTimestamp(s string) (string, error) {
	s = stripMonotonicSuffix(strings.TrimSpace(s))

	layouts := []string{
		TimestampLayout,
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05.999999999 -0700",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(TimestampLayout), nil
		}
	}

	return "", fmt.Errorf("could not parse time format: %s", s)
}

// stripMonotonicSuffix removes the monotonic clock suffix from Go time strings.
func stripMonotonicSuffix(s string) string {
	if idx := strings.Index(s, " m="); idx != -1 {
		return s[:idx]
	}
	return s
}
