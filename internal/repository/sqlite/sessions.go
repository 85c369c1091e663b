package sqlite

import (
	"context"
	"database/sql"
	"time"

	"pomofocus/internal/domain"
)

// CreateSession records a completed interval
func (s *Store) CreateSession(ctx context.Context, sess *domain.Session) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if sess.ID == "" {
		sess.ID = s.newID()
	}
	if sess.CompletedAt.IsZero() {
		sess.CompletedAt = s.timestamp()
	}

	query := `INSERT INTO pomodoro_sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, s.db, "create session", query, sess.ID, sess.UserID, sess.DurationSeconds, string(sess.Type),
		NullableString(sess.ProjectID), NullableString(sess.ProjectTaskID), FormatTimeForDB(sess.CompletedAt))
}

// CountSessionsSince counts a user's sessions of one type completed at or after since
func (s *Store) CountSessionsSince(ctx context.Context, userID string, kind domain.SessionType, since time.Time) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT COUNT(*) FROM pomodoro_sessions
	WHERE user_id = ? AND type = ? AND completed_at >= ?`

	return QueryInt(ctx, s.db, "count sessions", query, userID, string(kind), FormatTimeForDB(since))
}

// ListSessionTimes returns completion times of a user's sessions of one type
// at or after since, oldest first
func (s *Store) ListSessionTimes(ctx context.Context, userID string, kind domain.SessionType, since time.Time) ([]time.Time, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT completed_at FROM pomodoro_sessions
	WHERE user_id = ? AND type = ? AND completed_at >= ?
	ORDER BY completed_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID, string(kind), FormatTimeForDB(since))
	if err != nil {
		return nil, HandleDatabaseError("query session times", err)
	}
	defer rows.Close()

	times := []time.Time{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, HandleDatabaseError("scan session times", err)
		}
		t, err := ParseTimeFromDB(raw)
		if err != nil {
			return nil, HandleDatabaseError("parse session time", err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, HandleDatabaseError("scan session times", err)
	}
	return times, nil
}

// FocusTotals sums pomodoro seconds per project and per project task for a user
func (s *Store) FocusTotals(ctx context.Context, userID string) (byProject map[string]int, byTask map[string]int, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	byProject, err = s.sumFocus(ctx, userID, "project_id")
	if err != nil {
		return nil, nil, err
	}
	byTask, err = s.sumFocus(ctx, userID, "project_task_id")
	if err != nil {
		return nil, nil, err
	}
	return byProject, byTask, nil
}

func (s *Store) sumFocus(ctx context.Context, userID, column string) (map[string]int, error) {
	query := `
	SELECT ` + column + `, SUM(duration_seconds)
	FROM pomodoro_sessions
	WHERE user_id = ? AND type = 'pomodoro' AND ` + column + ` IS NOT NULL
	GROUP BY ` + column

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, HandleDatabaseError("sum focus time", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var id string
		var total sql.NullInt64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, HandleDatabaseError("scan focus time", err)
		}
		totals[id] = int(total.Int64)
	}
	if err := rows.Err(); err != nil {
		return nil, HandleDatabaseError("scan focus time", err)
	}
	return totals, nil
}
