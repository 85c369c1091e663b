package sqlite

import (
	"context"
	"database/sql"

	"pomofocus/internal/domain"
)

// GetRoutine returns the routine saved for date. found is false when the
// day has none.
func (s *Store) GetRoutine(ctx context.Context, userID, date string) (routine *domain.Routine, found bool, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT user_id, date, entries FROM daily_routines WHERE user_id = ? AND date = ?`
	routine, err = ScanRoutine(s.db.QueryRowContext(ctx, query, userID, date))
	if err == sql.ErrNoRows {
		return &domain.Routine{UserID: userID, Date: date, Entries: []domain.RoutineEntry{}}, false, nil
	}
	if err != nil {
		return nil, false, HandleDatabaseError("get routine", err)
	}
	return routine, true, nil
}

// SaveRoutine upserts the routine of one day
func (s *Store) SaveRoutine(ctx context.Context, r *domain.Routine) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	entries, err := EncodeJSON(r.Entries)
	if err != nil {
		return HandleDatabaseError("encode routine", err)
	}

	query := `
	INSERT INTO daily_routines (user_id, date, entries, updated_at) VALUES (?, ?, ?, ?)
	ON CONFLICT(user_id, date) DO UPDATE SET entries = excluded.entries, updated_at = excluded.updated_at`

	return Execute(ctx, s.db, "save routine", query, r.UserID, r.Date, entries, FormatTimeForDB(s.timestamp()))
}

// ListRoutines returns every saved day of a user, oldest first
func (s *Store) ListRoutines(ctx context.Context, userID string) ([]*domain.Routine, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT user_id, date, entries FROM daily_routines WHERE user_id = ? ORDER BY date ASC`
	return QueryMultiple(ctx, s.db, query, ScanRoutine, "routines", userID)
}

// CreateRoutineTemplate stores a named set of routine entries
func (s *Store) CreateRoutineTemplate(ctx context.Context, t *domain.RoutineTemplate) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.timestamp()
	}
	if t.Entries == nil {
		t.Entries = []domain.RoutineEntry{}
	}

	entries, err := EncodeJSON(t.Entries)
	if err != nil {
		return HandleDatabaseError("encode template", err)
	}

	query := `INSERT INTO routine_templates (id, user_id, name, entries, created_at) VALUES (?, ?, ?, ?, ?)`
	return Execute(ctx, s.db, "create routine template", query, t.ID, t.UserID, t.Name, entries, FormatTimeForDB(t.CreatedAt))
}

// ListRoutineTemplates returns a user's templates, newest first
func (s *Store) ListRoutineTemplates(ctx context.Context, userID string) ([]*domain.RoutineTemplate, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT id, user_id, name, entries, created_at
	FROM routine_templates
	WHERE user_id = ?
	ORDER BY created_at DESC`

	return QueryMultiple(ctx, s.db, query, ScanRoutineTemplate, "routine templates", userID)
}

// DeleteRoutineTemplate deletes a template owned by userID
func (s *Store) DeleteRoutineTemplate(ctx context.Context, userID, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM routine_templates WHERE id = ? AND user_id = ?`
	return ExecuteWithRowsAffected(ctx, s.db, query, "Template", id, id, userID)
}
