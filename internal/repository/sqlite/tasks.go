package sqlite

import (
	"context"

	"pomofocus/internal/domain"
)

// CreateTask inserts t, assigning its id and creation time when unset
func (s *Store) CreateTask(ctx context.Context, t *domain.Task) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.timestamp()
	}

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	return Execute(ctx, s.db, "create task", query, t.ID, t.UserID, t.Title, string(t.Priority), t.IsCompleted, FormatTimeForDB(t.CreatedAt))
}

// GetTask retrieves a task owned by userID
func (s *Store) GetTask(ctx context.Context, userID, id string) (*domain.Task, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`
	return QuerySingle(ctx, s.db, query, ScanTask, "Task", id, id, userID)
}

// ListTasks returns a user's tasks, incomplete first, then newest first
func (s *Store) ListTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = ?
	ORDER BY is_completed ASC, created_at DESC`

	return QueryMultiple(ctx, s.db, query, ScanTask, "tasks", userID)
}

// UpdateTask writes the mutable columns of t
func (s *Store) UpdateTask(ctx context.Context, t *domain.Task) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE tasks
	SET title = ?, priority = ?, is_completed = ?
	WHERE id = ? AND user_id = ?`

	return ExecuteWithRowsAffected(ctx, s.db, query, "Task", t.ID, t.Title, string(t.Priority), t.IsCompleted, t.ID, t.UserID)
}

// DeleteTask deletes a task owned by userID
func (s *Store) DeleteTask(ctx context.Context, userID, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ? AND user_id = ?`
	return ExecuteWithRowsAffected(ctx, s.db, query, "Task", id, id, userID)
}
