package sqlite

import (
	"context"
	"database/sql"

	"pomofocus/internal/domain"
)

// columnOrder sorts projects left to right across the kanban board
const columnOrder = `CASE status
		WHEN 'backlog' THEN 0
		WHEN 'in-progress' THEN 1
		WHEN 'review' THEN 2
		WHEN 'completed' THEN 3
		ELSE 4 END`

// NextProjectPosition returns the position after the last card of a column
func (s *Store) NextProjectPosition(ctx context.Context, userID string, status domain.ProjectStatus) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT COALESCE(MAX(position) + 1, 0) FROM projects WHERE user_id = ? AND status = ?`
	return QueryInt(ctx, s.db, "next project position", query, userID, string(status))
}

// CreateProject inserts p, assigning id and timestamps when unset
func (s *Store) CreateProject(ctx context.Context, p *domain.Project) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.timestamp()
	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
	if p.Tasks == nil {
		p.Tasks = []domain.ProjectTask{}
	}

	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, s.db, "create project", query, p.ID, p.UserID, p.Name, p.Description, p.Notes,
		NullableString(p.Color), p.Category, p.Archived, string(p.Status), string(p.Priority),
		FormatTimePtrForDB(p.DueDate), p.Position, FormatTimeForDB(p.CreatedAt), FormatTimeForDB(p.UpdatedAt))
}

// GetProject retrieves a project owned by userID, without tasks
func (s *Store) GetProject(ctx context.Context, userID, id string) (*domain.Project, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND user_id = ?`
	return QuerySingle(ctx, s.db, query, ScanProject, "Project", id, id, userID)
}

// ListProjects returns a user's projects ordered by column then position
func (s *Store) ListProjects(ctx context.Context, userID string) ([]*domain.Project, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + projectColumns + `
	FROM projects
	WHERE user_id = ?
	ORDER BY ` + columnOrder + `, position ASC, created_at ASC`

	return QueryMultiple(ctx, s.db, query, ScanProject, "projects", userID)
}

// UpdateProject writes the mutable columns of p and bumps updated_at
func (s *Store) UpdateProject(ctx context.Context, p *domain.Project) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p.UpdatedAt = s.timestamp()

	query := `
	UPDATE projects
	SET name = ?, description = ?, notes = ?, color = ?, category = ?, archived = ?, status = ?,
		priority = ?, due_date = ?, position = ?, updated_at = ?
	WHERE id = ? AND user_id = ?`

	return ExecuteWithRowsAffected(ctx, s.db, query, "Project", p.ID, p.Name, p.Description, p.Notes,
		NullableString(p.Color), p.Category, p.Archived, string(p.Status), string(p.Priority),
		FormatTimePtrForDB(p.DueDate), p.Position, FormatTimeForDB(p.UpdatedAt), p.ID, p.UserID)
}

// DeleteProject deletes a project together with its tasks and activity
func (s *Store) DeleteProject(ctx context.Context, userID, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM projects WHERE id = ? AND user_id = ?`
	return ExecuteWithRowsAffected(ctx, s.db, query, "Project", id, id, userID)
}

// ReorderProjects moves the listed projects into status and numbers them in
// list order. An empty status keeps each project in its column. Ids not
// owned by userID are skipped. It returns how many projects were moved.
func (s *Store) ReorderProjects(ctx context.Context, userID string, status domain.ProjectStatus, orderedIDs []string) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	moved := 0
	now := FormatTimeForDB(s.timestamp())
	err := s.inTx(ctx, "reorder projects", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
		UPDATE projects SET status = COALESCE(NULLIF(?, ''), status), position = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
		if err != nil {
			return HandleDatabaseError("prepare reorder", err)
		}
		defer stmt.Close()

		position := 0
		for _, id := range orderedIDs {
			res, err := stmt.ExecContext(ctx, string(status), position, now, id, userID)
			if err != nil {
				return HandleDatabaseError("reorder project", err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				moved++
				position++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// CreateProjectTask inserts a checklist item
func (s *Store) CreateProjectTask(ctx context.Context, t *domain.ProjectTask) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.timestamp()
	}

	query := `
	INSERT INTO project_tasks (id, project_id, title, description, priority, due_date, is_completed, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	return Execute(ctx, s.db, "create project task", query, t.ID, t.ProjectID, t.Title, t.Description,
		string(t.Priority), FormatTimePtrForDB(t.DueDate), t.IsCompleted, FormatTimeForDB(t.CreatedAt))
}

// GetProjectTask retrieves a checklist item whose project is owned by userID
func (s *Store) GetProjectTask(ctx context.Context, userID, taskID string) (*domain.ProjectTask, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + projectTaskColumns + `
	FROM project_tasks t
	JOIN projects p ON p.id = t.project_id
	WHERE t.id = ? AND p.user_id = ?`

	return QuerySingle(ctx, s.db, query, ScanProjectTask, "Task", taskID, taskID, userID)
}

// ListProjectTasks returns every checklist item of a user's projects, oldest first
func (s *Store) ListProjectTasks(ctx context.Context, userID string) ([]*domain.ProjectTask, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + projectTaskColumns + `
	FROM project_tasks t
	JOIN projects p ON p.id = t.project_id
	WHERE p.user_id = ?
	ORDER BY t.created_at ASC`

	return QueryMultiple(ctx, s.db, query, ScanProjectTask, "project tasks", userID)
}

// UpdateProjectTask writes the mutable columns of a checklist item
func (s *Store) UpdateProjectTask(ctx context.Context, t *domain.ProjectTask) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE project_tasks
	SET title = ?, description = ?, priority = ?, due_date = ?, is_completed = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, s.db, query, "Task", t.ID, t.Title, t.Description, string(t.Priority),
		FormatTimePtrForDB(t.DueDate), t.IsCompleted, t.ID)
}

// DeleteProjectTask deletes a checklist item whose project is owned by userID
func (s *Store) DeleteProjectTask(ctx context.Context, userID, taskID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	DELETE FROM project_tasks
	WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)`

	return ExecuteWithRowsAffected(ctx, s.db, query, "Task", taskID, taskID, userID)
}

// AddProjectActivity appends an entry to a project's history
func (s *Store) AddProjectActivity(ctx context.Context, a *domain.ProjectActivity) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if a.ID == "" {
		a.ID = s.newID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.timestamp()
	}

	query := `INSERT INTO project_activity (id, project_id, type, message, created_at) VALUES (?, ?, ?, ?, ?)`
	return Execute(ctx, s.db, "add project activity", query, a.ID, a.ProjectID, string(a.Type), a.Message, FormatTimeForDB(a.CreatedAt))
}

// ListProjectActivity returns the newest entries of a project's history
func (s *Store) ListProjectActivity(ctx context.Context, userID, projectID string, limit int) ([]*domain.ProjectActivity, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + activityColumns + `
	FROM project_activity a
	JOIN projects p ON p.id = a.project_id
	WHERE a.project_id = ? AND p.user_id = ?
	ORDER BY a.created_at DESC, a.rowid DESC
	LIMIT ?`

	return QueryMultiple(ctx, s.db, query, ScanProjectActivity, "project activity", projectID, userID, limit)
}
