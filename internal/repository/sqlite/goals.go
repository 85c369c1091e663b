package sqlite

import (
	"context"
	"database/sql"

	"pomofocus/internal/domain"
)

// CreateGoal inserts g and its steps in one transaction
func (s *Store) CreateGoal(ctx context.Context, g *domain.Goal) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if g.ID == "" {
		g.ID = s.newID()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = s.timestamp()
	}
	g.UpdatedAt = g.CreatedAt

	return s.inTx(ctx, "create goal", func(tx *sql.Tx) error {
		query := `INSERT INTO goals (` + goalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

		err := Execute(ctx, tx, "create goal", query, g.ID, g.UserID, string(g.Type), g.Title, g.Description,
			g.Deadline, string(g.Priority), string(g.Status), g.Category, g.Color, g.IsArchived, g.IsPinned,
			g.Notes, g.Order, g.Recurrence, g.StreakCount, g.LastStreakDate, NullableString(g.ProjectID),
			FormatTimeForDB(g.CreatedAt), FormatTimeForDB(g.UpdatedAt))
		if err != nil {
			return err
		}
		return s.insertSteps(ctx, tx, g)
	})
}

func (s *Store) insertSteps(ctx context.Context, q Querier, g *domain.Goal) error {
	query := `
	INSERT INTO goal_steps (id, goal_id, text, done, is_milestone, deadline, position)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	if g.Steps == nil {
		g.Steps = []domain.GoalStep{}
	}
	for i := range g.Steps {
		step := &g.Steps[i]
		if step.ID == "" {
			step.ID = s.newID()
		}
		step.GoalID = g.ID
		step.Position = i
		err := Execute(ctx, q, "create goal step", query, step.ID, step.GoalID, step.Text, step.Done,
			step.IsMilestone, step.Deadline, step.Position)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetGoal retrieves a goal owned by userID together with its steps
func (s *Store) GetGoal(ctx context.Context, userID, id string) (*domain.Goal, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = ? AND user_id = ?`
	g, err := QuerySingle(ctx, s.db, query, ScanGoal, "Goal", id, id, userID)
	if err != nil {
		return nil, err
	}

	stepQuery := `SELECT ` + goalStepColumns + ` FROM goal_steps s WHERE s.goal_id = ? ORDER BY s.position ASC`
	steps, err := QueryMultiple(ctx, s.db, stepQuery, ScanGoalStep, "goal steps", g.ID)
	if err != nil {
		return nil, err
	}
	for _, step := range steps {
		g.Steps = append(g.Steps, *step)
	}
	return g, nil
}

// ListGoals returns a user's goals with steps, ordered by order then newest first
func (s *Store) ListGoals(ctx context.Context, userID string) ([]*domain.Goal, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + goalColumns + `
	FROM goals
	WHERE user_id = ?
	ORDER BY sort_order ASC, created_at DESC`

	goals, err := QueryMultiple(ctx, s.db, query, ScanGoal, "goals", userID)
	if err != nil {
		return nil, err
	}
	return goals, s.attachSteps(ctx, userID, goals)
}

// ListGoalDeadlines returns non-archived goals whose deadline falls within
// [from, to], both YYYY-MM-DD
func (s *Store) ListGoalDeadlines(ctx context.Context, userID, from, to string) ([]*domain.Goal, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + goalColumns + `
	FROM goals
	WHERE user_id = ? AND is_archived = 0 AND deadline != '' AND deadline >= ? AND deadline <= ?
	ORDER BY deadline ASC`

	return QueryMultiple(ctx, s.db, query, ScanGoal, "goals", userID, from, to)
}

func (s *Store) attachSteps(ctx context.Context, userID string, goals []*domain.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	query := `
	SELECT ` + goalStepColumns + `
	FROM goal_steps s
	JOIN goals g ON g.id = s.goal_id
	WHERE g.user_id = ?
	ORDER BY s.goal_id, s.position ASC`

	steps, err := QueryMultiple(ctx, s.db, query, ScanGoalStep, "goal steps", userID)
	if err != nil {
		return err
	}

	byGoal := make(map[string]*domain.Goal, len(goals))
	for _, g := range goals {
		byGoal[g.ID] = g
	}
	for _, step := range steps {
		if g, ok := byGoal[step.GoalID]; ok {
			g.Steps = append(g.Steps, *step)
		}
	}
	return nil
}

// UpdateGoal writes the mutable columns of g. When replaceSteps is set the
// stored steps are replaced by g.Steps.
func (s *Store) UpdateGoal(ctx context.Context, g *domain.Goal, replaceSteps bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	g.UpdatedAt = s.timestamp()

	return s.inTx(ctx, "update goal", func(tx *sql.Tx) error {
		if err := updateGoalRow(ctx, tx, g); err != nil {
			return err
		}
		if !replaceSteps {
			return nil
		}
		if err := Execute(ctx, tx, "clear goal steps", `DELETE FROM goal_steps WHERE goal_id = ?`, g.ID); err != nil {
			return err
		}
		return s.insertSteps(ctx, tx, g)
	})
}

func updateGoalRow(ctx context.Context, q Querier, g *domain.Goal) error {
	query := `
	UPDATE goals
	SET type = ?, title = ?, description = ?, deadline = ?, priority = ?, status = ?, category = ?, color = ?,
		is_archived = ?, is_pinned = ?, notes = ?, sort_order = ?, recurrence = ?, streak_count = ?,
		last_streak_date = ?, project_id = ?, updated_at = ?
	WHERE id = ? AND user_id = ?`

	return ExecuteWithRowsAffected(ctx, q, query, "Goal", g.ID, string(g.Type), g.Title, g.Description, g.Deadline,
		string(g.Priority), string(g.Status), g.Category, g.Color, g.IsArchived, g.IsPinned, g.Notes, g.Order,
		g.Recurrence, g.StreakCount, g.LastStreakDate, NullableString(g.ProjectID), FormatTimeForDB(g.UpdatedAt),
		g.ID, g.UserID)
}

// DeleteGoal deletes a goal owned by userID and its steps
func (s *Store) DeleteGoal(ctx context.Context, userID, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM goals WHERE id = ? AND user_id = ?`
	return ExecuteWithRowsAffected(ctx, s.db, query, "Goal", id, id, userID)
}

// ReorderGoals sets each listed goal's order to its index in orderedIDs.
// Ids not owned by userID are skipped. It returns how many goals changed.
func (s *Store) ReorderGoals(ctx context.Context, userID string, orderedIDs []string) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	updated := 0
	err := s.inTx(ctx, "reorder goals", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `UPDATE goals SET sort_order = ? WHERE id = ? AND user_id = ?`)
		if err != nil {
			return HandleDatabaseError("prepare reorder", err)
		}
		defer stmt.Close()

		for i, id := range orderedIDs {
			res, err := stmt.ExecContext(ctx, i, id, userID)
			if err != nil {
				return HandleDatabaseError("reorder goal", err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// AddGoalStep appends a step to the end of a goal's checklist
func (s *Store) AddGoalStep(ctx context.Context, step *domain.GoalStep) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if step.ID == "" {
		step.ID = s.newID()
	}

	return s.inTx(ctx, "add goal step", func(tx *sql.Tx) error {
		position, err := QueryInt(ctx, tx, "next step position",
			`SELECT COALESCE(MAX(position) + 1, 0) FROM goal_steps WHERE goal_id = ?`, step.GoalID)
		if err != nil {
			return err
		}
		step.Position = position

		query := `
		INSERT INTO goal_steps (id, goal_id, text, done, is_milestone, deadline, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
		return Execute(ctx, tx, "create goal step", query, step.ID, step.GoalID, step.Text, step.Done,
			step.IsMilestone, step.Deadline, step.Position)
	})
}

// GetGoalStep retrieves a step of a goal owned by userID
func (s *Store) GetGoalStep(ctx context.Context, userID, goalID, stepID string) (*domain.GoalStep, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + goalStepColumns + `
	FROM goal_steps s
	JOIN goals g ON g.id = s.goal_id
	WHERE s.id = ? AND s.goal_id = ? AND g.user_id = ?`

	return QuerySingle(ctx, s.db, query, ScanGoalStep, "Step", stepID, stepID, goalID, userID)
}

// SaveStepProgress writes a step and its goal's streak fields atomically
func (s *Store) SaveStepProgress(ctx context.Context, step *domain.GoalStep, g *domain.Goal) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	g.UpdatedAt = s.timestamp()

	return s.inTx(ctx, "save step progress", func(tx *sql.Tx) error {
		query := `
		UPDATE goal_steps SET text = ?, done = ?, is_milestone = ?, deadline = ?
		WHERE id = ? AND goal_id = ?`
		err := ExecuteWithRowsAffected(ctx, tx, query, "Step", step.ID, step.Text, step.Done, step.IsMilestone,
			step.Deadline, step.ID, step.GoalID)
		if err != nil {
			return err
		}
		return updateGoalRow(ctx, tx, g)
	})
}

// DeleteGoalStep deletes a step of a goal owned by userID
func (s *Store) DeleteGoalStep(ctx context.Context, userID, goalID, stepID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	DELETE FROM goal_steps
	WHERE id = ? AND goal_id IN (SELECT id FROM goals WHERE id = ? AND user_id = ?)`

	return ExecuteWithRowsAffected(ctx, s.db, query, "Step", stepID, stepID, goalID, userID)
}
