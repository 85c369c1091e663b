package sqlite

import (
	"context"
	"database/sql"

	"pomofocus/internal/domain"
)

// GetGymDay returns the log of date with its exercises and meals. found is
// false when the day was never saved; the returned day is then empty.
func (s *Store) GetGymDay(ctx context.Context, userID, date string) (day *domain.GymDay, found bool, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + gymDayColumns + ` FROM gym_days WHERE user_id = ? AND date = ?`
	day, err = ScanGymDay(s.db.QueryRowContext(ctx, query, userID, date))
	if err == sql.ErrNoRows {
		return domain.NewGymDay(userID, date), false, nil
	}
	if err != nil {
		return nil, false, HandleDatabaseError("get gym day", err)
	}
	if err := s.attachGymEntries(ctx, userID, date, date, []*domain.GymDay{day}); err != nil {
		return nil, false, err
	}
	return day, true, nil
}

// SaveGymDay upserts the counters of one day and fills in d.ID
func (s *Store) SaveGymDay(ctx context.Context, d *domain.GymDay) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if d.ID == "" {
		d.ID = s.newID()
	}

	var weight interface{}
	if d.Weight != nil {
		weight = *d.Weight
	}

	return s.inTx(ctx, "save gym day", func(tx *sql.Tx) error {
		query := `
		INSERT INTO gym_days (id, user_id, date, weight, water_glasses, pushups, pullups, squads, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			weight = excluded.weight,
			water_glasses = excluded.water_glasses,
			pushups = excluded.pushups,
			pullups = excluded.pullups,
			squads = excluded.squads,
			notes = excluded.notes,
			updated_at = excluded.updated_at`

		err := Execute(ctx, tx, "save gym day", query, d.ID, d.UserID, d.Date, weight, d.WaterGlasses,
			d.Pushups, d.Pullups, d.Squads, d.Notes, FormatTimeForDB(s.timestamp()))
		if err != nil {
			return err
		}

		// a concurrent first save may have won the insert
		err = tx.QueryRowContext(ctx, `SELECT id FROM gym_days WHERE user_id = ? AND date = ?`, d.UserID, d.Date).Scan(&d.ID)
		if err != nil {
			return HandleDatabaseError("get gym day id", err)
		}
		return nil
	})
}

// ListGymDays returns the saved days between from and to inclusive, oldest
// first, with their exercises and meals
func (s *Store) ListGymDays(ctx context.Context, userID, from, to string) ([]*domain.GymDay, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + gymDayColumns + `
	FROM gym_days
	WHERE user_id = ? AND date >= ? AND date <= ?
	ORDER BY date ASC`

	days, err := QueryMultiple(ctx, s.db, query, ScanGymDay, "gym days", userID, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.attachGymEntries(ctx, userID, from, to, days); err != nil {
		return nil, err
	}
	return days, nil
}

func (s *Store) attachGymEntries(ctx context.Context, userID, from, to string, days []*domain.GymDay) error {
	if len(days) == 0 {
		return nil
	}

	byDay := make(map[string]*domain.GymDay, len(days))
	for _, d := range days {
		byDay[d.ID] = d
	}

	exercises, err := QueryMultiple(ctx, s.db, `
	SELECT `+gymExerciseColumns+`
	FROM gym_exercises e
	JOIN gym_days d ON d.id = e.day_id
	WHERE d.user_id = ? AND d.date >= ? AND d.date <= ?
	ORDER BY e.created_at ASC, e.id ASC`, ScanGymExercise, "gym exercises", userID, from, to)
	if err != nil {
		return err
	}
	for _, e := range exercises {
		if d, ok := byDay[e.DayID]; ok {
			d.Exercises = append(d.Exercises, *e)
		}
	}

	meals, err := QueryMultiple(ctx, s.db, `
	SELECT `+gymMealColumns+`
	FROM gym_meals m
	JOIN gym_days d ON d.id = m.day_id
	WHERE d.user_id = ? AND d.date >= ? AND d.date <= ?
	ORDER BY m.created_at ASC, m.id ASC`, ScanGymMeal, "gym meals", userID, from, to)
	if err != nil {
		return err
	}
	for _, m := range meals {
		if d, ok := byDay[m.DayID]; ok {
			d.Meals = append(d.Meals, *m)
		}
	}
	return nil
}

// AddGymExercise inserts an exercise under e.DayID
func (s *Store) AddGymExercise(ctx context.Context, e *domain.GymExercise) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if e.ID == "" {
		e.ID = s.newID()
	}

	query := `
	INSERT INTO gym_exercises (id, day_id, name, muscle_group, sets, reps, weight, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	return Execute(ctx, s.db, "add gym exercise", query, e.ID, e.DayID, e.Name, e.MuscleGroup,
		e.Sets, e.Reps, e.Weight, FormatTimeForDB(s.timestamp()))
}

// DeleteGymExercise deletes an exercise logged on one of userID's days
func (s *Store) DeleteGymExercise(ctx context.Context, userID, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM gym_exercises WHERE id = ? AND day_id IN (SELECT id FROM gym_days WHERE user_id = ?)`
	return ExecuteWithRowsAffected(ctx, s.db, query, "Exercise", id, id, userID)
}

// AddGymMeal inserts a meal under m.DayID
func (s *Store) AddGymMeal(ctx context.Context, m *domain.GymMeal) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if m.ID == "" {
		m.ID = s.newID()
	}

	query := `
	INSERT INTO gym_meals (id, day_id, name, meal_type, calories, protein, carbs, fat, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return Execute(ctx, s.db, "add gym meal", query, m.ID, m.DayID, m.Name, m.MealType,
		m.Calories, m.Protein, m.Carbs, m.Fat, FormatTimeForDB(s.timestamp()))
}

// DeleteGymMeal deletes a meal logged on one of userID's days
func (s *Store) DeleteGymMeal(ctx context.Context, userID, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM gym_meals WHERE id = ? AND day_id IN (SELECT id FROM gym_days WHERE user_id = ?)`
	return ExecuteWithRowsAffected(ctx, s.db, query, "Meal", id, id, userID)
}

// GetGymGoal returns the saved targets of a user. found is false when none
// were saved; the defaults are returned then.
func (s *Store) GetGymGoal(ctx context.Context, userID string) (goal domain.GymGoal, found bool, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT target_water, target_protein, target_calories, target_pushups, target_pullups, target_squads,
		target_workouts_per_week
	FROM gym_goals WHERE user_id = ?`

	err = s.db.QueryRowContext(ctx, query, userID).Scan(&goal.TargetWater, &goal.TargetProtein,
		&goal.TargetCalories, &goal.TargetPushups, &goal.TargetPullups, &goal.TargetSquads,
		&goal.TargetWorkoutsPerWeek)
	if err == sql.ErrNoRows {
		return domain.DefaultGymGoal(), false, nil
	}
	if err != nil {
		return domain.GymGoal{}, false, HandleDatabaseError("get gym goal", err)
	}
	return goal, true, nil
}

// SaveGymGoal upserts a user's targets
func (s *Store) SaveGymGoal(ctx context.Context, userID string, g domain.GymGoal) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO gym_goals (user_id, target_water, target_protein, target_calories, target_pushups,
		target_pullups, target_squads, target_workouts_per_week, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		target_water = excluded.target_water,
		target_protein = excluded.target_protein,
		target_calories = excluded.target_calories,
		target_pushups = excluded.target_pushups,
		target_pullups = excluded.target_pullups,
		target_squads = excluded.target_squads,
		target_workouts_per_week = excluded.target_workouts_per_week,
		updated_at = excluded.updated_at`

	return Execute(ctx, s.db, "save gym goal", query, userID, g.TargetWater, g.TargetProtein, g.TargetCalories,
		g.TargetPushups, g.TargetPullups, g.TargetSquads, g.TargetWorkoutsPerWeek, FormatTimeForDB(s.timestamp()))
}
