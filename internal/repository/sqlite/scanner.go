package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"pomofocus/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanAll applies scanFunc to every row
func ScanAll[T any](rows Rows, scanFunc func(Scanner) (*T, error)) ([]*T, error) {
	results := []*T{}
	for rows.Next() {
		item, err := scanFunc(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

const userColumns = `id, email, password_hash, daily_goal, role, subscription_plan, is_active, created_at`

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*domain.User, error) {
	u := &domain.User{}
	var role, plan, createdAt string
	err := scanner.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DailyGoal, &role, &plan, &u.IsActive, &createdAt)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.SubscriptionPlan = domain.Plan(plan)
	if u.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("user %s created_at: %w", u.ID, err)
	}
	return u, nil
}

const taskColumns = `id, user_id, title, priority, is_completed, created_at`

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*domain.Task, error) {
	t := &domain.Task{}
	var priority, createdAt string
	err := scanner.Scan(&t.ID, &t.UserID, &t.Title, &priority, &t.IsCompleted, &createdAt)
	if err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	if t.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("task %s created_at: %w", t.ID, err)
	}
	return t, nil
}

const sessionColumns = `id, user_id, duration_seconds, type, project_id, project_task_id, completed_at`

// ScanSession scans a single pomodoro session from a database row
func ScanSession(scanner Scanner) (*domain.Session, error) {
	s := &domain.Session{}
	var kind, completedAt string
	var projectID, taskID sql.NullString
	err := scanner.Scan(&s.ID, &s.UserID, &s.DurationSeconds, &kind, &projectID, &taskID, &completedAt)
	if err != nil {
		return nil, err
	}
	s.Type = domain.SessionType(kind)
	s.ProjectID = StringPtr(projectID)
	s.ProjectTaskID = StringPtr(taskID)
	if s.CompletedAt, err = ParseTimeFromDB(completedAt); err != nil {
		return nil, fmt.Errorf("session %s completed_at: %w", s.ID, err)
	}
	return s, nil
}

const projectColumns = `id, user_id, name, description, notes, color, category, archived, status, priority, due_date, position, created_at, updated_at`

// ScanProject scans a single project from a database row. Tasks and time
// totals are filled in by the caller.
func ScanProject(scanner Scanner) (*domain.Project, error) {
	p := &domain.Project{}
	var color, dueDate sql.NullString
	var status, priority, createdAt, updatedAt string
	err := scanner.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Notes, &color, &p.Category,
		&p.Archived, &status, &priority, &dueDate, &p.Position, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.Color = StringPtr(color)
	p.Status = domain.ProjectStatus(status)
	p.Priority = domain.Priority(priority)
	if p.DueDate, err = ParseNullTimeFromDB(dueDate); err != nil {
		return nil, fmt.Errorf("project %s due_date: %w", p.ID, err)
	}
	if p.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("project %s created_at: %w", p.ID, err)
	}
	if p.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("project %s updated_at: %w", p.ID, err)
	}
	p.Tasks = []domain.ProjectTask{}
	return p, nil
}

const projectTaskColumns = `t.id, t.project_id, t.title, t.description, t.priority, t.due_date, t.is_completed, t.created_at`

// ScanProjectTask scans a single project task from a database row
func ScanProjectTask(scanner Scanner) (*domain.ProjectTask, error) {
	t := &domain.ProjectTask{}
	var priority, createdAt string
	var dueDate sql.NullString
	err := scanner.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &priority, &dueDate, &t.IsCompleted, &createdAt)
	if err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	if t.DueDate, err = ParseNullTimeFromDB(dueDate); err != nil {
		return nil, fmt.Errorf("project task %s due_date: %w", t.ID, err)
	}
	if t.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("project task %s created_at: %w", t.ID, err)
	}
	return t, nil
}

const activityColumns = `a.id, a.project_id, a.type, a.message, a.created_at`

// ScanProjectActivity scans a single activity entry from a database row
func ScanProjectActivity(scanner Scanner) (*domain.ProjectActivity, error) {
	a := &domain.ProjectActivity{}
	var kind, createdAt string
	err := scanner.Scan(&a.ID, &a.ProjectID, &kind, &a.Message, &createdAt)
	if err != nil {
		return nil, err
	}
	a.Type = domain.ActivityType(kind)
	if a.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("activity %s created_at: %w", a.ID, err)
	}
	return a, nil
}

const applicationColumns = `id, user_id, company_name, role, company_phone, company_email, expected_ctc, current_ctc,
	stage, applied_date, interview_date, location_type, referral, job_description, job_portal_url,
	job_portal_username, job_portal_password, application_source, resume_version, interviewers, notes,
	questions, created_at, updated_at`

// ScanApplication scans a single job application from a database row
func ScanApplication(scanner Scanner) (*domain.Application, error) {
	a := &domain.Application{}
	var appliedDate, interviewDate sql.NullString
	var interviewers, questions, createdAt, updatedAt string
	err := scanner.Scan(&a.ID, &a.UserID, &a.CompanyName, &a.Role, &a.CompanyPhone, &a.CompanyEmail,
		&a.ExpectedCTC, &a.CurrentCTC, &a.Stage, &appliedDate, &interviewDate, &a.LocationType,
		&a.Referral, &a.JobDescription, &a.JobPortalURL, &a.JobPortalUsername, &a.JobPortalPassword,
		&a.ApplicationSource, &a.ResumeVersion, &interviewers, &a.Notes, &questions, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if a.AppliedDate, err = ParseNullTimeFromDB(appliedDate); err != nil {
		return nil, fmt.Errorf("application %s applied_date: %w", a.ID, err)
	}
	if a.InterviewDate, err = ParseNullTimeFromDB(interviewDate); err != nil {
		return nil, fmt.Errorf("application %s interview_date: %w", a.ID, err)
	}
	if err := json.Unmarshal([]byte(interviewers), &a.Interviewers); err != nil {
		return nil, fmt.Errorf("application %s interviewers: %w", a.ID, err)
	}
	if err := json.Unmarshal([]byte(questions), &a.Questions); err != nil {
		return nil, fmt.Errorf("application %s questions: %w", a.ID, err)
	}
	if a.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("application %s created_at: %w", a.ID, err)
	}
	if a.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("application %s updated_at: %w", a.ID, err)
	}
	return a, nil
}

const goalColumns = `id, user_id, type, title, description, deadline, priority, status, category, color,
	is_archived, is_pinned, notes, sort_order, recurrence, streak_count, last_streak_date, project_id,
	created_at, updated_at`

// ScanGoal scans a single goal from a database row. Steps are loaded separately.
func ScanGoal(scanner Scanner) (*domain.Goal, error) {
	g := &domain.Goal{}
	var kind, priority, status, createdAt, updatedAt string
	var projectID sql.NullString
	err := scanner.Scan(&g.ID, &g.UserID, &kind, &g.Title, &g.Description, &g.Deadline, &priority, &status,
		&g.Category, &g.Color, &g.IsArchived, &g.IsPinned, &g.Notes, &g.Order, &g.Recurrence,
		&g.StreakCount, &g.LastStreakDate, &projectID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	g.Type = domain.GoalType(kind)
	g.Priority = domain.Priority(priority)
	g.Status = domain.GoalStatus(status)
	g.ProjectID = StringPtr(projectID)
	if g.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("goal %s created_at: %w", g.ID, err)
	}
	if g.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("goal %s updated_at: %w", g.ID, err)
	}
	g.Steps = []domain.GoalStep{}
	return g, nil
}

const goalStepColumns = `s.id, s.goal_id, s.text, s.done, s.is_milestone, s.deadline, s.position`

// ScanGoalStep scans a single goal step from a database row
func ScanGoalStep(scanner Scanner) (*domain.GoalStep, error) {
	s := &domain.GoalStep{}
	err := scanner.Scan(&s.ID, &s.GoalID, &s.Text, &s.Done, &s.IsMilestone, &s.Deadline, &s.Position)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ScanRoutine scans a daily routine from a database row
func ScanRoutine(scanner Scanner) (*domain.Routine, error) {
	r := &domain.Routine{}
	var entries string
	if err := scanner.Scan(&r.UserID, &r.Date, &entries); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(entries), &r.Entries); err != nil {
		return nil, fmt.Errorf("routine %s entries: %w", r.Date, err)
	}
	if r.Entries == nil {
		r.Entries = []domain.RoutineEntry{}
	}
	return r, nil
}

// ScanRoutineTemplate scans a routine template from a database row
func ScanRoutineTemplate(scanner Scanner) (*domain.RoutineTemplate, error) {
	t := &domain.RoutineTemplate{}
	var entries, createdAt string
	if err := scanner.Scan(&t.ID, &t.UserID, &t.Name, &entries, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(entries), &t.Entries); err != nil {
		return nil, fmt.Errorf("template %s entries: %w", t.ID, err)
	}
	if t.Entries == nil {
		t.Entries = []domain.RoutineEntry{}
	}
	var err error
	if t.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("template %s created_at: %w", t.ID, err)
	}
	return t, nil
}

const gymDayColumns = `id, user_id, date, weight, water_glasses, pushups, pullups, squads, notes`

// ScanGymDay scans a gym day from a database row. Exercises and meals are
// loaded separately.
func ScanGymDay(scanner Scanner) (*domain.GymDay, error) {
	d := domain.NewGymDay("", "")
	var weight sql.NullFloat64
	err := scanner.Scan(&d.ID, &d.UserID, &d.Date, &weight, &d.WaterGlasses, &d.Pushups, &d.Pullups, &d.Squads, &d.Notes)
	if err != nil {
		return nil, err
	}
	if weight.Valid {
		d.Weight = &weight.Float64
	}
	return d, nil
}

const gymExerciseColumns = `e.id, e.day_id, e.name, e.muscle_group, e.sets, e.reps, e.weight`

// ScanGymExercise scans a logged exercise from a database row
func ScanGymExercise(scanner Scanner) (*domain.GymExercise, error) {
	e := &domain.GymExercise{}
	if err := scanner.Scan(&e.ID, &e.DayID, &e.Name, &e.MuscleGroup, &e.Sets, &e.Reps, &e.Weight); err != nil {
		return nil, err
	}
	return e, nil
}

const gymMealColumns = `m.id, m.day_id, m.name, m.meal_type, m.calories, m.protein, m.carbs, m.fat`

// ScanGymMeal scans a logged meal from a database row
func ScanGymMeal(scanner Scanner) (*domain.GymMeal, error) {
	m := &domain.GymMeal{}
	if err := scanner.Scan(&m.ID, &m.DayID, &m.Name, &m.MealType, &m.Calories, &m.Protein, &m.Carbs, &m.Fat); err != nil {
		return nil, err
	}
	return m, nil
}
