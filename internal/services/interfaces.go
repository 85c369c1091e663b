package services

import (
	"context"
	"time"

	"pomofocus/internal/domain"
)

// UserRepository persists accounts
type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id string) error
}

// SettingsRepository persists per-user preferences
type SettingsRepository interface {
	GetSettings(ctx context.Context, userID string) (domain.Settings, bool, error)
	SaveSettings(ctx context.Context, userID string, settings domain.Settings) error
	DeleteSettings(ctx context.Context, userID string) error
}

// TaskRepository persists the to-do list
type TaskRepository interface {
	CreateTask(ctx context.Context, t *domain.Task) error
	GetTask(ctx context.Context, userID, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, userID string) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, t *domain.Task) error
	DeleteTask(ctx context.Context, userID, id string) error
}

// SessionRepository persists completed timer intervals
type SessionRepository interface {
	CreateSession(ctx context.Context, s *domain.Session) error
	CountSessionsSince(ctx context.Context, userID string, kind domain.SessionType, since time.Time) (int, error)
	ListSessionTimes(ctx context.Context, userID string, kind domain.SessionType, since time.Time) ([]time.Time, error)
	FocusTotals(ctx context.Context, userID string) (map[string]int, map[string]int, error)
}

// ProjectRepository persists kanban projects, their tasks and history
type ProjectRepository interface {
	NextProjectPosition(ctx context.Context, userID string, status domain.ProjectStatus) (int, error)
	CreateProject(ctx context.Context, p *domain.Project) error
	GetProject(ctx context.Context, userID, id string) (*domain.Project, error)
	ListProjects(ctx context.Context, userID string) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, p *domain.Project) error
	DeleteProject(ctx context.Context, userID, id string) error
	ReorderProjects(ctx context.Context, userID string, status domain.ProjectStatus, orderedIDs []string) (int, error)

	CreateProjectTask(ctx context.Context, t *domain.ProjectTask) error
	GetProjectTask(ctx context.Context, userID, taskID string) (*domain.ProjectTask, error)
	ListProjectTasks(ctx context.Context, userID string) ([]*domain.ProjectTask, error)
	UpdateProjectTask(ctx context.Context, t *domain.ProjectTask) error
	DeleteProjectTask(ctx context.Context, userID, taskID string) error

	AddProjectActivity(ctx context.Context, a *domain.ProjectActivity) error
	ListProjectActivity(ctx context.Context, userID, projectID string, limit int) ([]*domain.ProjectActivity, error)
}

// ApplicationRepository persists the interview pipeline
type ApplicationRepository interface {
	CreateApplication(ctx context.Context, a *domain.Application) error
	GetApplication(ctx context.Context, userID, id string) (*domain.Application, error)
	ListApplications(ctx context.Context, userID string) ([]*domain.Application, error)
	ListInterviewsBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.Application, error)
	UpdateApplication(ctx context.Context, a *domain.Application) error
	DeleteApplication(ctx context.Context, userID, id string) error
}

// GoalRepository persists goals and their steps
type GoalRepository interface {
	CreateGoal(ctx context.Context, g *domain.Goal) error
	GetGoal(ctx context.Context, userID, id string) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]*domain.Goal, error)
	ListGoalDeadlines(ctx context.Context, userID, from, to string) ([]*domain.Goal, error)
	UpdateGoal(ctx context.Context, g *domain.Goal, replaceSteps bool) error
	DeleteGoal(ctx context.Context, userID, id string) error
	ReorderGoals(ctx context.Context, userID string, orderedIDs []string) (int, error)

	AddGoalStep(ctx context.Context, step *domain.GoalStep) error
	GetGoalStep(ctx context.Context, userID, goalID, stepID string) (*domain.GoalStep, error)
	SaveStepProgress(ctx context.Context, step *domain.GoalStep, g *domain.Goal) error
	DeleteGoalStep(ctx context.Context, userID, goalID, stepID string) error
}

// RoutineRepository persists daily routines and templates
type RoutineRepository interface {
	GetRoutine(ctx context.Context, userID, date string) (*domain.Routine, bool, error)
	SaveRoutine(ctx context.Context, r *domain.Routine) error
	ListRoutines(ctx context.Context, userID string) ([]*domain.Routine, error)
	CreateRoutineTemplate(ctx context.Context, t *domain.RoutineTemplate) error
	ListRoutineTemplates(ctx context.Context, userID string) ([]*domain.RoutineTemplate, error)
	DeleteRoutineTemplate(ctx context.Context, userID, id string) error
}

// GymRepository persists gym days, their exercises and meals, and targets
type GymRepository interface {
	GetGymDay(ctx context.Context, userID, date string) (*domain.GymDay, bool, error)
	SaveGymDay(ctx context.Context, d *domain.GymDay) error
	ListGymDays(ctx context.Context, userID, from, to string) ([]*domain.GymDay, error)
	AddGymExercise(ctx context.Context, e *domain.GymExercise) error
	DeleteGymExercise(ctx context.Context, userID, id string) error
	AddGymMeal(ctx context.Context, m *domain.GymMeal) error
	DeleteGymMeal(ctx context.Context, userID, id string) error
	GetGymGoal(ctx context.Context, userID string) (domain.GymGoal, bool, error)
	SaveGymGoal(ctx context.Context, userID string, g domain.GymGoal) error
}

// Store is every repository at once. *sqlite.Store implements it.
type Store interface {
	UserRepository
	SettingsRepository
	TaskRepository
	SessionRepository
	ProjectRepository
	ApplicationRepository
	GoalRepository
	RoutineRepository
	GymRepository
	Ping(ctx context.Context) error
}

// CacheInvalidator drops cached read models of a user after a write
type CacheInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

// SummaryCache stores encoded dashboard summaries per user and day. Get
// returns nil bytes on a miss.
type SummaryCache interface {
	CacheInvalidator
	GetSummary(ctx context.Context, userID, date string) ([]byte, error)
	SetSummary(ctx context.Context, userID, date string, data []byte) error
}

// NewAccountInput is an account created by an administrator
type NewAccountInput struct {
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	Role             *string `json:"role"`
	SubscriptionPlan *string `json:"subscription_plan"`
}

// AccountPatch carries the admin-editable fields of an account
type AccountPatch struct {
	Role             *string `json:"role"`
	SubscriptionPlan *string `json:"subscription_plan"`
	IsActive         *bool   `json:"is_active"`
}

// SessionInput is a completed interval reported by a client or the timer
type SessionInput struct {
	DurationSeconds int     `json:"duration_seconds"`
	Type            string  `json:"type"`
	ProjectID       *string `json:"project_id"`
	ProjectTaskID   *string `json:"project_task_id"`
}

// ProjectInput creates a project
type ProjectInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Notes       string  `json:"notes"`
	Color       *string `json:"color"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// ProjectPatch is a partial project update. Nil means unchanged.
type ProjectPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	Color       *string `json:"color"`
	Category    *string `json:"category"`
	Archived    *bool   `json:"archived"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// ProjectTaskInput creates a checklist item
type ProjectTaskInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// ProjectTaskPatch is a partial checklist item update
type ProjectTaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	IsCompleted *bool   `json:"is_completed"`
}

// ApplicationInput creates or partially updates a job application
type ApplicationInput struct {
	CompanyName       *string          `json:"company_name"`
	Role              *string          `json:"role"`
	CompanyPhone      *string          `json:"company_phone"`
	CompanyEmail      *string          `json:"company_email"`
	ExpectedCTC       *string          `json:"expected_ctc"`
	CurrentCTC        *string          `json:"current_ctc"`
	Stage             *string          `json:"stage"`
	AppliedDate       *string          `json:"applied_date"`
	InterviewDate     *string          `json:"interview_date"`
	LocationType      *string          `json:"location_type"`
	Referral          *string          `json:"referral"`
	JobDescription    *string          `json:"job_description"`
	JobPortalURL      *string          `json:"job_portal_url"`
	JobPortalUsername *string          `json:"job_portal_username"`
	JobPortalPassword *string          `json:"job_portal_password"`
	ApplicationSource *string          `json:"application_source"`
	ResumeVersion     *string          `json:"resume_version"`
	Interviewers      *domain.JSONList `json:"interviewers"`
	Notes             *string          `json:"notes"`
	Questions         *domain.JSONList `json:"questions"`
}

// StepInput is one step submitted with a goal
type StepInput struct {
	Text        string `json:"text"`
	Done        bool   `json:"done"`
	IsMilestone bool   `json:"is_milestone"`
	Deadline    string `json:"deadline"`
}

// StepPatch is a partial step update
type StepPatch struct {
	Text        *string `json:"text"`
	Done        *bool   `json:"done"`
	IsMilestone *bool   `json:"is_milestone"`
	Deadline    *string `json:"deadline"`
}

// GoalInput creates a goal
type GoalInput struct {
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Deadline    string      `json:"deadline"`
	Priority    string      `json:"priority"`
	Status      string      `json:"status"`
	Category    string      `json:"category"`
	Color       string      `json:"color"`
	IsArchived  bool        `json:"is_archived"`
	IsPinned    bool        `json:"is_pinned"`
	Notes       string      `json:"notes"`
	Order       int         `json:"order"`
	Recurrence  string      `json:"recurrence"`
	ProjectID   *string     `json:"project_id"`
	Steps       []StepInput `json:"steps"`
}

// GoalPatch is a partial goal update. Steps, when present, replace all steps.
type GoalPatch struct {
	Type        *string      `json:"type"`
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Deadline    *string      `json:"deadline"`
	Priority    *string      `json:"priority"`
	Status      *string      `json:"status"`
	Category    *string      `json:"category"`
	Color       *string      `json:"color"`
	IsArchived  *bool        `json:"is_archived"`
	IsPinned    *bool        `json:"is_pinned"`
	Notes       *string      `json:"notes"`
	Order       *int         `json:"order"`
	Recurrence  *string      `json:"recurrence"`
	ProjectID   *string      `json:"project_id"`
	Steps       *[]StepInput `json:"steps"`
}

// GroupedGoals splits goals by horizon
type GroupedGoals struct {
	Short []*domain.Goal `json:"short"`
	Long  []*domain.Goal `json:"long"`
}

// UserService handles registration, login and profile changes
type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, dailyGoal *int) (*domain.User, error)
	ChangePassword(ctx context.Context, id, current, next string) error
	BootstrapAdmin(ctx context.Context, email, password string) (*domain.User, bool, error)
}

// AdminService manages accounts on behalf of administrators
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateUser(ctx context.Context, actor *domain.User, input NewAccountInput) (*domain.User, error)
	UpdateUser(ctx context.Context, actor *domain.User, id string, patch AccountPatch) (*domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.User, id string) error
}

// SettingsService reads and writes timer preferences and the dashboard layout
type SettingsService interface {
	GetSettings(ctx context.Context, userID string) (domain.Settings, error)
	UpdateSettings(ctx context.Context, userID string, patch domain.SettingsPatch) (domain.Settings, error)
	ResetSettings(ctx context.Context, userID string) (domain.Settings, error)
}

// TaskService manages the personal to-do list
type TaskService interface {
	ListTasks(ctx context.Context, userID string) ([]*domain.Task, error)
	CreateTask(ctx context.Context, userID, title, priority string) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, id string) error
}

// SessionService records completed intervals and reports focus statistics
type SessionService interface {
	RecordSession(ctx context.Context, userID string, input SessionInput) (*domain.Session, error)
	ResolveFocus(ctx context.Context, userID string, projectID, projectTaskID *string) (*string, *string, error)
	TodayPomodoros(ctx context.Context, userID string) (int, error)
	WeeklySessions(ctx context.Context, userID string) ([]domain.DailyCount, error)
}

// ProjectService manages the kanban board
type ProjectService interface {
	ListProjects(ctx context.Context, userID string) ([]*domain.Project, error)
	CreateProject(ctx context.Context, userID string, input ProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, userID, id string, patch ProjectPatch) (*domain.Project, error)
	ReorderProjects(ctx context.Context, userID, status string, orderedIDs []string) (int, error)
	DeleteProject(ctx context.Context, userID, id string) error
	ListActivity(ctx context.Context, userID, projectID string) ([]*domain.ProjectActivity, error)

	AddTask(ctx context.Context, userID, projectID string, input ProjectTaskInput) (*domain.ProjectTask, error)
	UpdateTask(ctx context.Context, userID, taskID string, patch ProjectTaskPatch) (*domain.ProjectTask, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

// InterviewService manages job applications
type InterviewService interface {
	ListApplications(ctx context.Context, userID string) ([]*domain.Application, error)
	CreateApplication(ctx context.Context, userID string, input ApplicationInput) (*domain.Application, error)
	UpdateApplication(ctx context.Context, userID, id string, input ApplicationInput) (*domain.Application, error)
	DeleteApplication(ctx context.Context, userID, id string) error
	KPIs(ctx context.Context, userID string) (domain.InterviewKPIs, error)
}

// GoalService manages goals, steps and streaks
type GoalService interface {
	ListGoals(ctx context.Context, userID string) (*GroupedGoals, error)
	CreateGoal(ctx context.Context, userID string, input GoalInput) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, userID, id string, patch GoalPatch) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error
	ReorderGoals(ctx context.Context, userID string, orderedIDs []string) (int, error)
	AddStep(ctx context.Context, userID, goalID string, input StepInput) (*domain.GoalStep, error)
	UpdateStep(ctx context.Context, userID, goalID, stepID string, patch StepPatch) (*domain.GoalStep, error)
	DeleteStep(ctx context.Context, userID, goalID, stepID string) error
	Analytics(ctx context.Context, userID string) (domain.GoalAnalytics, error)
}

// RoutineService manages daily routines and templates
type RoutineService interface {
	GetRoutine(ctx context.Context, userID, date string) (*domain.Routine, error)
	SaveRoutine(ctx context.Context, userID, date string, entries []domain.RoutineEntry) (*domain.Routine, error)
	Calendar(ctx context.Context, userID string) ([]domain.RoutineDay, error)
	Streak(ctx context.Context, userID string) (domain.RoutineStreak, error)
	ListTemplates(ctx context.Context, userID string) ([]*domain.RoutineTemplate, error)
	CreateTemplate(ctx context.Context, userID, name string, entries []domain.RoutineEntry) (*domain.RoutineTemplate, error)
	DeleteTemplate(ctx context.Context, userID, id string) error
}

// GymService is the fitness log: daily counters, exercises, meals, targets
// and charts
type GymService interface {
	GetDay(ctx context.Context, userID, date string) (*domain.GymDay, error)
	SaveDay(ctx context.Context, userID, date string, patch domain.GymDayPatch) (*domain.GymDay, error)
	AddExercise(ctx context.Context, userID, date string, in domain.GymExerciseInput) (*domain.GymExercise, error)
	DeleteExercise(ctx context.Context, userID, id string) error
	AddMeal(ctx context.Context, userID, date string, in domain.GymMealInput) (*domain.GymMeal, error)
	DeleteMeal(ctx context.Context, userID, id string) error
	GetGoal(ctx context.Context, userID string) (domain.GymGoal, error)
	UpdateGoal(ctx context.Context, userID string, patch domain.GymGoalPatch) (domain.GymGoal, error)
	Analytics(ctx context.Context, userID, rangeName string) ([]domain.GymDayStats, error)
	History(ctx context.Context, userID string, month, year int) ([]domain.GymDayStats, error)
}

// CalendarService merges dated items into calendar events
type CalendarService interface {
	Events(ctx context.Context, userID, startDate, endDate string) ([]domain.CalendarEvent, error)
}

// DashboardService builds the dashboard summary
type DashboardService interface {
	Summary(ctx context.Context, userID, date string) (*DashboardSummary, error)
}
