package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"pomofocus/internal/domain"
)

const (
	pendingPreviewLimit   = 5
	goalStreakLimit       = 3
	recentGoalLimit       = 4
	upcomingInterviewDays = 7
	upcomingInterviewMax  = 5
	recentProjectLimit    = 4
	defaultWidgetColor    = "slate"
)

// DashboardRepository is the read side the summary is built from
type DashboardRepository interface {
	TaskRepository
	SessionRepository
	RoutineRepository
	GoalRepository
	ApplicationRepository
	ProjectRepository
	SettingsRepository
	GymRepository
}

// TaskStats counts open and finished to-dos
type TaskStats struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// TaskPreview is a to-do shown on the dashboard
type TaskPreview struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Priority    domain.Priority `json:"priority"`
	IsCompleted bool            `json:"is_completed"`
}

// TaskSummary is the tasks widget
type TaskSummary struct {
	Stats          TaskStats     `json:"stats"`
	PendingPreview []TaskPreview `json:"pending_preview"`
}

// GoalStreak is a goal with a running daily streak
type GoalStreak struct {
	Title  string `json:"title"`
	Streak int    `json:"streak"`
	Color  string `json:"color"`
}

// GoalPreview is an open goal shown on the dashboard
type GoalPreview struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Status     domain.GoalStatus `json:"status"`
	Priority   domain.Priority   `json:"priority"`
	Color      string            `json:"color"`
	Category   string            `json:"category"`
	Deadline   string            `json:"deadline"`
	StepsTotal int               `json:"steps_total"`
	StepsDone  int               `json:"steps_done"`
}

// GoalSummary is the goals widget
type GoalSummary struct {
	Total        int           `json:"total"`
	Active       int           `json:"active"`
	Done         int           `json:"done"`
	Streaks      []GoalStreak  `json:"streaks"`
	RecentActive []GoalPreview `json:"recent_active"`
}

// UpcomingInterview is an interview within the next week
type UpcomingInterview struct {
	ID       string `json:"id"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Stage    string `json:"stage"`
	DaysLeft int    `json:"days_left"`
}

// InterviewSummary is the interviews widget
type InterviewSummary struct {
	Total              int                 `json:"total"`
	Pipeline           map[string]int      `json:"pipeline"`
	Offers             int                 `json:"offers"`
	UpcomingInterviews []UpcomingInterview `json:"upcoming_interviews"`
}

// ProjectPreview is an active project shown on the dashboard
type ProjectPreview struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Status     domain.ProjectStatus `json:"status"`
	Color      *string              `json:"color"`
	Priority   domain.Priority      `json:"priority"`
	TotalTasks int                  `json:"total_tasks"`
	DoneTasks  int                  `json:"done_tasks"`
}

// ProjectSummary is the projects widget
type ProjectSummary struct {
	Total  int              `json:"total"`
	Active int              `json:"active"`
	Recent []ProjectPreview `json:"recent"`
}

// GymSummary is the gym widget for the day
type GymSummary struct {
	WaterGlasses int `json:"water_glasses"`
	Pushups      int `json:"pushups"`
	Pullups      int `json:"pullups"`
}

// DashboardSummary aggregates every widget of the dashboard for one day
type DashboardSummary struct {
	Date           string                `json:"date"`
	Tasks          TaskSummary           `json:"tasks"`
	TodayPomodoros int                   `json:"today_pomodoros"`
	WeeklySessions []domain.DailyCount   `json:"weekly_sessions"`
	Routine        []domain.RoutineEntry `json:"routine"`
	Goals          GoalSummary           `json:"goals"`
	Interviews     InterviewSummary      `json:"interviews"`
	Projects       ProjectSummary        `json:"projects"`
	Gym            GymSummary            `json:"gym"`
	Layout         []string              `json:"layout"`
}

func emptySummary(date string) *DashboardSummary {
	return &DashboardSummary{
		Date:           date,
		Tasks:          TaskSummary{PendingPreview: []TaskPreview{}},
		WeeklySessions: []domain.DailyCount{},
		Routine:        []domain.RoutineEntry{},
		Goals:          GoalSummary{Streaks: []GoalStreak{}, RecentActive: []GoalPreview{}},
		Interviews:     InterviewSummary{Pipeline: map[string]int{}, UpcomingInterviews: []UpcomingInterview{}},
		Projects:       ProjectSummary{Recent: []ProjectPreview{}},
		Layout:         []string{},
	}
}

// dashboardServiceImpl implements the DashboardService interface
type dashboardServiceImpl struct {
	deps
	repo     DashboardRepository
	sessions *sessionServiceImpl
	settings *settingsServiceImpl
	sf       singleflight.Group
}

// NewDashboardService creates a new DashboardService instance. When
// opts.Cache is nil summaries are rebuilt on every call.
func NewDashboardService(repo DashboardRepository, opts Options) DashboardService {
	return newDashboardService(repo, newDeps(opts))
}

func newDashboardService(repo DashboardRepository, d deps) *dashboardServiceImpl {
	return &dashboardServiceImpl{
		deps:     d,
		repo:     repo,
		sessions: newSessionService(repo, repo, d),
		settings: newSettingsService(repo, d),
	}
}

// Summary returns the dashboard for date (YYYY-MM-DD, default today UTC).
// Concurrent requests for the same user and day share one build.
func (s *dashboardServiceImpl) Summary(ctx context.Context, userID, date string) (*DashboardSummary, error) {
	day, _, err := ParseDateParam("local_iso_date", date, s.clock.Now())
	if err != nil {
		return nil, err
	}

	v, err, _ := s.sf.Do(userID+":"+day, func() (interface{}, error) {
		if cached := s.cached(ctx, userID, day); cached != nil {
			return cached, nil
		}
		summary, complete := s.build(ctx, userID, day)
		if complete {
			s.store(ctx, userID, day, summary)
		}
		return summary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DashboardSummary), nil
}

func (s *dashboardServiceImpl) cached(ctx context.Context, userID, day string) *DashboardSummary {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.GetSummary(ctx, userID, day)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("dashboard cache read failed")
		return nil
	}
	if data == nil {
		return nil
	}
	var summary DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("discarding undecodable dashboard cache entry")
		return nil
	}
	return &summary
}

func (s *dashboardServiceImpl) store(ctx context.Context, userID, day string, summary *DashboardSummary) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode dashboard summary")
		return
	}
	if err := s.cache.SetSummary(ctx, userID, day, data); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("dashboard cache write failed")
	}
}

// build gathers every widget concurrently. A failing widget keeps its zero
// value and is logged; the summary as a whole never fails. complete is false
// when any widget failed, so the partial summary is not cached.
func (s *dashboardServiceImpl) build(ctx context.Context, userID, day string) (summary *DashboardSummary, complete bool) {
	summary = emptySummary(day)
	now := s.clock.Now()
	logger := s.logger.WithFields(log.Fields{"user_id": userID, "date": day})

	var degraded atomic.Bool
	section := func(name string, fn func(context.Context) error) func() error {
		return func() error {
			if err := fn(ctx); err != nil {
				degraded.Store(true)
				logger.WithError(err).WithField("section", name).Warn("dashboard section unavailable")
			}
			return nil
		}
	}

	var eg errgroup.Group
	eg.Go(section("tasks", func(ctx context.Context) error {
		tasks, err := s.repo.ListTasks(ctx, userID)
		if err != nil {
			return err
		}
		summary.Tasks = summarizeTasks(tasks)
		return nil
	}))
	eg.Go(section("today_pomodoros", func(ctx context.Context) error {
		n, err := s.sessions.TodayPomodoros(ctx, userID)
		if err != nil {
			return err
		}
		summary.TodayPomodoros = n
		return nil
	}))
	eg.Go(section("weekly_sessions", func(ctx context.Context) error {
		counts, err := s.sessions.WeeklySessions(ctx, userID)
		if err != nil {
			return err
		}
		summary.WeeklySessions = counts
		return nil
	}))
	eg.Go(section("routine", func(ctx context.Context) error {
		routine, _, err := s.repo.GetRoutine(ctx, userID, day)
		if err != nil {
			return err
		}
		summary.Routine = routine.Entries
		return nil
	}))
	eg.Go(section("goals", func(ctx context.Context) error {
		goals, err := s.repo.ListGoals(ctx, userID)
		if err != nil {
			return err
		}
		summary.Goals = summarizeGoals(goals)
		return nil
	}))
	eg.Go(section("interviews", func(ctx context.Context) error {
		apps, err := s.repo.ListApplications(ctx, userID)
		if err != nil {
			return err
		}
		summary.Interviews = summarizeInterviews(apps, now)
		return nil
	}))
	eg.Go(section("projects", func(ctx context.Context) error {
		projects, err := s.repo.ListProjects(ctx, userID)
		if err != nil {
			return err
		}
		tasks, err := s.repo.ListProjectTasks(ctx, userID)
		if err != nil {
			return err
		}
		summary.Projects = summarizeProjects(projects, tasks)
		return nil
	}))
	eg.Go(section("layout", func(ctx context.Context) error {
		settings, err := s.settings.GetSettings(ctx, userID)
		if err != nil {
			return err
		}
		summary.Layout = settings.DashboardLayout
		return nil
	}))
	eg.Go(section("gym", func(ctx context.Context) error {
		gymDay, _, err := s.repo.GetGymDay(ctx, userID, day)
		if err != nil {
			return err
		}
		summary.Gym = GymSummary{WaterGlasses: gymDay.WaterGlasses, Pushups: gymDay.Pushups, Pullups: gymDay.Pullups}
		return nil
	}))
	_ = eg.Wait()

	return summary, !degraded.Load()
}

func summarizeTasks(tasks []*domain.Task) TaskSummary {
	out := TaskSummary{PendingPreview: []TaskPreview{}}
	for _, t := range tasks {
		if t.IsCompleted {
			out.Stats.Completed++
			continue
		}
		out.Stats.Pending++
		if len(out.PendingPreview) < pendingPreviewLimit {
			out.PendingPreview = append(out.PendingPreview, TaskPreview{
				ID: t.ID, Title: t.Title, Priority: t.Priority, IsCompleted: t.IsCompleted,
			})
		}
	}
	return out
}

func colorOrDefault(c string) string {
	if c == "" {
		return defaultWidgetColor
	}
	return c
}

// summarizeGoals ignores archived goals. Recent goals are the open ones,
// pinned first, in list order otherwise.
func summarizeGoals(goals []*domain.Goal) GoalSummary {
	out := GoalSummary{Streaks: []GoalStreak{}, RecentActive: []GoalPreview{}}

	var active, streaking []*domain.Goal
	for _, g := range goals {
		if g.IsArchived {
			continue
		}
		out.Total++
		if g.Status == domain.GoalDone {
			out.Done++
		} else {
			active = append(active, g)
		}
		if g.StreakCount > 0 {
			streaking = append(streaking, g)
		}
	}
	out.Active = len(active)

	sort.SliceStable(streaking, func(i, j int) bool { return streaking[i].StreakCount > streaking[j].StreakCount })
	for i, g := range streaking {
		if i == goalStreakLimit {
			break
		}
		out.Streaks = append(out.Streaks, GoalStreak{Title: g.Title, Streak: g.StreakCount, Color: colorOrDefault(g.Color)})
	}

	sort.SliceStable(active, func(i, j int) bool { return active[i].IsPinned && !active[j].IsPinned })
	for i, g := range active {
		if i == recentGoalLimit {
			break
		}
		total, done := g.StepCounts()
		out.RecentActive = append(out.RecentActive, GoalPreview{
			ID: g.ID, Title: g.Title, Status: g.Status, Priority: g.Priority,
			Color: colorOrDefault(g.Color), Category: g.Category, Deadline: g.Deadline,
			StepsTotal: total, StepsDone: done,
		})
	}
	return out
}

// summarizeInterviews counts applications per stage and lists interviews
// falling within the next week, soonest first
func summarizeInterviews(apps []*domain.Application, now time.Time) InterviewSummary {
	out := InterviewSummary{Total: len(apps), Pipeline: map[string]int{}, UpcomingInterviews: []UpcomingInterview{}}
	horizon := now.Add(upcomingInterviewDays * 24 * time.Hour)

	type upcoming struct {
		at   time.Time
		item UpcomingInterview
	}
	var soon []upcoming
	for _, a := range apps {
		out.Pipeline[a.Stage]++
		if a.InterviewDate == nil {
			continue
		}
		at := *a.InterviewDate
		if at.Before(now) || at.After(horizon) {
			continue
		}
		soon = append(soon, upcoming{at: at, item: UpcomingInterview{
			ID: a.ID, Company: a.CompanyName, Role: a.Role, Stage: a.Stage,
			DaysLeft: int(at.Sub(now).Hours() / 24),
		}})
	}
	out.Offers = out.Pipeline[domain.StageOffer]

	sort.SliceStable(soon, func(i, j int) bool { return soon[i].at.Before(soon[j].at) })
	for i, u := range soon {
		if i == upcomingInterviewMax {
			break
		}
		out.UpcomingInterviews = append(out.UpcomingInterviews, u.item)
	}
	return out
}

// summarizeProjects ignores archived projects. Recent projects are the
// active ones, most recently updated first.
func summarizeProjects(projects []*domain.Project, tasks []*domain.ProjectTask) ProjectSummary {
	out := ProjectSummary{Recent: []ProjectPreview{}}

	totals := make(map[string]int)
	done := make(map[string]int)
	for _, t := range tasks {
		totals[t.ProjectID]++
		if t.IsCompleted {
			done[t.ProjectID]++
		}
	}

	var active []*domain.Project
	for _, p := range projects {
		if p.Archived {
			continue
		}
		out.Total++
		if p.Status.IsActive() {
			active = append(active, p)
		}
	}
	out.Active = len(active)

	sort.SliceStable(active, func(i, j int) bool { return active[i].UpdatedAt.After(active[j].UpdatedAt) })
	for i, p := range active {
		if i == recentProjectLimit {
			break
		}
		out.Recent = append(out.Recent, ProjectPreview{
			ID: p.ID, Name: p.Name, Status: p.Status, Color: p.Color, Priority: p.Priority,
			TotalTasks: totals[p.ID], DoneTasks: done[p.ID],
		})
	}
	return out
}
