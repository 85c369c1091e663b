package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"pomofocus/internal/config"
	"pomofocus/internal/validation"
)

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Users      UserService
	Admin      AdminService
	Settings   SettingsService
	Tasks      TaskService
	Sessions   SessionService
	Projects   ProjectService
	Interviews InterviewService
	Goals      GoalService
	Routines   RoutineService
	Gym        GymService
	Calendar   CalendarService
	Dashboard  DashboardService
}

// Options carries the collaborators shared by every service
type Options struct {
	Config *config.Config
	Logger *log.Logger
	Cache  SummaryCache
	Clock  Clock
}

// deps is embedded by every service implementation
type deps struct {
	cfg       *config.Config
	logger    *log.Logger
	clock     Clock
	validator *validation.Validator
	cache     SummaryCache
}

func newDeps(opts Options) deps {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	return deps{
		cfg:       cfg,
		logger:    logger,
		clock:     opts.Clock,
		validator: validation.NewValidatorWithConfig(&cfg.Validation),
		cache:     opts.Cache,
	}
}

// invalidate drops the user's cached dashboard. Failures are logged only:
// entries expire with their TTL anyway.
func (d deps) invalidate(ctx context.Context, userID string) {
	if d.cache == nil {
		return
	}
	if err := d.cache.InvalidateUser(ctx, userID); err != nil {
		d.logger.WithError(err).WithField("user_id", userID).Warn("failed to invalidate dashboard cache")
	}
}

// NewServiceContainer wires every service onto one store
func NewServiceContainer(store Store, opts Options) *ServiceContainer {
	d := newDeps(opts)
	sessions := newSessionService(store, store, d)
	return &ServiceContainer{
		Users:      newUserService(store, d),
		Admin:      newAdminService(store, d),
		Settings:   newSettingsService(store, d),
		Tasks:      newTaskService(store, d),
		Sessions:   sessions,
		Projects:   newProjectService(store, store, d),
		Interviews: newInterviewService(store, d),
		Goals:      newGoalService(store, store, d),
		Routines:   newRoutineService(store, d),
		Gym:        newGymService(store, d),
		Calendar:   newCalendarService(store, store, d),
		Dashboard:  newDashboardService(store, d),
	}
}
