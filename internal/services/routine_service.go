package services

import (
	"context"

	"pomofocus/internal/domain"
	"pomofocus/internal/validation"
)

// routineServiceImpl implements the RoutineService interface
type routineServiceImpl struct {
	deps
	repo RoutineRepository
}

// NewRoutineService creates a new RoutineService instance
func NewRoutineService(repo RoutineRepository, opts Options) RoutineService {
	return newRoutineService(repo, newDeps(opts))
}

func newRoutineService(repo RoutineRepository, d deps) *routineServiceImpl {
	return &routineServiceImpl{deps: d, repo: repo}
}

// GetRoutine returns the routine of a day, empty when none was saved
func (s *routineServiceImpl) GetRoutine(ctx context.Context, userID, date string) (*domain.Routine, error) {
	if err := s.validator.ValidateRoutineDate(date); err != nil {
		return nil, validation.Wrap(err)
	}
	routine, _, err := s.repo.GetRoutine(ctx, userID, date)
	return routine, err
}

// SaveRoutine replaces the entries of a day
func (s *routineServiceImpl) SaveRoutine(ctx context.Context, userID, date string, entries []domain.RoutineEntry) (*domain.Routine, error) {
	if err := s.validator.ValidateRoutineDate(date); err != nil {
		return nil, validation.Wrap(err)
	}
	if entries == nil {
		entries = []domain.RoutineEntry{}
	}

	routine := &domain.Routine{UserID: userID, Date: date, Entries: entries}
	if err := s.repo.SaveRoutine(ctx, routine); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return routine, nil
}

// Calendar lists every saved day with its completion state
func (s *routineServiceImpl) Calendar(ctx context.Context, userID string) ([]domain.RoutineDay, error) {
	routines, err := s.repo.ListRoutines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.RoutineCalendar(routines), nil
}

// Streak counts consecutive fully completed days up to today
func (s *routineServiceImpl) Streak(ctx context.Context, userID string) (domain.RoutineStreak, error) {
	routines, err := s.repo.ListRoutines(ctx, userID)
	if err != nil {
		return domain.RoutineStreak{}, err
	}
	return domain.ComputeRoutineStreak(routines, s.clock.Now()), nil
}

// ListTemplates returns saved templates, newest first
func (s *routineServiceImpl) ListTemplates(ctx context.Context, userID string) ([]*domain.RoutineTemplate, error) {
	return s.repo.ListRoutineTemplates(ctx, userID)
}

// CreateTemplate saves a named set of entries
func (s *routineServiceImpl) CreateTemplate(ctx context.Context, userID, name string, entries []domain.RoutineEntry) (*domain.RoutineTemplate, error) {
	trimmed, err := s.validator.ValidateTemplateName(name)
	if err != nil {
		return nil, validation.Wrap(err)
	}
	if entries == nil {
		entries = []domain.RoutineEntry{}
	}

	template := &domain.RoutineTemplate{UserID: userID, Name: trimmed, Entries: entries}
	if err := s.repo.CreateRoutineTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// DeleteTemplate removes a template
func (s *routineServiceImpl) DeleteTemplate(ctx context.Context, userID, id string) error {
	return s.repo.DeleteRoutineTemplate(ctx, userID, id)
}
