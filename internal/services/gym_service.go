package services

import (
	"context"
	"time"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
	"pomofocus/internal/validation"
)

// gymServiceImpl implements the GymService interface
type gymServiceImpl struct {
	deps
	repo GymRepository
}

// NewGymService creates a new GymService instance
func NewGymService(repo GymRepository, opts Options) GymService {
	return newGymService(repo, newDeps(opts))
}

func newGymService(repo GymRepository, d deps) *gymServiceImpl {
	return &gymServiceImpl{deps: d, repo: repo}
}

// GetDay returns the log of a day, empty when nothing was saved
func (s *gymServiceImpl) GetDay(ctx context.Context, userID, date string) (*domain.GymDay, error) {
	if err := s.validator.ValidateGymDate(date); err != nil {
		return nil, validation.Wrap(err)
	}
	day, _, err := s.repo.GetGymDay(ctx, userID, date)
	return day, err
}

// SaveDay applies the sent counters to the day, creating it when needed
func (s *gymServiceImpl) SaveDay(ctx context.Context, userID, date string, patch domain.GymDayPatch) (*domain.GymDay, error) {
	if err := s.validator.ValidateGymDate(date); err != nil {
		return nil, validation.Wrap(err)
	}
	if err := s.validator.ValidateGymDayPatch(patch); err != nil {
		return nil, validation.Wrap(err)
	}

	day, _, err := s.repo.GetGymDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	day.Apply(patch)
	if err := s.repo.SaveGymDay(ctx, day); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return day, nil
}

// ensureDay returns the stored day of date, saving an empty one first when
// the day is new
func (s *gymServiceImpl) ensureDay(ctx context.Context, userID, date string) (*domain.GymDay, error) {
	if err := s.validator.ValidateGymDate(date); err != nil {
		return nil, validation.Wrap(err)
	}
	day, found, err := s.repo.GetGymDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := s.repo.SaveGymDay(ctx, day); err != nil {
			return nil, err
		}
	}
	return day, nil
}

// AddExercise logs an exercise on a day
func (s *gymServiceImpl) AddExercise(ctx context.Context, userID, date string, in domain.GymExerciseInput) (*domain.GymExercise, error) {
	exercise := in.Exercise()
	if err := s.validator.ValidateGymExercise(exercise); err != nil {
		return nil, validation.Wrap(err)
	}

	day, err := s.ensureDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	exercise.DayID = day.ID
	if err := s.repo.AddGymExercise(ctx, &exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// DeleteExercise removes an exercise from one of the user's days
func (s *gymServiceImpl) DeleteExercise(ctx context.Context, userID, id string) error {
	return s.repo.DeleteGymExercise(ctx, userID, id)
}

// AddMeal logs a meal on a day
func (s *gymServiceImpl) AddMeal(ctx context.Context, userID, date string, in domain.GymMealInput) (*domain.GymMeal, error) {
	meal := in.Meal()
	if err := s.validator.ValidateGymMeal(meal); err != nil {
		return nil, validation.Wrap(err)
	}

	day, err := s.ensureDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	meal.DayID = day.ID
	if err := s.repo.AddGymMeal(ctx, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// DeleteMeal removes a meal from one of the user's days
func (s *gymServiceImpl) DeleteMeal(ctx context.Context, userID, id string) error {
	return s.repo.DeleteGymMeal(ctx, userID, id)
}

// GetGoal returns the saved targets, or the defaults
func (s *gymServiceImpl) GetGoal(ctx context.Context, userID string) (domain.GymGoal, error) {
	goal, _, err := s.repo.GetGymGoal(ctx, userID)
	return goal, err
}

// UpdateGoal merges the sent targets into the current ones
func (s *gymServiceImpl) UpdateGoal(ctx context.Context, userID string, patch domain.GymGoalPatch) (domain.GymGoal, error) {
	current, _, err := s.repo.GetGymGoal(ctx, userID)
	if err != nil {
		return domain.GymGoal{}, err
	}
	goal := current.Merge(patch)
	if err := s.validator.ValidateGymGoal(goal); err != nil {
		return domain.GymGoal{}, validation.Wrap(err)
	}
	if err := s.repo.SaveGymGoal(ctx, userID, goal); err != nil {
		return domain.GymGoal{}, err
	}
	return goal, nil
}

// Analytics returns the saved days of a named range ending today, oldest
// first. "week" reaches back 7 days and "month" 30.
func (s *gymServiceImpl) Analytics(ctx context.Context, userID, rangeName string) ([]domain.GymDayStats, error) {
	days, ok := domain.GymRangeDays(rangeName)
	if !ok {
		return nil, errors.NewInvalidInputError("range", rangeName, "expected week or month")
	}
	today := domain.StartOfDay(s.clock.Now())
	from := domain.FormatDate(today.AddDate(0, 0, -days))
	return s.stats(ctx, userID, from, domain.FormatDate(today))
}

// History returns the saved days of one calendar month, oldest first
func (s *gymServiceImpl) History(ctx context.Context, userID string, month, year int) ([]domain.GymDayStats, error) {
	if month == 0 || year == 0 {
		return nil, errors.NewBadRequestError("Month and year are required")
	}
	if month < 1 || month > 12 {
		return nil, errors.NewInvalidInputError("month", month, "expected 1-12")
	}
	if year < 1 || year > 9999 {
		return nil, errors.NewInvalidInputError("year", year, "expected 1-9999")
	}
	from, to := GetMonthBounds(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
	return s.stats(ctx, userID, from, to)
}

func (s *gymServiceImpl) stats(ctx context.Context, userID, from, to string) ([]domain.GymDayStats, error) {
	days, err := s.repo.ListGymDays(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]domain.GymDayStats, 0, len(days))
	for _, d := range days {
		out = append(out, d.Stats())
	}
	return out, nil
}
