package services

import (
	"context"
	"fmt"
	"sort"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
)

const (
	defaultGoalEventColor = "emerald"
	interviewEventColor   = "indigo"

	invalidDateFormat = "Invalid date format. Use YYYY-MM-DD"
)

// calendarServiceImpl implements the CalendarService interface
type calendarServiceImpl struct {
	deps
	goals        GoalRepository
	applications ApplicationRepository
}

// NewCalendarService creates a new CalendarService instance
func NewCalendarService(goals GoalRepository, applications ApplicationRepository, opts Options) CalendarService {
	return newCalendarService(goals, applications, newDeps(opts))
}

func newCalendarService(goals GoalRepository, applications ApplicationRepository, d deps) *calendarServiceImpl {
	return &calendarServiceImpl{deps: d, goals: goals, applications: applications}
}

// Events returns goal deadlines and scheduled interviews between two days,
// inclusive. When either bound is missing the current month is used.
func (s *calendarServiceImpl) Events(ctx context.Context, userID, startDate, endDate string) ([]domain.CalendarEvent, error) {
	if startDate == "" || endDate == "" {
		startDate, endDate = GetMonthBounds(s.clock.Now())
	}

	start, err := domain.ParseDate(startDate)
	if err != nil {
		return nil, errors.NewBadRequestError(invalidDateFormat)
	}
	end, err := domain.ParseDate(endDate)
	if err != nil {
		return nil, errors.NewBadRequestError(invalidDateFormat)
	}

	goals, err := s.goals.ListGoalDeadlines(ctx, userID, domain.FormatDate(start), domain.FormatDate(end))
	if err != nil {
		return nil, err
	}
	interviews, err := s.applications.ListInterviewsBetween(ctx, userID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	events := make([]domain.CalendarEvent, 0, len(goals)+len(interviews))
	for _, g := range goals {
		color := g.Color
		if color == "" {
			color = defaultGoalEventColor
		}
		events = append(events, domain.CalendarEvent{
			ID:          "goal-" + g.ID,
			OriginalID:  g.ID,
			Title:       g.Title,
			Date:        g.Deadline,
			Type:        domain.EventGoal,
			Status:      string(g.Status),
			Description: g.Description,
			Color:       color,
		})
	}
	for _, a := range interviews {
		events = append(events, domain.CalendarEvent{
			ID:         "interview-" + a.ID,
			OriginalID: a.ID,
			Title:      fmt.Sprintf("%s at %s", a.Role, a.CompanyName),
			Date:       domain.FormatDate(*a.InterviewDate),
			Type:       domain.EventInterview,
			Stage:      a.Stage,
			Company:    a.CompanyName,
			Color:      interviewEventColor,
		})
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	return events, nil
}
