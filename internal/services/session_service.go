package services

import (
	"context"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
	"pomofocus/internal/validation"
)

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	deps
	repo     SessionRepository
	projects ProjectRepository
}

// NewSessionService creates a new SessionService instance
func NewSessionService(repo SessionRepository, projects ProjectRepository, opts Options) SessionService {
	return newSessionService(repo, projects, newDeps(opts))
}

func newSessionService(repo SessionRepository, projects ProjectRepository, d deps) *sessionServiceImpl {
	return &sessionServiceImpl{deps: d, repo: repo, projects: projects}
}

// RecordSession stores a completed interval. Focus time may be attributed to
// a project and one of its tasks; both must belong to the user.
func (s *sessionServiceImpl) RecordSession(ctx context.Context, userID string, input SessionInput) (*domain.Session, error) {
	if err := s.validator.ValidateSession(input.DurationSeconds, input.Type); err != nil {
		return nil, validation.Wrap(err)
	}

	session := &domain.Session{
		UserID:          userID,
		DurationSeconds: input.DurationSeconds,
		Type:            domain.SessionType(input.Type),
		CompletedAt:     s.clock.Now(),
	}

	projectID, taskID, err := s.ResolveFocus(ctx, userID, input.ProjectID, input.ProjectTaskID)
	if err != nil {
		return nil, err
	}
	session.ProjectID = projectID
	session.ProjectTaskID = taskID

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", userID).WithField("type", session.Type).Debug("session recorded")
	s.invalidate(ctx, userID)
	return session, nil
}

// ResolveFocus checks that a project and task belong to userID and returns
// the attribution to store. A task alone implies its project. Empty ids
// mean no attribution.
func (s *sessionServiceImpl) ResolveFocus(ctx context.Context, userID string, projectID, projectTaskID *string) (*string, *string, error) {
	projectID = nonEmpty(projectID)
	if projectID != nil {
		if _, err := s.projects.GetProject(ctx, userID, *projectID); err != nil {
			return nil, nil, err
		}
	}
	id := nonEmpty(projectTaskID)
	if id == nil {
		return projectID, nil, nil
	}
	task, err := s.projects.GetProjectTask(ctx, userID, *id)
	if err != nil {
		return nil, nil, err
	}
	if projectID != nil && *projectID != task.ProjectID {
		return nil, nil, errors.NewInvalidInputError("project_task_id", *id, "task does not belong to the project")
	}
	owner := task.ProjectID
	return &owner, id, nil
}

// TodayPomodoros counts focus sessions completed since UTC midnight
func (s *sessionServiceImpl) TodayPomodoros(ctx context.Context, userID string) (int, error) {
	today := GetDateRange(s.clock.Now())
	return s.repo.CountSessionsSince(ctx, userID, domain.SessionPomodoro, today.Start)
}

// WeeklySessions returns focus session counts for the last seven days,
// zero-filled and oldest first
func (s *sessionServiceImpl) WeeklySessions(ctx context.Context, userID string) ([]domain.DailyCount, error) {
	now := s.clock.Now()
	week := GetWeekRange(now)
	times, err := s.repo.ListSessionTimes(ctx, userID, domain.SessionPomodoro, week.Start)
	if err != nil {
		return nil, err
	}
	return domain.WeeklyCounts(now, times), nil
}

// nonEmpty treats a blank optional id as absent
func nonEmpty(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}
