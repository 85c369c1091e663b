package services

import (
	"context"
	"strings"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
	"pomofocus/internal/validation"
)

// goalServiceImpl implements the GoalService interface
type goalServiceImpl struct {
	deps
	repo     GoalRepository
	projects ProjectRepository
}

// NewGoalService creates a new GoalService instance
func NewGoalService(repo GoalRepository, projects ProjectRepository, opts Options) GoalService {
	return newGoalService(repo, projects, newDeps(opts))
}

func newGoalService(repo GoalRepository, projects ProjectRepository, d deps) *goalServiceImpl {
	return &goalServiceImpl{deps: d, repo: repo, projects: projects}
}

// ListGoals returns the user's goals split by horizon
func (s *goalServiceImpl) ListGoals(ctx context.Context, userID string) (*GroupedGoals, error) {
	goals, err := s.repo.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	grouped := &GroupedGoals{Short: []*domain.Goal{}, Long: []*domain.Goal{}}
	for _, g := range goals {
		if g.Type == domain.GoalLong {
			grouped.Long = append(grouped.Long, g)
		} else {
			grouped.Short = append(grouped.Short, g)
		}
	}
	return grouped, nil
}

// CreateGoal adds a goal with its initial steps. Unknown type, priority and
// status values fall back to short, medium and todo.
func (s *goalServiceImpl) CreateGoal(ctx context.Context, userID string, input GoalInput) (*domain.Goal, error) {
	ve := validation.NewValidationError()
	title, err := s.validator.ValidateGoalTitle(input.Title)
	ve.Merge(err)
	ve.Merge(s.validator.ValidateOptionalDate("deadline", input.Deadline))
	steps, err := s.buildSteps(input.Steps)
	ve.Merge(err)
	if ve.HasErrors() {
		return nil, ve.AsAppError()
	}

	projectID, err := s.checkProject(ctx, userID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	status, ok := domain.ParseGoalStatus(input.Status)
	if !ok {
		status = domain.GoalTodo
	}

	goal := &domain.Goal{
		UserID:      userID,
		Type:        domain.NormalizeGoalType(input.Type),
		Title:       title,
		Description: input.Description,
		Deadline:    input.Deadline,
		Priority:    domain.NormalizePriority(input.Priority),
		Status:      status,
		Category:    input.Category,
		Color:       input.Color,
		IsArchived:  input.IsArchived,
		IsPinned:    input.IsPinned,
		Notes:       input.Notes,
		Order:       input.Order,
		Recurrence:  input.Recurrence,
		ProjectID:   projectID,
		Steps:       steps,
	}
	if err := s.repo.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return goal, nil
}

// UpdateGoal applies a partial update. A blank title and unknown enum values
// are ignored; steps, when given, replace every existing step.
func (s *goalServiceImpl) UpdateGoal(ctx context.Context, userID, id string, patch GoalPatch) (*domain.Goal, error) {
	goal, err := s.repo.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	ve := validation.NewValidationError()
	if patch.Deadline != nil {
		ve.Merge(s.validator.ValidateOptionalDate("deadline", *patch.Deadline))
	}
	var steps []domain.GoalStep
	if patch.Steps != nil {
		steps, err = s.buildSteps(*patch.Steps)
		ve.Merge(err)
	}
	if ve.HasErrors() {
		return nil, ve.AsAppError()
	}

	if patch.ProjectID != nil {
		projectID, err := s.checkProject(ctx, userID, patch.ProjectID)
		if err != nil {
			return nil, err
		}
		goal.ProjectID = projectID
	}

	if patch.Title != nil {
		if title, err := s.validator.ValidateGoalTitle(*patch.Title); err == nil {
			goal.Title = title
		}
	}
	if patch.Type != nil {
		goal.Type = domain.NormalizeGoalType(*patch.Type)
	}
	if patch.Priority != nil {
		if p, ok := domain.ParsePriority(*patch.Priority); ok {
			goal.Priority = p
		}
	}
	if patch.Status != nil {
		if st, ok := domain.ParseGoalStatus(*patch.Status); ok {
			goal.Status = st
		}
	}
	assignString(&goal.Description, patch.Description)
	assignString(&goal.Deadline, patch.Deadline)
	assignString(&goal.Category, patch.Category)
	assignString(&goal.Color, patch.Color)
	assignString(&goal.Notes, patch.Notes)
	assignString(&goal.Recurrence, patch.Recurrence)
	if patch.IsArchived != nil {
		goal.IsArchived = *patch.IsArchived
	}
	if patch.IsPinned != nil {
		goal.IsPinned = *patch.IsPinned
	}
	if patch.Order != nil {
		goal.Order = *patch.Order
	}
	if patch.Steps != nil {
		goal.Steps = steps
	}

	if err := s.repo.UpdateGoal(ctx, goal, patch.Steps != nil); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return goal, nil
}

// DeleteGoal removes a goal and its steps
func (s *goalServiceImpl) DeleteGoal(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteGoal(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// ReorderGoals sets each goal's order to its index in orderedIDs
func (s *goalServiceImpl) ReorderGoals(ctx context.Context, userID string, orderedIDs []string) (int, error) {
	if orderedIDs == nil {
		return 0, errors.NewBadRequestError("ordered_ids must be a list")
	}

	updated, err := s.repo.ReorderGoals(ctx, userID, orderedIDs)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, userID)
	return updated, nil
}

// AddStep appends a step to a goal
func (s *goalServiceImpl) AddStep(ctx context.Context, userID, goalID string, input StepInput) (*domain.GoalStep, error) {
	if _, err := s.repo.GetGoal(ctx, userID, goalID); err != nil {
		return nil, err
	}

	ve := validation.NewValidationError()
	text, err := s.validator.ValidateStepText(input.Text)
	ve.Merge(err)
	ve.Merge(s.validator.ValidateOptionalDate("deadline", input.Deadline))
	if ve.HasErrors() {
		return nil, ve.AsAppError()
	}

	step := &domain.GoalStep{
		GoalID:      goalID,
		Text:        text,
		IsMilestone: input.IsMilestone,
		Deadline:    input.Deadline,
	}
	if err := s.repo.AddGoalStep(ctx, step); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return step, nil
}

// UpdateStep applies a partial step update. Ticking a step off advances the
// goal's daily streak.
func (s *goalServiceImpl) UpdateStep(ctx context.Context, userID, goalID, stepID string, patch StepPatch) (*domain.GoalStep, error) {
	goal, err := s.repo.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	step, err := s.repo.GetGoalStep(ctx, userID, goalID, stepID)
	if err != nil {
		return nil, err
	}

	if patch.Deadline != nil {
		if err := s.validator.ValidateOptionalDate("deadline", *patch.Deadline); err != nil {
			return nil, validation.Wrap(err)
		}
		step.Deadline = *patch.Deadline
	}
	if patch.Done != nil {
		if *patch.Done && !step.Done {
			goal.RecordStreak(s.clock.Now())
		}
		step.Done = *patch.Done
	}
	if patch.Text != nil && strings.TrimSpace(*patch.Text) != "" {
		step.Text = strings.TrimSpace(*patch.Text)
	}
	if patch.IsMilestone != nil {
		step.IsMilestone = *patch.IsMilestone
	}

	if err := s.repo.SaveStepProgress(ctx, step, goal); err != nil {
		return nil, err
	}

	s.logger.WithField("goal_id", goal.ID).WithField("streak", goal.StreakCount).Debug("goal step updated")
	s.invalidate(ctx, userID)
	return step, nil
}

// DeleteStep removes a step from a goal
func (s *goalServiceImpl) DeleteStep(ctx context.Context, userID, goalID, stepID string) error {
	if _, err := s.repo.GetGoal(ctx, userID, goalID); err != nil {
		return err
	}
	if err := s.repo.DeleteGoalStep(ctx, userID, goalID, stepID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Analytics summarises the user's goals for charts
func (s *goalServiceImpl) Analytics(ctx context.Context, userID string) (domain.GoalAnalytics, error) {
	goals, err := s.repo.ListGoals(ctx, userID)
	if err != nil {
		return domain.GoalAnalytics{}, err
	}
	return domain.AnalyzeGoals(goals, s.clock.Now()), nil
}

// buildSteps turns submitted steps into goal steps, skipping blank ones
func (s *goalServiceImpl) buildSteps(inputs []StepInput) ([]domain.GoalStep, error) {
	ve := validation.NewValidationError()
	steps := make([]domain.GoalStep, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Text) == "" {
			continue
		}
		text, err := s.validator.ValidateStepText(in.Text)
		ve.Merge(err)
		ve.Merge(s.validator.ValidateOptionalDate("steps.deadline", in.Deadline))
		steps = append(steps, domain.GoalStep{
			Text:        text,
			Done:        in.Done,
			IsMilestone: in.IsMilestone,
			Deadline:    in.Deadline,
		})
	}
	return steps, ve.OrNil()
}

// checkProject resolves an optional project link. A blank id unlinks; any
// other id must name one of the user's projects.
func (s *goalServiceImpl) checkProject(ctx context.Context, userID string, id *string) (*string, error) {
	projectID := nonEmpty(id)
	if projectID == nil {
		return nil, nil
	}
	if _, err := s.projects.GetProject(ctx, userID, *projectID); err != nil {
		return nil, err
	}
	return projectID, nil
}

func assignString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
