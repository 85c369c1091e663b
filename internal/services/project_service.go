package services

import (
	"context"

	"pomofocus/internal/domain"
	"pomofocus/internal/validation"
)

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	deps
	repo          ProjectRepository
	sessions      SessionRepository
	taskValidator *validation.TaskValidator
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(repo ProjectRepository, sessions SessionRepository, opts Options) ProjectService {
	return newProjectService(repo, sessions, newDeps(opts))
}

func newProjectService(repo ProjectRepository, sessions SessionRepository, d deps) *projectServiceImpl {
	return &projectServiceImpl{
		deps:          d,
		repo:          repo,
		sessions:      sessions,
		taskValidator: validation.NewTaskValidator(d.validator),
	}
}

// logActivity appends to the project history. A failure is logged and
// swallowed so it never fails the write that caused it.
func (s *projectServiceImpl) logActivity(ctx context.Context, projectID string, kind domain.ActivityType, message string) {
	entry := &domain.ProjectActivity{ProjectID: projectID, Type: kind, Message: message}
	if err := s.repo.AddProjectActivity(ctx, entry); err != nil {
		s.logger.WithError(err).WithField("project_id", projectID).Warn("failed to log project activity")
	}
}

// ListProjects returns the board with each project's checklist and the focus
// time recorded against projects and tasks
func (s *projectServiceImpl) ListProjects(ctx context.Context, userID string) ([]*domain.Project, error) {
	projects, err := s.repo.ListProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListProjectTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	byProject, byTask, err := s.sessions.FocusTotals(ctx, userID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.ProjectTask, len(projects))
	for _, t := range tasks {
		t.TimeSeconds = byTask[t.ID]
		grouped[t.ProjectID] = append(grouped[t.ProjectID], *t)
	}
	for _, p := range projects {
		p.TotalTimeSeconds = byProject[p.ID]
		p.Tasks = grouped[p.ID]
		if p.Tasks == nil {
			p.Tasks = []domain.ProjectTask{}
		}
	}
	return projects, nil
}

// CreateProject adds a card at the bottom of its column
func (s *projectServiceImpl) CreateProject(ctx context.Context, userID string, input ProjectInput) (*domain.Project, error) {
	ve := validation.NewValidationError()
	name, err := s.validator.ValidateProjectName(input.Name)
	ve.Merge(err)

	status := domain.ProjectBacklog
	if input.Status != "" {
		ve.Merge(s.validator.ValidateProjectStatus(input.Status))
		status = domain.ProjectStatus(input.Status)
	}
	if ve.HasErrors() {
		return nil, ve.AsAppError()
	}

	position, err := s.repo.NextProjectPosition(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		UserID:      userID,
		Name:        name,
		Description: input.Description,
		Notes:       input.Notes,
		Color:       nonEmpty(input.Color),
		Category:    input.Category,
		Status:      status,
		Priority:    domain.NormalizePriority(input.Priority),
		DueDate:     domain.ParseOptionalTime(input.DueDate).Value,
		Position:    position,
	}
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	s.logActivity(ctx, project.ID, domain.ActivityProjectCreated, domain.ProjectCreatedMessage(name))
	s.invalidate(ctx, userID)
	return project, nil
}

// UpdateProject applies a partial update. Column moves and archive toggles
// are recorded in the activity feed.
func (s *projectServiceImpl) UpdateProject(ctx context.Context, userID, id string, patch ProjectPatch) (*domain.Project, error) {
	project, err := s.repo.GetProject(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	ve := validation.NewValidationError()
	if patch.Name != nil {
		name, err := s.validator.ValidateProjectName(*patch.Name)
		ve.Merge(err)
		patch.Name = &name
	}
	if patch.Status != nil {
		ve.Merge(s.validator.ValidateProjectStatus(*patch.Status))
	}
	if ve.HasErrors() {
		return nil, ve.AsAppError()
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Notes != nil {
		project.Notes = *patch.Notes
	}
	if patch.Category != nil {
		project.Category = *patch.Category
	}
	if patch.Color != nil {
		project.Color = nonEmpty(patch.Color)
	}
	if patch.Priority != nil {
		if p, ok := domain.ParsePriority(*patch.Priority); ok {
			project.Priority = p
		}
	}
	if due := domain.ParseOptionalTime(patch.DueDate); due.Set {
		project.DueDate = due.Value
	}

	var activity []*domain.ProjectActivity
	if patch.Archived != nil && *patch.Archived != project.Archived {
		activity = append(activity, &domain.ProjectActivity{Type: domain.ActivityArchived, Message: domain.ArchiveMessage(*patch.Archived)})
		project.Archived = *patch.Archived
	}
	if patch.Status != nil && domain.ProjectStatus(*patch.Status) != project.Status {
		next := domain.ProjectStatus(*patch.Status)
		position, err := s.repo.NextProjectPosition(ctx, userID, next)
		if err != nil {
			return nil, err
		}
		activity = append(activity, &domain.ProjectActivity{Type: domain.ActivityStatusChange, Message: domain.StatusChangeMessage(project.Status, next)})
		project.Status = next
		project.Position = position
	}

	if err := s.repo.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	for _, a := range activity {
		s.logActivity(ctx, project.ID, a.Type, a.Message)
	}

	s.invalidate(ctx, userID)
	return project, nil
}

// ReorderProjects renumbers a column after a drag and drop. An empty status
// keeps every listed project in its column.
func (s *projectServiceImpl) ReorderProjects(ctx context.Context, userID, status string, orderedIDs []string) (int, error) {
	if err := s.validator.ValidateReorder(status, orderedIDs); err != nil {
		return 0, validation.Wrap(err)
	}

	moved, err := s.repo.ReorderProjects(ctx, userID, domain.ProjectStatus(status), orderedIDs)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, userID)
	return moved, nil
}

// DeleteProject removes a project with its checklist and history
func (s *projectServiceImpl) DeleteProject(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteProject(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// ListActivity returns the newest history entries of a project
func (s *projectServiceImpl) ListActivity(ctx context.Context, userID, projectID string) ([]*domain.ProjectActivity, error) {
	if _, err := s.repo.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListProjectActivity(ctx, userID, projectID, domain.ActivityFeedLimit)
}

// AddTask appends a checklist item to a project
func (s *projectServiceImpl) AddTask(ctx context.Context, userID, projectID string, input ProjectTaskInput) (*domain.ProjectTask, error) {
	if _, err := s.repo.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	title, err := s.taskValidator.ValidateTitle(input.Title)
	if err != nil {
		return nil, validation.Wrap(err)
	}

	task := &domain.ProjectTask{
		ProjectID:   projectID,
		Title:       title,
		Description: input.Description,
		Priority:    domain.NormalizePriority(input.Priority),
		DueDate:     domain.ParseOptionalTime(input.DueDate).Value,
	}
	if err := s.repo.CreateProjectTask(ctx, task); err != nil {
		return nil, err
	}

	s.logActivity(ctx, projectID, domain.ActivityTaskAdded, domain.TaskAddedMessage(title))
	s.invalidate(ctx, userID)
	return task, nil
}

// UpdateTask applies a partial update to a checklist item. Completion
// transitions are recorded in the project history.
func (s *projectServiceImpl) UpdateTask(ctx context.Context, userID, taskID string, patch ProjectTaskPatch) (*domain.ProjectTask, error) {
	task, err := s.repo.GetProjectTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title, err := s.taskValidator.ValidateTitle(*patch.Title)
		if err != nil {
			return nil, validation.Wrap(err)
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		if p, ok := domain.ParsePriority(*patch.Priority); ok {
			task.Priority = p
		}
	}
	if due := domain.ParseOptionalTime(patch.DueDate); due.Set {
		task.DueDate = due.Value
	}

	completionChanged := patch.IsCompleted != nil && *patch.IsCompleted != task.IsCompleted
	if patch.IsCompleted != nil {
		task.IsCompleted = *patch.IsCompleted
	}

	if err := s.repo.UpdateProjectTask(ctx, task); err != nil {
		return nil, err
	}
	if completionChanged {
		s.logActivity(ctx, task.ProjectID, domain.ActivityTaskCompleted, domain.TaskCompletionMessage(task.Title, task.IsCompleted))
	}

	s.invalidate(ctx, userID)
	return task, nil
}

// DeleteTask removes a checklist item
func (s *projectServiceImpl) DeleteTask(ctx context.Context, userID, taskID string) error {
	task, err := s.repo.GetProjectTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	s.logActivity(ctx, task.ProjectID, domain.ActivityTaskDeleted, domain.TaskDeletedMessage(task.Title))
	if err := s.repo.DeleteProjectTask(ctx, userID, taskID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}
