package services

import (
	"context"

	"pomofocus/internal/domain"
	"pomofocus/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	deps
	repo          TaskRepository
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo TaskRepository, opts Options) TaskService {
	return newTaskService(repo, newDeps(opts))
}

func newTaskService(repo TaskRepository, d deps) *taskServiceImpl {
	return &taskServiceImpl{
		deps:          d,
		repo:          repo,
		taskValidator: validation.NewTaskValidator(d.validator),
	}
}

// ListTasks returns the user's to-do list, open tasks first
func (t *taskServiceImpl) ListTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	return t.repo.ListTasks(ctx, userID)
}

// CreateTask adds a task. An unknown priority falls back to medium.
func (t *taskServiceImpl) CreateTask(ctx context.Context, userID, title, priority string) (*domain.Task, error) {
	trimmed, err := t.taskValidator.ValidateTitle(title)
	if err != nil {
		return nil, validation.Wrap(err)
	}

	task := &domain.Task{
		UserID:   userID,
		Title:    trimmed,
		Priority: domain.NormalizePriority(priority),
	}
	if err := t.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	t.invalidate(ctx, userID)
	return task, nil
}

// UpdateTask applies a partial update to a task owned by the user
func (t *taskServiceImpl) UpdateTask(ctx context.Context, userID, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := t.repo.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := t.taskValidator.ValidateTitleUpdate(patch.Title); err != nil {
		return nil, validation.Wrap(err)
	}

	patch.Apply(task)
	if err := t.repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	t.invalidate(ctx, userID)
	return task, nil
}

// DeleteTask removes a task owned by the user
func (t *taskServiceImpl) DeleteTask(ctx context.Context, userID, id string) error {
	if err := t.repo.DeleteTask(ctx, userID, id); err != nil {
		return err
	}
	t.invalidate(ctx, userID)
	return nil
}
