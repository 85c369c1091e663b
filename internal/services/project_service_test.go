package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
)

func activityMessages(t *testing.T, service *projectServiceImpl, userID, projectID string) []string {
	t.Helper()
	feed, err := service.ListActivity(context.Background(), userID, projectID)
	require.NoError(t, err)
	messages := make([]string, 0, len(feed))
	for _, a := range feed {
		messages = append(messages, a.Message)
	}
	return messages
}

func TestProjectService_CreateProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newProjectService(env.store, env.store, env.deps)
	user := env.createUser(t, "board@example.com")

	tests := []struct {
		name         string
		input        ProjectInput
		wantStatus   domain.ProjectStatus
		wantPriority domain.Priority
		wantPosition int
		errType      *errors.ErrorType
	}{
		{
			name:         "should default to the backlog column",
			input:        ProjectInput{Name: " Website "},
			wantStatus:   domain.ProjectBacklog,
			wantPriority: domain.PriorityMedium,
			wantPosition: 0,
		},
		{
			name:         "should append to the bottom of its column",
			input:        ProjectInput{Name: "Blog", Priority: "high"},
			wantStatus:   domain.ProjectBacklog,
			wantPriority: domain.PriorityHigh,
			wantPosition: 1,
		},
		{
			name:         "should start in the requested column",
			input:        ProjectInput{Name: "App", Status: "in-progress", DueDate: strPtr("2026-04-01")},
			wantStatus:   domain.ProjectInProgress,
			wantPriority: domain.PriorityMedium,
			wantPosition: 0,
		},
		{
			name:    "should reject an unknown column",
			input:   ProjectInput{Name: "Lost", Status: "someday"},
			errType: errorTypePtr(errors.ErrorTypeValidation),
		},
		{
			name:    "should require a name",
			input:   ProjectInput{Name: "  "},
			errType: errorTypePtr(errors.ErrorTypeValidation),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := service.CreateProject(ctx, user.ID, tt.input)
			if tt.errType != nil {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, *tt.errType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, project.Status)
			assert.Equal(t, tt.wantPriority, project.Priority)
			assert.Equal(t, tt.wantPosition, project.Position)
			assert.NotNil(t, project.Tasks)
			assert.Equal(t, []string{domain.ProjectCreatedMessage(project.Name)}, activityMessages(t, service, user.ID, project.ID))
		})
	}
}

func TestProjectService_UpdateProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newProjectService(env.store, env.store, env.deps)
	user := env.createUser(t, "board@example.com")

	project, err := service.CreateProject(ctx, user.ID, ProjectInput{Name: "Website", Color: strPtr("rose"), DueDate: strPtr("2026-04-01")})
	require.NoError(t, err)
	_, err = service.CreateProject(ctx, user.ID, ProjectInput{Name: "Running", Status: "review"})
	require.NoError(t, err)

	t.Run("should move the card to the end of the new column", func(t *testing.T) {
		got, err := service.UpdateProject(ctx, user.ID, project.ID, ProjectPatch{Status: strPtr("review")})
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectReview, got.Status)
		assert.Equal(t, 1, got.Position)
	})

	t.Run("should record archive toggles", func(t *testing.T) {
		got, err := service.UpdateProject(ctx, user.ID, project.ID, ProjectPatch{Archived: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, got.Archived)

		_, err = service.UpdateProject(ctx, user.ID, project.ID, ProjectPatch{Archived: boolPtr(true)})
		require.NoError(t, err)
	})

	t.Run("should clear optional fields and ignore an unknown priority", func(t *testing.T) {
		got, err := service.UpdateProject(ctx, user.ID, project.ID, ProjectPatch{
			Color:    strPtr(""),
			DueDate:  strPtr(""),
			Priority: strPtr("critical"),
			Notes:    strPtr("ship it"),
		})
		require.NoError(t, err)
		assert.Nil(t, got.Color)
		assert.Nil(t, got.DueDate)
		assert.Equal(t, domain.PriorityMedium, got.Priority)
		assert.Equal(t, "ship it", got.Notes)
	})

	t.Run("should reject an invalid status", func(t *testing.T) {
		_, err := service.UpdateProject(ctx, user.ID, project.ID, ProjectPatch{Status: strPtr("done")})
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})

	t.Run("should list the history newest first", func(t *testing.T) {
		assert.Equal(t, []string{
			domain.ArchiveMessage(true),
			domain.StatusChangeMessage(domain.ProjectBacklog, domain.ProjectReview),
			domain.ProjectCreatedMessage("Website"),
		}, activityMessages(t, service, user.ID, project.ID))
	})

	t.Run("should hide another user's project", func(t *testing.T) {
		stranger := env.createUser(t, "stranger@example.com")
		_, err := service.UpdateProject(ctx, stranger.ID, project.ID, ProjectPatch{Name: strPtr("Mine")})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

		_, err = service.ListActivity(ctx, stranger.ID, project.ID)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})
}

func TestProjectService_ReorderProjects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newProjectService(env.store, env.store, env.deps)
	user := env.createUser(t, "board@example.com")

	var ids []string
	for _, name := range []string{"One", "Two", "Three"} {
		p, err := service.CreateProject(ctx, user.ID, ProjectInput{Name: name})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	t.Run("should move cards into a column in the given order", func(t *testing.T) {
		moved, err := service.ReorderProjects(ctx, user.ID, "in-progress", []string{ids[2], ids[0], "missing"})
		require.NoError(t, err)
		assert.Equal(t, 2, moved)

		projects, err := service.ListProjects(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, projects, 3)
		assert.Equal(t, ids[1], projects[0].ID)
		assert.Equal(t, domain.ProjectBacklog, projects[0].Status)
		assert.Equal(t, ids[2], projects[1].ID)
		assert.Equal(t, 0, projects[1].Position)
		assert.Equal(t, ids[0], projects[2].ID)
		assert.Equal(t, domain.ProjectInProgress, projects[2].Status)
		assert.Equal(t, 1, projects[2].Position)
	})

	t.Run("should keep columns when no status is given", func(t *testing.T) {
		moved, err := service.ReorderProjects(ctx, user.ID, "", []string{ids[0], ids[2]})
		require.NoError(t, err)
		assert.Equal(t, 2, moved)

		project, err := env.store.GetProject(ctx, user.ID, ids[0])
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectInProgress, project.Status)
		assert.Equal(t, 0, project.Position)
	})

	tests := []struct {
		name   string
		status string
		ids    []string
	}{
		{"should reject an unknown column", "later", []string{ids[0]}},
		{"should require the id list", "backlog", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ReorderProjects(ctx, user.ID, tt.status, tt.ids)
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
		})
	}
}

func TestProjectService_Tasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newProjectService(env.store, env.store, env.deps)
	sessions := newSessionService(env.store, env.store, env.deps)
	user := env.createUser(t, "board@example.com")

	project, err := service.CreateProject(ctx, user.ID, ProjectInput{Name: "Website"})
	require.NoError(t, err)

	task, err := service.AddTask(ctx, user.ID, project.ID, ProjectTaskInput{Title: " Design ", Priority: "low"})
	require.NoError(t, err)
	assert.Equal(t, "Design", task.Title)
	assert.Equal(t, domain.PriorityLow, task.Priority)

	_, err = service.AddTask(ctx, user.ID, project.ID, ProjectTaskInput{Title: ""})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	_, err = service.AddTask(ctx, user.ID, "missing", ProjectTaskInput{Title: "Orphan"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	t.Run("should log completion transitions only", func(t *testing.T) {
		_, err := service.UpdateTask(ctx, user.ID, task.ID, ProjectTaskPatch{IsCompleted: boolPtr(true)})
		require.NoError(t, err)
		_, err = service.UpdateTask(ctx, user.ID, task.ID, ProjectTaskPatch{IsCompleted: boolPtr(true), Description: strPtr("done")})
		require.NoError(t, err)
		got, err := service.UpdateTask(ctx, user.ID, task.ID, ProjectTaskPatch{IsCompleted: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, got.IsCompleted)
		assert.Equal(t, "done", got.Description)

		assert.Equal(t, []string{
			domain.TaskCompletionMessage("Design", false),
			domain.TaskCompletionMessage("Design", true),
			domain.TaskAddedMessage("Design"),
			domain.ProjectCreatedMessage("Website"),
		}, activityMessages(t, service, user.ID, project.ID))
	})

	t.Run("should attach tasks and focus time to the board", func(t *testing.T) {
		_, err := sessions.RecordSession(ctx, user.ID, SessionInput{DurationSeconds: 1500, Type: "pomodoro", ProjectTaskID: &task.ID})
		require.NoError(t, err)
		_, err = sessions.RecordSession(ctx, user.ID, SessionInput{DurationSeconds: 600, Type: "pomodoro", ProjectID: &project.ID})
		require.NoError(t, err)
		_, err = sessions.RecordSession(ctx, user.ID, SessionInput{DurationSeconds: 300, Type: "shortBreak", ProjectID: &project.ID})
		require.NoError(t, err)

		projects, err := service.ListProjects(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, 2100, projects[0].TotalTimeSeconds)
		require.Len(t, projects[0].Tasks, 1)
		assert.Equal(t, 1500, projects[0].Tasks[0].TimeSeconds)
	})

	t.Run("should log a deleted task", func(t *testing.T) {
		require.NoError(t, service.DeleteTask(ctx, user.ID, task.ID))
		assert.Equal(t, domain.TaskDeletedMessage("Design"), activityMessages(t, service, user.ID, project.ID)[0])

		err := service.DeleteTask(ctx, user.ID, task.ID)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("should delete the project", func(t *testing.T) {
		require.NoError(t, service.DeleteProject(ctx, user.ID, project.ID))
		projects, err := service.ListProjects(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}
