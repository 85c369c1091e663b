package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomofocus/internal/domain"
	"pomofocus/internal/timer"
)

func TestTaskHandlers(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "tasks@example.com")
	other := api.register(t, "other@example.com")

	rec := api.do(t, http.MethodPost, "/api/tasks", token, gin.H{"title": "  Write report ", "priority": "urgent"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var task domain.Task
	decode(t, rec, &task)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, domain.PriorityMedium, task.Priority)

	t.Run("should reject a blank title", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/tasks", token, gin.H{"title": "   "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should complete the task with PATCH", func(t *testing.T) {
		rec := api.do(t, http.MethodPatch, "/api/tasks/"+task.ID, token, gin.H{"is_completed": true})
		require.Equal(t, http.StatusOK, rec.Code)
		var got domain.Task
		decode(t, rec, &got)
		assert.True(t, got.IsCompleted)
	})

	t.Run("should hide the task from other users", func(t *testing.T) {
		rec := api.do(t, http.MethodPut, "/api/tasks/"+task.ID, other, gin.H{"title": "mine now"})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = api.do(t, http.MethodGet, "/api/tasks", other, nil)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("should delete once", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, api.do(t, http.MethodDelete, "/api/tasks/"+task.ID, token, nil).Code)
		assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodDelete, "/api/tasks/"+task.ID, token, nil).Code)
	})
}

func TestSettingsHandlers(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "settings@example.com")

	rec := api.do(t, http.MethodPut, "/api/settings", token, gin.H{"focus_duration": 40, "dashboard_layout": []string{"timer", "tasks"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var settings domain.Settings
	decode(t, rec, &settings)
	assert.Equal(t, 40, settings.FocusMinutes)
	assert.Equal(t, 5, settings.ShortBreakMinutes)
	assert.Equal(t, []string{"timer", "tasks"}, settings.DashboardLayout)

	rec = api.do(t, http.MethodPut, "/api/settings", token, gin.H{"dashboard_layout": []string{"weather"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/settings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &settings)
	assert.Equal(t, 25, settings.FocusMinutes)
}

func TestTimerHandlers(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "timer@example.com")

	var state timer.State
	rec := api.do(t, http.MethodGet, "/api/timer", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &state)
	assert.Equal(t, domain.SessionPomodoro, state.Mode)
	assert.Equal(t, 25*60, state.RemainingSeconds)
	assert.False(t, state.Active)

	t.Run("should switch mode", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/timer/mode", token, gin.H{"mode": "longBreak"})
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &state)
		assert.Equal(t, domain.SessionLongBreak, state.Mode)
		assert.Equal(t, 15*60, state.RemainingSeconds)
	})

	t.Run("should reject an unknown mode", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/timer/mode", token, gin.H{"mode": "nap"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should start and reset", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/timer/toggle", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &state)
		assert.True(t, state.Active)

		rec = api.do(t, http.MethodPost, "/api/timer/reset", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &state)
		assert.False(t, state.Active)
		assert.Equal(t, 15*60, state.RemainingSeconds)
	})

	t.Run("should remember the focused project", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/projects", token, gin.H{"name": "Thesis"})
		require.Equal(t, http.StatusCreated, rec.Code)
		var created struct {
			ID string `json:"id"`
		}
		decode(t, rec, &created)

		rec = api.do(t, http.MethodPost, "/api/timer/focus", token, gin.H{"project_id": created.ID})
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &state)
		require.NotNil(t, state.ProjectID)
		assert.Equal(t, created.ID, *state.ProjectID)
	})

	t.Run("should refuse a project the user does not own", func(t *testing.T) {
		other := api.register(t, "timer-other@example.com")
		rec := api.do(t, http.MethodPost, "/api/projects", other, gin.H{"name": "Not yours"})
		require.Equal(t, http.StatusCreated, rec.Code)
		var foreign struct {
			ID string `json:"id"`
		}
		decode(t, rec, &foreign)

		for _, id := range []string{foreign.ID, "no-such-project"} {
			rec = api.do(t, http.MethodPost, "/api/timer/focus", token, gin.H{"project_id": id})
			assert.Equal(t, http.StatusNotFound, rec.Code)
		}
	})
}

func TestSessionHandlers(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "sessions@example.com")

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
	}{
		{"should record a pomodoro", gin.H{"duration_seconds": 1500, "type": "pomodoro"}, http.StatusCreated},
		{"should record a break", gin.H{"duration_seconds": 300, "type": "shortBreak"}, http.StatusCreated},
		{"should reject an unknown type", gin.H{"duration_seconds": 300, "type": "nap"}, http.StatusBadRequest},
		{"should reject a zero duration", gin.H{"duration_seconds": 0, "type": "pomodoro"}, http.StatusBadRequest},
		{"should reject a foreign project", gin.H{"duration_seconds": 60, "type": "pomodoro", "project_id": "nope"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/api/sessions", token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}

	rec := api.do(t, http.MethodGet, "/api/sessions/stats/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"today_pomodoros":1}`, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/sessions/stats/weekly", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var days []domain.DailyCount
	decode(t, rec, &days)
	require.Len(t, days, 7)
	assert.Equal(t, today(), days[6].Date)
	assert.Equal(t, 1, days[6].Count)
}
