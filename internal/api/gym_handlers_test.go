package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomofocus/internal/domain"
	"pomofocus/internal/services"
)

func TestGymHandlers(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "gym@example.com")
	other := api.register(t, "other@example.com")
	date := today()

	t.Run("should return an empty day", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/gym/"+date, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"date":"`+date+`","weight":null,"water_glasses":0,"pushups":0,"pullups":0,"squads":0,
			"notes":"","exercises":[],"meals":[]}`, rec.Body.String())
	})

	t.Run("should require a date to save a day", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/gym/day", token, gin.H{"water_glasses": 2})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	var exercise domain.GymExercise
	t.Run("should log a day with entries", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/gym/day", token, gin.H{"date": date, "weight": 79.5, "water_glasses": 6, "pullups": 8})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var saved struct {
			Message string `json:"message"`
			ID      string `json:"id"`
		}
		decode(t, rec, &saved)
		assert.Equal(t, "Gym day updated successfully", saved.Message)
		assert.NotEmpty(t, saved.ID)

		rec = api.do(t, http.MethodPost, "/api/gym/exercise", token, gin.H{"date": date, "name": "Pull-up", "muscle_group": "Back", "sets": 4, "reps": 8})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var added struct {
			Exercise domain.GymExercise `json:"exercise"`
		}
		decode(t, rec, &added)
		exercise = added.Exercise
		assert.Equal(t, 4, exercise.Sets)

		rec = api.do(t, http.MethodPost, "/api/gym/meal", token, gin.H{"date": date, "calories": 650, "protein": 40})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var meal struct {
			Meal domain.GymMeal `json:"meal"`
		}
		decode(t, rec, &meal)
		assert.Equal(t, domain.DefaultMealName, meal.Meal.Name)
		assert.Equal(t, domain.DefaultMealType, meal.Meal.MealType)

		var day domain.GymDay
		decode(t, api.do(t, http.MethodGet, "/api/gym/"+date, token, nil), &day)
		assert.Equal(t, saved.ID, day.ID)
		require.NotNil(t, day.Weight)
		assert.Equal(t, 79.5, *day.Weight)
		assert.Len(t, day.Exercises, 1)
		assert.Len(t, day.Meals, 1)
	})

	t.Run("should chart the week", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/gym/analytics/week", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var stats []domain.GymDayStats
		decode(t, rec, &stats)
		require.Len(t, stats, 1)
		assert.Equal(t, 650, stats[0].CaloriesConsumed)
		assert.Equal(t, 1, stats[0].WorkoutCount)

		rec = api.do(t, http.MethodGet, "/api/gym/analytics/decade", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should require month and year for history", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/gym/history?month=3", token, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Month and year are required","code":"BAD_REQUEST"}`, rec.Body.String())

		rec = api.do(t, http.MethodGet, "/api/gym/history?month=1&year=2001", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("should merge goal updates", func(t *testing.T) {
		var goal domain.GymGoal
		decode(t, api.do(t, http.MethodGet, "/api/gym/goal", token, nil), &goal)
		assert.Equal(t, domain.DefaultGymGoal(), goal)

		rec := api.do(t, http.MethodPost, "/api/gym/goal", token, gin.H{"target_pullups": 12})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		decode(t, api.do(t, http.MethodGet, "/api/gym/goal", token, nil), &goal)
		assert.Equal(t, 12, goal.TargetPullups)
		assert.Equal(t, 2500, goal.TargetCalories)
	})

	t.Run("should show the day on the dashboard", func(t *testing.T) {
		var summary services.DashboardSummary
		decode(t, api.do(t, http.MethodGet, "/api/dashboard/summary?local_iso_date="+date, token, nil), &summary)
		assert.Equal(t, services.GymSummary{WaterGlasses: 6, Pullups: 8}, summary.Gym)
	})

	t.Run("should keep other users away from entries", func(t *testing.T) {
		rec := api.do(t, http.MethodDelete, "/api/gym/exercise/"+exercise.ID, other, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = api.do(t, http.MethodDelete, "/api/gym/exercise/"+exercise.ID, token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Exercise deleted successfully"}`, rec.Body.String())
	})
}
