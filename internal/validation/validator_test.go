package validation

import (
	"strings"
	"testing"

	"pomofocus/internal/config"
	"pomofocus/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Primitives(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsNonEmptyString(" a "))
	assert.False(t, v.IsNonEmptyString("   "))
	assert.True(t, v.IsValidStringLength("héllo", 5, 5))
	assert.True(t, v.IsValidEmail("ada@example.com"))
	assert.False(t, v.IsValidEmail("ada@example"))
	assert.False(t, v.IsValidEmail("ada example.com"))
	assert.True(t, v.IsInRange(5, 1, 5))
	assert.False(t, v.IsInRange(0, 1, 5))
	assert.True(t, v.IsValidDate("2026-02-28"))
	assert.False(t, v.IsValidDate("2026-02-30"))
	assert.Equal(t, 255, v.TitleMaxLength())
	assert.Equal(t, 6, v.PasswordMinLength())
}

func TestValidator_ConfiguredLimits(t *testing.T) {
	v := NewValidatorWithConfig(&config.ValidationConfig{TitleMaxLength: 10, PasswordMinLength: 12})

	assert.Equal(t, 10, v.TitleMaxLength())
	assert.Equal(t, 12, v.PasswordMinLength())

	_, err := NewTaskValidator(v).ValidateTitle("eleven char")
	assert.Error(t, err)
}

func TestTaskValidator_ValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		want    string
		wantErr string
	}{
		{"should trim a valid title", "  Write tests  ", "Write tests", ""},
		{"should accept unicode", "Café ☕ review", "Café ☕ review", ""},
		{"should reject empty", "", "", "title is required."},
		{"should reject whitespace", "   ", "", "title is required."},
		{"should reject overlong", strings.Repeat("a", 256), "", "title must be at most 255 characters."},
	}

	tv := NewTaskValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tv.ValidateTitle(tt.title)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.(*ValidationError).GetUserFriendlyMessage())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskValidator_ValidateTitleUpdate(t *testing.T) {
	tv := NewTaskValidator(nil)

	assert.NoError(t, tv.ValidateTitleUpdate(nil))

	title := "  padded "
	require.NoError(t, tv.ValidateTitleUpdate(&title))
	assert.Equal(t, "padded", title)

	blank := " "
	assert.Error(t, tv.ValidateTitleUpdate(&blank))
}

func TestUserValidator(t *testing.T) {
	uv := NewUserValidator(nil)

	t.Run("should normalise a valid email", func(t *testing.T) {
		email, err := uv.ValidateCredentials(" Ada@Example.com ", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", email)
	})

	t.Run("should collect every credential problem", func(t *testing.T) {
		_, err := uv.ValidateCredentials("not-an-email", "123")
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.Len(t, ve.GetFieldErrors("email"), 1)
		assert.Len(t, ve.GetFieldErrors("password"), 1)
	})

	t.Run("should require a password", func(t *testing.T) {
		err := uv.ValidatePassword("new_password", "")
		require.Error(t, err)
		assert.Equal(t, ErrorTypeRequired, err.(*ValidationError).Errors[0].Type)
	})

	t.Run("should bound the daily goal", func(t *testing.T) {
		assert.NoError(t, uv.ValidateDailyGoal(8))
		assert.Error(t, uv.ValidateDailyGoal(0))
		assert.Error(t, uv.ValidateDailyGoal(49))
	})

	t.Run("should check role and plan", func(t *testing.T) {
		role, plan := "admin", "pro"
		assert.NoError(t, uv.ValidateAccountUpdate(&role, &plan))
		badRole, badPlan := "root", "gold"
		err := uv.ValidateAccountUpdate(&badRole, &badPlan)
		require.Error(t, err)
		assert.Len(t, err.(*ValidationError).Errors, 2)
		assert.NoError(t, uv.ValidateAccountUpdate(nil, nil))
	})
}

func TestValidator_ValidateSession(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		duration int
		kind     string
		wantErr  bool
	}{
		{"should accept a pomodoro", 1500, "pomodoro", false},
		{"should accept a long break", 900, "longBreak", false},
		{"should reject a zero duration", 0, "pomodoro", true},
		{"should reject a missing type", 300, "", true},
		{"should reject an unknown type", 300, "nap", true},
		{"should reject a day-long session", 24*60*60 + 1, "pomodoro", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSession(tt.duration, tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Projects(t *testing.T) {
	v := NewValidator()

	name, err := v.ValidateProjectName("  Launch  ")
	require.NoError(t, err)
	assert.Equal(t, "Launch", name)

	_, err = v.ValidateProjectName("")
	assert.Error(t, err)

	assert.NoError(t, v.ValidateProjectStatus("review"))
	assert.Error(t, v.ValidateProjectStatus("blocked"))

	assert.NoError(t, v.ValidateReorder("backlog", []string{}))
	assert.NoError(t, v.ValidateReorder("", []string{"a"}))
	assert.Error(t, v.ValidateReorder("blocked", []string{"a"}))
	assert.Error(t, v.ValidateReorder("backlog", nil))
}

func TestValidator_GoalsAndInterviews(t *testing.T) {
	v := NewValidator()

	_, err := v.ValidateGoalTitle(" ")
	assert.Error(t, err)
	text, err := v.ValidateStepText(" Read chapter 1 ")
	require.NoError(t, err)
	assert.Equal(t, "Read chapter 1", text)

	assert.NoError(t, v.ValidateOptionalDate("deadline", ""))
	assert.NoError(t, v.ValidateOptionalDate("deadline", "2026-12-31"))
	assert.Error(t, v.ValidateOptionalDate("deadline", "31/12/2026"))

	assert.NoError(t, v.ValidateApplication("Acme", "Engineer"))
	err = v.ValidateApplication("", "")
	require.Error(t, err)
	assert.Len(t, err.(*ValidationError).Errors, 2)

	empty := ""
	assert.NoError(t, v.ValidateApplicationUpdate(nil, nil))
	assert.Error(t, v.ValidateApplicationUpdate(&empty, nil))
}

func TestValidator_ValidateSettings(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateSettings(domain.DefaultSettings()))

	s := domain.DefaultSettings()
	s.FocusMinutes = 0
	s.LongBreakInterval = 13
	s.DashboardLayout = []string{"timer", "timer", "weather"}

	err := v.ValidateSettings(s)
	require.Error(t, err)
	ve := err.(*ValidationError)
	assert.Len(t, ve.GetFieldErrors("focus_duration"), 1)
	assert.Len(t, ve.GetFieldErrors("long_break_interval"), 1)
	assert.Len(t, ve.GetFieldErrors("dashboard_layout"), 2)
}

func TestValidator_Routines(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateRoutineDate("2026-03-10"))
	assert.Error(t, v.ValidateRoutineDate("today"))

	name, err := v.ValidateTemplateName("  Morning ")
	require.NoError(t, err)
	assert.Equal(t, "Morning", name)

	_, err = v.ValidateTemplateName("")
	assert.Error(t, err)
	_, err = v.ValidateTemplateName(strings.Repeat("x", 101))
	assert.Error(t, err)
}

func TestValidator_Gym(t *testing.T) {
	v := NewValidator()
	neg := -1
	heavy := 1200.0

	tests := []struct {
		name   string
		err    error
		fields []string
	}{
		{"should accept a plain date", v.ValidateGymDate("2026-03-10"), nil},
		{"should require a date", v.ValidateGymDate(""), []string{"date"}},
		{"should reject a malformed date", v.ValidateGymDate("10/03/2026"), []string{"date"}},
		{"should accept an empty day patch", v.ValidateGymDayPatch(domain.GymDayPatch{}), nil},
		{"should reject negative counters", v.ValidateGymDayPatch(domain.GymDayPatch{Pushups: &neg, Weight: &heavy}), []string{"pushups", "weight"}},
		{"should accept a defaulted exercise", v.ValidateGymExercise(domain.GymExerciseInput{}.Exercise()), nil},
		{"should reject negative sets", v.ValidateGymExercise(domain.GymExerciseInput{Sets: &neg}.Exercise()), []string{"sets"}},
		{"should accept a defaulted meal", v.ValidateGymMeal(domain.GymMealInput{}.Meal()), nil},
		{"should reject negative calories", v.ValidateGymMeal(domain.GymMealInput{Calories: &neg}.Meal()), []string{"calories"}},
		{"should accept the default goal", v.ValidateGymGoal(domain.DefaultGymGoal()), nil},
		{"should bound weekly workouts", v.ValidateGymGoal(domain.GymGoal{TargetWorkoutsPerWeek: 15}), []string{"target_workouts_per_week"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fields == nil {
				assert.NoError(t, tt.err)
				return
			}
			require.Error(t, tt.err)
			ve := tt.err.(*ValidationError)
			for _, f := range tt.fields {
				assert.Lenf(t, ve.GetFieldErrors(f), 1, "field %s", f)
			}
		})
	}
}
