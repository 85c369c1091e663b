package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
)

func TestInterviewService_CreateApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newInterviewService(env.store, env.deps)
	user := env.createUser(t, "jobs@example.com")

	t.Run("should apply pipeline defaults", func(t *testing.T) {
		app, err := service.CreateApplication(ctx, user.ID, ApplicationInput{
			CompanyName: strPtr("Acme"),
			Role:        strPtr("Engineer"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StageApplied, app.Stage)
		assert.Equal(t, domain.DefaultReferral, app.Referral)
		assert.Equal(t, domain.DefaultApplicationSource, app.ApplicationSource)
		assert.NotNil(t, app.Interviewers)
		assert.NotNil(t, app.Questions)
		assert.Nil(t, app.InterviewDate)
	})

	t.Run("should keep dates and free-form lists", func(t *testing.T) {
		interviewers := domain.JSONList{json.RawMessage(`{"name":"Ada"}`)}
		app, err := service.CreateApplication(ctx, user.ID, ApplicationInput{
			CompanyName:   strPtr("Globex"),
			Role:          strPtr("Lead"),
			Stage:         strPtr("Technical"),
			AppliedDate:   strPtr("2026-03-01"),
			InterviewDate: strPtr("2026-03-12T10:30:00Z"),
			Interviewers:  &interviewers,
		})
		require.NoError(t, err)
		require.NotNil(t, app.InterviewDate)
		assert.Equal(t, time.Date(2026, 3, 12, 10, 30, 0, 0, time.UTC), *app.InterviewDate)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *app.AppliedDate)

		apps, err := service.ListApplications(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, apps, 2)
		assert.Equal(t, "Globex", apps[0].CompanyName)
		require.Len(t, apps[0].Interviewers, 1)
		assert.JSONEq(t, `{"name":"Ada"}`, string(apps[0].Interviewers[0]))
	})

	tests := []struct {
		name  string
		input ApplicationInput
	}{
		{"should require a company", ApplicationInput{Role: strPtr("Engineer")}},
		{"should require a role", ApplicationInput{CompanyName: strPtr("Acme"), Role: strPtr(" ")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateApplication(ctx, user.ID, tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
		})
	}
}

func TestInterviewService_UpdateApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newInterviewService(env.store, env.deps)
	user := env.createUser(t, "jobs@example.com")

	app, err := service.CreateApplication(ctx, user.ID, ApplicationInput{
		CompanyName:   strPtr("Acme"),
		Role:          strPtr("Engineer"),
		InterviewDate: strPtr("2026-03-12"),
	})
	require.NoError(t, err)

	tests := []struct {
		name          string
		input         ApplicationInput
		wantStage     string
		wantInterview bool
		errType       *errors.ErrorType
	}{
		{
			name:          "should ignore an unparsable date",
			input:         ApplicationInput{InterviewDate: strPtr("next tuesday"), Stage: strPtr("HR")},
			wantStage:     "HR",
			wantInterview: true,
		},
		{
			name:          "should clear a blank date",
			input:         ApplicationInput{InterviewDate: strPtr("")},
			wantStage:     "HR",
			wantInterview: false,
		},
		{
			name:    "should reject a blanked company",
			input:   ApplicationInput{CompanyName: strPtr("")},
			errType: errorTypePtr(errors.ErrorTypeValidation),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.UpdateApplication(ctx, user.ID, app.ID, tt.input)
			if tt.errType != nil {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, *tt.errType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStage, got.Stage)
			assert.Equal(t, tt.wantInterview, got.InterviewDate != nil)
			assert.Equal(t, "Acme", got.CompanyName)
		})
	}

	t.Run("should hide another user's application", func(t *testing.T) {
		stranger := env.createUser(t, "stranger@example.com")
		_, err := service.UpdateApplication(ctx, stranger.ID, app.ID, ApplicationInput{Stage: strPtr("Offer")})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
		assert.True(t, errors.IsErrorType(service.DeleteApplication(ctx, stranger.ID, app.ID), errors.ErrorTypeNotFound))
	})

	t.Run("should delete the application", func(t *testing.T) {
		require.NoError(t, service.DeleteApplication(ctx, user.ID, app.ID))
		apps, err := service.ListApplications(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, apps)
	})
}

func TestInterviewService_KPIs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newInterviewService(env.store, env.deps)
	user := env.createUser(t, "jobs@example.com")

	seed := []ApplicationInput{
		{CompanyName: strPtr("A"), Role: strPtr("R"), InterviewDate: strPtr("2026-03-12")},
		{CompanyName: strPtr("B"), Role: strPtr("R"), InterviewDate: strPtr("2026-03-13"), Stage: strPtr("Offer")},
		{CompanyName: strPtr("C"), Role: strPtr("R"), Stage: strPtr("Rejected")},
		{CompanyName: strPtr("D"), Role: strPtr("R")},
	}
	for _, in := range seed {
		_, err := service.CreateApplication(ctx, user.ID, in)
		require.NoError(t, err)
	}

	kpis, err := service.KPIs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InterviewKPIs{Total: 4, Scheduled: 1, Offers: 1, Rejected: 1}, kpis)
}
