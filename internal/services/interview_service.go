package services

import (
	"context"

	"pomofocus/internal/domain"
	"pomofocus/internal/validation"
)

// interviewServiceImpl implements the InterviewService interface
type interviewServiceImpl struct {
	deps
	repo ApplicationRepository
}

// NewInterviewService creates a new InterviewService instance
func NewInterviewService(repo ApplicationRepository, opts Options) InterviewService {
	return newInterviewService(repo, newDeps(opts))
}

func newInterviewService(repo ApplicationRepository, d deps) *interviewServiceImpl {
	return &interviewServiceImpl{deps: d, repo: repo}
}

// ListApplications returns the user's applications, newest first
func (s *interviewServiceImpl) ListApplications(ctx context.Context, userID string) ([]*domain.Application, error) {
	return s.repo.ListApplications(ctx, userID)
}

// CreateApplication adds an application to the pipeline
func (s *interviewServiceImpl) CreateApplication(ctx context.Context, userID string, input ApplicationInput) (*domain.Application, error) {
	if err := s.validator.ValidateApplication(stringValue(input.CompanyName), stringValue(input.Role)); err != nil {
		return nil, validation.Wrap(err)
	}

	app := &domain.Application{
		UserID:            userID,
		Stage:             domain.StageApplied,
		Referral:          domain.DefaultReferral,
		ApplicationSource: domain.DefaultApplicationSource,
		Interviewers:      domain.JSONList{},
		Questions:         domain.JSONList{},
	}
	applyApplicationInput(app, input)

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return app, nil
}

// UpdateApplication applies a partial update. Blank dates clear the value
// and unparsable dates leave it unchanged.
func (s *interviewServiceImpl) UpdateApplication(ctx context.Context, userID, id string, input ApplicationInput) (*domain.Application, error) {
	app, err := s.repo.GetApplication(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateApplicationUpdate(input.CompanyName, input.Role); err != nil {
		return nil, validation.Wrap(err)
	}

	applyApplicationInput(app, input)
	if err := s.repo.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return app, nil
}

// DeleteApplication removes an application
func (s *interviewServiceImpl) DeleteApplication(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteApplication(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// KPIs returns the headline counters of the pipeline
func (s *interviewServiceImpl) KPIs(ctx context.Context, userID string) (domain.InterviewKPIs, error) {
	apps, err := s.repo.ListApplications(ctx, userID)
	if err != nil {
		return domain.InterviewKPIs{}, err
	}
	return domain.ComputeKPIs(apps), nil
}

func applyApplicationInput(a *domain.Application, in ApplicationInput) {
	fields := []struct {
		src *string
		dst *string
	}{
		{in.CompanyName, &a.CompanyName},
		{in.Role, &a.Role},
		{in.CompanyPhone, &a.CompanyPhone},
		{in.CompanyEmail, &a.CompanyEmail},
		{in.ExpectedCTC, &a.ExpectedCTC},
		{in.CurrentCTC, &a.CurrentCTC},
		{in.Stage, &a.Stage},
		{in.LocationType, &a.LocationType},
		{in.Referral, &a.Referral},
		{in.JobDescription, &a.JobDescription},
		{in.JobPortalURL, &a.JobPortalURL},
		{in.JobPortalUsername, &a.JobPortalUsername},
		{in.JobPortalPassword, &a.JobPortalPassword},
		{in.ApplicationSource, &a.ApplicationSource},
		{in.ResumeVersion, &a.ResumeVersion},
		{in.Notes, &a.Notes},
	}
	for _, f := range fields {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	if d := domain.ParseOptionalTime(in.AppliedDate); d.Set {
		a.AppliedDate = d.Value
	}
	if d := domain.ParseOptionalTime(in.InterviewDate); d.Set {
		a.InterviewDate = d.Value
	}
	if in.Interviewers != nil {
		a.Interviewers = *in.Interviewers
	}
	if in.Questions != nil {
		a.Questions = *in.Questions
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
