package sqlite

import (
	"context"
	"time"

	"pomofocus/internal/domain"
)

// CreateApplication inserts a job application
func (s *Store) CreateApplication(ctx context.Context, a *domain.Application) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if a.ID == "" {
		a.ID = s.newID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.timestamp()
	}
	a.UpdatedAt = a.CreatedAt

	interviewers, err := EncodeJSON(a.Interviewers)
	if err != nil {
		return HandleDatabaseError("encode interviewers", err)
	}
	questions, err := EncodeJSON(a.Questions)
	if err != nil {
		return HandleDatabaseError("encode questions", err)
	}

	query := `INSERT INTO applications (` + applicationColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return Execute(ctx, s.db, "create application", query, a.ID, a.UserID, a.CompanyName, a.Role,
		a.CompanyPhone, a.CompanyEmail, a.ExpectedCTC, a.CurrentCTC, a.Stage,
		FormatTimePtrForDB(a.AppliedDate), FormatTimePtrForDB(a.InterviewDate), a.LocationType, a.Referral,
		a.JobDescription, a.JobPortalURL, a.JobPortalUsername, a.JobPortalPassword, a.ApplicationSource,
		a.ResumeVersion, interviewers, a.Notes, questions, FormatTimeForDB(a.CreatedAt), FormatTimeForDB(a.UpdatedAt))
}

// GetApplication retrieves an application owned by userID
func (s *Store) GetApplication(ctx context.Context, userID, id string) (*domain.Application, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ? AND user_id = ?`
	return QuerySingle(ctx, s.db, query, ScanApplication, "Application", id, id, userID)
}

// ListApplications returns a user's applications, newest first
func (s *Store) ListApplications(ctx context.Context, userID string) ([]*domain.Application, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + applicationColumns + `
	FROM applications
	WHERE user_id = ?
	ORDER BY created_at DESC`

	return QueryMultiple(ctx, s.db, query, ScanApplication, "applications", userID)
}

// ListInterviewsBetween returns applications whose interview falls in
// [from, to), soonest first
func (s *Store) ListInterviewsBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.Application, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + applicationColumns + `
	FROM applications
	WHERE user_id = ? AND interview_date IS NOT NULL AND interview_date >= ? AND interview_date < ?
	ORDER BY interview_date ASC`

	return QueryMultiple(ctx, s.db, query, ScanApplication, "interviews", userID, FormatTimeForDB(from), FormatTimeForDB(to))
}

// UpdateApplication writes every mutable column of a and bumps updated_at
func (s *Store) UpdateApplication(ctx context.Context, a *domain.Application) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a.UpdatedAt = s.timestamp()

	interviewers, err := EncodeJSON(a.Interviewers)
	if err != nil {
		return HandleDatabaseError("encode interviewers", err)
	}
	questions, err := EncodeJSON(a.Questions)
	if err != nil {
		return HandleDatabaseError("encode questions", err)
	}

	query := `
	UPDATE applications
	SET company_name = ?, role = ?, company_phone = ?, company_email = ?, expected_ctc = ?, current_ctc = ?,
		stage = ?, applied_date = ?, interview_date = ?, location_type = ?, referral = ?, job_description = ?,
		job_portal_url = ?, job_portal_username = ?, job_portal_password = ?, application_source = ?,
		resume_version = ?, interviewers = ?, notes = ?, questions = ?, updated_at = ?
	WHERE id = ? AND user_id = ?`

	return ExecuteWithRowsAffected(ctx, s.db, query, "Application", a.ID, a.CompanyName, a.Role, a.CompanyPhone,
		a.CompanyEmail, a.ExpectedCTC, a.CurrentCTC, a.Stage, FormatTimePtrForDB(a.AppliedDate),
		FormatTimePtrForDB(a.InterviewDate), a.LocationType, a.Referral, a.JobDescription, a.JobPortalURL,
		a.JobPortalUsername, a.JobPortalPassword, a.ApplicationSource, a.ResumeVersion, interviewers, a.Notes,
		questions, FormatTimeForDB(a.UpdatedAt), a.ID, a.UserID)
}

// DeleteApplication deletes an application owned by userID
func (s *Store) DeleteApplication(ctx context.Context, userID, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM applications WHERE id = ? AND user_id = ?`
	return ExecuteWithRowsAffected(ctx, s.db, query, "Application", id, id, userID)
}
