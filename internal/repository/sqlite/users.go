package sqlite

import (
	"context"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
)

// CreateUser inserts u, assigning its id and creation time when unset.
// A taken email is reported as a conflict.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if u.ID == "" {
		u.ID = s.newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.timestamp()
	}

	query := `
	INSERT INTO users (` + userColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.DailyGoal, string(u.Role),
		string(u.SubscriptionPlan), u.IsActive, FormatTimeForDB(u.CreatedAt))
	if IsUniqueViolation(err) {
		return errors.NewConflictError("email", "Email already registered.")
	}
	if err != nil {
		return HandleDatabaseError("create user", err)
	}
	return nil
}

// GetUser retrieves a user by id
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return QuerySingle(ctx, s.db, query, ScanUser, "User", id, id)
}

// GetUserByEmail retrieves a user by normalized email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return QuerySingle(ctx, s.db, query, ScanUser, "User", email, email)
}

// ListUsers returns every account, newest first
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	return QueryMultiple(ctx, s.db, query, ScanUser, "users")
}

// UpdateUser writes every mutable column of u
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE users
	SET email = ?, password_hash = ?, daily_goal = ?, role = ?, subscription_plan = ?, is_active = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, s.db, query, "User", u.ID, u.Email, u.PasswordHash, u.DailyGoal,
		string(u.Role), string(u.SubscriptionPlan), u.IsActive, u.ID)
}

// DeleteUser removes a user and, through cascades, everything they own
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return ExecuteWithRowsAffected(ctx, s.db, `DELETE FROM users WHERE id = ?`, "User", id, id)
}
