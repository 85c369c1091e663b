package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
	"pomofocus/internal/validation"
)

const invalidCredentials = "Invalid email or password."

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	deps
	repo          UserRepository
	userValidator *validation.UserValidator
}

// NewUserService creates a new UserService instance
func NewUserService(repo UserRepository, opts Options) UserService {
	return newUserService(repo, newDeps(opts))
}

func newUserService(repo UserRepository, d deps) *userServiceImpl {
	return &userServiceImpl{
		deps:          d,
		repo:          repo,
		userValidator: validation.NewUserValidator(d.validator),
	}
}

func (s *userServiceImpl) hashPassword(password string) (string, error) {
	cost := s.cfg.Auth.BcryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.WrapError(err, errors.ErrorTypeValidation, "password cannot be hashed")
	}
	return string(hash), nil
}

// Register creates a regular account
func (s *userServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	normalized, err := s.userValidator.ValidateCredentials(email, password)
	if err != nil {
		return nil, validation.Wrap(err)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:            normalized,
		PasswordHash:     hash,
		DailyGoal:        domain.DefaultDailyGoal,
		Role:             domain.RoleUser,
		SubscriptionPlan: domain.PlanFree,
		IsActive:         true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

// Authenticate checks credentials. Unknown emails, wrong passwords and
// deactivated accounts all fail with the same message.
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, errors.NewUnauthorizedError(invalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil || !user.IsActive {
		return nil, errors.NewUnauthorizedError(invalidCredentials)
	}
	return user, nil
}

// GetUser retrieves an account by id
func (s *userServiceImpl) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUser(ctx, id)
}

// UpdateProfile changes the user's daily pomodoro goal
func (s *userServiceImpl) UpdateProfile(ctx context.Context, id string, dailyGoal *int) (*domain.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if dailyGoal == nil {
		return user, nil
	}

	if err := s.userValidator.ValidateDailyGoal(*dailyGoal); err != nil {
		return nil, validation.Wrap(err)
	}
	user.DailyGoal = *dailyGoal
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one
func (s *userServiceImpl) ChangePassword(ctx context.Context, id, current, next string) error {
	if current == "" || next == "" {
		return errors.NewBadRequestError("Current and new passwords are required.")
	}

	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return errors.NewUnauthorizedError("Incorrect current password.")
	}
	if err := s.userValidator.ValidatePassword("new_password", next); err != nil {
		return validation.Wrap(err)
	}

	hash, err := s.hashPassword(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.logger.WithField("user_id", user.ID).Info("password changed")
	return nil
}

// BootstrapAdmin creates a superadmin or promotes an existing account.
// created reports whether a new account was made.
func (s *userServiceImpl) BootstrapAdmin(ctx context.Context, email, password string) (*domain.User, bool, error) {
	normalized, err := s.userValidator.ValidateCredentials(email, password)
	if err != nil {
		return nil, false, validation.Wrap(err)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, normalized)
	switch {
	case err == nil:
		existing.Role = domain.RoleSuperAdmin
		existing.SubscriptionPlan = domain.PlanPro
		existing.IsActive = true
		existing.PasswordHash = hash
		if err := s.repo.UpdateUser(ctx, existing); err != nil {
			return nil, false, err
		}
		s.logger.WithField("user_id", existing.ID).Info("user promoted to superadmin")
		return existing, false, nil
	case !errors.IsErrorType(err, errors.ErrorTypeNotFound):
		return nil, false, err
	}

	user := &domain.User{
		Email:            normalized,
		PasswordHash:     hash,
		DailyGoal:        domain.DefaultDailyGoal,
		Role:             domain.RoleSuperAdmin,
		SubscriptionPlan: domain.PlanPro,
		IsActive:         true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, false, err
	}
	s.logger.WithField("user_id", user.ID).Info("superadmin created")
	return user, true, nil
}
