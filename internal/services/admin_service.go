package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
	"pomofocus/internal/validation"
)

// adminServiceImpl implements the AdminService interface
type adminServiceImpl struct {
	deps
	repo  UserRepository
	users *userServiceImpl
}

func newAdminService(repo UserRepository, d deps) *adminServiceImpl {
	return &adminServiceImpl{deps: d, repo: repo, users: newUserService(repo, d)}
}

// ListUsers returns every account, newest first
func (s *adminServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func isSuperAdmin(u *domain.User) bool {
	return u != nil && u.Role == domain.RoleSuperAdmin
}

func grantsSuperAdmin(role *string) bool {
	return role != nil && domain.Role(*role) == domain.RoleSuperAdmin
}

// CreateUser creates an account with an explicit role and plan. Role and
// plan default to user and free. Only superadmins may create superadmins.
func (s *adminServiceImpl) CreateUser(ctx context.Context, actor *domain.User, input NewAccountInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, errors.NewBadRequestError("Email and password are required.")
	}
	if grantsSuperAdmin(input.Role) && !isSuperAdmin(actor) {
		return nil, errors.NewPermissionError("Only Superadmins can grant the superadmin role.")
	}

	ve := validation.NewValidationError()
	email, err := s.users.userValidator.ValidateCredentials(input.Email, input.Password)
	ve.Merge(err)
	ve.Merge(s.users.userValidator.ValidateAccountUpdate(input.Role, input.SubscriptionPlan))
	if ve.HasErrors() {
		return nil, ve.AsAppError()
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, errors.NewBadRequestError("Email already registered.")
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	hash, err := s.users.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:            email,
		PasswordHash:     hash,
		DailyGoal:        domain.DefaultDailyGoal,
		Role:             domain.RoleUser,
		SubscriptionPlan: domain.PlanFree,
		IsActive:         true,
	}
	if input.Role != nil {
		user.Role = domain.Role(*input.Role)
	}
	if input.SubscriptionPlan != nil {
		user.SubscriptionPlan = domain.Plan(*input.SubscriptionPlan)
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeConflict) {
			return nil, errors.NewBadRequestError("Email already registered.")
		}
		return nil, err
	}

	s.logger.WithFields(log.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("account created by admin")
	return user, nil
}

// UpdateUser changes role, plan or active flag. Only superadmins may grant
// the superadmin role or change a superadmin account.
func (s *adminServiceImpl) UpdateUser(ctx context.Context, actor *domain.User, id string, patch AccountPatch) (*domain.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.userValidator.ValidateAccountUpdate(patch.Role, patch.SubscriptionPlan); err != nil {
		return nil, validation.Wrap(err)
	}
	if !isSuperAdmin(actor) {
		if user.Role == domain.RoleSuperAdmin {
			return nil, errors.NewPermissionError("Only Superadmins can modify other Superadmins.")
		}
		if grantsSuperAdmin(patch.Role) {
			return nil, errors.NewPermissionError("Only Superadmins can grant the superadmin role.")
		}
	}

	if patch.Role != nil {
		user.Role = domain.Role(*patch.Role)
	}
	if patch.SubscriptionPlan != nil {
		user.SubscriptionPlan = domain.Plan(*patch.SubscriptionPlan)
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account and everything it owns. Administrators
// cannot delete themselves and only superadmins may delete superadmins.
func (s *adminServiceImpl) DeleteUser(ctx context.Context, actor *domain.User, id string) error {
	target, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if actor != nil && target.ID == actor.ID {
		return errors.NewBadRequestError("You cannot delete your own account.")
	}
	if target.Role == domain.RoleSuperAdmin && !isSuperAdmin(actor) {
		return errors.NewPermissionError("Only Superadmins can delete other Superadmins.")
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.logger.WithField("user_id", id).Info("account deleted")
	return nil
}
