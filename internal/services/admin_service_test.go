package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
)

var (
	superActor = &domain.User{ID: "super-actor", Role: domain.RoleSuperAdmin}
	adminActor = &domain.User{ID: "admin-actor", Role: domain.RoleAdmin}
)

func TestAdminService_CreateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newAdminService(env.store, env.deps)
	env.createUser(t, "taken@example.com")

	tests := []struct {
		name       string
		actor      *domain.User
		input      NewAccountInput
		wantRole   domain.Role
		wantPlan   domain.Plan
		wantStatus int
		wantMsg    string
	}{
		{
			name:     "should default role and plan",
			input:    NewAccountInput{Email: "plain@example.com", Password: "secret123"},
			wantRole: domain.RoleUser,
			wantPlan: domain.PlanFree,
		},
		{
			name:     "should honour an explicit role and plan",
			input:    NewAccountInput{Email: "boss@example.com", Password: "secret123", Role: strPtr("admin"), SubscriptionPlan: strPtr("pro")},
			wantRole: domain.RoleAdmin,
			wantPlan: domain.PlanPro,
		},
		{
			name:       "should require email and password",
			input:      NewAccountInput{Email: "nopass@example.com"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Email and password are required.",
		},
		{
			name:       "should reject a duplicate email",
			input:      NewAccountInput{Email: "taken@example.com", Password: "secret123"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Email already registered.",
		},
		{
			name:       "should reject an unknown role",
			input:      NewAccountInput{Email: "odd@example.com", Password: "secret123", Role: strPtr("owner")},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "should keep plain admins from creating superadmins",
			actor:      adminActor,
			input:      NewAccountInput{Email: "root2@example.com", Password: "secret123", Role: strPtr("superadmin")},
			wantStatus: http.StatusForbidden,
			wantMsg:    "Only Superadmins can grant the superadmin role.",
		},
		{
			name:     "should let plain admins create admins",
			actor:    adminActor,
			input:    NewAccountInput{Email: "helper@example.com", Password: "secret123", Role: strPtr("admin")},
			wantRole: domain.RoleAdmin,
			wantPlan: domain.PlanFree,
		},
		{
			name:     "should let superadmins create superadmins",
			input:    NewAccountInput{Email: "root3@example.com", Password: "secret123", Role: strPtr("superadmin")},
			wantRole: domain.RoleSuperAdmin,
			wantPlan: domain.PlanFree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := tt.actor
			if actor == nil {
				actor = superActor
			}
			user, err := service.CreateUser(ctx, actor, tt.input)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, errors.GetHTTPStatus(err))
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, errors.GetUserMessage(err))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, user.Role)
			assert.Equal(t, tt.wantPlan, user.SubscriptionPlan)
		})
	}
}

func TestAdminService_UpdateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newAdminService(env.store, env.deps)
	user := env.createUser(t, "member@example.com")

	updated, err := service.UpdateUser(ctx, superActor, user.ID, AccountPatch{
		Role:             strPtr("admin"),
		SubscriptionPlan: strPtr("pro"),
		IsActive:         boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, domain.PlanPro, updated.SubscriptionPlan)
	assert.False(t, updated.IsActive)

	_, err = service.UpdateUser(ctx, superActor, user.ID, AccountPatch{SubscriptionPlan: strPtr("gold")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	_, err = service.UpdateUser(ctx, superActor, "missing", AccountPatch{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestAdminService_UpdateUserRoles(t *testing.T) {
	tests := []struct {
		name       string
		actor      *domain.User
		targetRole domain.Role
		patch      AccountPatch
		wantStatus int
		wantRole   domain.Role
		wantActive bool
	}{
		{
			name:       "should keep plain admins from promoting to superadmin",
			actor:      adminActor,
			targetRole: domain.RoleUser,
			patch:      AccountPatch{Role: strPtr("superadmin")},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "should keep plain admins from demoting a superadmin",
			actor:      adminActor,
			targetRole: domain.RoleSuperAdmin,
			patch:      AccountPatch{Role: strPtr("user")},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "should keep plain admins from deactivating a superadmin",
			actor:      adminActor,
			targetRole: domain.RoleSuperAdmin,
			patch:      AccountPatch{IsActive: boolPtr(false)},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "should keep a missing actor from changing a superadmin plan",
			targetRole: domain.RoleSuperAdmin,
			patch:      AccountPatch{SubscriptionPlan: strPtr("pro")},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "should let plain admins manage members",
			actor:      adminActor,
			targetRole: domain.RoleUser,
			patch:      AccountPatch{Role: strPtr("admin"), IsActive: boolPtr(false)},
			wantRole:   domain.RoleAdmin,
		},
		{
			name:       "should let superadmins promote to superadmin",
			actor:      superActor,
			targetRole: domain.RoleUser,
			patch:      AccountPatch{Role: strPtr("superadmin")},
			wantRole:   domain.RoleSuperAdmin,
			wantActive: true,
		},
		{
			name:       "should let superadmins demote a superadmin",
			actor:      superActor,
			targetRole: domain.RoleSuperAdmin,
			patch:      AccountPatch{Role: strPtr("admin")},
			wantRole:   domain.RoleAdmin,
			wantActive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			service := newAdminService(env.store, env.deps)

			target := env.createUser(t, "target@example.com")
			target.Role = tt.targetRole
			require.NoError(t, env.store.UpdateUser(ctx, target))

			updated, err := service.UpdateUser(ctx, tt.actor, target.ID, tt.patch)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, errors.GetHTTPStatus(err))

				stored, err := env.store.GetUser(ctx, target.ID)
				require.NoError(t, err)
				assert.Equal(t, tt.targetRole, stored.Role)
				assert.True(t, stored.IsActive)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, updated.Role)
			assert.Equal(t, tt.wantActive, updated.IsActive)
		})
	}
}

func TestAdminService_DeleteUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newAdminService(env.store, env.deps)

	admin := env.createUser(t, "admin@example.com")
	admin.Role = domain.RoleAdmin
	require.NoError(t, env.store.UpdateUser(ctx, admin))

	super := env.createUser(t, "super@example.com")
	super.Role = domain.RoleSuperAdmin
	require.NoError(t, env.store.UpdateUser(ctx, super))

	member := env.createUser(t, "member@example.com")

	t.Run("should refuse to delete the acting account", func(t *testing.T) {
		err := service.DeleteUser(ctx, admin, admin.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, errors.GetHTTPStatus(err))
		assert.Equal(t, "You cannot delete your own account.", errors.GetUserMessage(err))
	})

	t.Run("should keep superadmins away from admins", func(t *testing.T) {
		err := service.DeleteUser(ctx, admin, super.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, errors.GetHTTPStatus(err))
	})

	t.Run("should delete a regular member", func(t *testing.T) {
		require.NoError(t, service.DeleteUser(ctx, admin, member.ID))
		_, err := env.store.GetUser(ctx, member.ID)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
		assert.Equal(t, 1, env.cache.invalidationCount(member.ID))
	})

	t.Run("should let a superadmin delete an admin", func(t *testing.T) {
		require.NoError(t, service.DeleteUser(ctx, super, admin.ID))
	})

	t.Run("should report a missing account", func(t *testing.T) {
		err := service.DeleteUser(ctx, super, "missing")
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})
}
