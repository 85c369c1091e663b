package domain

import (
	"strings"
	"time"
)

// Role controls access to the admin surface.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanAdminister reports whether r may use the admin endpoints.
func (r Role) CanAdminister() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Plan is the subscription tier of a user.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// IsValid reports whether p is a known plan.
func (p Plan) IsValid() bool {
	return p == PlanFree || p == PlanPro
}

// DefaultDailyGoal is the number of pomodoros a new user aims for per day.
const DefaultDailyGoal = 8

// User is an account holder. PasswordHash never leaves the server.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	DailyGoal        int       `json:"daily_goal"`
	Role             Role      `json:"role"`
	SubscriptionPlan Plan      `json:"subscription_plan"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
