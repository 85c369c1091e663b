package auth

import (
	"context"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
)

const (
	contextKeyUser   = "auth_user"
	contextKeyUserID = "user_id"
)

// UserLoader resolves the account a token was issued for
type UserLoader interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// UserFromContext returns the account set by RequireAuth, nil if unset
func UserFromContext(c *gin.Context) *domain.User {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// UserIDFromContext returns the current user id, empty if unauthenticated
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(contextKeyUserID)
}

// RequireAuth validates the bearer token and loads its active account.
// Anything else is answered with 401.
func RequireAuth(tokens *TokenIssuer, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := tokens.SubjectFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			abort(c, errors.NewUnauthorizedError("Authorization required."))
			return
		}
		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
				abort(c, errors.NewUnauthorizedError("Authorization required."))
				return
			}
			abort(c, err)
			return
		}
		if !user.IsActive {
			abort(c, errors.NewUnauthorizedError("Account is deactivated."))
			return
		}
		c.Set(contextKeyUser, user)
		c.Set(contextKeyUserID, user.ID)
		c.Next()
	}
}

// RequireAdmin lets only admins and superadmins through. It must run after
// RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFromContext(c)
		if user == nil {
			abort(c, errors.NewUnauthorizedError("Authorization required."))
			return
		}
		if !user.Role.CanAdminister() {
			abort(c, errors.NewPermissionError("Admin access required."))
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errors.GetHTTPStatus(err), gin.H{
		"error": errors.GetUserMessage(err),
		"code":  errors.GetErrorCode(err),
	})
}
