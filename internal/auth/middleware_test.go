package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
)

type stubUsers map[string]*domain.User

func (s stubUsers) GetUser(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user", id)
}

func newAuthRouter(issuer *TokenIssuer, users UserLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	protected := router.Group("", RequireAuth(issuer, users))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserIDFromContext(c), "email": UserFromContext(c).Email})
	})
	protected.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	users := stubUsers{
		"u-1":  {ID: "u-1", Email: "one@example.com", Role: domain.RoleUser, IsActive: true},
		"u-2":  {ID: "u-2", Email: "two@example.com", Role: domain.RoleUser, IsActive: false},
		"boss": {ID: "boss", Email: "boss@example.com", Role: domain.RoleAdmin, IsActive: true},
	}
	router := newAuthRouter(issuer, users)

	bearer := func(id string) string {
		token, err := issuer.Issue(id)
		require.NoError(t, err)
		return "Bearer " + token
	}

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "should load the token's user", path: "/me", header: bearer("u-1"), wantStatus: http.StatusOK, wantBody: `{"id":"u-1","email":"one@example.com"}`},
		{name: "should reject a missing token", path: "/me", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Authorization required.","code":"UNAUTHORIZED"}`},
		{name: "should reject a deleted user", path: "/me", header: bearer("ghost"), wantStatus: http.StatusUnauthorized},
		{name: "should reject a deactivated user", path: "/me", header: bearer("u-2"), wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Account is deactivated.","code":"UNAUTHORIZED"}`},
		{name: "should keep members out of admin routes", path: "/admin", header: bearer("u-1"), wantStatus: http.StatusForbidden},
		{name: "should let admins into admin routes", path: "/admin", header: bearer("boss"), wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
