package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	DailyGoal *int `json:"daily_goal"`
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) registerAuthRoutes(api *gin.RouterGroup) {
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.limiter.Middleware(), s.login)
}

func (s *Server) registerAccountRoutes(api *gin.RouterGroup) {
	api.GET("/auth/me", s.me)
	api.PUT("/auth/me", s.updateMe)
	api.PUT("/auth/password", s.changePassword)
}

func (s *Server) issue(c *gin.Context, user *domain.User) (string, bool) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.writeError(c, err)
		return "", false
	}
	return token, true
}

func (s *Server) register(c *gin.Context) {
	if !s.cfg.Auth.AllowRegistration {
		s.writeError(c, errors.NewPermissionError("Registration is disabled."))
		return
	}
	var req credentialsRequest
	if !s.bindJSON(c, &req) {
		return
	}
	user, err := s.svc.Users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	token, ok := s.issue(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if !s.bindJSON(c, &req) {
		return
	}
	user, err := s.svc.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	token, ok := s.issue(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token, "user": user})
}

func (s *Server) me(c *gin.Context) {
	user, err := s.svc.Users.GetUser(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateMe(c *gin.Context) {
	var req profileRequest
	if !s.bindJSON(c, &req) {
		return
	}
	user, err := s.svc.Users.UpdateProfile(c.Request.Context(), userID(c), req.DailyGoal)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) changePassword(c *gin.Context) {
	var req passwordRequest
	if !s.bindJSON(c, &req) {
		return
	}
	if err := s.svc.Users.ChangePassword(c.Request.Context(), userID(c), req.CurrentPassword, req.NewPassword); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Password updated successfully"))
}
