package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/auth"
	"pomofocus/internal/services"
)

func (s *Server) registerAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", s.adminListUsers)
	admin.POST("/users", s.adminCreateUser)
	admin.PUT("/users/:id", s.adminUpdateUser)
	admin.DELETE("/users/:id", s.adminDeleteUser)
}

func (s *Server) adminListUsers(c *gin.Context) {
	users, err := s.svc.Admin.ListUsers(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) adminCreateUser(c *gin.Context) {
	var input services.NewAccountInput
	if !s.bindJSON(c, &input) {
		return
	}
	user, err := s.svc.Admin.CreateUser(c.Request.Context(), auth.UserFromContext(c), input)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

func (s *Server) adminUpdateUser(c *gin.Context) {
	var patch services.AccountPatch
	if !s.bindJSON(c, &patch) {
		return
	}
	user, err := s.svc.Admin.UpdateUser(c.Request.Context(), auth.UserFromContext(c), c.Param("id"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

func (s *Server) adminDeleteUser(c *gin.Context) {
	if err := s.svc.Admin.DeleteUser(c.Request.Context(), auth.UserFromContext(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("User deleted successfully"))
}
