package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/services"
)

func (s *Server) registerInterviewRoutes(api *gin.RouterGroup) {
	api.GET("/interviews", s.listApplications)
	api.POST("/interviews", s.createApplication)
	api.GET("/interviews/kpis", s.interviewKPIs)
	api.PUT("/interviews/:id", s.updateApplication)
	api.DELETE("/interviews/:id", s.deleteApplication)
}

func (s *Server) listApplications(c *gin.Context) {
	apps, err := s.svc.Interviews.ListApplications(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (s *Server) createApplication(c *gin.Context) {
	var input services.ApplicationInput
	if !s.bindJSON(c, &input) {
		return
	}
	app, err := s.svc.Interviews.CreateApplication(c.Request.Context(), userID(c), input)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Interview application created successfully", "id": app.ID})
}

func (s *Server) updateApplication(c *gin.Context) {
	var input services.ApplicationInput
	if !s.bindJSON(c, &input) {
		return
	}
	app, err := s.svc.Interviews.UpdateApplication(c.Request.Context(), userID(c), c.Param("id"), input)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (s *Server) deleteApplication(c *gin.Context) {
	if err := s.svc.Interviews.DeleteApplication(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Application deleted successfully"))
}

func (s *Server) interviewKPIs(c *gin.Context) {
	kpis, err := s.svc.Interviews.KPIs(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}
