package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/domain"
)

type routineRequest struct {
	Entries []domain.RoutineEntry `json:"entries"`
}

type templateRequest struct {
	Name    string                `json:"name"`
	Entries []domain.RoutineEntry `json:"entries"`
}

func (s *Server) registerRoutineRoutes(api *gin.RouterGroup) {
	api.GET("/routines/calendar", s.routineCalendar)
	api.GET("/routines/streak", s.routineStreak)
	api.GET("/routines/templates", s.listTemplates)
	api.POST("/routines/templates", s.createTemplate)
	api.DELETE("/routines/templates/:id", s.deleteTemplate)
	api.GET("/routines/:date", s.getRoutine)
	api.PUT("/routines/:date", s.saveRoutine)
}

func (s *Server) getRoutine(c *gin.Context) {
	routine, err := s.svc.Routines.GetRoutine(c.Request.Context(), userID(c), c.Param("date"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (s *Server) saveRoutine(c *gin.Context) {
	var req routineRequest
	if !s.bindJSON(c, &req) {
		return
	}
	routine, err := s.svc.Routines.SaveRoutine(c.Request.Context(), userID(c), c.Param("date"), req.Entries)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (s *Server) routineCalendar(c *gin.Context) {
	days, err := s.svc.Routines.Calendar(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

func (s *Server) routineStreak(c *gin.Context) {
	streak, err := s.svc.Routines.Streak(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, streak)
}

func (s *Server) listTemplates(c *gin.Context) {
	templates, err := s.svc.Routines.ListTemplates(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (s *Server) createTemplate(c *gin.Context) {
	var req templateRequest
	if !s.bindJSON(c, &req) {
		return
	}
	template, err := s.svc.Routines.CreateTemplate(c.Request.Context(), userID(c), req.Name, req.Entries)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (s *Server) deleteTemplate(c *gin.Context) {
	if err := s.svc.Routines.DeleteTemplate(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Template deleted successfully"))
}
