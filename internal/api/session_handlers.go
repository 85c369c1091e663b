package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/services"
)

func (s *Server) registerSessionRoutes(api *gin.RouterGroup) {
	api.POST("/sessions", s.recordSession)
	api.GET("/sessions/stats/today", s.todayStats)
	api.GET("/sessions/stats/weekly", s.weeklyStats)
}

func (s *Server) recordSession(c *gin.Context) {
	var input services.SessionInput
	if !s.bindJSON(c, &input) {
		return
	}
	session, err := s.svc.Sessions.RecordSession(c.Request.Context(), userID(c), input)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (s *Server) todayStats(c *gin.Context) {
	count, err := s.svc.Sessions.TodayPomodoros(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"today_pomodoros": count})
}

func (s *Server) weeklyStats(c *gin.Context) {
	days, err := s.svc.Sessions.WeeklySessions(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}
