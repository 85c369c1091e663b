package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerCalendarRoutes(api *gin.RouterGroup) {
	api.GET("/calendar/events", s.calendarEvents)
}

func (s *Server) registerDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/dashboard/summary", s.dashboardSummary)
}

func (s *Server) calendarEvents(c *gin.Context) {
	events, err := s.svc.Calendar.Events(c.Request.Context(), userID(c), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) dashboardSummary(c *gin.Context) {
	summary, err := s.svc.Dashboard.Summary(c.Request.Context(), userID(c), c.Query("local_iso_date"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
