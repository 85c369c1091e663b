package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/timer"
)

type modeRequest struct {
	Mode string `json:"mode"`
}

type focusRequest struct {
	ProjectID     *string `json:"project_id"`
	ProjectTaskID *string `json:"project_task_id"`
}

func (s *Server) registerTimerRoutes(api *gin.RouterGroup) {
	api.GET("/timer", s.timerAction(s.timers.State))
	api.POST("/timer/toggle", s.timerAction(s.timers.Toggle))
	api.POST("/timer/reset", s.timerAction(s.timers.Reset))
	api.POST("/timer/mode", s.changeTimerMode)
	api.POST("/timer/focus", s.focusTimer)
}

func (s *Server) timerAction(action func(ctx context.Context, userID string) (timer.State, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := action(c.Request.Context(), userID(c))
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func (s *Server) changeTimerMode(c *gin.Context) {
	var req modeRequest
	if !s.bindJSON(c, &req) {
		return
	}
	state, err := s.timers.ChangeMode(c.Request.Context(), userID(c), req.Mode)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) focusTimer(c *gin.Context) {
	var req focusRequest
	if !s.bindJSON(c, &req) {
		return
	}
	state, err := s.timers.Focus(c.Request.Context(), userID(c), req.ProjectID, req.ProjectTaskID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
