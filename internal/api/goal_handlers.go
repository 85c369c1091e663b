package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/services"
)

type reorderGoalsRequest struct {
	OrderedIDs []string `json:"ordered_ids"`
}

func (s *Server) registerGoalRoutes(api *gin.RouterGroup) {
	api.GET("/goals", s.listGoals)
	api.POST("/goals", s.createGoal)
	api.PUT("/goals/reorder", s.reorderGoals)
	api.GET("/goals/analytics", s.goalAnalytics)
	api.PUT("/goals/:id", s.updateGoal)
	api.PATCH("/goals/:id", s.updateGoal)
	api.DELETE("/goals/:id", s.deleteGoal)
	api.POST("/goals/:id/steps", s.addStep)
	api.PATCH("/goals/:id/steps/:stepId", s.updateStep)
	api.DELETE("/goals/:id/steps/:stepId", s.deleteStep)
}

func (s *Server) listGoals(c *gin.Context) {
	goals, err := s.svc.Goals.ListGoals(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (s *Server) createGoal(c *gin.Context) {
	var input services.GoalInput
	if !s.bindJSON(c, &input) {
		return
	}
	goal, err := s.svc.Goals.CreateGoal(c.Request.Context(), userID(c), input)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) updateGoal(c *gin.Context) {
	var patch services.GoalPatch
	if !s.bindJSON(c, &patch) {
		return
	}
	goal, err := s.svc.Goals.UpdateGoal(c.Request.Context(), userID(c), c.Param("id"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) deleteGoal(c *gin.Context) {
	if err := s.svc.Goals.DeleteGoal(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) reorderGoals(c *gin.Context) {
	var req reorderGoalsRequest
	if !s.bindJSON(c, &req) {
		return
	}
	updated, err := s.svc.Goals.ReorderGoals(c.Request.Context(), userID(c), req.OrderedIDs)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goals reordered successfully", "updated": updated})
}

func (s *Server) addStep(c *gin.Context) {
	var input services.StepInput
	if !s.bindJSON(c, &input) {
		return
	}
	step, err := s.svc.Goals.AddStep(c.Request.Context(), userID(c), c.Param("id"), input)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, step)
}

func (s *Server) updateStep(c *gin.Context) {
	var patch services.StepPatch
	if !s.bindJSON(c, &patch) {
		return
	}
	step, err := s.svc.Goals.UpdateStep(c.Request.Context(), userID(c), c.Param("id"), c.Param("stepId"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, step)
}

func (s *Server) deleteStep(c *gin.Context) {
	if err := s.svc.Goals.DeleteStep(c.Request.Context(), userID(c), c.Param("id"), c.Param("stepId")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) goalAnalytics(c *gin.Context) {
	stats, err := s.svc.Goals.Analytics(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
