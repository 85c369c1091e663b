package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/domain"
)

type taskRequest struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

func (s *Server) registerTaskRoutes(api *gin.RouterGroup) {
	api.GET("/tasks", s.listTasks)
	api.POST("/tasks", s.createTask)
	api.PUT("/tasks/:id", s.updateTask)
	api.PATCH("/tasks/:id", s.updateTask)
	api.DELETE("/tasks/:id", s.deleteTask)
}

func (s *Server) listTasks(c *gin.Context) {
	tasks, err := s.svc.Tasks.ListTasks(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) createTask(c *gin.Context) {
	var req taskRequest
	if !s.bindJSON(c, &req) {
		return
	}
	task, err := s.svc.Tasks.CreateTask(c.Request.Context(), userID(c), req.Title, req.Priority)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c *gin.Context) {
	var patch domain.TaskPatch
	if !s.bindJSON(c, &patch) {
		return
	}
	task, err := s.svc.Tasks.UpdateTask(c.Request.Context(), userID(c), c.Param("id"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	if err := s.svc.Tasks.DeleteTask(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
