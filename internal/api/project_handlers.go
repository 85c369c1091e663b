package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/services"
)

type reorderProjectsRequest struct {
	Status     string   `json:"status"`
	OrderedIDs []string `json:"ordered_ids"`
}

func (s *Server) registerProjectRoutes(api *gin.RouterGroup) {
	api.GET("/projects", s.listProjects)
	api.POST("/projects", s.createProject)
	api.PUT("/projects/reorder", s.reorderProjects)
	api.PUT("/projects/:id", s.updateProject)
	api.PATCH("/projects/:id", s.updateProject)
	api.DELETE("/projects/:id", s.deleteProject)
	api.GET("/projects/:id/activity", s.projectActivity)
	api.POST("/projects/:id/tasks", s.addProjectTask)
	api.PUT("/projects/tasks/:taskId", s.updateProjectTask)
	api.PATCH("/projects/tasks/:taskId", s.updateProjectTask)
	api.DELETE("/projects/tasks/:taskId", s.deleteProjectTask)
}

func (s *Server) listProjects(c *gin.Context) {
	projects, err := s.svc.Projects.ListProjects(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (s *Server) createProject(c *gin.Context) {
	var input services.ProjectInput
	if !s.bindJSON(c, &input) {
		return
	}
	project, err := s.svc.Projects.CreateProject(c.Request.Context(), userID(c), input)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      project.ID,
		"name":    project.Name,
		"message": "Project created successfully",
	})
}

func (s *Server) updateProject(c *gin.Context) {
	var patch services.ProjectPatch
	if !s.bindJSON(c, &patch) {
		return
	}
	project, err := s.svc.Projects.UpdateProject(c.Request.Context(), userID(c), c.Param("id"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) reorderProjects(c *gin.Context) {
	var req reorderProjectsRequest
	if !s.bindJSON(c, &req) {
		return
	}
	updated, err := s.svc.Projects.ReorderProjects(c.Request.Context(), userID(c), req.Status, req.OrderedIDs)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Projects reordered successfully", "updated": updated})
}

func (s *Server) deleteProject(c *gin.Context) {
	if err := s.svc.Projects.DeleteProject(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Project deleted successfully"))
}

func (s *Server) projectActivity(c *gin.Context) {
	activity, err := s.svc.Projects.ListActivity(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

func (s *Server) addProjectTask(c *gin.Context) {
	var input services.ProjectTaskInput
	if !s.bindJSON(c, &input) {
		return
	}
	task, err := s.svc.Projects.AddTask(c.Request.Context(), userID(c), c.Param("id"), input)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) updateProjectTask(c *gin.Context) {
	var patch services.ProjectTaskPatch
	if !s.bindJSON(c, &patch) {
		return
	}
	task, err := s.svc.Projects.UpdateTask(c.Request.Context(), userID(c), c.Param("taskId"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteProjectTask(c *gin.Context) {
	if err := s.svc.Projects.DeleteTask(c.Request.Context(), userID(c), c.Param("taskId")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Task deleted successfully"))
}
