package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/domain"
)

func (s *Server) registerSettingsRoutes(api *gin.RouterGroup) {
	api.GET("/settings", s.getSettings)
	api.PUT("/settings", s.updateSettings)
	api.DELETE("/settings", s.resetSettings)
}

func (s *Server) getSettings(c *gin.Context) {
	settings, err := s.svc.Settings.GetSettings(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) updateSettings(c *gin.Context) {
	var patch domain.SettingsPatch
	if !s.bindJSON(c, &patch) {
		return
	}
	settings, err := s.svc.Settings.UpdateSettings(c.Request.Context(), userID(c), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) resetSettings(c *gin.Context) {
	settings, err := s.svc.Settings.ResetSettings(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
