package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pomofocus/internal/domain"
)

type gymDayRequest struct {
	Date string `json:"date"`
	domain.GymDayPatch
}

type gymExerciseRequest struct {
	Date string `json:"date"`
	domain.GymExerciseInput
}

type gymMealRequest struct {
	Date string `json:"date"`
	domain.GymMealInput
}

func (s *Server) registerGymRoutes(api *gin.RouterGroup) {
	api.GET("/gym/goal", s.getGymGoal)
	api.POST("/gym/goal", s.updateGymGoal)
	api.GET("/gym/history", s.gymHistory)
	api.GET("/gym/analytics/:range", s.gymAnalytics)
	api.POST("/gym/day", s.saveGymDay)
	api.POST("/gym/exercise", s.addGymExercise)
	api.DELETE("/gym/exercise/:id", s.deleteGymExercise)
	api.POST("/gym/meal", s.addGymMeal)
	api.DELETE("/gym/meal/:id", s.deleteGymMeal)
	api.GET("/gym/:date", s.getGymDay)
}

func (s *Server) getGymDay(c *gin.Context) {
	day, err := s.svc.Gym.GetDay(c.Request.Context(), userID(c), c.Param("date"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (s *Server) saveGymDay(c *gin.Context) {
	var req gymDayRequest
	if !s.bindJSON(c, &req) {
		return
	}
	day, err := s.svc.Gym.SaveDay(c.Request.Context(), userID(c), req.Date, req.GymDayPatch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gym day updated successfully", "id": day.ID})
}

func (s *Server) addGymExercise(c *gin.Context) {
	var req gymExerciseRequest
	if !s.bindJSON(c, &req) {
		return
	}
	exercise, err := s.svc.Gym.AddExercise(c.Request.Context(), userID(c), req.Date, req.GymExerciseInput)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Exercise added successfully", "exercise": exercise})
}

func (s *Server) deleteGymExercise(c *gin.Context) {
	if err := s.svc.Gym.DeleteExercise(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Exercise deleted successfully"))
}

func (s *Server) addGymMeal(c *gin.Context) {
	var req gymMealRequest
	if !s.bindJSON(c, &req) {
		return
	}
	meal, err := s.svc.Gym.AddMeal(c.Request.Context(), userID(c), req.Date, req.GymMealInput)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Meal added successfully", "meal": meal})
}

func (s *Server) deleteGymMeal(c *gin.Context) {
	if err := s.svc.Gym.DeleteMeal(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, message("Meal deleted successfully"))
}

func (s *Server) getGymGoal(c *gin.Context) {
	goal, err := s.svc.Gym.GetGoal(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) updateGymGoal(c *gin.Context) {
	var patch domain.GymGoalPatch
	if !s.bindJSON(c, &patch) {
		return
	}
	goal, err := s.svc.Gym.UpdateGoal(c.Request.Context(), userID(c), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goals updated successfully", "goal": goal})
}

func (s *Server) gymAnalytics(c *gin.Context) {
	stats, err := s.svc.Gym.Analytics(c.Request.Context(), userID(c), c.Param("range"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// gymHistory treats a missing or non-numeric month or year as absent
func (s *Server) gymHistory(c *gin.Context) {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))
	stats, err := s.svc.Gym.History(c.Request.Context(), userID(c), month, year)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
