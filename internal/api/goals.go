package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
	"github.com/macrolog/backend/internal/service"
)

type GoalsHandler struct {
	goals *service.GoalsService
}

func NewGoalsHandler(goals *service.GoalsService) *GoalsHandler {
	return &GoalsHandler{goals: goals}
}

func (h *GoalsHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.GetGoals)
		goals.PUT("", h.SetGoals)
		goals.POST("/suggest", h.SuggestGoals)
		goals.GET("/options", h.CalculatorOptions)
	}
}

type labeledOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var activityOrder = []nutrition.ActivityLevel{
	nutrition.Sedentary,
	nutrition.LightlyActive,
	nutrition.ModeratelyActive,
	nutrition.Active,
	nutrition.VeryActive,
}

var goalOrder = []nutrition.Goal{
	nutrition.FatLoss,
	nutrition.LeanRecomp,
	nutrition.Recomposition,
	nutrition.Maintenance,
	nutrition.MuscleGain,
}

// CalculatorOptions lists the selectable activity levels and goals with
// their display labels, in presentation order.
func (h *GoalsHandler) CalculatorOptions(c *gin.Context) {
	activities := make([]labeledOption, 0, len(activityOrder))
	for _, level := range activityOrder {
		l := nutrition.ActivityLabels[level]
		activities = append(activities, labeledOption{Value: string(level), Label: l.Label, Description: l.Description})
	}
	goals := make([]labeledOption, 0, len(goalOrder))
	for _, goal := range goalOrder {
		l := nutrition.GoalLabels[goal]
		goals = append(goals, labeledOption{Value: string(goal), Label: l.Label, Description: l.Description})
	}
	c.JSON(http.StatusOK, gin.H{
		"activity_levels": activities,
		"goals":           goals,
	})
}

func (h *GoalsHandler) GetGoals(c *gin.Context) {
	goals, err := h.goals.GetGoals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalsHandler) SetGoals(c *gin.Context) {
	var goals models.UserGoals
	if err := c.ShouldBindJSON(&goals); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.goals.SetGoals(c.Request.Context(), goals)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

type suggestGoalsRequest struct {
	Sex           string  `json:"sex" binding:"required"`
	Age           int     `json:"age" binding:"required,gt=0"`
	HeightCm      float64 `json:"height_cm" binding:"required,gt=0"`
	WeightKg      float64 `json:"weight_kg" binding:"required,gt=0"`
	ActivityLevel string  `json:"activity_level" binding:"required"`
	Goal          string  `json:"goal" binding:"required"`
}

// SuggestGoals runs the calculator chain and returns the derivation without
// persisting anything. The client applies the suggestion via PUT /goals.
func (h *GoalsHandler) SuggestGoals(c *gin.Context) {
	var req suggestGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sex := nutrition.Sex(req.Sex)
	if sex != nutrition.Male && sex != nutrition.Female {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "sex must be male or female"})
		return
	}
	level := nutrition.ActivityLevel(req.ActivityLevel)
	if !level.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown activity level"})
		return
	}
	goal := nutrition.Goal(req.Goal)
	if !goal.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown goal"})
		return
	}

	suggestion := nutrition.SuggestGoals(sex, req.WeightKg, req.HeightCm, req.Age, level, goal)
	c.JSON(http.StatusOK, suggestion)
}
