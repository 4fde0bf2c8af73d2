package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
)

func TestGoalsLifecycle(t *testing.T) {
	router, _ := setupRouter(t, "")

	w := doJSON(t, router, http.MethodGet, "/api/v1/goals", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "no goals set yet")

	w = doJSON(t, router, http.MethodPut, "/api/v1/goals", gin.H{
		"daily_calories": 2200,
		"daily_protein":  150.0,
		"daily_carbs":    250.0,
		"daily_fat":      70.0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/goals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var goals models.UserGoals
	decodeBody(t, w, &goals)
	assert.Equal(t, 2200, goals.DailyCalories)
	assert.Equal(t, 150.0, goals.DailyProtein)

	// Second PUT overwrites the same row instead of adding one.
	w = doJSON(t, router, http.MethodPut, "/api/v1/goals", gin.H{"daily_calories": 1800})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/v1/goals", nil)
	decodeBody(t, w, &goals)
	assert.Equal(t, 1800, goals.DailyCalories)
	assert.Equal(t, 0.0, goals.DailyProtein)
}

func TestSuggestGoals(t *testing.T) {
	router, _ := setupRouter(t, "")

	w := doJSON(t, router, http.MethodPost, "/api/v1/goals/suggest", gin.H{
		"sex":            "male",
		"age":            30,
		"height_cm":      180,
		"weight_kg":      80,
		"activity_level": "moderately_active",
		"goal":           "maintenance",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var suggestion nutrition.GoalSuggestion
	decodeBody(t, w, &suggestion)
	assert.Equal(t, 1780, suggestion.BMR)
	assert.Equal(t, 2759, suggestion.TDEE)
	assert.Equal(t, 2759, suggestion.TargetCalories)
	assert.Equal(t, 128, suggestion.Macros.Protein)
}

func TestCalculatorOptions(t *testing.T) {
	router, _ := setupRouter(t, "")

	w := doJSON(t, router, http.MethodGet, "/api/v1/goals/options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var options struct {
		ActivityLevels []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"activity_levels"`
		Goals []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"goals"`
	}
	decodeBody(t, w, &options)
	require.Len(t, options.ActivityLevels, 5)
	require.Len(t, options.Goals, 5)
	assert.Equal(t, "sedentary", options.ActivityLevels[0].Value)
	assert.Equal(t, "Cut", options.Goals[0].Label)
}

func TestSuggestGoalsValidation(t *testing.T) {
	router, _ := setupRouter(t, "")

	w := doJSON(t, router, http.MethodPost, "/api/v1/goals/suggest", gin.H{
		"sex": "male", "age": 30, "height_cm": 180, "weight_kg": 80,
		"activity_level": "couch_potato", "goal": "maintenance",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/goals/suggest", gin.H{
		"sex": "male", "age": 30,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing required fields")
}
