package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
)

type FoodHandler struct {
	foods *service.FoodService
}

func NewFoodHandler(foods *service.FoodService) *FoodHandler {
	return &FoodHandler{foods: foods}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/foods")
	{
		foods.POST("", h.CreateFood)
		foods.GET("", h.ListFoods)
		foods.GET("/search", h.SearchFoods)
		foods.GET("/barcode/:code", h.GetFoodByBarcode)
		foods.POST("/from-entry", h.CreateFoodFromEntry)
		foods.GET("/:id", h.GetFood)
		foods.PUT("/:id", h.UpdateFood)
		foods.DELETE("/:id", h.DeleteFood)

		foods.GET("/:id/pricing", h.ListPricing)
		foods.POST("/:id/pricing", h.AddPricing)
	}
	pricing := router.Group("/pricing")
	{
		pricing.PUT("/:id", h.UpdatePricing)
		pricing.DELETE("/:id", h.DeletePricing)
	}
}

func (h *FoodHandler) CreateFood(c *gin.Context) {
	var food models.SavedFood
	if err := c.ShouldBindJSON(&food); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.foods.CreateFood(c.Request.Context(), &food)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FoodHandler) ListFoods(c *gin.Context) {
	foods, err := h.foods.ListFoods(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (h *FoodHandler) SearchFoods(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}
	foods, err := h.foods.SearchFoods(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (h *FoodHandler) GetFoodByBarcode(c *gin.Context) {
	food, err := h.foods.GetFoodByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// CreateFoodFromEntry turns a logged entry into a catalog food, deriving the
// per-100g profile from the entry's serving. An existing food with the same
// barcode or name is reused instead of duplicated.
func (h *FoodHandler) CreateFoodFromEntry(c *gin.Context) {
	var entry models.FoodEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.foods.ResolveOrCreateFood(c.Request.Context(), entry)
	if err != nil {
		respondError(c, err)
		return
	}
	food, err := h.foods.GetFood(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (h *FoodHandler) GetFood(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	food, err := h.foods.GetFood(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *FoodHandler) UpdateFood(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var updates models.SavedFood
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	food, err := h.foods.UpdateFood(c.Request.Context(), id, &updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *FoodHandler) DeleteFood(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.foods.DeleteFood(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FoodHandler) ListPricing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pricing, err := h.foods.PricingForFood(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing": pricing})
}

func (h *FoodHandler) AddPricing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var pricing models.StorePricing
	if err := c.ShouldBindJSON(&pricing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pricing.SavedFoodID = id
	created, err := h.foods.AddPricing(c.Request.Context(), &pricing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FoodHandler) UpdatePricing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var updates models.StorePricing
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pricing, err := h.foods.UpdatePricing(c.Request.Context(), id, &updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricing)
}

func (h *FoodHandler) DeletePricing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.foods.DeletePricing(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
