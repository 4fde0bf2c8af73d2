package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/service"
)

type TemplateHandler struct {
	templates *service.TemplateService
}

func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

func (h *TemplateHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meal-templates")
	{
		meals.POST("", h.CreateMealTemplate)
		meals.GET("", h.ListMealTemplates)
		meals.GET("/:id", h.GetMealTemplate)
		meals.PUT("/:id", h.RenameMealTemplate)
		meals.DELETE("/:id", h.DeleteMealTemplate)
		meals.POST("/:id/items", h.AddMealTemplateItem)
		meals.POST("/:id/apply", h.ApplyMealTemplate)
	}
	router.DELETE("/meal-template-items/:id", h.RemoveMealTemplateItem)

	days := router.Group("/day-templates")
	{
		days.POST("", h.CreateDayTemplate)
		days.GET("", h.ListDayTemplates)
		days.GET("/:id", h.GetDayTemplate)
		days.PUT("/:id", h.RenameDayTemplate)
		days.DELETE("/:id", h.DeleteDayTemplate)
		days.POST("/:id/meals", h.AddDayTemplateMeal)
		days.POST("/:id/apply", h.ApplyDayTemplate)
	}
	router.DELETE("/day-template-meals/:id", h.RemoveDayTemplateMeal)
}

type createTemplateRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *TemplateHandler) CreateMealTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	template, err := h.templates.CreateMealTemplate(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) ListMealTemplates(c *gin.Context) {
	templates, err := h.templates.ListMealTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *TemplateHandler) GetMealTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.templates.GetMealTemplateWithItems(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TemplateHandler) RenameMealTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	template, err := h.templates.RenameMealTemplate(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) DeleteMealTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.templates.DeleteMealTemplate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addItemRequest struct {
	SavedFoodID uint    `json:"saved_food_id" binding:"required"`
	ServingSize float64 `json:"serving_size" binding:"required,gt=0"`
}

func (h *TemplateHandler) AddMealTemplateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.templates.AddMealTemplateItem(c.Request.Context(), id, req.SavedFoodID, req.ServingSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *TemplateHandler) RemoveMealTemplateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.templates.RemoveMealTemplateItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type applyMealTemplateRequest struct {
	Date       string `json:"date" binding:"required"`
	MealNumber int    `json:"meal_number" binding:"required,gte=1"`
}

// ApplyMealTemplate appends the template's items to the given day's log.
// Existing entries are never touched.
func (h *TemplateHandler) ApplyMealTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req applyMealTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count, err := h.templates.ApplyMealTemplateToLog(c.Request.Context(), id, req.Date, req.MealNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries_created": count})
}

func (h *TemplateHandler) CreateDayTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	template, err := h.templates.CreateDayTemplate(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) ListDayTemplates(c *gin.Context) {
	templates, err := h.templates.ListDayTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *TemplateHandler) GetDayTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.templates.GetDayTemplateWithMeals(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TemplateHandler) RenameDayTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	template, err := h.templates.RenameDayTemplate(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) DeleteDayTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.templates.DeleteDayTemplate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addDayMealRequest struct {
	MealTemplateID uint `json:"meal_template_id" binding:"required"`
	MealNumber     int  `json:"meal_number" binding:"required,gte=1"`
}

func (h *TemplateHandler) AddDayTemplateMeal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req addDayMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := h.templates.AddDayTemplateMeal(c.Request.Context(), id, req.MealTemplateID, req.MealNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *TemplateHandler) RemoveDayTemplateMeal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.templates.RemoveDayTemplateMeal(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type applyDayTemplateRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h *TemplateHandler) ApplyDayTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req applyDayTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count, err := h.templates.ApplyDayTemplateToLog(c.Request.Context(), id, req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries_created": count})
}
