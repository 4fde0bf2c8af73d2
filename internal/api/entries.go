package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
)

type EntryHandler struct {
	entries *service.EntryService
}

func NewEntryHandler(entries *service.EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.POST("", h.CreateEntry)
		entries.GET("", h.ListEntries)
		entries.GET("/daily-totals", h.DailyTotals)
		entries.GET("/:id", h.GetEntry)
		entries.PUT("/:id", h.UpdateEntry)
		entries.POST("/:id/rescale", h.RescaleEntry)
		entries.DELETE("/:id", h.DeleteEntry)
	}
}

func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var entry models.FoodEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.entries.CreateEntry(c.Request.Context(), &entry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListEntries serves one day via ?date= or an inclusive range via ?from=&to=.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		entries, err := h.entries.EntriesByDate(c.Request.Context(), date)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
		return
	}

	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either date or from/to query parameters are required"})
		return
	}
	entries, err := h.entries.EntriesByDateRange(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *EntryHandler) DailyTotals(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	totals, err := h.entries.DailyTotals(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *EntryHandler) GetEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entry, err := h.entries.GetEntry(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var updates models.FoodEntry
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.entries.UpdateEntry(c.Request.Context(), id, &updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

type rescaleRequest struct {
	ServingSize float64 `json:"serving_size" binding:"required,gt=0"`
}

// RescaleEntry recomputes every nutrition field of a logged entry
// proportionally to the new serving size.
func (h *EntryHandler) RescaleEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req rescaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.entries.RescaleEntry(c.Request.Context(), id, req.ServingSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.entries.DeleteEntry(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
