package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/service"
	"github.com/macrolog/backend/internal/types"
)

type BackupHandler struct {
	backup *service.BackupService
}

func NewBackupHandler(backup *service.BackupService) *BackupHandler {
	return &BackupHandler{backup: backup}
}

func (h *BackupHandler) RegisterRoutes(router *gin.RouterGroup) {
	backup := router.Group("/backup")
	{
		backup.GET("/export", h.Export)
		backup.POST("/import", h.Import)
	}
	router.POST("/reset", h.Reset)
}

// Export serves the full dataset as a downloadable JSON document.
func (h *BackupHandler) Export(c *gin.Context) {
	doc, err := h.backup.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("macrolog-export-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, doc)
}

// Import replaces entries, goals, foods, and pricing with the document's
// contents. Saved food IDs are reassigned on insert; pricing rows are remapped
// to the new IDs.
func (h *BackupHandler) Import(c *gin.Context) {
	var doc types.BackupDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.backup.Import(c.Request.Context(), &doc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries":     len(doc.FoodEntries),
		"saved_foods": len(doc.SavedFoods),
	})
}

// Reset clears the daily log and templates while keeping the food catalog,
// pricing, and goals.
func (h *BackupHandler) Reset(c *gin.Context) {
	if err := h.backup.Reset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
