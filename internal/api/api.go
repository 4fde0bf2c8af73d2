package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/openfoodfacts"
	"github.com/macrolog/backend/internal/service"
)

// SetupAPI wires all services and handlers under /api/v1.
func SetupAPI(router *gin.Engine, db *gorm.DB, foodAPIBaseURL string) {
	v1 := router.Group("/api/v1")
	{
		entryService := service.NewEntryService(db)
		goalsService := service.NewGoalsService(db)
		foodService := service.NewFoodService(db)
		templateService := service.NewTemplateService(db)
		backupService := service.NewBackupService(db)
		productClient := openfoodfacts.NewClient(foodAPIBaseURL)

		NewEntryHandler(entryService).RegisterRoutes(v1)
		NewGoalsHandler(goalsService).RegisterRoutes(v1)
		NewFoodHandler(foodService).RegisterRoutes(v1)
		NewTemplateHandler(templateService).RegisterRoutes(v1)
		NewBackupHandler(backupService).RegisterRoutes(v1)
		NewProductHandler(productClient).RegisterRoutes(v1)
	}
}
