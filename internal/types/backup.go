package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/macrolog/backend/internal/models"
)

// BackupDocument is the transportable export of the loggable data set.
// Entity IDs are included for transparency but are not stable across an
// import: fresh inserts assign new ones and cross-references are remapped.
// Meal and day templates are deliberately not part of the backup.
type BackupDocument struct {
	ID           uuid.UUID             `json:"id"`
	ExportedAt   time.Time             `json:"exported_at"`
	FoodEntries  []models.FoodEntry    `json:"food_entries"`
	UserGoals    *models.UserGoals     `json:"user_goals,omitempty"`
	SavedFoods   []models.SavedFood    `json:"saved_foods"`
	StorePricing []models.StorePricing `json:"store_pricing"`
}
