package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/database"
	"github.com/macrolog/backend/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedFood(t *testing.T, db *gorm.DB, name string, calories, protein, fat float64) *models.SavedFood {
	food := models.SavedFood{
		Name:               name,
		CaloriesPer100g:    calories,
		ProteinPer100g:     protein,
		FatPer100g:         fat,
		DefaultServingSize: 100,
	}
	require.NoError(t, db.Create(&food).Error)
	return &food
}
