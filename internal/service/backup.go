package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/types"
)

// BackupService serializes the loggable data set to a transportable document
// and restores it. Templates are out of backup scope and survive an import.
type BackupService struct {
	db *gorm.DB
}

// NewBackupService creates a new BackupService instance
func NewBackupService(db *gorm.DB) *BackupService {
	return &BackupService{db: db}
}

// Export collects every food entry, the goals singleton when present, the
// saved-food catalog and its store pricing into one document. Current IDs are
// included for transparency but are not stable across an import.
func (s *BackupService) Export(ctx context.Context) (*types.BackupDocument, error) {
	doc := types.BackupDocument{
		ID:         uuid.New(),
		ExportedAt: time.Now(),
	}

	if err := s.db.WithContext(ctx).Order("id ASC").Find(&doc.FoodEntries).Error; err != nil {
		return nil, err
	}
	var goals []models.UserGoals
	if err := s.db.WithContext(ctx).Limit(1).Find(&goals).Error; err != nil {
		return nil, err
	}
	if len(goals) > 0 {
		doc.UserGoals = &goals[0]
	}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&doc.SavedFoods).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&doc.StorePricing).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Import replaces food entries, goals, saved foods and store pricing with the
// document's contents in one atomic unit. Fresh inserts assign new IDs, so
// saved-food references in pricing rows are rewritten through an old-to-new
// map; rows whose referenced food is absent from the document are dropped
// rather than inserted dangling.
func (s *BackupService) Import(ctx context.Context, doc *types.BackupDocument) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.FoodEntry{}, &models.UserGoals{},
			&models.StorePricing{}, &models.SavedFood{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		foodIDs := make(map[uint]uint, len(doc.SavedFoods))
		for _, food := range doc.SavedFoods {
			oldID := food.ID
			food.ID = 0
			if err := tx.Create(&food).Error; err != nil {
				return err
			}
			foodIDs[oldID] = food.ID
		}

		for _, entry := range doc.FoodEntries {
			entry.ID = 0
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		if doc.UserGoals != nil {
			goals := *doc.UserGoals
			goals.ID = 0
			if err := tx.Create(&goals).Error; err != nil {
				return err
			}
		}

		for _, pricing := range doc.StorePricing {
			newFoodID, ok := foodIDs[pricing.SavedFoodID]
			if !ok {
				continue
			}
			pricing.ID = 0
			pricing.SavedFoodID = newFoodID
			if err := tx.Create(&pricing).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset clears the log and all templates but keeps the saved-food catalog,
// pricing and goals, atomically.
func (s *BackupService) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.FoodEntry{},
			&models.MealTemplateItem{}, &models.MealTemplate{},
			&models.DayTemplateMeal{}, &models.DayTemplate{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
