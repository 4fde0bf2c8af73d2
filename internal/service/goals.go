package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
)

// GoalsService handles the daily-targets singleton.
type GoalsService struct {
	db *gorm.DB
}

// NewGoalsService creates a new GoalsService instance
func NewGoalsService(db *gorm.DB) *GoalsService {
	return &GoalsService{db: db}
}

// GetGoals returns the current targets, or ErrNotFound before the first save.
func (s *GoalsService) GetGoals(ctx context.Context) (*models.UserGoals, error) {
	var goals []models.UserGoals
	if err := s.db.WithContext(ctx).Limit(1).Find(&goals).Error; err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, ErrNotFound
	}
	return &goals[0], nil
}

// SetGoals saves the daily targets. The row is a singleton: an existing row is
// updated in place, so two rows can never coexist.
func (s *GoalsService) SetGoals(ctx context.Context, goals models.UserGoals) (*models.UserGoals, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.UserGoals
		if err := tx.Limit(1).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			goals.ID = existing[0].ID
			return tx.Model(&existing[0]).Updates(map[string]interface{}{
				"daily_calories": goals.DailyCalories,
				"daily_protein":  goals.DailyProtein,
				"daily_carbs":    goals.DailyCarbs,
				"daily_fat":      goals.DailyFat,
				"daily_fiber":    goals.DailyFiber,
				"daily_sugar":    goals.DailySugar,
				"daily_salt":     goals.DailySalt,
			}).Error
		}
		goals.ID = 0
		return tx.Create(&goals).Error
	})
	if err != nil {
		return nil, err
	}
	return &goals, nil
}
