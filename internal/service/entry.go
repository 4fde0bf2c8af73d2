package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
	"github.com/macrolog/backend/internal/types"
)

// EntryService handles food log entries.
type EntryService struct {
	db *gorm.DB
}

// NewEntryService creates a new EntryService instance
func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{db: db}
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// CreateEntry logs a food on a calendar day.
func (s *EntryService) CreateEntry(ctx context.Context, entry *models.FoodEntry) (*models.FoodEntry, error) {
	if !validDate(entry.Date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if entry.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if entry.ServingSize <= 0 {
		return nil, fmt.Errorf("%w: serving size must be positive", ErrValidation)
	}
	if entry.ServingUnit == "" {
		entry.ServingUnit = "g"
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntry retrieves one log entry by ID.
func (s *EntryService) GetEntry(ctx context.Context, id uint) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &entry, nil
}

// UpdateEntry merges non-zero fields into an existing entry.
func (s *EntryService) UpdateEntry(ctx context.Context, id uint, updates *models.FoodEntry) (*models.FoodEntry, error) {
	if updates.Date != "" && !validDate(updates.Date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	// Zero means "unchanged" under the struct merge, so only negatives can
	// slip an invalid serving size through.
	if updates.ServingSize < 0 {
		return nil, fmt.Errorf("%w: serving size must be positive", ErrValidation)
	}
	if _, err := s.GetEntry(ctx, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.FoodEntry{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetEntry(ctx, id)
}

// RescaleEntry changes an entry's serving size and rescales every nutrition
// field by newSize/oldSize in one step, so the stored values stay consistent
// with the serving they describe.
func (s *EntryService) RescaleEntry(ctx context.Context, id uint, newSize float64) (*models.FoodEntry, error) {
	if newSize <= 0 {
		return nil, fmt.Errorf("%w: serving size must be positive", ErrValidation)
	}
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	scaled := nutrition.Scale(nutrition.Calculated{
		Calories: entry.Calories,
		Protein:  entry.Protein,
		Carbs:    entry.Carbs,
		Fat:      entry.Fat,
		Fiber:    entry.Fiber,
		Sugar:    entry.Sugar,
		Salt:     entry.Salt,
	}, newSize/entry.ServingSize)

	err = s.db.WithContext(ctx).Model(&models.FoodEntry{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"serving_size": newSize,
			"calories":     scaled.Calories,
			"protein":      scaled.Protein,
			"carbs":        scaled.Carbs,
			"fat":          scaled.Fat,
			"fiber":        scaled.Fiber,
			"sugar":        scaled.Sugar,
			"salt":         scaled.Salt,
		}).Error
	if err != nil {
		return nil, err
	}
	return s.GetEntry(ctx, id)
}

// DeleteEntry removes one log entry.
func (s *EntryService) DeleteEntry(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.FoodEntry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EntriesByDate lists a day's entries in logging order.
func (s *EntryService) EntriesByDate(ctx context.Context, date string) ([]models.FoodEntry, error) {
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("date = ?", date).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// EntriesByDateRange lists entries between two dates, both inclusive.
func (s *EntryService) EntriesByDateRange(ctx context.Context, start, end string) ([]models.FoodEntry, error) {
	if !validDate(start) || !validDate(end) {
		return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrValidation)
	}
	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC, created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// DailyTotals sums one day's entries at entry precision.
func (s *EntryService) DailyTotals(ctx context.Context, date string) (*types.DailyTotals, error) {
	entries, err := s.EntriesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	totals := types.DailyTotals{Date: date}
	for _, e := range entries {
		totals.Calories += e.Calories
		totals.Protein += e.Protein
		totals.Carbs += e.Carbs
		totals.Fat += e.Fat
		totals.Fiber += e.Fiber
		totals.Sugar += e.Sugar
		totals.Salt += e.Salt
	}
	return &totals, nil
}
