package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
)

// FoodService handles the saved-food catalog and its store pricing.
type FoodService struct {
	db *gorm.DB
}

// NewFoodService creates a new FoodService instance
func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// CreateFood adds a food to the catalog. A barcode acts as a natural key:
// when a food with the same barcode already exists it is returned instead of
// inserting a duplicate.
func (s *FoodService) CreateFood(ctx context.Context, food *models.SavedFood) (*models.SavedFood, error) {
	if food.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if food.DefaultServingSize <= 0 {
		return nil, fmt.Errorf("%w: default serving size must be positive", ErrValidation)
	}
	if food.Barcode != nil && *food.Barcode != "" {
		existing, err := s.GetFoodByBarcode(ctx, *food.Barcode)
		if err == nil {
			return existing, nil
		}
		if err != ErrNotFound {
			return nil, err
		}
	}
	if food.CreatedAt.IsZero() {
		food.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// GetFood retrieves one catalog food by ID.
func (s *FoodService) GetFood(ctx context.Context, id uint) (*models.SavedFood, error) {
	var food models.SavedFood
	if err := s.db.WithContext(ctx).First(&food, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &food, nil
}

// GetFoodByBarcode looks a food up by its barcode.
func (s *FoodService) GetFoodByBarcode(ctx context.Context, barcode string) (*models.SavedFood, error) {
	var food models.SavedFood
	if err := s.db.WithContext(ctx).Where("barcode = ?", barcode).First(&food).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &food, nil
}

// ListFoods returns the whole catalog ordered by name.
func (s *FoodService) ListFoods(ctx context.Context) ([]models.SavedFood, error) {
	var foods []models.SavedFood
	err := s.db.WithContext(ctx).Order("name ASC").Find(&foods).Error
	return foods, err
}

// SearchFoods matches the query against name and brand, case-insensitively.
func (s *FoodService) SearchFoods(ctx context.Context, query string) ([]models.SavedFood, error) {
	like := "%" + strings.ToLower(query) + "%"
	var foods []models.SavedFood
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(COALESCE(brand, '')) LIKE ?", like, like).
		Order("name ASC").
		Find(&foods).Error
	return foods, err
}

// UpdateFood merges non-zero fields into an existing catalog food.
func (s *FoodService) UpdateFood(ctx context.Context, id uint, updates *models.SavedFood) (*models.SavedFood, error) {
	// Zero means "unchanged" under the struct merge, so only negatives can
	// slip an invalid serving size through.
	if updates.DefaultServingSize < 0 {
		return nil, fmt.Errorf("%w: default serving size must be positive", ErrValidation)
	}
	if _, err := s.GetFood(ctx, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.SavedFood{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetFood(ctx, id)
}

// DeleteFood removes a food and cascades to its pricing rows and to meal
// template items referencing it, atomically.
func (s *FoodService) DeleteFood(ctx context.Context, id uint) error {
	if _, err := s.GetFood(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("saved_food_id = ?", id).Delete(&models.StorePricing{}).Error; err != nil {
			return err
		}
		if err := tx.Where("saved_food_id = ?", id).Delete(&models.MealTemplateItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SavedFood{}, id).Error
	})
}

// ResolveOrCreateFood maps a logged entry onto the catalog: barcode lookup
// first, then exact name match, else a new food is synthesized by
// back-computing per-100g values from the entry's serving-scaled ones. This
// is how ad-hoc log entries become reusable template ingredients.
func (s *FoodService) ResolveOrCreateFood(ctx context.Context, entry models.FoodEntry) (uint, error) {
	if entry.Barcode != nil && *entry.Barcode != "" {
		if food, err := s.GetFoodByBarcode(ctx, *entry.Barcode); err == nil {
			return food.ID, nil
		} else if err != ErrNotFound {
			return 0, err
		}
	}

	var byName models.SavedFood
	err := s.db.WithContext(ctx).Where("name = ?", entry.Name).First(&byName).Error
	if err == nil {
		return byName.ID, nil
	}
	if wrapNotFound(err) != ErrNotFound {
		return 0, err
	}

	serving := entry.ServingSize
	if serving <= 0 {
		serving = 100
	}
	per100 := nutrition.BackCompute(nutrition.Calculated{
		Calories: entry.Calories,
		Protein:  entry.Protein,
		Carbs:    entry.Carbs,
		Fat:      entry.Fat,
		Fiber:    entry.Fiber,
		Sugar:    entry.Sugar,
		Salt:     entry.Salt,
	}, serving)

	food := models.SavedFood{
		Name:               entry.Name,
		Barcode:            entry.Barcode,
		CaloriesPer100g:    per100.Calories,
		ProteinPer100g:     per100.Protein,
		CarbsPer100g:       per100.Carbs,
		FatPer100g:         per100.Fat,
		FiberPer100g:       per100.Fiber,
		SugarPer100g:       per100.Sugar,
		SaltPer100g:        per100.Salt,
		DefaultServingSize: serving,
		CreatedAt:          time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return 0, err
	}
	return food.ID, nil
}

// AddPricing records what a food costs at one store. The derived price per kg
// is computed here; it stays NULL rather than being written invalid.
func (s *FoodService) AddPricing(ctx context.Context, pricing *models.StorePricing) (*models.StorePricing, error) {
	if pricing.Store == "" {
		return nil, fmt.Errorf("%w: store is required", ErrValidation)
	}
	if pricing.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if pricing.PackageSize <= 0 {
		return nil, fmt.Errorf("%w: package size must be positive", ErrValidation)
	}
	if _, err := s.GetFood(ctx, pricing.SavedFoodID); err != nil {
		return nil, err
	}
	if pricing.PackageUnit == "" {
		pricing.PackageUnit = "g"
	}
	pricing.PricePerKg = models.PricePerKg(pricing.Price, pricing.PackageSize, pricing.PackageUnit)
	pricing.LastUpdated = time.Now()
	if err := s.db.WithContext(ctx).Create(pricing).Error; err != nil {
		return nil, err
	}
	return pricing, nil
}

// PricingForFood lists all store prices recorded for one food.
func (s *FoodService) PricingForFood(ctx context.Context, savedFoodID uint) ([]models.StorePricing, error) {
	var pricing []models.StorePricing
	err := s.db.WithContext(ctx).
		Where("saved_food_id = ?", savedFoodID).
		Order("store ASC").
		Find(&pricing).Error
	return pricing, err
}

// UpdatePricing merges changed fields and recomputes the derived price per kg
// whenever price, package size or package unit change.
func (s *FoodService) UpdatePricing(ctx context.Context, id uint, updates *models.StorePricing) (*models.StorePricing, error) {
	var existing models.StorePricing
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}

	if updates.Price != 0 {
		if updates.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		existing.Price = updates.Price
	}
	if updates.PackageSize != 0 {
		if updates.PackageSize < 0 {
			return nil, fmt.Errorf("%w: package size must be positive", ErrValidation)
		}
		existing.PackageSize = updates.PackageSize
	}
	if updates.PackageUnit != "" {
		existing.PackageUnit = updates.PackageUnit
	}
	if updates.Store != "" {
		existing.Store = updates.Store
	}
	existing.PricePerKg = models.PricePerKg(existing.Price, existing.PackageSize, existing.PackageUnit)
	existing.LastUpdated = time.Now()

	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// DeletePricing removes one store price row.
func (s *FoodService) DeletePricing(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.StorePricing{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
