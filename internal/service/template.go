package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
	"github.com/macrolog/backend/internal/types"
)

// TemplateService composes saved foods into meal templates, meal templates
// into day templates, and applies either back onto the dated log.
type TemplateService struct {
	db *gorm.DB
}

// NewTemplateService creates a new TemplateService instance
func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

// preciseTotals accumulates per-item serving values before display rounding.
// Per-item values keep their own precision; only the summed total is rounded
// down to whole kcal and grams.
type preciseTotals struct {
	calories float64
	protein  float64
	carbs    float64
	fat      float64
}

func (t *preciseTotals) add(c nutrition.Calculated) {
	t.calories += float64(c.Calories)
	t.protein += c.Protein
	t.carbs += c.Carbs
	t.fat += c.Fat
}

func (t *preciseTotals) display() types.DisplayTotals {
	return types.DisplayTotals{
		Calories: int(math.Round(t.calories)),
		Protein:  int(math.Round(t.protein)),
		Carbs:    int(math.Round(t.carbs)),
		Fat:      int(math.Round(t.fat)),
	}
}

func per100g(f *models.SavedFood) nutrition.Per100g {
	return nutrition.Per100g{
		Calories: f.CaloriesPer100g,
		Protein:  f.ProteinPer100g,
		Carbs:    f.CarbsPer100g,
		Fat:      f.FatPer100g,
		Fiber:    f.FiberPer100g,
		Sugar:    f.SugarPer100g,
		Salt:     f.SaltPer100g,
	}
}

// CreateMealTemplate saves a named, initially empty meal template.
func (s *TemplateService) CreateMealTemplate(ctx context.Context, name string) (*models.MealTemplate, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	template := models.MealTemplate{Name: name, CreatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Create(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// RenameMealTemplate changes a meal template's name.
func (s *TemplateService) RenameMealTemplate(ctx context.Context, id uint, name string) (*models.MealTemplate, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	var template models.MealTemplate
	if err := s.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	template.Name = name
	if err := s.db.WithContext(ctx).Save(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// AddMealTemplateItem puts a saved food at a serving size into a template.
func (s *TemplateService) AddMealTemplateItem(ctx context.Context, templateID, savedFoodID uint, servingSize float64) (*models.MealTemplateItem, error) {
	if servingSize <= 0 {
		return nil, fmt.Errorf("%w: serving size must be positive", ErrValidation)
	}
	if err := s.db.WithContext(ctx).First(&models.MealTemplate{}, templateID).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.db.WithContext(ctx).First(&models.SavedFood{}, savedFoodID).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	item := models.MealTemplateItem{
		MealTemplateID: templateID,
		SavedFoodID:    savedFoodID,
		ServingSize:    servingSize,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveMealTemplateItem deletes one item from a meal template.
func (s *TemplateService) RemoveMealTemplateItem(ctx context.Context, itemID uint) error {
	res := s.db.WithContext(ctx).Delete(&models.MealTemplateItem{}, itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetMealTemplateWithItems builds the joined view of one meal template. An
// item whose saved food no longer resolves is flagged missing and excluded
// from the totals instead of contributing fabricated zeros.
func (s *TemplateService) GetMealTemplateWithItems(ctx context.Context, id uint) (*types.MealTemplateView, error) {
	var template models.MealTemplate
	if err := s.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}

	var items []models.MealTemplateItem
	if err := s.db.WithContext(ctx).
		Where("meal_template_id = ?", id).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	view := types.MealTemplateView{Template: template, Items: make([]types.MealTemplateItemView, 0, len(items))}
	var totals preciseTotals
	for _, item := range items {
		var food models.SavedFood
		err := s.db.WithContext(ctx).First(&food, item.SavedFoodID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			view.Items = append(view.Items, types.MealTemplateItemView{Item: item, MissingFood: true})
			continue
		}
		if err != nil {
			return nil, err
		}
		calc := nutrition.ScaleToServing(per100g(&food), item.ServingSize)
		totals.add(calc)
		view.Items = append(view.Items, types.MealTemplateItemView{
			Item:      item,
			SavedFood: &food,
			Nutrition: calc,
		})
	}
	view.Totals = totals.display()
	return &view, nil
}

// ListMealTemplates returns all meal templates ordered by name, each with its
// item count and display-rounded totals.
func (s *TemplateService) ListMealTemplates(ctx context.Context) ([]types.MealTemplateSummary, error) {
	var templates []models.MealTemplate
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	summaries := make([]types.MealTemplateSummary, 0, len(templates))
	for _, template := range templates {
		view, err := s.GetMealTemplateWithItems(ctx, template.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, types.MealTemplateSummary{
			MealTemplate: template,
			ItemCount:    len(view.Items),
			Totals:       view.Totals,
		})
	}
	return summaries, nil
}

// DeleteMealTemplate removes a meal template, its items, and any day template
// assignments referencing it, atomically.
func (s *TemplateService) DeleteMealTemplate(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).First(&models.MealTemplate{}, id).Error; err != nil {
		return wrapNotFound(err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_template_id = ?", id).Delete(&models.MealTemplateItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_template_id = ?", id).Delete(&models.DayTemplateMeal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MealTemplate{}, id).Error
	})
}

// CreateDayTemplate saves a named, initially empty day template.
func (s *TemplateService) CreateDayTemplate(ctx context.Context, name string) (*models.DayTemplate, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	template := models.DayTemplate{Name: name, CreatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Create(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// RenameDayTemplate changes a day template's name.
func (s *TemplateService) RenameDayTemplate(ctx context.Context, id uint, name string) (*models.DayTemplate, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	var template models.DayTemplate
	if err := s.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	template.Name = name
	if err := s.db.WithContext(ctx).Save(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// AddDayTemplateMeal assigns a meal template to a slot. One template per slot
// is a soft schema invariant, so it is enforced here: an occupied meal number
// is rejected.
func (s *TemplateService) AddDayTemplateMeal(ctx context.Context, dayTemplateID, mealTemplateID uint, mealNumber int) (*models.DayTemplateMeal, error) {
	if mealNumber < 1 {
		return nil, fmt.Errorf("%w: meal number must be at least 1", ErrValidation)
	}
	if err := s.db.WithContext(ctx).First(&models.DayTemplate{}, dayTemplateID).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.db.WithContext(ctx).First(&models.MealTemplate{}, mealTemplateID).Error; err != nil {
		return nil, wrapNotFound(err)
	}

	var occupied int64
	if err := s.db.WithContext(ctx).Model(&models.DayTemplateMeal{}).
		Where("day_template_id = ? AND meal_number = ?", dayTemplateID, mealNumber).
		Count(&occupied).Error; err != nil {
		return nil, err
	}
	if occupied > 0 {
		return nil, fmt.Errorf("%w: meal number %d is already assigned", ErrValidation, mealNumber)
	}

	meal := models.DayTemplateMeal{
		DayTemplateID:  dayTemplateID,
		MealTemplateID: mealTemplateID,
		MealNumber:     mealNumber,
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// RemoveDayTemplateMeal deletes one slot assignment.
func (s *TemplateService) RemoveDayTemplateMeal(ctx context.Context, mealID uint) error {
	res := s.db.WithContext(ctx).Delete(&models.DayTemplateMeal{}, mealID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetDayTemplateWithMeals builds the joined view of one day template, with
// assignments sorted ascending by meal number. The ordering is part of the
// contract, not incidental.
func (s *TemplateService) GetDayTemplateWithMeals(ctx context.Context, id uint) (*types.DayTemplateView, error) {
	var template models.DayTemplate
	if err := s.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}

	var assignments []models.DayTemplateMeal
	if err := s.db.WithContext(ctx).
		Where("day_template_id = ?", id).
		Order("meal_number ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	view := types.DayTemplateView{Template: template, Meals: make([]types.DayTemplateMealView, 0, len(assignments))}
	var totals preciseTotals
	for _, assignment := range assignments {
		var mealTemplate models.MealTemplate
		err := s.db.WithContext(ctx).First(&mealTemplate, assignment.MealTemplateID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			view.Meals = append(view.Meals, types.DayTemplateMealView{Assignment: assignment, MissingTemplate: true})
			continue
		}
		if err != nil {
			return nil, err
		}

		mealView, err := s.GetMealTemplateWithItems(ctx, assignment.MealTemplateID)
		if err != nil {
			return nil, err
		}
		for _, item := range mealView.Items {
			if !item.MissingFood {
				totals.add(item.Nutrition)
			}
		}
		view.Meals = append(view.Meals, types.DayTemplateMealView{
			Assignment:   assignment,
			MealTemplate: &mealTemplate,
		})
	}
	view.Totals = totals.display()
	return &view, nil
}

// ListDayTemplates returns all day templates ordered by name, each with its
// meal count and display-rounded totals.
func (s *TemplateService) ListDayTemplates(ctx context.Context) ([]types.DayTemplateSummary, error) {
	var templates []models.DayTemplate
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	summaries := make([]types.DayTemplateSummary, 0, len(templates))
	for _, template := range templates {
		view, err := s.GetDayTemplateWithMeals(ctx, template.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, types.DayTemplateSummary{
			DayTemplate: template,
			MealCount:   len(view.Meals),
			Totals:      view.Totals,
		})
	}
	return summaries, nil
}

// DeleteDayTemplate removes a day template and its slot assignments.
func (s *TemplateService) DeleteDayTemplate(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).First(&models.DayTemplate{}, id).Error; err != nil {
		return wrapNotFound(err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("day_template_id = ?", id).Delete(&models.DayTemplateMeal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DayTemplate{}, id).Error
	})
}

// ApplyMealTemplateToLog appends one entry per template item onto the given
// date under the given meal number. Existing entries on the date are never
// touched; items whose saved food is gone are skipped. Returns the number of
// entries created.
func (s *TemplateService) ApplyMealTemplateToLog(ctx context.Context, mealTemplateID uint, date string, mealNumber int) (int, error) {
	if !validDate(date) {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	view, err := s.GetMealTemplateWithItems(ctx, mealTemplateID)
	if err != nil {
		return 0, err
	}

	entries := make([]models.FoodEntry, 0, len(view.Items))
	now := time.Now()
	for _, item := range view.Items {
		if item.MissingFood {
			continue
		}
		meal := mealNumber
		entries = append(entries, models.FoodEntry{
			Date:        date,
			Barcode:     item.SavedFood.Barcode,
			Name:        item.SavedFood.Name,
			ServingSize: item.Item.ServingSize,
			ServingUnit: "g",
			Calories:    item.Nutrition.Calories,
			Protein:     item.Nutrition.Protein,
			Carbs:       item.Nutrition.Carbs,
			Fat:         item.Nutrition.Fat,
			Fiber:       item.Nutrition.Fiber,
			Sugar:       item.Nutrition.Sugar,
			Salt:        item.Nutrition.Salt,
			MealNumber:  &meal,
			CreatedAt:   now,
		})
	}
	if len(entries) == 0 {
		return 0, nil
	}
	if err := s.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return 0, err
	}
	return len(entries), nil
}

// ApplyDayTemplateToLog applies each slot assignment onto the date with its
// own meal number. Applications are independent: a meal template deleted
// after the day template was built is skipped, and earlier applications
// stand. Returns the total number of entries created.
func (s *TemplateService) ApplyDayTemplateToLog(ctx context.Context, dayTemplateID uint, date string) (int, error) {
	if !validDate(date) {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	view, err := s.GetDayTemplateWithMeals(ctx, dayTemplateID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, meal := range view.Meals {
		if meal.MissingTemplate {
			continue
		}
		n, err := s.ApplyMealTemplateToLog(ctx, meal.Assignment.MealTemplateID, date, meal.Assignment.MealNumber)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
