package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolog/backend/internal/models"
)

func TestGetMealTemplateWithItemsTotals(t *testing.T) {
	db := setupDB(t)
	svc := NewTemplateService(db)
	ctx := context.Background()

	rice := seedFood(t, db, "Rice", 360, 7.5, 1.0)
	chicken := seedFood(t, db, "Chicken Breast", 165, 31, 3.6)

	template, err := svc.CreateMealTemplate(ctx, "Meal Prep Bowl")
	require.NoError(t, err)
	_, err = svc.AddMealTemplateItem(ctx, template.ID, rice.ID, 75)
	require.NoError(t, err)
	_, err = svc.AddMealTemplateItem(ctx, template.ID, chicken.ID, 200)
	require.NoError(t, err)

	view, err := svc.GetMealTemplateWithItems(ctx, template.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	// Per-item values are precise, the summed totals are display-rounded:
	// rice 75g = 270 kcal / 5.6 protein, chicken 200g = 330 kcal / 62 protein.
	assert.Equal(t, 270, view.Items[0].Nutrition.Calories)
	assert.Equal(t, 5.6, view.Items[0].Nutrition.Protein)
	assert.Equal(t, 600, view.Totals.Calories)
	assert.Equal(t, 68, view.Totals.Protein)
}

func TestGetMealTemplateWithItemsFlagsMissingFood(t *testing.T) {
	db := setupDB(t)
	svc := NewTemplateService(db)
	ctx := context.Background()

	food := seedFood(t, db, "Tuna", 116, 26, 1)
	template, err := svc.CreateMealTemplate(ctx, "Tuna Bowl")
	require.NoError(t, err)
	item, err := svc.AddMealTemplateItem(ctx, template.ID, food.ID, 100)
	require.NoError(t, err)

	// Delete the food out from under the item, bypassing the cascade.
	require.NoError(t, db.Delete(&models.SavedFood{}, food.ID).Error)

	view, err := svc.GetMealTemplateWithItems(ctx, template.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].MissingFood)
	assert.Nil(t, view.Items[0].SavedFood)
	assert.Equal(t, item.ID, view.Items[0].Item.ID)
	// The orphan contributes nothing instead of fabricated zeros.
	assert.Zero(t, view.Totals.Calories)
}

func TestDeleteMealTemplateCascades(t *testing.T) {
	db := setupDB(t)
	svc := NewTemplateService(db)
	ctx := context.Background()

	food := seedFood(t, db, "Eggs", 155, 13, 11)
	meal, err := svc.CreateMealTemplate(ctx, "Scramble")
	require.NoError(t, err)
	_, err = svc.AddMealTemplateItem(ctx, meal.ID, food.ID, 120)
	require.NoError(t, err)
	day, err := svc.CreateDayTemplate(ctx, "Rest Day")
	require.NoError(t, err)
	_, err = svc.AddDayTemplateMeal(ctx, day.ID, meal.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMealTemplate(ctx, meal.ID))

	var items, assignments int64
	require.NoError(t, db.Model(&models.MealTemplateItem{}).Where("meal_template_id = ?", meal.ID).Count(&items).Error)
	require.NoError(t, db.Model(&models.DayTemplateMeal{}).Where("meal_template_id = ?", meal.ID).Count(&assignments).Error)
	assert.Zero(t, items)
	assert.Zero(t, assignments)
}

func TestDayTemplateMealsSortedByMealNumber(t *testing.T) {
	db := setupDB(t)
	svc := NewTemplateService(db)
	ctx := context.Background()

	day, err := svc.CreateDayTemplate(ctx, "Training Day")
	require.NoError(t, err)
	dinner, _ := svc.CreateMealTemplate(ctx, "Dinner")
	breakfast, _ := svc.CreateMealTemplate(ctx, "Breakfast")
	lunch, _ := svc.CreateMealTemplate(ctx, "Lunch")

	// Insert out of slot order.
	_, err = svc.AddDayTemplateMeal(ctx, day.ID, dinner.ID, 3)
	require.NoError(t, err)
	_, err = svc.AddDayTemplateMeal(ctx, day.ID, breakfast.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddDayTemplateMeal(ctx, day.ID, lunch.ID, 2)
	require.NoError(t, err)

	view, err := svc.GetDayTemplateWithMeals(ctx, day.ID)
	require.NoError(t, err)
	require.Len(t, view.Meals, 3)
	assert.Equal(t, 1, view.Meals[0].Assignment.MealNumber)
	assert.Equal(t, 2, view.Meals[1].Assignment.MealNumber)
	assert.Equal(t, 3, view.Meals[2].Assignment.MealNumber)
}

func TestAddDayTemplateMealRejectsOccupiedSlot(t *testing.T) {
	db := setupDB(t)
	svc := NewTemplateService(db)
	ctx := context.Background()

	day, err := svc.CreateDayTemplate(ctx, "Cut Day")
	require.NoError(t, err)
	meal, err := svc.CreateMealTemplate(ctx, "Shake")
	require.NoError(t, err)

	_, err = svc.AddDayTemplateMeal(ctx, day.ID, meal.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddDayTemplateMeal(ctx, day.ID, meal.ID, 2)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApplyMealTemplateIsAdditive(t *testing.T) {
	db := setupDB(t)
	templates := NewTemplateService(db)
	entries := NewEntryService(db)
	ctx := context.Background()

	food := seedFood(t, db, "Oats", 372, 13.5, 7.0)
	template, err := templates.CreateMealTemplate(ctx, "Morning Oats")
	require.NoError(t, err)
	_, err = templates.AddMealTemplateItem(ctx, template.ID, food.ID, 80)
	require.NoError(t, err)

	pre, err := entries.CreateEntry(ctx, &models.FoodEntry{Date: "2026-08-29", Name: "Coffee", ServingSize: 200, Calories: 2})
	require.NoError(t, err)

	n, err := templates.ApplyMealTemplateToLog(ctx, template.ID, "2026-08-29", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	day, err := entries.EntriesByDate(ctx, "2026-08-29")
	require.NoError(t, err)
	require.Len(t, day, 2)

	// The pre-existing entry is untouched.
	unchanged, err := entries.GetEntry(ctx, pre.ID)
	require.NoError(t, err)
	assert.Equal(t, pre.Name, unchanged.Name)
	assert.Equal(t, pre.ServingSize, unchanged.ServingSize)
	assert.Equal(t, pre.Calories, unchanged.Calories)
	assert.Nil(t, unchanged.MealNumber)

	applied := day[1]
	assert.Equal(t, "Oats", applied.Name)
	assert.Equal(t, 298, applied.Calories) // 372 * 0.8 = 297.6
	require.NotNil(t, applied.MealNumber)
	assert.Equal(t, 1, *applied.MealNumber)
}

func TestApplyMealTemplateMissingTemplate(t *testing.T) {
	svc := NewTemplateService(setupDB(t))
	_, err := svc.ApplyMealTemplateToLog(context.Background(), 424242, "2026-08-29", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyDayTemplateSkipsDeletedMealTemplate(t *testing.T) {
	db := setupDB(t)
	templates := NewTemplateService(db)
	entries := NewEntryService(db)
	ctx := context.Background()

	food := seedFood(t, db, "Potatoes", 77, 2, 0.1)
	keep, err := templates.CreateMealTemplate(ctx, "Dinner")
	require.NoError(t, err)
	_, err = templates.AddMealTemplateItem(ctx, keep.ID, food.ID, 300)
	require.NoError(t, err)
	doomed, err := templates.CreateMealTemplate(ctx, "Lunch")
	require.NoError(t, err)
	_, err = templates.AddMealTemplateItem(ctx, doomed.ID, food.ID, 200)
	require.NoError(t, err)

	day, err := templates.CreateDayTemplate(ctx, "Carb Day")
	require.NoError(t, err)
	_, err = templates.AddDayTemplateMeal(ctx, day.ID, doomed.ID, 2)
	require.NoError(t, err)
	_, err = templates.AddDayTemplateMeal(ctx, day.ID, keep.ID, 3)
	require.NoError(t, err)

	// Delete one meal template after the day template referenced it; the
	// cascade clears its assignment row too, so only the surviving meal
	// applies, without aborting the run.
	require.NoError(t, templates.DeleteMealTemplate(ctx, doomed.ID))

	n, err := templates.ApplyDayTemplateToLog(ctx, day.ID, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	logged, err := entries.EntriesByDate(ctx, "2026-08-29")
	require.NoError(t, err)
	require.Len(t, logged, 1)
	require.NotNil(t, logged[0].MealNumber)
	assert.Equal(t, 3, *logged[0].MealNumber)
}

func TestApplyDayTemplateSkipsOrphanedAssignment(t *testing.T) {
	db := setupDB(t)
	templates := NewTemplateService(db)
	ctx := context.Background()

	food := seedFood(t, db, "Bread", 265, 9, 3.2)
	meal, err := templates.CreateMealTemplate(ctx, "Toast")
	require.NoError(t, err)
	_, err = templates.AddMealTemplateItem(ctx, meal.ID, food.ID, 60)
	require.NoError(t, err)

	day, err := templates.CreateDayTemplate(ctx, "Lazy Sunday")
	require.NoError(t, err)
	_, err = templates.AddDayTemplateMeal(ctx, day.ID, meal.ID, 1)
	require.NoError(t, err)

	// Remove the meal template directly, leaving the assignment dangling.
	require.NoError(t, db.Delete(&models.MealTemplate{}, meal.ID).Error)

	view, err := templates.GetDayTemplateWithMeals(ctx, day.ID)
	require.NoError(t, err)
	require.Len(t, view.Meals, 1)
	assert.True(t, view.Meals[0].MissingTemplate)

	n, err := templates.ApplyDayTemplateToLog(ctx, day.ID, "2026-08-29")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListMealTemplatesSummaries(t *testing.T) {
	db := setupDB(t)
	svc := NewTemplateService(db)
	ctx := context.Background()

	food := seedFood(t, db, "Banana", 89, 1.1, 0.3)
	b, err := svc.CreateMealTemplate(ctx, "B Snack")
	require.NoError(t, err)
	_, err = svc.AddMealTemplateItem(ctx, b.ID, food.ID, 120)
	require.NoError(t, err)
	_, err = svc.CreateMealTemplate(ctx, "A Snack")
	require.NoError(t, err)

	summaries, err := svc.ListMealTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "A Snack", summaries[0].Name)
	assert.Zero(t, summaries[0].ItemCount)
	assert.Equal(t, "B Snack", summaries[1].Name)
	assert.Equal(t, 1, summaries[1].ItemCount)
	assert.Equal(t, 107, summaries[1].Totals.Calories) // 89 * 1.2 = 106.8
}

func TestRenameTemplates(t *testing.T) {
	db := setupDB(t)
	svc := NewTemplateService(db)
	ctx := context.Background()

	meal, err := svc.CreateMealTemplate(ctx, "Lunch")
	require.NoError(t, err)
	renamed, err := svc.RenameMealTemplate(ctx, meal.ID, "Big Lunch")
	require.NoError(t, err)
	assert.Equal(t, "Big Lunch", renamed.Name)

	day, err := svc.CreateDayTemplate(ctx, "Rest Day")
	require.NoError(t, err)
	renamedDay, err := svc.RenameDayTemplate(ctx, day.ID, "Recovery Day")
	require.NoError(t, err)
	assert.Equal(t, "Recovery Day", renamedDay.Name)

	_, err = svc.RenameMealTemplate(ctx, meal.ID, "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.RenameMealTemplate(ctx, 99, "Anything")
	assert.ErrorIs(t, err, ErrNotFound)
}
