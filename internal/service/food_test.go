package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolog/backend/internal/models"
)

func TestCreateFoodBarcodeDeduplicates(t *testing.T) {
	svc := NewFoodService(setupDB(t))
	ctx := context.Background()

	barcode := "4000417025005"
	first, err := svc.CreateFood(ctx, &models.SavedFood{
		Name: "Dark Chocolate", Barcode: &barcode, CaloriesPer100g: 546, DefaultServingSize: 25,
	})
	require.NoError(t, err)

	second, err := svc.CreateFood(ctx, &models.SavedFood{
		Name: "Chocolate (duplicate)", Barcode: &barcode, CaloriesPer100g: 550, DefaultServingSize: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "barcode is a natural key")

	foods, err := svc.ListFoods(ctx)
	require.NoError(t, err)
	assert.Len(t, foods, 1)
}

func TestCreateFoodValidation(t *testing.T) {
	svc := NewFoodService(setupDB(t))
	ctx := context.Background()

	_, err := svc.CreateFood(ctx, &models.SavedFood{CaloriesPer100g: 100, DefaultServingSize: 100})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateFood(ctx, &models.SavedFood{Name: "Rice", CaloriesPer100g: 360, DefaultServingSize: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearchFoodsMatchesNameAndBrand(t *testing.T) {
	db := setupDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()

	brand := "Alpro"
	require.NoError(t, db.Create(&models.SavedFood{Name: "Soy Milk", Brand: &brand, CaloriesPer100g: 42, DefaultServingSize: 200}).Error)
	require.NoError(t, db.Create(&models.SavedFood{Name: "Oat Flakes", CaloriesPer100g: 372, DefaultServingSize: 50}).Error)

	byName, err := svc.SearchFoods(ctx, "soy")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	byBrand, err := svc.SearchFoods(ctx, "alpro")
	require.NoError(t, err)
	assert.Len(t, byBrand, 1)
}

func TestDeleteFoodCascades(t *testing.T) {
	db := setupDB(t)
	foods := NewFoodService(db)
	templates := NewTemplateService(db)
	ctx := context.Background()

	food := seedFood(t, db, "Chicken Breast", 165, 31, 3.6)
	template, err := templates.CreateMealTemplate(ctx, "Lunch Prep")
	require.NoError(t, err)
	_, err = templates.AddMealTemplateItem(ctx, template.ID, food.ID, 200)
	require.NoError(t, err)
	_, err = foods.AddPricing(ctx, &models.StorePricing{
		SavedFoodID: food.ID, Store: "Lidl", Price: 7.49, PackageSize: 1, PackageUnit: "kg",
	})
	require.NoError(t, err)

	require.NoError(t, foods.DeleteFood(ctx, food.ID))

	var pricingCount, itemCount int64
	require.NoError(t, db.Model(&models.StorePricing{}).Where("saved_food_id = ?", food.ID).Count(&pricingCount).Error)
	require.NoError(t, db.Model(&models.MealTemplateItem{}).Where("saved_food_id = ?", food.ID).Count(&itemCount).Error)
	assert.Zero(t, pricingCount)
	assert.Zero(t, itemCount)

	_, err = foods.GetFood(ctx, food.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveOrCreateFood(t *testing.T) {
	db := setupDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()

	barcode := "7613035974685"
	existing := models.SavedFood{Name: "Muesli", Barcode: &barcode, CaloriesPer100g: 350, DefaultServingSize: 60}
	require.NoError(t, db.Create(&existing).Error)

	// 1. Barcode wins over everything else.
	id, err := svc.ResolveOrCreateFood(ctx, models.FoodEntry{Name: "Some Other Name", Barcode: &barcode, ServingSize: 60})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, id)

	// 2. Exact name match when there is no barcode.
	id, err = svc.ResolveOrCreateFood(ctx, models.FoodEntry{Name: "Muesli", ServingSize: 60})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, id)

	// 3. Otherwise a new food is synthesized with back-computed per-100g values.
	id, err = svc.ResolveOrCreateFood(ctx, models.FoodEntry{
		Name: "Leftover Curry", ServingSize: 250,
		Calories: 410, Protein: 22.5, Carbs: 38.0, Fat: 17.5, Salt: 1.9,
	})
	require.NoError(t, err)
	created, err := svc.GetFood(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 164.0, created.CaloriesPer100g)
	assert.Equal(t, 9.0, created.ProteinPer100g)
	assert.Equal(t, 15.2, created.CarbsPer100g)
	assert.Equal(t, 7.0, created.FatPer100g)
	assert.Equal(t, 0.76, created.SaltPer100g)
	assert.Equal(t, 250.0, created.DefaultServingSize)
}

func TestAddPricingValidatesAndDerives(t *testing.T) {
	db := setupDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()
	food := seedFood(t, db, "Greek Yogurt", 97, 9, 5)

	_, err := svc.AddPricing(ctx, &models.StorePricing{SavedFoodID: food.ID, Store: "Rewe", Price: -1, PackageSize: 500})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddPricing(ctx, &models.StorePricing{SavedFoodID: food.ID, Store: "Rewe", Price: 1.19, PackageSize: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddPricing(ctx, &models.StorePricing{SavedFoodID: 9999, Store: "Rewe", Price: 1.19, PackageSize: 500})
	assert.ErrorIs(t, err, ErrNotFound)

	// g-based packages normalize to price per 1000g.
	pricing, err := svc.AddPricing(ctx, &models.StorePricing{SavedFoodID: food.ID, Store: "Rewe", Price: 1.19, PackageSize: 500})
	require.NoError(t, err)
	require.NotNil(t, pricing.PricePerKg)
	assert.InDelta(t, 2.38, *pricing.PricePerKg, 0.001)

	// Unrecognized units leave the derived field absent rather than wrong.
	odd, err := svc.AddPricing(ctx, &models.StorePricing{SavedFoodID: food.ID, Store: "Costco", Price: 3.99, PackageSize: 2, PackageUnit: "lbs"})
	require.NoError(t, err)
	assert.Nil(t, odd.PricePerKg)
}

func TestUpdatePricingRecomputesDerivedField(t *testing.T) {
	db := setupDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()
	food := seedFood(t, db, "Peanut Butter", 588, 25, 50)

	pricing, err := svc.AddPricing(ctx, &models.StorePricing{SavedFoodID: food.ID, Store: "Aldi", Price: 2.99, PackageSize: 500})
	require.NoError(t, err)
	require.NotNil(t, pricing.PricePerKg)
	assert.InDelta(t, 5.98, *pricing.PricePerKg, 0.001)

	updated, err := svc.UpdatePricing(ctx, pricing.ID, &models.StorePricing{Price: 3.49})
	require.NoError(t, err)
	require.NotNil(t, updated.PricePerKg)
	assert.InDelta(t, 6.98, *updated.PricePerKg, 0.001)

	updated, err = svc.UpdatePricing(ctx, pricing.ID, &models.StorePricing{PackageSize: 1, PackageUnit: "kg"})
	require.NoError(t, err)
	require.NotNil(t, updated.PricePerKg)
	assert.InDelta(t, 3.49, *updated.PricePerKg, 0.001)
}

func TestUpdateFoodRejectsNegativeServingSize(t *testing.T) {
	db := setupDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()

	food := seedFood(t, db, "Oats", 370, 13, 7)

	_, err := svc.UpdateFood(ctx, food.ID, &models.SavedFood{DefaultServingSize: -40})
	assert.ErrorIs(t, err, ErrValidation)

	unchanged, err := svc.GetFood(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, unchanged.DefaultServingSize)
}
