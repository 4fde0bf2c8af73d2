package models

import (
	"strings"
	"time"
)

// NutriScoreGrade is the A-E quality letter from the external food database.
// "unknown" covers absent or unparseable grades.
type NutriScoreGrade string

const (
	NutriScoreA       NutriScoreGrade = "a"
	NutriScoreB       NutriScoreGrade = "b"
	NutriScoreC       NutriScoreGrade = "c"
	NutriScoreD       NutriScoreGrade = "d"
	NutriScoreE       NutriScoreGrade = "e"
	NutriScoreUnknown NutriScoreGrade = "unknown"
)

// FoodCategory is a coarse user-facing classification for catalog foods.
type FoodCategory string

const (
	CategoryProtein   FoodCategory = "protein"
	CategoryCarbs     FoodCategory = "carbs"
	CategoryFat       FoodCategory = "fat"
	CategoryDairy     FoodCategory = "dairy"
	CategoryVegetable FoodCategory = "vegetable"
	CategoryFruit     FoodCategory = "fruit"
	CategoryCondiment FoodCategory = "condiment"
	CategoryBeverage  FoodCategory = "beverage"
	CategorySnack     FoodCategory = "snack"
	CategoryOther     FoodCategory = "other"
)

// SavedFood is a reusable per-100g nutrition profile in the personal catalog.
// Barcode, when present, acts as a natural key: lookups check it before
// inserting a duplicate.
type SavedFood struct {
	ID       uint          `gorm:"primarykey" json:"id"`
	Barcode  *string       `gorm:"size:64;index" json:"barcode,omitempty"`
	Name     string        `gorm:"size:255;not null;index" json:"name"`
	Brand    *string       `gorm:"size:255" json:"brand,omitempty"`
	Category *FoodCategory `gorm:"size:32" json:"category,omitempty"`

	NutriScoreGrade *NutriScoreGrade `gorm:"size:8" json:"nutri_score_grade,omitempty"`
	NutriScoreScore *int             `json:"nutri_score_score,omitempty"`
	NovaGroup       *int             `json:"nova_group,omitempty"` // 1-4 processing level

	CaloriesPer100g float64 `gorm:"not null" json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	FiberPer100g    float64 `json:"fiber_per_100g"`
	SugarPer100g    float64 `json:"sugar_per_100g"`
	SaltPer100g     float64 `json:"salt_per_100g"`

	Nutrients NutrientMap `gorm:"type:text" json:"nutrients,omitempty"`

	DefaultServingSize float64   `gorm:"not null;default:100" json:"default_serving_size"`
	ServingUnitName    *string   `gorm:"size:64" json:"serving_unit_name,omitempty"` // e.g. "egg", "slice"
	ServingUnitWeight  *float64  `json:"serving_unit_weight,omitempty"`              // grams per unit
	ServingSizeFromAPI *string   `gorm:"size:64" json:"serving_size_from_api,omitempty"`
	ImageURL           *string   `gorm:"size:512" json:"image_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`

	// Deprecated since schema generation 4: pricing lives in StorePricing.
	// The columns remain so the v4 migration can backfill from them.
	Store       *string  `gorm:"size:255" json:"-"`
	Price       *float64 `json:"-"`
	PackageSize *float64 `json:"-"`
	PackageUnit *string  `gorm:"size:16" json:"-"`
}

// PricePerKg derives the normalized price for a package. It returns nil when
// packageSize is non-positive, price is negative, or the unit is not one of
// g, ml, kg, l. An absent value is preferred over a meaningless one.
func PricePerKg(price, packageSize float64, packageUnit string) *float64 {
	if packageSize <= 0 || price < 0 {
		return nil
	}
	var perKg float64
	switch strings.ToLower(packageUnit) {
	case "", "g", "ml":
		perKg = price / packageSize * 1000
	case "kg", "l":
		perKg = price / packageSize
	default:
		return nil
	}
	return &perKg
}

// StorePricing records what a saved food costs at one store. PricePerKg is
// derived from price/packageSize/packageUnit and stays NULL when they do not
// yield a meaningful value.
type StorePricing struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SavedFoodID uint      `gorm:"not null;index" json:"saved_food_id"`
	Store       string    `gorm:"size:255;not null" json:"store"`
	Price       float64   `gorm:"not null" json:"price"`
	PackageSize float64   `gorm:"not null" json:"package_size"`
	PackageUnit string    `gorm:"size:16;not null;default:g" json:"package_unit"`
	PricePerKg  *float64  `json:"price_per_kg,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

func (StorePricing) TableName() string { return "store_pricing" }
