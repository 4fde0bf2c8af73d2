package types

import (
	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
)

// DisplayTotals is an aggregate rounded to display precision: whole kcal and
// whole grams. Per-item values are computed precisely and summed before this
// coarser rounding is applied, so the two stages never mix.
type DisplayTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// DailyTotals sums the logged entries of one day at entry precision.
type DailyTotals struct {
	Date     string  `json:"date"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Salt     float64 `json:"salt"`
}

// MealTemplateItemView is a template item joined with its saved food. When
// the referenced food no longer resolves, MissingFood is set and the item is
// excluded from aggregate totals instead of contributing fabricated zeros.
type MealTemplateItemView struct {
	Item        models.MealTemplateItem `json:"item"`
	SavedFood   *models.SavedFood       `json:"saved_food,omitempty"`
	Nutrition   nutrition.Calculated    `json:"nutrition"`
	MissingFood bool                    `json:"missing_food,omitempty"`
}

// MealTemplateView is the read-only joined view of one meal template.
type MealTemplateView struct {
	Template models.MealTemplate    `json:"template"`
	Items    []MealTemplateItemView `json:"items"`
	Totals   DisplayTotals          `json:"totals"`
}

// MealTemplateSummary is the list-view shape: the template plus its item
// count and display-rounded totals.
type MealTemplateSummary struct {
	models.MealTemplate
	ItemCount int           `json:"item_count"`
	Totals    DisplayTotals `json:"totals"`
}

// DayTemplateMealView is a slot assignment joined with its meal template.
// A missing meal template marks the assignment; applying the day template
// skips it rather than failing.
type DayTemplateMealView struct {
	Assignment      models.DayTemplateMeal `json:"assignment"`
	MealTemplate    *models.MealTemplate   `json:"meal_template,omitempty"`
	MissingTemplate bool                   `json:"missing_template,omitempty"`
}

// DayTemplateView is the read-only joined view of one day template, meals
// sorted ascending by meal number.
type DayTemplateView struct {
	Template models.DayTemplate    `json:"template"`
	Meals    []DayTemplateMealView `json:"meals"`
	Totals   DisplayTotals         `json:"totals"`
}

// DayTemplateSummary is the list-view shape for day templates.
type DayTemplateSummary struct {
	models.DayTemplate
	MealCount int           `json:"meal_count"`
	Totals    DisplayTotals `json:"totals"`
}
