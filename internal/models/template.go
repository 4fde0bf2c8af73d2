package models

import "time"

// MealTemplate is a named, reusable set of (food, serving) pairs representing
// one meal. Its items live in MealTemplateItem.
type MealTemplate struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MealTemplateItem ties one saved food at a serving size (grams) to a meal
// template. Deleting the template or the food cascades these rows away.
type MealTemplateItem struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	MealTemplateID uint    `gorm:"not null;index" json:"meal_template_id"`
	SavedFoodID    uint    `gorm:"not null;index" json:"saved_food_id"`
	ServingSize    float64 `gorm:"not null" json:"serving_size"`
}

// DayTemplate is a named assignment of meal templates to meal-number slots
// representing a full day's plan.
type DayTemplate struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DayTemplateMeal assigns a meal template to a slot within a day template.
// MealNumber uniqueness per day template is a soft invariant: the template
// service rejects duplicate slots, but the schema does not hard-enforce it.
type DayTemplateMeal struct {
	ID             uint `gorm:"primarykey" json:"id"`
	DayTemplateID  uint `gorm:"not null;index" json:"day_template_id"`
	MealTemplateID uint `gorm:"not null;index" json:"meal_template_id"`
	MealNumber     int  `gorm:"not null" json:"meal_number"`
}
