package models

import "time"

// FoodEntry is one logged food on a calendar day. Nutrition fields hold the
// values for the logged serving, already scaled from the food's per-100g
// profile at insert time.
type FoodEntry struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Date        string    `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD
	Barcode     *string   `gorm:"size:64" json:"barcode,omitempty"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	ServingSize float64   `gorm:"not null" json:"serving_size"`
	ServingUnit string    `gorm:"size:32;not null;default:g" json:"serving_unit"`
	Calories    int       `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	Fiber       float64   `json:"fiber"`
	Sugar       float64   `json:"sugar"`
	Salt        float64   `json:"salt"`
	MealNumber  *int      `gorm:"index" json:"meal_number,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// UserGoals is the daily target row. At most one row exists at any time; the
// goals service enforces update-over-insert.
type UserGoals struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	DailyCalories int     `json:"daily_calories"`
	DailyProtein  float64 `json:"daily_protein"`
	DailyCarbs    float64 `json:"daily_carbs"`
	DailyFat      float64 `json:"daily_fat"`
	DailyFiber    float64 `json:"daily_fiber"`
	DailySugar    float64 `json:"daily_sugar"`
	DailySalt     float64 `json:"daily_salt"`
}
