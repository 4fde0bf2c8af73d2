package nutrition

import "fmt"

// Label is a short display name plus a one-line description.
type Label struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ActivityLabels are the display names for the five activity levels.
var ActivityLabels = map[ActivityLevel]Label{
	Sedentary:        {"Sedentary", "Desk job, no exercise"},
	LightlyActive:    {"Lightly Active", "Mostly sitting, 1-2 gym days"},
	ModeratelyActive: {"Moderately Active", "Regular exercise, 3-4 days"},
	Active:           {"Active", "Hard exercise, 5-6 days"},
	VeryActive:       {"Very Active", "Physical job + daily training"},
}

// GoalLabels are the display names for the five goals.
var GoalLabels = map[Goal]Label{
	FatLoss:       {"Cut", "Lose fat fast, -20% calories"},
	LeanRecomp:    {"Lean Recomp", "Lose fat + gain muscle, -10%"},
	Recomposition: {"Recomp", "Build muscle at maintenance calories"},
	Maintenance:   {"Maintain", "Keep current weight and shape"},
	MuscleGain:    {"Bulk", "Gain muscle, +10% surplus"},
}

var mealLabels = map[int]string{
	1: "Breakfast",
	2: "Lunch",
	3: "Dinner",
	4: "Snacks",
}

// MealLabel names a meal-number slot. Nil means an ungrouped entry.
func MealLabel(mealNumber *int) string {
	if mealNumber == nil {
		return "Other"
	}
	if label, ok := mealLabels[*mealNumber]; ok {
		return label
	}
	return fmt.Sprintf("Meal %d", *mealNumber)
}
