package nutrition

import "math"

// Sex is the biological sex used by the Mifflin-St Jeor equation.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ActivityLevel categorizes weekly activity for the TDEE multiplier.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	Active           ActivityLevel = "active"
	VeryActive       ActivityLevel = "very_active"
)

// Goal selects the calorie adjustment and protein target.
type Goal string

const (
	FatLoss       Goal = "fat_loss"
	LeanRecomp    Goal = "lean_recomp"
	Recomposition Goal = "recomposition"
	Maintenance   Goal = "maintenance"
	MuscleGain    Goal = "muscle_gain"
)

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	Active:           1.725,
	VeryActive:       1.9,
}

var goalCalorieMultipliers = map[Goal]float64{
	FatLoss:       0.80,
	LeanRecomp:    0.90,
	Recomposition: 1.00,
	Maintenance:   1.00,
	MuscleGain:    1.10,
}

var goalProteinPerKg = map[Goal]float64{
	FatLoss:       2.0,
	LeanRecomp:    2.2,
	Recomposition: 2.2,
	Maintenance:   1.6,
	MuscleGain:    1.8,
}

// Valid reports whether the level is one of the five known activity levels.
func (a ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// Valid reports whether the goal is one of the five known goals.
func (g Goal) Valid() bool {
	_, ok := goalCalorieMultipliers[g]
	return ok
}

// MacroSplit is a daily macro target in whole grams.
type MacroSplit struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// CalculateBMR computes Basal Metabolic Rate in kcal using Mifflin-St Jeor.
func CalculateBMR(sex Sex, weightKg, heightCm float64, age int) int {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == Male {
		return int(math.Round(base + 5))
	}
	return int(math.Round(base - 161))
}

// CalculateTDEE computes Total Daily Energy Expenditure from BMR and activity.
func CalculateTDEE(bmr int, level ActivityLevel) int {
	return int(math.Round(float64(bmr) * activityMultipliers[level]))
}

// CalculateGoalCalories adjusts TDEE for the chosen goal.
func CalculateGoalCalories(tdee int, goal Goal) int {
	return int(math.Round(float64(tdee) * goalCalorieMultipliers[goal]))
}

// CalculateMacros splits a calorie target into protein/carbs/fat grams.
// Protein follows body weight, fat takes 30% of calories, carbs get the
// remainder. Carbs never go negative: implausible low-calorie/high-weight
// combinations clamp to zero instead of erroring.
func CalculateMacros(targetCalories int, weightKg float64, goal Goal) MacroSplit {
	protein := int(math.Round(weightKg * goalProteinPerKg[goal]))
	fat := int(math.Round(float64(targetCalories) * 0.30 / 9))
	remainder := float64(targetCalories - protein*4 - fat*9)
	carbs := int(math.Round(math.Max(0, remainder) / 4))
	return MacroSplit{Protein: protein, Carbs: carbs, Fat: fat}
}

// GoalSuggestion is the full derivation chain from body stats to daily targets.
type GoalSuggestion struct {
	BMR            int        `json:"bmr"`
	TDEE           int        `json:"tdee"`
	TargetCalories int        `json:"target_calories"`
	Macros         MacroSplit `json:"macros"`
}

// SuggestGoals runs BMR -> TDEE -> goal calories -> macro split in one step.
func SuggestGoals(sex Sex, weightKg, heightCm float64, age int, level ActivityLevel, goal Goal) GoalSuggestion {
	bmr := CalculateBMR(sex, weightKg, heightCm, age)
	tdee := CalculateTDEE(bmr, level)
	target := CalculateGoalCalories(tdee, goal)
	return GoalSuggestion{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: target,
		Macros:         CalculateMacros(target, weightKg, goal),
	}
}
