package models

import (
	"database/sql/driver"
	"encoding/json"
)

// Nutrient keys for the optional extended per-100g values carried by
// SavedFood and normalized external products. The core macros have their own
// columns; everything else lives in a NutrientMap.
const (
	NutrientSaturatedFat       = "saturated_fat"
	NutrientTransFat           = "trans_fat"
	NutrientCholesterol        = "cholesterol"
	NutrientMonounsaturatedFat = "monounsaturated_fat"
	NutrientPolyunsaturatedFat = "polyunsaturated_fat"
	NutrientOmega3Fat          = "omega_3_fat"
	NutrientOmega6Fat          = "omega_6_fat"
	NutrientSodium             = "sodium"
	NutrientCalcium            = "calcium"
	NutrientIron               = "iron"
	NutrientPotassium          = "potassium"
	NutrientMagnesium          = "magnesium"
	NutrientZinc               = "zinc"
	NutrientPhosphorus         = "phosphorus"
	NutrientIodine             = "iodine"
	NutrientSelenium           = "selenium"
	NutrientCopper             = "copper"
	NutrientManganese          = "manganese"
	NutrientVitaminA           = "vitamin_a"
	NutrientVitaminB1          = "vitamin_b1"
	NutrientVitaminB2          = "vitamin_b2"
	NutrientVitaminB3          = "vitamin_b3"
	NutrientVitaminB5          = "vitamin_b5"
	NutrientVitaminB6          = "vitamin_b6"
	NutrientVitaminB9          = "vitamin_b9"
	NutrientVitaminB12         = "vitamin_b12"
	NutrientVitaminC           = "vitamin_c"
	NutrientVitaminD           = "vitamin_d"
	NutrientVitaminE           = "vitamin_e"
	NutrientVitaminK           = "vitamin_k"
	NutrientCaffeine           = "caffeine"
	NutrientAlcohol            = "alcohol"
	NutrientFruitsVegNuts      = "fruits_vegetables_nuts"
)

// NutrientMap stores optional per-100g micronutrient values keyed by nutrient
// name, serialized as a JSON text column. Absent keys mean the value is
// unknown, which is distinct from zero.
type NutrientMap map[string]float64

// Value implements the driver.Valuer interface
func (m NutrientMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (m *NutrientMap) Scan(value interface{}) error {
	if value == nil {
		*m = NutrientMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}
