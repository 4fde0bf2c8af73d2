package openfoodfacts

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
)

// flexFloat tolerates the upstream habit of sending numbers as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// An unparseable quantity is treated as absent, not fatal.
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// rawProduct mirrors the upstream product shape for the fields we request.
type rawProduct struct {
	Code            string               `json:"code"`
	ProductName     string               `json:"product_name"`
	ProductNameDE   string               `json:"product_name_de"`
	Brands          string               `json:"brands"`
	NutriscoreGrade string               `json:"nutriscore_grade"`
	NutriscoreScore *int                 `json:"nutriscore_score"`
	NovaGroup       *int                 `json:"nova_group"`
	Nutriments      map[string]flexFloat `json:"nutriments"`
	ServingSize     string               `json:"serving_size"`
	ServingQuantity flexFloat            `json:"serving_quantity"`
	ImageURL        string               `json:"image_url"`
	ImageSmallURL   string               `json:"image_small_url"`
}

// Product is a normalized external product: the same per-100g shape as a
// saved food plus the upstream quality scores. Both scores tolerate
// unknown/absent values.
type Product struct {
	Barcode string  `json:"barcode"`
	Name    string  `json:"name"`
	Brand   *string `json:"brand,omitempty"`

	NutriScoreGrade models.NutriScoreGrade `json:"nutri_score_grade"`
	NutriScoreScore *int                   `json:"nutri_score_score,omitempty"`
	NovaGroup       *int                   `json:"nova_group,omitempty"`

	Nutrition nutrition.Per100g  `json:"nutrition"`
	Nutrients models.NutrientMap `json:"nutrients,omitempty"`

	ServingSize       *string  `json:"serving_size,omitempty"`
	ServingQuantity   *float64 `json:"serving_quantity,omitempty"`
	ServingUnitName   *string  `json:"serving_unit_name,omitempty"`
	ServingUnitWeight *float64 `json:"serving_unit_weight,omitempty"`
	ImageURL          *string  `json:"image_url,omitempty"`
}

func normalizeGrade(grade string) models.NutriScoreGrade {
	switch strings.ToLower(grade) {
	case "a", "b", "c", "d", "e":
		return models.NutriScoreGrade(strings.ToLower(grade))
	}
	return models.NutriScoreUnknown
}

func normalizeNova(group *int) *int {
	if group == nil || *group < 1 || *group > 4 {
		return nil
	}
	return group
}

// extendedNutrients maps upstream nutriment keys onto NutrientMap keys.
var extendedNutrients = map[string]string{
	"saturated-fat_100g":          models.NutrientSaturatedFat,
	"trans-fat_100g":              models.NutrientTransFat,
	"cholesterol_100g":            models.NutrientCholesterol,
	"monounsaturated-fat_100g":    models.NutrientMonounsaturatedFat,
	"polyunsaturated-fat_100g":    models.NutrientPolyunsaturatedFat,
	"omega-3-fat_100g":            models.NutrientOmega3Fat,
	"omega-6-fat_100g":            models.NutrientOmega6Fat,
	"sodium_100g":                 models.NutrientSodium,
	"calcium_100g":                models.NutrientCalcium,
	"iron_100g":                   models.NutrientIron,
	"potassium_100g":              models.NutrientPotassium,
	"magnesium_100g":              models.NutrientMagnesium,
	"zinc_100g":                   models.NutrientZinc,
	"phosphorus_100g":             models.NutrientPhosphorus,
	"iodine_100g":                 models.NutrientIodine,
	"selenium_100g":               models.NutrientSelenium,
	"copper_100g":                 models.NutrientCopper,
	"manganese_100g":              models.NutrientManganese,
	"vitamin-a_100g":              models.NutrientVitaminA,
	"vitamin-b1_100g":             models.NutrientVitaminB1,
	"vitamin-b2_100g":             models.NutrientVitaminB2,
	"vitamin-b3_100g":             models.NutrientVitaminB3,
	"vitamin-b5_100g":             models.NutrientVitaminB5,
	"vitamin-b6_100g":             models.NutrientVitaminB6,
	"vitamin-b9_100g":             models.NutrientVitaminB9,
	"vitamin-b12_100g":            models.NutrientVitaminB12,
	"vitamin-c_100g":              models.NutrientVitaminC,
	"vitamin-d_100g":              models.NutrientVitaminD,
	"vitamin-e_100g":              models.NutrientVitaminE,
	"vitamin-k_100g":              models.NutrientVitaminK,
	"caffeine_100g":               models.NutrientCaffeine,
	"alcohol_100g":                models.NutrientAlcohol,
	"fruits-vegetables-nuts_100g": models.NutrientFruitsVegNuts,
}

var servingUnitPattern = regexp.MustCompile(`^(\d+)\s*([a-zA-ZäöüÄÖÜß]+(?:\s+[a-zA-ZäöüÄÖÜß]+)?)`)
var servingWeightPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*g`)

var weightUnits = map[string]bool{"g": true, "ml": true, "kg": true, "l": true, "oz": true, "lb": true}

// parseServingUnit extracts a named serving unit and its per-unit gram weight
// from strings like "1 egg (60g)" or "2 slices (60g)" (30g per slice).
func parseServingUnit(servingSize string, servingQuantity float64) (unitName *string, unitWeight *float64) {
	if servingQuantity > 0 {
		unitWeight = &servingQuantity
	}

	if servingSize != "" {
		if m := servingUnitPattern.FindStringSubmatch(servingSize); m != nil {
			count, _ := strconv.Atoi(m[1])
			unit := strings.ToLower(strings.TrimSpace(m[2]))
			if !weightUnits[unit] {
				unitName = &unit
				if unitWeight != nil && count > 1 {
					per := *unitWeight / float64(count)
					unitWeight = &per
				}
			}
		}
		if unitWeight == nil {
			if m := servingWeightPattern.FindStringSubmatch(servingSize); m != nil {
				if w, err := strconv.ParseFloat(m[1], 64); err == nil {
					unitWeight = &w
				}
			}
		}
	}
	return unitName, unitWeight
}

// normalizeProduct converts the wire product into the internal shape. It
// returns nil for products missing a name or calorie value, which cannot be
// logged meaningfully.
func normalizeProduct(raw rawProduct) *Product {
	calories, ok := raw.Nutriments["energy-kcal_100g"]
	if !ok {
		calories, ok = raw.Nutriments["energy-kcal"]
	}
	if !ok {
		return nil
	}

	name := raw.ProductNameDE
	if name == "" {
		name = raw.ProductName
	}
	if name == "" {
		return nil
	}

	p := Product{
		Barcode:         raw.Code,
		Name:            name,
		NutriScoreGrade: normalizeGrade(raw.NutriscoreGrade),
		NutriScoreScore: raw.NutriscoreScore,
		NovaGroup:       normalizeNova(raw.NovaGroup),
		Nutrition: nutrition.Per100g{
			Calories: float64(calories),
			Protein:  float64(raw.Nutriments["proteins_100g"]),
			Carbs:    float64(raw.Nutriments["carbohydrates_100g"]),
			Fat:      float64(raw.Nutriments["fat_100g"]),
			Fiber:    float64(raw.Nutriments["fiber_100g"]),
			Sugar:    float64(raw.Nutriments["sugars_100g"]),
			Salt:     float64(raw.Nutriments["salt_100g"]),
		},
	}

	nutrients := models.NutrientMap{}
	for wireKey, key := range extendedNutrients {
		if v, ok := raw.Nutriments[wireKey]; ok {
			nutrients[key] = float64(v)
		}
	}
	if len(nutrients) > 0 {
		p.Nutrients = nutrients
	}

	if raw.Brands != "" {
		p.Brand = &raw.Brands
	}
	if raw.ServingSize != "" {
		p.ServingSize = &raw.ServingSize
	}
	if q := float64(raw.ServingQuantity); q > 0 {
		p.ServingQuantity = &q
	}
	p.ServingUnitName, p.ServingUnitWeight = parseServingUnit(raw.ServingSize, float64(raw.ServingQuantity))

	if raw.ImageSmallURL != "" {
		p.ImageURL = &raw.ImageSmallURL
	} else if raw.ImageURL != "" {
		p.ImageURL = &raw.ImageURL
	}
	return &p
}
