package nutrition

import "math"

// Per100g is a nutrition profile normalized to a 100 gram reference quantity,
// the canonical representation for any catalog food.
type Per100g struct {
	Calories float64 `json:"calories_per_100g"`
	Protein  float64 `json:"protein_per_100g"`
	Carbs    float64 `json:"carbs_per_100g"`
	Fat      float64 `json:"fat_per_100g"`
	Fiber    float64 `json:"fiber_per_100g"`
	Sugar    float64 `json:"sugar_per_100g"`
	Salt     float64 `json:"salt_per_100g"`
}

// Calculated holds nutrition values computed for a concrete serving.
// Calories are whole kcal, macros are rounded to one decimal place and
// salt to two.
type Calculated struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Salt     float64 `json:"salt"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ScaleToServing computes serving nutrition from a per-100g profile.
// Negative gram amounts are clamped to zero rather than rejected.
func ScaleToServing(p Per100g, grams float64) Calculated {
	if grams < 0 {
		grams = 0
	}
	m := grams / 100
	return Calculated{
		Calories: int(math.Round(p.Calories * m)),
		Protein:  round1(p.Protein * m),
		Carbs:    round1(p.Carbs * m),
		Fat:      round1(p.Fat * m),
		Fiber:    round1(p.Fiber * m),
		Sugar:    round1(p.Sugar * m),
		Salt:     round2(p.Salt * m),
	}
}

// Scale rescales already-computed serving values by a ratio, e.g. when a
// logged entry's serving size is edited after the fact (ratio = new/old).
func Scale(c Calculated, ratio float64) Calculated {
	if ratio < 0 {
		ratio = 0
	}
	return Calculated{
		Calories: int(math.Round(float64(c.Calories) * ratio)),
		Protein:  round1(c.Protein * ratio),
		Carbs:    round1(c.Carbs * ratio),
		Fat:      round1(c.Fat * ratio),
		Fiber:    round1(c.Fiber * ratio),
		Sugar:    round1(c.Sugar * ratio),
		Salt:     round2(c.Salt * ratio),
	}
}

// BackCompute derives a per-100g profile from serving-scaled values, used when
// an ad-hoc log entry is promoted into the food catalog. A non-positive
// serving size is treated as 100g (the values are taken as already normalized).
func BackCompute(c Calculated, servingGrams float64) Per100g {
	if servingGrams <= 0 {
		servingGrams = 100
	}
	factor := 100 / servingGrams
	return Per100g{
		Calories: math.Round(float64(c.Calories) * factor),
		Protein:  round1(c.Protein * factor),
		Carbs:    round1(c.Carbs * factor),
		Fat:      round1(c.Fat * factor),
		Fiber:    round1(c.Fiber * factor),
		Sugar:    round1(c.Sugar * factor),
		Salt:     round2(c.Salt * factor),
	}
}
