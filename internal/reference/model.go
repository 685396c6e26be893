package reference

// FoodNutrition holds per-100g macros for a food.
type FoodNutrition struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Aliases         []string `json:"aliases"`
	FoodCategory    string   `json:"food_category"`
	CaloriesPer100g float64  `json:"calories_per_100g"`
	ProteinPer100g  float64  `json:"protein_per_100g"`
	CarbsPer100g    float64  `json:"carbs_per_100g"`
	FatPer100g      float64  `json:"fat_per_100g"`
	FiberPer100g    float64  `json:"fiber_per_100g"`
	Description     string   `json:"description,omitempty"`
}

func (f FoodNutrition) MatchName() string      { return f.Name }
func (f FoodNutrition) MatchAliases() []string { return f.Aliases }

// ShippingCarrier is one carrier service rate card.
type ShippingCarrier struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	ServiceType       string  `json:"service_type"`
	BaseRate          float64 `json:"base_rate"`
	RatePerKg         float64 `json:"rate_per_kg"`
	MaxWeightKg       float64 `json:"max_weight_kg"`
	VolumetricDivisor int     `json:"volumetric_divisor"`
	IsInternational   bool    `json:"is_international"`
	IsActive          bool    `json:"is_active"`
	EstimatedDays     string  `json:"estimated_days,omitempty"`
}

// BreedReference holds breed weight standards in kilograms.
// Puppy and senior bands are optional.
type BreedReference struct {
	ID                   int64    `json:"id"`
	Species              string   `json:"species"`
	Breed                string   `json:"breed"`
	Aliases              []string `json:"aliases"`
	AdultMinKg           float64  `json:"adult_min_kg"`
	AdultMaxKg           float64  `json:"adult_max_kg"`
	PuppyMinKg           *float64 `json:"puppy_min_kg"`
	PuppyMaxKg           *float64 `json:"puppy_max_kg"`
	SeniorMinKg          *float64 `json:"senior_min_kg"`
	SeniorMaxKg          *float64 `json:"senior_max_kg"`
	UnderweightThreshold float64  `json:"underweight_threshold"`
	OverweightThreshold  float64  `json:"overweight_threshold"`
	Description          string   `json:"description,omitempty"`
}

func (b BreedReference) MatchName() string      { return b.Breed }
func (b BreedReference) MatchAliases() []string { return b.Aliases }

// BMICategory is one BMI band; bounds are inclusive.
type BMICategory struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	MinBMI         float64 `json:"min_bmi"`
	MaxBMI         float64 `json:"max_bmi"`
	Description    string  `json:"description,omitempty"`
	Recommendation string  `json:"recommendation"`
	ColorCode      string  `json:"color_code"`
}
