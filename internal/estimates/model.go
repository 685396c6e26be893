package estimates

import (
	"encoding/json"
	"time"
)

// WeightEstimate is the single terminal estimate of a session. Weights are grams.
type WeightEstimate struct {
	ID               string
	SessionID        string
	UserID           string
	ValueGrams       float64
	MinGrams         float64
	MaxGrams         float64
	Confidence       float64
	UnitDisplay      string
	Rationale        string
	RawJSON          json.RawMessage
	Category         string
	CategoryMetadata json.RawMessage
	CreatedAt        time.Time
}

// FoodEstimate holds nutrition derived from a matched food row.
type FoodEstimate struct {
	EstimateID        string
	FoodReferenceID   *int64
	EstimatedCalories float64
	EstimatedProtein  float64
	EstimatedCarbs    float64
	EstimatedFat      float64
	EstimatedFiber    float64
	IsCooked          bool
	PortionStatus     string
	CreatedAt         time.Time
}

// PackageEstimate holds shipping figures for a package.
type PackageEstimate struct {
	EstimateID        string
	LengthCm          *float64
	WidthCm           *float64
	HeightCm          *float64
	VolumetricWeightG *float64
	ChargeableWeightG float64
	ShippingCosts     map[string]float64
	IsFragile         bool
	DestinationType   string
	CreatedAt         time.Time
}

// PetEstimate holds the breed health assessment.
type PetEstimate struct {
	EstimateID           string
	Species              string
	Breed                string
	BreedReferenceID     *int64
	AgeCategory          string
	Gender               string
	IsNeutered           *bool
	HealthStatus         string
	IdealWeightMin       *float64
	IdealWeightMax       *float64
	WeightRecommendation string
	CreatedAt            time.Time
}

// BodyCompositionEstimate holds BMI analysis for a person.
type BodyCompositionEstimate struct {
	EstimateID           string
	HeightCm             float64
	Age                  *int
	Gender               string
	ActivityLevel        string
	BMI                  float64
	BMICategory          string
	BMICategoryID        *int64
	IdealWeightMinKg     float64
	IdealWeightMaxKg     float64
	BodyFatEstimate      *float64
	LeanMassEstimate     *float64
	HealthRecommendation string
	CreatedAt            time.Time
}

// Details groups the category record of an estimate; at most one is set.
type Details struct {
	Food    *FoodEstimate
	Package *PackageEstimate
	Pet     *PetEstimate
	Body    *BodyCompositionEstimate
}

// Empty reports whether no category record is present.
func (d Details) Empty() bool {
	return d.Food == nil && d.Package == nil && d.Pet == nil && d.Body == nil
}

// WeightFeedback is the owner's report of the measured weight.
type WeightFeedback struct {
	ID                string
	EstimateID        string
	UserID            string
	ActualWeightGrams float64
	AccuracyRating    *int
	UserNotes         string
	Helpful           bool
	ErrorGrams        *float64
	ErrorPercentage   *float64
	CreatedAt         time.Time
}
