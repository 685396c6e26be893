package estimates

import (
	"encoding/json"
	"time"
)

// EstimateResponse is the outward representation of an estimate.
type EstimateResponse struct {
	ID               string            `json:"id"`
	SessionID        string            `json:"session_id"`
	ValueGrams       float64           `json:"value_grams"`
	MinGrams         float64           `json:"min_grams"`
	MaxGrams         float64           `json:"max_grams"`
	Confidence       float64           `json:"confidence"`
	UnitDisplay      string            `json:"unit_display"`
	Rationale        string            `json:"rationale"`
	Category         string            `json:"category"`
	CategoryMetadata json.RawMessage   `json:"category_metadata"`
	FoodDetails      *FoodResponse     `json:"food_details,omitempty"`
	PackageDetails   *PackageResponse  `json:"package_details,omitempty"`
	PetDetails       *PetResponse      `json:"pet_details,omitempty"`
	BodyDetails      *BodyResponse     `json:"body_details,omitempty"`
	Feedback         *FeedbackResponse `json:"feedback,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

type FoodResponse struct {
	FoodReferenceID   *int64  `json:"food_reference_id"`
	EstimatedCalories float64 `json:"estimated_calories"`
	EstimatedProtein  float64 `json:"estimated_protein"`
	EstimatedCarbs    float64 `json:"estimated_carbs"`
	EstimatedFat      float64 `json:"estimated_fat"`
	EstimatedFiber    float64 `json:"estimated_fiber"`
	IsCooked          bool    `json:"is_cooked"`
	PortionStatus     string  `json:"portion_status"`
}

type PackageResponse struct {
	LengthCm               *float64           `json:"length_cm"`
	WidthCm                *float64           `json:"width_cm"`
	HeightCm               *float64           `json:"height_cm"`
	VolumetricWeightG      *float64           `json:"volumetric_weight_g"`
	ChargeableWeightG      float64            `json:"chargeable_weight_g"`
	EstimatedShippingCosts map[string]float64 `json:"estimated_shipping_costs"`
	IsFragile              bool               `json:"is_fragile"`
	DestinationType        string             `json:"destination_type"`
}

type PetResponse struct {
	Species              string   `json:"species"`
	Breed                string   `json:"breed"`
	BreedReferenceID     *int64   `json:"breed_reference_id"`
	AgeCategory          string   `json:"age_category"`
	Gender               string   `json:"gender"`
	IsNeutered           *bool    `json:"is_neutered"`
	HealthStatus         string   `json:"health_status"`
	IdealWeightMin       *float64 `json:"ideal_weight_min"`
	IdealWeightMax       *float64 `json:"ideal_weight_max"`
	WeightRecommendation string   `json:"weight_recommendation"`
}

type BodyResponse struct {
	HeightCm             float64  `json:"height_cm"`
	Age                  *int     `json:"age"`
	Gender               string   `json:"gender"`
	ActivityLevel        string   `json:"activity_level"`
	BMI                  float64  `json:"bmi"`
	BMICategory          string   `json:"bmi_category"`
	BMICategoryID        *int64   `json:"bmi_category_id"`
	IdealWeightMinKg     float64  `json:"ideal_weight_min_kg"`
	IdealWeightMaxKg     float64  `json:"ideal_weight_max_kg"`
	BodyFatEstimate      *float64 `json:"body_fat_estimate"`
	LeanMassEstimate     *float64 `json:"lean_mass_estimate"`
	HealthRecommendation string   `json:"health_recommendation"`
}

type FeedbackResponse struct {
	ID                string    `json:"id"`
	ActualWeightGrams float64   `json:"actual_weight_grams"`
	AccuracyRating    *int      `json:"accuracy_rating"`
	UserNotes         string    `json:"user_notes"`
	Helpful           bool      `json:"helpful"`
	ErrorGrams        *float64  `json:"error_grams"`
	ErrorPercentage   *float64  `json:"error_percentage"`
	CreatedAt         time.Time `json:"created_at"`
}

// ToResponse renders an estimate view.
func ToResponse(v View) EstimateResponse {
	est := v.Estimate
	meta := est.CategoryMetadata
	if len(meta) == 0 {
		meta = json.RawMessage("{}")
	}
	resp := EstimateResponse{
		ID:               est.ID,
		SessionID:        est.SessionID,
		ValueGrams:       est.ValueGrams,
		MinGrams:         est.MinGrams,
		MaxGrams:         est.MaxGrams,
		Confidence:       est.Confidence,
		UnitDisplay:      est.UnitDisplay,
		Rationale:        est.Rationale,
		Category:         est.Category,
		CategoryMetadata: meta,
		CreatedAt:        est.CreatedAt,
	}
	if f := v.Details.Food; f != nil {
		resp.FoodDetails = &FoodResponse{
			FoodReferenceID:   f.FoodReferenceID,
			EstimatedCalories: f.EstimatedCalories,
			EstimatedProtein:  f.EstimatedProtein,
			EstimatedCarbs:    f.EstimatedCarbs,
			EstimatedFat:      f.EstimatedFat,
			EstimatedFiber:    f.EstimatedFiber,
			IsCooked:          f.IsCooked,
			PortionStatus:     f.PortionStatus,
		}
	}
	if p := v.Details.Package; p != nil {
		resp.PackageDetails = &PackageResponse{
			LengthCm:               p.LengthCm,
			WidthCm:                p.WidthCm,
			HeightCm:               p.HeightCm,
			VolumetricWeightG:      p.VolumetricWeightG,
			ChargeableWeightG:      p.ChargeableWeightG,
			EstimatedShippingCosts: nonNilCosts(p.ShippingCosts),
			IsFragile:              p.IsFragile,
			DestinationType:        p.DestinationType,
		}
	}
	if p := v.Details.Pet; p != nil {
		resp.PetDetails = &PetResponse{
			Species:              p.Species,
			Breed:                p.Breed,
			BreedReferenceID:     p.BreedReferenceID,
			AgeCategory:          p.AgeCategory,
			Gender:               p.Gender,
			IsNeutered:           p.IsNeutered,
			HealthStatus:         p.HealthStatus,
			IdealWeightMin:       p.IdealWeightMin,
			IdealWeightMax:       p.IdealWeightMax,
			WeightRecommendation: p.WeightRecommendation,
		}
	}
	if b := v.Details.Body; b != nil {
		resp.BodyDetails = &BodyResponse{
			HeightCm:             b.HeightCm,
			Age:                  b.Age,
			Gender:               b.Gender,
			ActivityLevel:        b.ActivityLevel,
			BMI:                  b.BMI,
			BMICategory:          b.BMICategory,
			BMICategoryID:        b.BMICategoryID,
			IdealWeightMinKg:     b.IdealWeightMinKg,
			IdealWeightMaxKg:     b.IdealWeightMaxKg,
			BodyFatEstimate:      b.BodyFatEstimate,
			LeanMassEstimate:     b.LeanMassEstimate,
			HealthRecommendation: b.HealthRecommendation,
		}
	}
	if v.Feedback != nil {
		fb := toFeedbackResponse(*v.Feedback)
		resp.Feedback = &fb
	}
	return resp
}

func toFeedbackResponse(fb WeightFeedback) FeedbackResponse {
	return FeedbackResponse{
		ID:                fb.ID,
		ActualWeightGrams: fb.ActualWeightGrams,
		AccuracyRating:    fb.AccuracyRating,
		UserNotes:         fb.UserNotes,
		Helpful:           fb.Helpful,
		ErrorGrams:        fb.ErrorGrams,
		ErrorPercentage:   fb.ErrorPercentage,
		CreatedAt:         fb.CreatedAt,
	}
}
