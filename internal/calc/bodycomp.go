package calc

import (
	"errors"
	"math"
	"strings"

	"pixweight-backend/internal/reference"
)

// Disclaimer accompanies every body composition result.
const Disclaimer = "This is an estimate for educational purposes only. Consult a healthcare professional for medical advice."

const (
	idealBMIMin      = 18.5
	idealBMIMax      = 24.9
	bodyFatMin       = 5.0
	bodyFatMax       = 50.0
	fallbackBMIColor = "#6b7280"
)

var ErrInvalidHeight = errors.New("height must be positive")

// BodyInput carries the person's measurements. Age and gender are optional;
// body fat is only estimated when both are present.
type BodyInput struct {
	WeightKg      float64
	HeightCm      float64
	Age           *int
	Gender        string
	ActivityLevel string
}

// BodyCompositionResult is the person enrichment.
type BodyCompositionResult struct {
	WeightKg             float64  `json:"weight_kg"`
	HeightCm             float64  `json:"height_cm"`
	HeightM              float64  `json:"height_m"`
	BMI                  float64  `json:"bmi"`
	BMICategory          string   `json:"bmi_category"`
	BMICategoryID        *int64   `json:"bmi_category_id"`
	BMIColorCode         string   `json:"bmi_color_code"`
	IdealWeightMinKg     float64  `json:"ideal_weight_min_kg"`
	IdealWeightMaxKg     float64  `json:"ideal_weight_max_kg"`
	BodyFatEstimate      *float64 `json:"body_fat_estimate"`
	LeanMassEstimate     *float64 `json:"lean_mass_estimate"`
	Age                  *int     `json:"age"`
	Gender               string   `json:"gender,omitempty"`
	ActivityLevel        string   `json:"activity_level,omitempty"`
	HealthRecommendation string   `json:"health_recommendation"`
	Disclaimer           string   `json:"disclaimer"`
}

// BodyComposition computes BMI, its band, the ideal weight range for the
// person's height and, when possible, body fat and lean mass.
func BodyComposition(in BodyInput, bands []reference.BMICategory) (BodyCompositionResult, error) {
	if in.HeightCm <= 0 || math.IsNaN(in.HeightCm) {
		return BodyCompositionResult{}, ErrInvalidHeight
	}
	heightM := in.HeightCm / 100.0
	h2 := heightM * heightM
	bmi := in.WeightKg / h2

	res := BodyCompositionResult{
		WeightKg:         in.WeightKg,
		HeightCm:         in.HeightCm,
		HeightM:          round2(heightM),
		BMI:              round1(bmi),
		IdealWeightMinKg: round1(idealBMIMin * h2),
		IdealWeightMaxKg: round1(idealBMIMax * h2),
		Age:              in.Age,
		Gender:           in.Gender,
		ActivityLevel:    in.ActivityLevel,
		Disclaimer:       Disclaimer,
	}

	if band, ok := lookupBMIBand(bmi, bands); ok {
		res.BMICategory = band.Name
		res.BMICategoryID = ptr(band.ID)
		res.BMIColorCode = band.ColorCode
		res.HealthRecommendation = band.Recommendation
	} else {
		res.BMICategory, res.HealthRecommendation = fallbackBMIBand(bmi)
		res.BMIColorCode = fallbackBMIColor
	}

	if in.Age != nil && *in.Age > 0 && strings.TrimSpace(in.Gender) != "" {
		genderFactor := 0.0
		switch strings.ToLower(strings.TrimSpace(in.Gender)) {
		case "male", "m":
			genderFactor = 1
		}
		bodyFat := 1.20*bmi + 0.23*float64(*in.Age) - 10.8*genderFactor - 5.4
		bodyFat = math.Max(bodyFatMin, math.Min(bodyFatMax, bodyFat))
		res.BodyFatEstimate = ptr(round1(bodyFat))
		res.LeanMassEstimate = ptr(round1(in.WeightKg - bodyFat/100*in.WeightKg))
	}

	return res, nil
}

func lookupBMIBand(bmi float64, bands []reference.BMICategory) (reference.BMICategory, bool) {
	for _, b := range bands {
		if b.MinBMI <= bmi && bmi <= b.MaxBMI {
			return b, true
		}
	}
	return reference.BMICategory{}, false
}

func fallbackBMIBand(bmi float64) (string, string) {
	switch {
	case bmi < 18.5:
		return "Underweight", "Consider consulting a healthcare provider about healthy weight gain."
	case bmi < 25:
		return "Normal", "You're in a healthy weight range. Maintain your current lifestyle!"
	case bmi < 30:
		return "Overweight", "Consider moderate lifestyle changes for optimal health."
	default:
		return "Obese", "Consulting a healthcare provider is recommended."
	}
}
