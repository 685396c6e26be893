package calc

import (
	"fmt"
	"strings"

	"pixweight-backend/internal/fuzzy"
	"pixweight-backend/internal/reference"
)

const (
	HealthUnknown             = "unknown"
	HealthUnderweight         = "underweight"
	HealthSlightlyUnderweight = "slightly_underweight"
	HealthHealthy             = "healthy"
	HealthSlightlyOverweight  = "slightly_overweight"
	HealthOverweight          = "overweight"
)

const (
	puppyMinFactor = 0.5
	puppyMaxFactor = 0.6
)

// PetHealthResult is the pet enrichment. Band fields are nil when the breed
// was not found.
type PetHealthResult struct {
	Found                bool     `json:"found"`
	BreedReferenceID     *int64   `json:"breed_reference_id,omitempty"`
	Species              string   `json:"species"`
	BreedName            string   `json:"breed_name"`
	WeightKg             float64  `json:"weight_kg"`
	AgeCategory          string   `json:"age_category,omitempty"`
	HealthStatus         string   `json:"health_status"`
	Message              string   `json:"message,omitempty"`
	IdealWeightMin       *float64 `json:"ideal_weight_min"`
	IdealWeightMax       *float64 `json:"ideal_weight_max"`
	IdealWeightMid       *float64 `json:"ideal_weight_mid,omitempty"`
	PercentOfIdeal       *float64 `json:"percent_of_ideal,omitempty"`
	WeightRecommendation string   `json:"weight_recommendation"`
	BreedDescription     string   `json:"breed_description,omitempty"`
}

// PetHealth compares weightKg against the breed's ideal band for the age
// category. The breed is matched only among rows of the given species.
func PetHealth(weightKg float64, species, breedName, ageCategory string, breeds []reference.BreedReference) PetHealthResult {
	var (
		breed reference.BreedReference
		found bool
	)
	if strings.TrimSpace(breedName) != "" {
		breed, found = fuzzy.Match(breedName, reference.BreedsForSpecies(breeds, species))
	}
	if !found {
		name := breedName
		if name == "" {
			name = "Unknown"
		}
		return PetHealthResult{
			Found:                false,
			Species:              species,
			BreedName:            name,
			WeightKg:             weightKg,
			HealthStatus:         HealthUnknown,
			Message:              fmt.Sprintf("Breed '%s' not found in database for %s", breedName, species),
			WeightRecommendation: "Unable to assess without breed information.",
		}
	}

	idealMin, idealMax := idealBand(breed, ageCategory)
	idealMid := (idealMin + idealMax) / 2
	status := classifyPetWeight(weightKg, idealMin, idealMax, idealMid, breed.UnderweightThreshold, breed.OverweightThreshold)

	return PetHealthResult{
		Found:                true,
		BreedReferenceID:     ptr(breed.ID),
		Species:              breed.Species,
		BreedName:            breed.Breed,
		WeightKg:             weightKg,
		AgeCategory:          ageCategory,
		HealthStatus:         status,
		IdealWeightMin:       ptr(round1(idealMin)),
		IdealWeightMax:       ptr(round1(idealMax)),
		IdealWeightMid:       ptr(round1(idealMid)),
		PercentOfIdeal:       ptr(round1(weightKg / idealMid * 100)),
		WeightRecommendation: petRecommendation(status, breed.Breed),
		BreedDescription:     breed.Description,
	}
}

func idealBand(b reference.BreedReference, ageCategory string) (float64, float64) {
	age := strings.ToLower(ageCategory)
	switch {
	case strings.Contains(age, "puppy") || strings.Contains(age, "kitten"):
		return orDefault(b.PuppyMinKg, b.AdultMinKg*puppyMinFactor), orDefault(b.PuppyMaxKg, b.AdultMaxKg*puppyMaxFactor)
	case strings.Contains(age, "senior"):
		return orDefault(b.SeniorMinKg, b.AdultMinKg), orDefault(b.SeniorMaxKg, b.AdultMaxKg)
	default:
		return b.AdultMinKg, b.AdultMaxKg
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}

func classifyPetWeight(weight, idealMin, idealMax, idealMid, under, over float64) string {
	if under <= 0 {
		under = 0.85
	}
	if over <= 0 {
		over = 1.15
	}
	switch {
	case weight < idealMid*under:
		return HealthUnderweight
	case weight > idealMid*over:
		return HealthOverweight
	case weight < idealMin:
		return HealthSlightlyUnderweight
	case weight > idealMax:
		return HealthSlightlyOverweight
	default:
		return HealthHealthy
	}
}

func petRecommendation(status, breed string) string {
	switch status {
	case HealthUnderweight:
		return fmt.Sprintf("This %s appears underweight. Consider consulting a veterinarian about healthy weight gain. Ensure proper nutrition and rule out health issues.", breed)
	case HealthOverweight:
		return fmt.Sprintf("This %s appears overweight. Consider a balanced diet and increased exercise. Consult your veterinarian for a weight management plan.", breed)
	case HealthSlightlyUnderweight:
		return fmt.Sprintf("This %s is slightly below ideal weight. Monitor closely and ensure adequate nutrition.", breed)
	case HealthSlightlyOverweight:
		return fmt.Sprintf("This %s is slightly above ideal weight. Consider portion control and regular exercise.", breed)
	default:
		return fmt.Sprintf("This %s appears to be at a healthy weight! Maintain current diet and exercise routine.", breed)
	}
}
