package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixweight-backend/internal/reference"
)

func TestNutritionScalesToWeight(t *testing.T) {
	foods := reference.Seed().Foods

	tests := []struct {
		name     string
		weight   float64
		food     string
		cooking  string
		calories float64
		adjusted bool
	}{
		{name: "apple 200g", weight: 200, food: "apple", calories: 104.0},
		{name: "apple 150g", weight: 150, food: "Apple", calories: 78.0},
		{name: "cooked chicken", weight: 100, food: "chicken breast", cooking: "Cooked", calories: 181.5, adjusted: true},
		{name: "raw chicken", weight: 100, food: "chicken breast", cooking: "Raw", calories: 165.0},
		{name: "cooked fruit is not adjusted", weight: 100, food: "apple", cooking: "cooked", calories: 52.0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res := Nutrition(tt.weight, tt.food, tt.cooking, foods)
			require.True(t, res.Found)
			require.NotNil(t, res.EstimatedCalories)
			assert.InDelta(t, tt.calories, *res.EstimatedCalories, 0.001)
			assert.Equal(t, tt.adjusted, res.CookingAdjusted)
			require.NotNil(t, res.FoodReferenceID)
		})
	}
}

func TestNutritionCookedScalesEveryMacro(t *testing.T) {
	res := Nutrition(100, "chicken breast", "cooked", reference.Seed().Foods)
	require.True(t, res.Found)
	assert.InDelta(t, 34.1, *res.EstimatedProtein, 0.001)
	assert.InDelta(t, 4.0, *res.EstimatedFat, 0.001)
	assert.InDelta(t, 0.0, *res.EstimatedCarbs, 0.001)
}

func TestNutritionNotFound(t *testing.T) {
	res := Nutrition(200, "unobtainium", "", reference.Seed().Foods)
	assert.False(t, res.Found)
	assert.Equal(t, "Food not found in nutrition database", res.Message)
	assert.Nil(t, res.EstimatedCalories)
	assert.Nil(t, res.EstimatedProtein)
	assert.Nil(t, res.Per100g)
}

func TestVolumetricWeight(t *testing.T) {
	assert.InDelta(t, 200.0, VolumetricWeight(10, 10, 10, 5000), 0.0001)
	assert.InDelta(t, 200.0, VolumetricWeight(10, 10, 10, 0), 0.0001)
	assert.InDelta(t, 1800.0, VolumetricWeight(30, 20, 15, 5000), 0.0001)
}

func TestShippingDomestic(t *testing.T) {
	res := Shipping(2000, Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 15}, "", reference.Seed().Carriers)

	assert.Equal(t, "Domestic", res.DestinationType)
	require.NotNil(t, res.VolumetricWeightG)
	assert.InDelta(t, 1800.0, *res.VolumetricWeightG, 0.0001)
	assert.InDelta(t, 2000.0, res.ChargeableWeightG, 0.0001)

	_, hasFirstClass := res.ShippingCosts["USPS - First Class"]
	assert.False(t, hasFirstClass)
	assert.Len(t, res.CarrierDetails, 9)
	assert.InDelta(t, 14.5, res.ShippingCosts["USPS - Priority Mail"], 0.001)

	for i := 1; i < len(res.CarrierDetails); i++ {
		assert.LessOrEqual(t, res.CarrierDetails[i-1].Cost, res.CarrierDetails[i].Cost)
	}
	require.NotNil(t, res.CheapestOption)
	assert.Equal(t, "FedEx", res.CheapestOption.Carrier)
	assert.Equal(t, "Ground", res.CheapestOption.Service)
	assert.InDelta(t, 14.0, res.CheapestOption.Cost, 0.001)
}

func TestShippingVolumetricDominates(t *testing.T) {
	res := Shipping(500, Dimensions{LengthCm: 50, WidthCm: 40, HeightCm: 30}, "Domestic", reference.Seed().Carriers)
	assert.InDelta(t, 12000.0, res.ChargeableWeightG, 0.0001)
	assert.InDelta(t, 12000.0, res.CarrierDetails[0].ChargeableWeightG, 0.0001)
}

func TestShippingInternationalWithoutDimensions(t *testing.T) {
	res := Shipping(2000, Dimensions{}, "International", reference.Seed().Carriers)

	assert.Nil(t, res.VolumetricWeightG)
	require.Len(t, res.CarrierDetails, 1)
	assert.Equal(t, "DHL", res.CarrierDetails[0].Carrier)
	assert.InDelta(t, 70.0, res.ShippingCosts["DHL - Express Worldwide"], 0.001)
}

func TestShippingSkipsInactiveCarriers(t *testing.T) {
	carriers := []reference.ShippingCarrier{
		{Name: "A", ServiceType: "X", BaseRate: 1, RatePerKg: 1, MaxWeightKg: 10, IsActive: false},
	}
	res := Shipping(1000, Dimensions{}, "Domestic", carriers)
	assert.Empty(t, res.CarrierDetails)
	assert.Nil(t, res.CheapestOption)
}

func TestPetHealthTiers(t *testing.T) {
	breeds := reference.Seed().Breeds

	tests := []struct {
		name   string
		weight float64
		want   string
	}{
		{name: "healthy", weight: 30, want: HealthHealthy},
		{name: "underweight", weight: 20, want: HealthUnderweight},
		{name: "overweight", weight: 45, want: HealthOverweight},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res := PetHealth(tt.weight, "dog", "Labrador", "Adult (1-7 years)", breeds)
			require.True(t, res.Found)
			assert.Equal(t, "Labrador Retriever", res.BreedName)
			assert.Equal(t, tt.want, res.HealthStatus)
			assert.Contains(t, res.WeightRecommendation, "Labrador Retriever")
		})
	}
}

func TestPetHealthBandFigures(t *testing.T) {
	res := PetHealth(30, "dog", "labrador retriever", "adult", reference.Seed().Breeds)
	require.True(t, res.Found)
	assert.InDelta(t, 25.0, *res.IdealWeightMin, 0.001)
	assert.InDelta(t, 36.0, *res.IdealWeightMax, 0.001)
	assert.InDelta(t, 30.5, *res.IdealWeightMid, 0.001)
	assert.InDelta(t, 98.4, *res.PercentOfIdeal, 0.001)
	assert.Equal(t, int64(1), *res.BreedReferenceID)
	assert.Equal(t, "This Labrador Retriever appears to be at a healthy weight! Maintain current diet and exercise routine.", res.WeightRecommendation)
}

func TestPetHealthSlightTiers(t *testing.T) {
	breeds := []reference.BreedReference{
		{ID: 9, Species: "dog", Breed: "Narrow", AdultMinKg: 10, AdultMaxKg: 11, UnderweightThreshold: 0.85, OverweightThreshold: 1.15},
	}
	assert.Equal(t, HealthSlightlyUnderweight, PetHealth(9.5, "dog", "Narrow", "adult", breeds).HealthStatus)
	assert.Equal(t, HealthSlightlyOverweight, PetHealth(11.5, "dog", "Narrow", "adult", breeds).HealthStatus)
}

func TestPetHealthPuppyFallsBackToAdultFraction(t *testing.T) {
	res := PetHealth(15, "dog", "Labrador", "Puppy/Kitten (< 1 year)", reference.Seed().Breeds)
	require.True(t, res.Found)
	assert.InDelta(t, 12.5, *res.IdealWeightMin, 0.001)
	assert.InDelta(t, 21.6, *res.IdealWeightMax, 0.001)
}

func TestPetHealthNotFound(t *testing.T) {
	breeds := reference.Seed().Breeds

	res := PetHealth(4, "dog", "Persian", "adult", breeds)
	assert.False(t, res.Found)
	assert.Equal(t, HealthUnknown, res.HealthStatus)
	assert.Equal(t, "Breed 'Persian' not found in database for dog", res.Message)
	assert.Nil(t, res.IdealWeightMin)

	res = PetHealth(4, "cat", "", "adult", breeds)
	assert.False(t, res.Found)
	assert.Equal(t, "Unknown", res.BreedName)
	assert.Equal(t, "Unable to assess without breed information.", res.WeightRecommendation)
}

func TestBodyComposition(t *testing.T) {
	age := 30
	res, err := BodyComposition(BodyInput{WeightKg: 70, HeightCm: 175, Age: &age, Gender: "Male"}, reference.Seed().BMICategories)
	require.NoError(t, err)

	assert.InDelta(t, 1.75, res.HeightM, 0.0001)
	assert.InDelta(t, 22.9, res.BMI, 0.0001)
	assert.Equal(t, "Normal", res.BMICategory)
	assert.Equal(t, "#10b981", res.BMIColorCode)
	assert.InDelta(t, 56.7, res.IdealWeightMinKg, 0.0001)
	assert.InDelta(t, 76.3, res.IdealWeightMaxKg, 0.0001)
	require.NotNil(t, res.BodyFatEstimate)
	assert.InDelta(t, 18.1, *res.BodyFatEstimate, 0.0001)
	assert.InDelta(t, 57.3, *res.LeanMassEstimate, 0.0001)
	assert.Equal(t, Disclaimer, res.Disclaimer)
}

func TestBodyCompositionWithoutAgeSkipsBodyFat(t *testing.T) {
	res, err := BodyComposition(BodyInput{WeightKg: 70, HeightCm: 175, Gender: "female"}, reference.Seed().BMICategories)
	require.NoError(t, err)
	assert.Nil(t, res.BodyFatEstimate)
	assert.Nil(t, res.LeanMassEstimate)
}

func TestBodyCompositionFallbackBands(t *testing.T) {
	res, err := BodyComposition(BodyInput{WeightKg: 100, HeightCm: 175}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Obese", res.BMICategory)
	assert.Equal(t, "#6b7280", res.BMIColorCode)
	assert.Nil(t, res.BMICategoryID)
}

func TestBodyCompositionRejectsZeroHeight(t *testing.T) {
	_, err := BodyComposition(BodyInput{WeightKg: 70}, nil)
	assert.ErrorIs(t, err, ErrInvalidHeight)
}

func TestAnswersLookup(t *testing.T) {
	answers := Answers{
		{Question: "Estimated length in cm?", Value: 30.0},
		{Question: "Estimated width in cm?", Value: "20"},
		{Question: "", Value: "ignored"},
		{Question: "Shipping destination?", Value: "International"},
	}

	v, ok := answers.Number("length")
	require.True(t, ok)
	assert.Equal(t, 30.0, v)

	v, ok = answers.Number("width")
	require.True(t, ok)
	assert.Equal(t, 20.0, v)

	_, ok = answers.Number("height")
	assert.False(t, ok)

	assert.Equal(t, "International", answers.Text("destination", "Domestic"))
	assert.Equal(t, "adult", answers.Text("age", "adult"))
}
