package calc

import (
	"strings"

	"pixweight-backend/internal/fuzzy"
	"pixweight-backend/internal/reference"
)

// CookedMultiplier scales macros for cooked meat, seafood and grains.
const CookedMultiplier = 1.1

var cookedAdjustedCategories = map[string]bool{
	"meat":    true,
	"seafood": true,
	"grain":   true,
}

// Per100g mirrors the matched reference row.
type Per100g struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// NutritionResult is the food enrichment. Numeric fields are nil when the
// food was not found.
type NutritionResult struct {
	Found             bool     `json:"found"`
	FoodReferenceID   *int64   `json:"food_reference_id,omitempty"`
	FoodName          string   `json:"food_name"`
	FoodCategory      string   `json:"food_category,omitempty"`
	Message           string   `json:"message,omitempty"`
	CookingAdjusted   bool     `json:"cooking_adjusted"`
	EstimatedCalories *float64 `json:"estimated_calories"`
	EstimatedProtein  *float64 `json:"estimated_protein"`
	EstimatedCarbs    *float64 `json:"estimated_carbs"`
	EstimatedFat      *float64 `json:"estimated_fat"`
	EstimatedFiber    *float64 `json:"estimated_fiber"`
	Per100g           *Per100g `json:"per_100g,omitempty"`
}

// Nutrition scales the matched food's per-100g macros to weightGrams.
// cookingStatus is the user's free-text answer; "cooked" anywhere in it
// applies CookedMultiplier to meat, seafood and grain foods.
func Nutrition(weightGrams float64, foodName, cookingStatus string, foods []reference.FoodNutrition) NutritionResult {
	food, ok := fuzzy.Match(foodName, foods)
	if !ok {
		return NutritionResult{
			Found:    false,
			FoodName: foodName,
			Message:  "Food not found in nutrition database",
		}
	}

	multiplier := weightGrams / 100.0
	adjust := 1.0
	if strings.Contains(strings.ToLower(cookingStatus), "cooked") && cookedAdjustedCategories[food.FoodCategory] {
		adjust = CookedMultiplier
	}

	scale := func(per100 float64) *float64 {
		return ptr(round1(per100 * multiplier * adjust))
	}

	return NutritionResult{
		Found:             true,
		FoodReferenceID:   ptr(food.ID),
		FoodName:          food.Name,
		FoodCategory:      food.FoodCategory,
		CookingAdjusted:   adjust != 1.0,
		EstimatedCalories: scale(food.CaloriesPer100g),
		EstimatedProtein:  scale(food.ProteinPer100g),
		EstimatedCarbs:    scale(food.CarbsPer100g),
		EstimatedFat:      scale(food.FatPer100g),
		EstimatedFiber:    scale(food.FiberPer100g),
		Per100g: &Per100g{
			Calories: food.CaloriesPer100g,
			Protein:  food.ProteinPer100g,
			Carbs:    food.CarbsPer100g,
			Fat:      food.FatPer100g,
			Fiber:    food.FiberPer100g,
		},
	}
}
