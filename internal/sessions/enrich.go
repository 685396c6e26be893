package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pixweight-backend/internal/calc"
	"pixweight-backend/internal/category"
	"pixweight-backend/internal/estimates"
	"pixweight-backend/internal/reference"
	"pixweight-backend/internal/shared/metrics"
)

// Enrichment outcomes.
const (
	EnrichOK      = "ok"
	EnrichSkipped = "skipped"
	EnrichFailed  = "failed"
)

// EnrichmentResult is the outcome of the single calculator run for an estimate.
type EnrichmentResult struct {
	Category string
	Status   string
	Reason   string
	Details  estimates.Details
	Metadata json.RawMessage
}

// Enricher runs the category calculator matching an estimate.
type Enricher struct {
	Reference reference.Store
	Log       *zap.Logger
	Now       func() time.Time
}

// Enrich never returns an error; calculator errors and panics become a
// failed result.
func (e *Enricher) Enrich(ctx context.Context, cat string, est estimates.WeightEstimate, label string, answers calc.Answers) (res EnrichmentResult) {
	res.Category = cat
	defer func() {
		if r := recover(); r != nil {
			res = EnrichmentResult{Category: cat, Status: EnrichFailed, Reason: fmt.Sprint(r)}
		}
		e.record(est, res)
	}()

	var err error
	switch cat {
	case category.Food:
		res, err = e.food(ctx, est, label, answers)
	case category.Package:
		res, err = e.pkg(ctx, est, answers)
	case category.Pet:
		res, err = e.pet(ctx, est, label, answers)
	case category.Person:
		res, err = e.person(ctx, est, answers)
	default:
		res = EnrichmentResult{Status: EnrichSkipped, Reason: "no calculator for category"}
	}
	res.Category = cat
	if err != nil {
		res = EnrichmentResult{Category: cat, Status: EnrichFailed, Reason: err.Error()}
	}
	return res
}

func (e *Enricher) record(est estimates.WeightEstimate, res EnrichmentResult) {
	metrics.IncEnrichment(res.Category, res.Status)
	log := e.logger().With(
		zap.String("estimate_id", est.ID),
		zap.String("category", res.Category),
		zap.String("status", res.Status),
	)
	switch res.Status {
	case EnrichFailed:
		log.Warn("category enrichment failed", zap.String("reason", res.Reason))
	case EnrichSkipped:
		log.Debug("category enrichment skipped", zap.String("reason", res.Reason))
	default:
		log.Debug("category enrichment done")
	}
}

func (e *Enricher) food(ctx context.Context, est estimates.WeightEstimate, label string, answers calc.Answers) (EnrichmentResult, error) {
	foods, err := e.Reference.Foods(ctx)
	if err != nil {
		return EnrichmentResult{}, fmt.Errorf("load foods: %w", err)
	}
	cooking := answers.Text("raw or cooked", "")
	result := calc.Nutrition(est.ValueGrams, label, cooking, foods)
	meta, err := json.Marshal(result)
	if err != nil {
		return EnrichmentResult{}, err
	}
	if !result.Found {
		return EnrichmentResult{Status: EnrichSkipped, Reason: result.Message, Metadata: meta}, nil
	}
	food := &estimates.FoodEstimate{
		EstimateID:        est.ID,
		FoodReferenceID:   result.FoodReferenceID,
		EstimatedCalories: deref(result.EstimatedCalories),
		EstimatedProtein:  deref(result.EstimatedProtein),
		EstimatedCarbs:    deref(result.EstimatedCarbs),
		EstimatedFat:      deref(result.EstimatedFat),
		EstimatedFiber:    deref(result.EstimatedFiber),
		IsCooked:          strings.Contains(strings.ToLower(cooking), "cooked"),
		PortionStatus:     answers.Text("missing or already eaten", ""),
		CreatedAt:         e.now(),
	}
	return EnrichmentResult{Status: EnrichOK, Details: estimates.Details{Food: food}, Metadata: meta}, nil
}

func (e *Enricher) pkg(ctx context.Context, est estimates.WeightEstimate, answers calc.Answers) (EnrichmentResult, error) {
	carriers, err := e.Reference.Carriers(ctx)
	if err != nil {
		return EnrichmentResult{}, fmt.Errorf("load carriers: %w", err)
	}
	length, hasL := answers.Number("length")
	width, hasW := answers.Number("width")
	height, hasH := answers.Number("height")
	dims := calc.Dimensions{LengthCm: length, WidthCm: width, HeightCm: height}
	result := calc.Shipping(est.ValueGrams, dims, answers.Text("destination", "Domestic"), carriers)
	meta, err := json.Marshal(result)
	if err != nil {
		return EnrichmentResult{}, err
	}
	fragile, _ := answers.Lookup("fragile")
	pkg := &estimates.PackageEstimate{
		EstimateID:        est.ID,
		VolumetricWeightG: result.VolumetricWeightG,
		ChargeableWeightG: result.ChargeableWeightG,
		ShippingCosts:     result.ShippingCosts,
		IsFragile:         truthy(fragile),
		DestinationType:   result.DestinationType,
		CreatedAt:         e.now(),
	}
	if hasL {
		pkg.LengthCm = &length
	}
	if hasW {
		pkg.WidthCm = &width
	}
	if hasH {
		pkg.HeightCm = &height
	}
	return EnrichmentResult{Status: EnrichOK, Details: estimates.Details{Package: pkg}, Metadata: meta}, nil
}

func (e *Enricher) pet(ctx context.Context, est estimates.WeightEstimate, label string, answers calc.Answers) (EnrichmentResult, error) {
	breeds, err := e.Reference.Breeds(ctx)
	if err != nil {
		return EnrichmentResult{}, fmt.Errorf("load breeds: %w", err)
	}
	species := petSpecies(label)
	breed := answers.Text("breed", "")
	age := answers.Text("age category", answers.Text("age", "adult"))
	result := calc.PetHealth(est.ValueGrams/1000.0, species, breed, age, breeds)
	meta, err := json.Marshal(result)
	if err != nil {
		return EnrichmentResult{}, err
	}
	pet := &estimates.PetEstimate{
		EstimateID:           est.ID,
		Species:              species,
		Breed:                result.BreedName,
		BreedReferenceID:     result.BreedReferenceID,
		AgeCategory:          normalizeAgeCategory(age, species),
		Gender:               answers.Text("male or female", answers.Text("gender", "")),
		IsNeutered:           neutered(answers.Text("spayed or neutered", "")),
		HealthStatus:         result.HealthStatus,
		IdealWeightMin:       result.IdealWeightMin,
		IdealWeightMax:       result.IdealWeightMax,
		WeightRecommendation: result.WeightRecommendation,
		CreatedAt:            e.now(),
	}
	res := EnrichmentResult{Status: EnrichOK, Details: estimates.Details{Pet: pet}, Metadata: meta}
	if !result.Found {
		res.Reason = result.Message
	}
	return res, nil
}

func (e *Enricher) person(ctx context.Context, est estimates.WeightEstimate, answers calc.Answers) (EnrichmentResult, error) {
	height, ok := answers.Number("person's height")
	if !ok {
		height, ok = answers.Number("height")
	}
	if !ok || height <= 0 {
		return EnrichmentResult{Status: EnrichSkipped, Reason: "height not provided"}, nil
	}
	bands, err := e.Reference.BMICategories(ctx)
	if err != nil {
		return EnrichmentResult{}, fmt.Errorf("load bmi categories: %w", err)
	}
	in := calc.BodyInput{
		WeightKg:      est.ValueGrams / 1000.0,
		HeightCm:      height,
		Gender:        answers.Text("gender", ""),
		ActivityLevel: answers.Text("activity", ""),
	}
	if age, ok := answers.Number("person's age"); ok && age > 0 {
		v := int(age)
		in.Age = &v
	}
	result, err := calc.BodyComposition(in, bands)
	if err != nil {
		return EnrichmentResult{}, err
	}
	meta, err := json.Marshal(result)
	if err != nil {
		return EnrichmentResult{}, err
	}
	body := &estimates.BodyCompositionEstimate{
		EstimateID:           est.ID,
		HeightCm:             height,
		Age:                  in.Age,
		Gender:               in.Gender,
		ActivityLevel:        in.ActivityLevel,
		BMI:                  result.BMI,
		BMICategory:          result.BMICategory,
		BMICategoryID:        result.BMICategoryID,
		IdealWeightMinKg:     result.IdealWeightMinKg,
		IdealWeightMaxKg:     result.IdealWeightMaxKg,
		BodyFatEstimate:      result.BodyFatEstimate,
		LeanMassEstimate:     result.LeanMassEstimate,
		HealthRecommendation: result.HealthRecommendation,
		CreatedAt:            e.now(),
	}
	return EnrichmentResult{Status: EnrichOK, Details: estimates.Details{Body: body}, Metadata: meta}, nil
}

func petSpecies(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "cat"):
		return "cat"
	case strings.Contains(l, "rabbit"):
		return "rabbit"
	default:
		return "dog"
	}
}

func normalizeAgeCategory(raw, species string) string {
	l := strings.ToLower(raw)
	switch {
	case strings.Contains(l, "puppy") || strings.Contains(l, "kitten"):
		if species == "cat" {
			return "kitten"
		}
		return "puppy"
	case strings.Contains(l, "senior"):
		return "senior"
	default:
		return "adult"
	}
}

func neutered(answer string) *bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes":
		v := true
		return &v
	case "no":
		v := false
		return &v
	}
	return nil
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return parseBool(b)
	}
	return false
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func (e *Enricher) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e *Enricher) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}
