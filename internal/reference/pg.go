package reference

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGStore reads the seeded reference tables from Postgres.
type PGStore struct {
	DB *sql.DB
}

// Foods returns all food rows ordered by name.
func (s *PGStore) Foods(ctx context.Context) ([]FoodNutrition, error) {
	const query = `
SELECT id, name, aliases, food_category, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g, fiber_per_100g, description
FROM food_nutrition
ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FoodNutrition
	for rows.Next() {
		var f FoodNutrition
		var aliases []byte
		var description sql.NullString
		if err := rows.Scan(
			&f.ID,
			&f.Name,
			&aliases,
			&f.FoodCategory,
			&f.CaloriesPer100g,
			&f.ProteinPer100g,
			&f.CarbsPer100g,
			&f.FatPer100g,
			&f.FiberPer100g,
			&description,
		); err != nil {
			return nil, err
		}
		if f.Aliases, err = decodeAliases(aliases); err != nil {
			return nil, fmt.Errorf("food %d aliases: %w", f.ID, err)
		}
		f.Description = description.String
		out = append(out, f)
	}
	return out, rows.Err()
}

// Carriers returns all carrier services ordered by name and service.
func (s *PGStore) Carriers(ctx context.Context) ([]ShippingCarrier, error) {
	const query = `
SELECT id, name, service_type, base_rate, rate_per_kg, max_weight_kg, volumetric_divisor, is_international, is_active, estimated_days
FROM shipping_carriers
ORDER BY name, service_type`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ShippingCarrier
	for rows.Next() {
		var c ShippingCarrier
		var days sql.NullString
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.ServiceType,
			&c.BaseRate,
			&c.RatePerKg,
			&c.MaxWeightKg,
			&c.VolumetricDivisor,
			&c.IsInternational,
			&c.IsActive,
			&days,
		); err != nil {
			return nil, err
		}
		c.EstimatedDays = days.String
		out = append(out, c)
	}
	return out, rows.Err()
}

// Breeds returns all breeds ordered by species and breed.
func (s *PGStore) Breeds(ctx context.Context) ([]BreedReference, error) {
	const query = `
SELECT id, species, breed, aliases, adult_min_kg, adult_max_kg, puppy_min_kg, puppy_max_kg, senior_min_kg, senior_max_kg,
       underweight_threshold, overweight_threshold, description
FROM breed_references
ORDER BY species, breed`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BreedReference
	for rows.Next() {
		var b BreedReference
		var aliases []byte
		var puppyMin, puppyMax, seniorMin, seniorMax sql.NullFloat64
		var description sql.NullString
		if err := rows.Scan(
			&b.ID,
			&b.Species,
			&b.Breed,
			&aliases,
			&b.AdultMinKg,
			&b.AdultMaxKg,
			&puppyMin,
			&puppyMax,
			&seniorMin,
			&seniorMax,
			&b.UnderweightThreshold,
			&b.OverweightThreshold,
			&description,
		); err != nil {
			return nil, err
		}
		if b.Aliases, err = decodeAliases(aliases); err != nil {
			return nil, fmt.Errorf("breed %d aliases: %w", b.ID, err)
		}
		b.PuppyMinKg = nullFloat(puppyMin)
		b.PuppyMaxKg = nullFloat(puppyMax)
		b.SeniorMinKg = nullFloat(seniorMin)
		b.SeniorMaxKg = nullFloat(seniorMax)
		b.Description = description.String
		out = append(out, b)
	}
	return out, rows.Err()
}

// BMICategories returns the BMI bands ordered by lower bound.
func (s *PGStore) BMICategories(ctx context.Context) ([]BMICategory, error) {
	const query = `
SELECT id, name, min_bmi, max_bmi, description, recommendation, color_code
FROM bmi_categories
ORDER BY min_bmi`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BMICategory
	for rows.Next() {
		var c BMICategory
		if err := rows.Scan(&c.ID, &c.Name, &c.MinBMI, &c.MaxBMI, &c.Description, &c.Recommendation, &c.ColorCode); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Upsert writes a snapshot keyed by natural keys inside one transaction.
func (s *PGStore) Upsert(ctx context.Context, d Data) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const foodQuery = `
INSERT INTO food_nutrition (name, aliases, food_category, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g, fiber_per_100g, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (name) DO UPDATE SET
    aliases = EXCLUDED.aliases,
    food_category = EXCLUDED.food_category,
    calories_per_100g = EXCLUDED.calories_per_100g,
    protein_per_100g = EXCLUDED.protein_per_100g,
    carbs_per_100g = EXCLUDED.carbs_per_100g,
    fat_per_100g = EXCLUDED.fat_per_100g,
    fiber_per_100g = EXCLUDED.fiber_per_100g,
    description = EXCLUDED.description`
	for _, f := range d.Foods {
		aliases, err := encodeAliases(f.Aliases)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, foodQuery, f.Name, aliases, f.FoodCategory, f.CaloriesPer100g, f.ProteinPer100g, f.CarbsPer100g, f.FatPer100g, f.FiberPer100g, f.Description); err != nil {
			return fmt.Errorf("upsert food %q: %w", f.Name, err)
		}
	}

	const carrierQuery = `
INSERT INTO shipping_carriers (name, service_type, base_rate, rate_per_kg, max_weight_kg, volumetric_divisor, is_international, is_active, estimated_days)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (name, service_type) DO UPDATE SET
    base_rate = EXCLUDED.base_rate,
    rate_per_kg = EXCLUDED.rate_per_kg,
    max_weight_kg = EXCLUDED.max_weight_kg,
    volumetric_divisor = EXCLUDED.volumetric_divisor,
    is_international = EXCLUDED.is_international,
    is_active = EXCLUDED.is_active,
    estimated_days = EXCLUDED.estimated_days`
	for _, c := range d.Carriers {
		if _, err := tx.ExecContext(ctx, carrierQuery, c.Name, c.ServiceType, c.BaseRate, c.RatePerKg, c.MaxWeightKg, c.VolumetricDivisor, c.IsInternational, c.IsActive, c.EstimatedDays); err != nil {
			return fmt.Errorf("upsert carrier %q %q: %w", c.Name, c.ServiceType, err)
		}
	}

	const breedQuery = `
INSERT INTO breed_references (species, breed, aliases, adult_min_kg, adult_max_kg, puppy_min_kg, puppy_max_kg, senior_min_kg, senior_max_kg, underweight_threshold, overweight_threshold, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (species, breed) DO UPDATE SET
    aliases = EXCLUDED.aliases,
    adult_min_kg = EXCLUDED.adult_min_kg,
    adult_max_kg = EXCLUDED.adult_max_kg,
    puppy_min_kg = EXCLUDED.puppy_min_kg,
    puppy_max_kg = EXCLUDED.puppy_max_kg,
    senior_min_kg = EXCLUDED.senior_min_kg,
    senior_max_kg = EXCLUDED.senior_max_kg,
    underweight_threshold = EXCLUDED.underweight_threshold,
    overweight_threshold = EXCLUDED.overweight_threshold,
    description = EXCLUDED.description`
	for _, b := range d.Breeds {
		aliases, err := encodeAliases(b.Aliases)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, breedQuery, b.Species, b.Breed, aliases, b.AdultMinKg, b.AdultMaxKg,
			b.PuppyMinKg, b.PuppyMaxKg, b.SeniorMinKg, b.SeniorMaxKg, b.UnderweightThreshold, b.OverweightThreshold, b.Description); err != nil {
			return fmt.Errorf("upsert breed %q: %w", b.Breed, err)
		}
	}

	const bmiQuery = `
INSERT INTO bmi_categories (name, min_bmi, max_bmi, description, recommendation, color_code)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (name) DO UPDATE SET
    min_bmi = EXCLUDED.min_bmi,
    max_bmi = EXCLUDED.max_bmi,
    description = EXCLUDED.description,
    recommendation = EXCLUDED.recommendation,
    color_code = EXCLUDED.color_code`
	for _, c := range d.BMICategories {
		if _, err := tx.ExecContext(ctx, bmiQuery, c.Name, c.MinBMI, c.MaxBMI, c.Description, c.Recommendation, c.ColorCode); err != nil {
			return fmt.Errorf("upsert bmi category %q: %w", c.Name, err)
		}
	}

	return tx.Commit()
}

func decodeAliases(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeAliases(aliases []string) ([]byte, error) {
	if aliases == nil {
		aliases = []string{}
	}
	return json.Marshal(aliases)
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

var _ Store = (*PGStore)(nil)
