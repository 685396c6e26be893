package estimates

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *PGRepo) Create(ctx context.Context, est WeightEstimate) error {
	const query = `
INSERT INTO weight_estimates (
    id, session_id, user_id, value_grams, min_grams, max_grams, confidence,
    unit_display, rationale, raw_json, category, category_metadata, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.DB.ExecContext(ctx, query,
		est.ID,
		est.SessionID,
		est.UserID,
		est.ValueGrams,
		est.MinGrams,
		est.MaxGrams,
		est.Confidence,
		est.UnitDisplay,
		est.Rationale,
		jsonOrEmpty(est.RawJSON),
		est.Category,
		jsonOrEmpty(est.CategoryMetadata),
		est.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

const estimateColumns = `id, session_id, user_id, value_grams, min_grams, max_grams, confidence,
       unit_display, rationale, raw_json, category, category_metadata, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEstimate(row rowScanner) (WeightEstimate, error) {
	var est WeightEstimate
	var raw, meta []byte
	err := row.Scan(
		&est.ID,
		&est.SessionID,
		&est.UserID,
		&est.ValueGrams,
		&est.MinGrams,
		&est.MaxGrams,
		&est.Confidence,
		&est.UnitDisplay,
		&est.Rationale,
		&raw,
		&est.Category,
		&meta,
		&est.CreatedAt,
	)
	if err != nil {
		return WeightEstimate{}, err
	}
	est.RawJSON = json.RawMessage(raw)
	est.CategoryMetadata = json.RawMessage(meta)
	return est, nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID, estimateID string) (WeightEstimate, error) {
	if _, err := uuid.Parse(estimateID); err != nil {
		return WeightEstimate{}, ErrNotFound
	}
	query := `SELECT ` + estimateColumns + ` FROM weight_estimates WHERE id = $1 AND user_id = $2`
	est, err := scanEstimate(r.DB.QueryRowContext(ctx, query, estimateID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return WeightEstimate{}, ErrNotFound
	}
	return est, err
}

func (r *PGRepo) GetBySession(ctx context.Context, sessionID string) (WeightEstimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM weight_estimates WHERE session_id = $1`
	est, err := scanEstimate(r.DB.QueryRowContext(ctx, query, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return WeightEstimate{}, ErrNotFound
	}
	return est, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]WeightEstimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM weight_estimates WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]WeightEstimate, 0)
	for rows.Next() {
		est, err := scanEstimate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, est)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateMetadata(ctx context.Context, estimateID string, metadata []byte) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE weight_estimates SET category_metadata = $2 WHERE id = $1`, estimateID, jsonOrEmpty(metadata))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveDetails inserts whichever category record is set.
func (r *PGRepo) SaveDetails(ctx context.Context, estimateID string, d Details) error {
	switch {
	case d.Food != nil:
		f := d.Food
		const query = `
INSERT INTO food_estimates (estimate_id, food_reference_id, estimated_calories, estimated_protein, estimated_carbs,
    estimated_fat, estimated_fiber, is_cooked, portion_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		_, err := r.DB.ExecContext(ctx, query, estimateID, nullInt64(f.FoodReferenceID), f.EstimatedCalories, f.EstimatedProtein,
			f.EstimatedCarbs, f.EstimatedFat, f.EstimatedFiber, f.IsCooked, f.PortionStatus, f.CreatedAt)
		return wrapDetail("food", err)
	case d.Package != nil:
		p := d.Package
		costs, err := json.Marshal(nonNilCosts(p.ShippingCosts))
		if err != nil {
			return err
		}
		const query = `
INSERT INTO package_estimates (estimate_id, length_cm, width_cm, height_cm, volumetric_weight_g, chargeable_weight_g,
    estimated_shipping_costs, is_fragile, destination_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		_, err = r.DB.ExecContext(ctx, query, estimateID, nullFloat(p.LengthCm), nullFloat(p.WidthCm), nullFloat(p.HeightCm),
			nullFloat(p.VolumetricWeightG), p.ChargeableWeightG, costs, p.IsFragile, p.DestinationType, p.CreatedAt)
		return wrapDetail("package", err)
	case d.Pet != nil:
		p := d.Pet
		const query = `
INSERT INTO pet_estimates (estimate_id, species, breed, breed_reference_id, age_category, gender, is_neutered,
    health_status, ideal_weight_min, ideal_weight_max, weight_recommendation, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
		_, err := r.DB.ExecContext(ctx, query, estimateID, p.Species, p.Breed, nullInt64(p.BreedReferenceID), p.AgeCategory,
			p.Gender, nullBool(p.IsNeutered), p.HealthStatus, nullFloat(p.IdealWeightMin), nullFloat(p.IdealWeightMax),
			p.WeightRecommendation, p.CreatedAt)
		return wrapDetail("pet", err)
	case d.Body != nil:
		b := d.Body
		var age sql.NullInt64
		if b.Age != nil {
			age = sql.NullInt64{Int64: int64(*b.Age), Valid: true}
		}
		const query = `
INSERT INTO body_composition_estimates (estimate_id, height_cm, age, gender, activity_level, bmi, bmi_category,
    bmi_category_id, ideal_weight_min_kg, ideal_weight_max_kg, body_fat_estimate, lean_mass_estimate,
    health_recommendation, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
		_, err := r.DB.ExecContext(ctx, query, estimateID, b.HeightCm, age, b.Gender, b.ActivityLevel, b.BMI, b.BMICategory,
			nullInt64(b.BMICategoryID), b.IdealWeightMinKg, b.IdealWeightMaxKg, nullFloat(b.BodyFatEstimate),
			nullFloat(b.LeanMassEstimate), b.HealthRecommendation, b.CreatedAt)
		return wrapDetail("body composition", err)
	}
	return nil
}

func wrapDetail(kind string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("insert %s details: %w", kind, err)
}

// Details loads the category record of an estimate. Missing records are nil.
func (r *PGRepo) Details(ctx context.Context, estimateID string) (Details, error) {
	var d Details
	var err error
	if d.Food, err = r.foodDetails(ctx, estimateID); err != nil {
		return Details{}, err
	}
	if d.Package, err = r.packageDetails(ctx, estimateID); err != nil {
		return Details{}, err
	}
	if d.Pet, err = r.petDetails(ctx, estimateID); err != nil {
		return Details{}, err
	}
	if d.Body, err = r.bodyDetails(ctx, estimateID); err != nil {
		return Details{}, err
	}
	return d, nil
}

func (r *PGRepo) foodDetails(ctx context.Context, estimateID string) (*FoodEstimate, error) {
	const query = `
SELECT estimate_id, food_reference_id, estimated_calories, estimated_protein, estimated_carbs, estimated_fat,
       estimated_fiber, is_cooked, portion_status, created_at
FROM food_estimates WHERE estimate_id = $1`
	var f FoodEstimate
	var ref sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, estimateID).Scan(&f.EstimateID, &ref, &f.EstimatedCalories, &f.EstimatedProtein,
		&f.EstimatedCarbs, &f.EstimatedFat, &f.EstimatedFiber, &f.IsCooked, &f.PortionStatus, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f.FoodReferenceID = int64Ptr(ref)
	return &f, nil
}

func (r *PGRepo) packageDetails(ctx context.Context, estimateID string) (*PackageEstimate, error) {
	const query = `
SELECT estimate_id, length_cm, width_cm, height_cm, volumetric_weight_g, chargeable_weight_g,
       estimated_shipping_costs, is_fragile, destination_type, created_at
FROM package_estimates WHERE estimate_id = $1`
	var p PackageEstimate
	var l, w, h, vol sql.NullFloat64
	var costs []byte
	err := r.DB.QueryRowContext(ctx, query, estimateID).Scan(&p.EstimateID, &l, &w, &h, &vol, &p.ChargeableWeightG,
		&costs, &p.IsFragile, &p.DestinationType, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.LengthCm, p.WidthCm, p.HeightCm, p.VolumetricWeightG = floatPtr(l), floatPtr(w), floatPtr(h), floatPtr(vol)
	if len(costs) > 0 {
		if err := json.Unmarshal(costs, &p.ShippingCosts); err != nil {
			return nil, fmt.Errorf("decode shipping costs: %w", err)
		}
	}
	return &p, nil
}

func (r *PGRepo) petDetails(ctx context.Context, estimateID string) (*PetEstimate, error) {
	const query = `
SELECT estimate_id, species, breed, breed_reference_id, age_category, gender, is_neutered, health_status,
       ideal_weight_min, ideal_weight_max, weight_recommendation, created_at
FROM pet_estimates WHERE estimate_id = $1`
	var p PetEstimate
	var ref sql.NullInt64
	var neutered sql.NullBool
	var minW, maxW sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, estimateID).Scan(&p.EstimateID, &p.Species, &p.Breed, &ref, &p.AgeCategory,
		&p.Gender, &neutered, &p.HealthStatus, &minW, &maxW, &p.WeightRecommendation, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.BreedReferenceID = int64Ptr(ref)
	if neutered.Valid {
		v := neutered.Bool
		p.IsNeutered = &v
	}
	p.IdealWeightMin, p.IdealWeightMax = floatPtr(minW), floatPtr(maxW)
	return &p, nil
}

func (r *PGRepo) bodyDetails(ctx context.Context, estimateID string) (*BodyCompositionEstimate, error) {
	const query = `
SELECT estimate_id, height_cm, age, gender, activity_level, bmi, bmi_category, bmi_category_id,
       ideal_weight_min_kg, ideal_weight_max_kg, body_fat_estimate, lean_mass_estimate, health_recommendation, created_at
FROM body_composition_estimates WHERE estimate_id = $1`
	var b BodyCompositionEstimate
	var age, ref sql.NullInt64
	var fat, lean sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, estimateID).Scan(&b.EstimateID, &b.HeightCm, &age, &b.Gender, &b.ActivityLevel,
		&b.BMI, &b.BMICategory, &ref, &b.IdealWeightMinKg, &b.IdealWeightMaxKg, &fat, &lean, &b.HealthRecommendation, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if age.Valid {
		v := int(age.Int64)
		b.Age = &v
	}
	b.BMICategoryID = int64Ptr(ref)
	b.BodyFatEstimate, b.LeanMassEstimate = floatPtr(fat), floatPtr(lean)
	return &b, nil
}

func (r *PGRepo) CreateFeedback(ctx context.Context, fb WeightFeedback) error {
	const query = `
INSERT INTO weight_feedback (id, estimate_id, user_id, actual_weight_grams, accuracy_rating, user_notes, helpful,
    error_grams, error_percentage, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	var rating sql.NullInt64
	if fb.AccuracyRating != nil {
		rating = sql.NullInt64{Int64: int64(*fb.AccuracyRating), Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query, fb.ID, fb.EstimateID, fb.UserID, fb.ActualWeightGrams, rating, fb.UserNotes,
		fb.Helpful, nullFloat(fb.ErrorGrams), nullFloat(fb.ErrorPercentage), fb.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrFeedbackExists
		}
		return err
	}
	return nil
}

func (r *PGRepo) Feedback(ctx context.Context, estimateID string) (WeightFeedback, error) {
	const query = `
SELECT id, estimate_id, user_id, actual_weight_grams, accuracy_rating, user_notes, helpful, error_grams,
       error_percentage, created_at
FROM weight_feedback WHERE estimate_id = $1`
	var fb WeightFeedback
	var rating sql.NullInt64
	var errGrams, errPct sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, estimateID).Scan(&fb.ID, &fb.EstimateID, &fb.UserID, &fb.ActualWeightGrams,
		&rating, &fb.UserNotes, &fb.Helpful, &errGrams, &errPct, &fb.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return WeightFeedback{}, ErrNotFound
	}
	if err != nil {
		return WeightFeedback{}, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		fb.AccuracyRating = &v
	}
	fb.ErrorGrams, fb.ErrorPercentage = floatPtr(errGrams), floatPtr(errPct)
	return fb, nil
}

func jsonOrEmpty(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}

func nonNilCosts(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

var _ Repo = (*PGRepo)(nil)
