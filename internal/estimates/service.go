package estimates

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// View is an estimate with its category record and optional feedback.
type View struct {
	Estimate WeightEstimate
	Details  Details
	Feedback *WeightFeedback
}

// FeedbackInput is a user's report of the measured weight.
type FeedbackInput struct {
	ActualWeightGrams float64
	AccuracyRating    *int
	UserNotes         string
	Helpful           *bool
}

// Service reads estimates and records feedback.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// Get returns the estimate owned by userID with details and feedback.
func (s *Service) Get(ctx context.Context, userID, estimateID string) (View, error) {
	est, err := s.Repo.GetByID(ctx, userID, estimateID)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, est)
}

// ForSession returns the estimate of a session, if any.
func (s *Service) ForSession(ctx context.Context, sessionID string) (View, error) {
	est, err := s.Repo.GetBySession(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, est)
}

func (s *Service) view(ctx context.Context, est WeightEstimate) (View, error) {
	details, err := s.Repo.Details(ctx, est.ID)
	if err != nil {
		return View{}, err
	}
	v := View{Estimate: est, Details: details}
	fb, err := s.Repo.Feedback(ctx, est.ID)
	switch {
	case err == nil:
		v.Feedback = &fb
	case !errors.Is(err, ErrNotFound):
		return View{}, err
	}
	return v, nil
}

// SubmitFeedback records feedback once per estimate. Error fields are
// computed here and never change afterwards.
func (s *Service) SubmitFeedback(ctx context.Context, userID, estimateID string, in FeedbackInput) (WeightFeedback, error) {
	if err := validateFeedback(in); err != nil {
		return WeightFeedback{}, err
	}
	est, err := s.Repo.GetByID(ctx, userID, estimateID)
	if err != nil {
		return WeightFeedback{}, err
	}

	helpful := true
	if in.Helpful != nil {
		helpful = *in.Helpful
	}
	errGrams := math.Abs(in.ActualWeightGrams - est.ValueGrams)
	errPct := errGrams / in.ActualWeightGrams * 100

	fb := WeightFeedback{
		ID:                uuid.NewString(),
		EstimateID:        est.ID,
		UserID:            userID,
		ActualWeightGrams: in.ActualWeightGrams,
		AccuracyRating:    in.AccuracyRating,
		UserNotes:         strings.TrimSpace(in.UserNotes),
		Helpful:           helpful,
		ErrorGrams:        &errGrams,
		ErrorPercentage:   &errPct,
		CreatedAt:         s.now(),
	}
	if err := s.Repo.CreateFeedback(ctx, fb); err != nil {
		return WeightFeedback{}, err
	}
	return fb, nil
}

func validateFeedback(in FeedbackInput) error {
	if math.IsNaN(in.ActualWeightGrams) || math.IsInf(in.ActualWeightGrams, 0) || in.ActualWeightGrams <= 0 {
		return &ValidationError{Field: "actual_weight_grams", Message: "must be greater than 0"}
	}
	if in.AccuracyRating != nil && (*in.AccuracyRating < 1 || *in.AccuracyRating > 5) {
		return &ValidationError{Field: "accuracy_rating", Message: "must be between 1 and 5"}
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
