package estimates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEstimate(t *testing.T, repo *MemoryRepo) WeightEstimate {
	t.Helper()
	est := WeightEstimate{
		ID:          "est-1",
		SessionID:   "sess-1",
		UserID:      "user-1",
		ValueGrams:  150,
		MinGrams:    120,
		MaxGrams:    180,
		Confidence:  0.4,
		UnitDisplay: "g",
		Category:    "food",
		CreatedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(context.Background(), est))
	return est
}

func intPtr(v int) *int { return &v }

func TestSubmitFeedbackComputesError(t *testing.T) {
	repo := NewMemoryRepo()
	seedEstimate(t, repo)
	svc := &Service{Repo: repo}

	fb, err := svc.SubmitFeedback(context.Background(), "user-1", "est-1", FeedbackInput{
		ActualWeightGrams: 200,
		AccuracyRating:    intPtr(4),
		UserNotes:         "  close enough ",
	})
	require.NoError(t, err)
	require.NotNil(t, fb.ErrorGrams)
	require.NotNil(t, fb.ErrorPercentage)
	assert.InDelta(t, 50.0, *fb.ErrorGrams, 1e-9)
	assert.InDelta(t, 25.0, *fb.ErrorPercentage, 1e-9)
	assert.True(t, fb.Helpful)
	assert.Equal(t, "close enough", fb.UserNotes)

	_, err = svc.SubmitFeedback(context.Background(), "user-1", "est-1", FeedbackInput{ActualWeightGrams: 180})
	assert.ErrorIs(t, err, ErrFeedbackExists)

	view, err := svc.Get(context.Background(), "user-1", "est-1")
	require.NoError(t, err)
	require.NotNil(t, view.Feedback)
	assert.Equal(t, 200.0, view.Feedback.ActualWeightGrams)
}

func TestSubmitFeedbackValidation(t *testing.T) {
	repo := NewMemoryRepo()
	seedEstimate(t, repo)
	svc := &Service{Repo: repo}

	tests := []struct {
		name  string
		in    FeedbackInput
		field string
	}{
		{name: "zero weight", in: FeedbackInput{ActualWeightGrams: 0}, field: "actual_weight_grams"},
		{name: "negative weight", in: FeedbackInput{ActualWeightGrams: -3}, field: "actual_weight_grams"},
		{name: "rating too high", in: FeedbackInput{ActualWeightGrams: 10, AccuracyRating: intPtr(6)}, field: "accuracy_rating"},
		{name: "rating too low", in: FeedbackInput{ActualWeightGrams: 10, AccuracyRating: intPtr(0)}, field: "accuracy_rating"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitFeedback(context.Background(), "user-1", "est-1", tt.in)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestEstimatesAreOwnerScoped(t *testing.T) {
	repo := NewMemoryRepo()
	seedEstimate(t, repo)
	svc := &Service{Repo: repo}

	_, err := svc.Get(context.Background(), "user-2", "est-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SubmitFeedback(context.Background(), "user-2", "est-1", FeedbackInput{ActualWeightGrams: 100})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepoOneEstimatePerSession(t *testing.T) {
	repo := NewMemoryRepo()
	seedEstimate(t, repo)

	err := repo.Create(context.Background(), WeightEstimate{ID: "est-2", SessionID: "sess-1", UserID: "user-1"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}
