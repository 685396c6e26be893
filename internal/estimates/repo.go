package estimates

import "context"

// Repo persists estimates, their category records and feedback.
type Repo interface {
	// Create fails with ErrAlreadyExists when the session already has an estimate.
	Create(ctx context.Context, est WeightEstimate) error
	GetByID(ctx context.Context, userID, estimateID string) (WeightEstimate, error)
	GetBySession(ctx context.Context, sessionID string) (WeightEstimate, error)
	ListByUser(ctx context.Context, userID string) ([]WeightEstimate, error)
	UpdateMetadata(ctx context.Context, estimateID string, metadata []byte) error

	SaveDetails(ctx context.Context, estimateID string, d Details) error
	Details(ctx context.Context, estimateID string) (Details, error)

	// CreateFeedback fails with ErrFeedbackExists on a second submission.
	CreateFeedback(ctx context.Context, fb WeightFeedback) error
	Feedback(ctx context.Context, estimateID string) (WeightFeedback, error)
}
