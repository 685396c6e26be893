package sessions

import (
	"context"
	"time"
)

// Repo persists sessions with their questions and answers.
type Repo interface {
	// Create stores the session and its questions atomically.
	Create(ctx context.Context, s Session, questions []Question) error
	Get(ctx context.Context, userID, sessionID string) (Aggregate, error)
	// SaveAnswers upserts answers by question and sets the session status
	// in one step. Both SaveAnswers and SetStatus refuse to touch a session
	// whose status is terminal and return ErrSessionClosed.
	SaveAnswers(ctx context.Context, sessionID string, answers []Answer, status Status, at time.Time) error
	SetStatus(ctx context.Context, sessionID string, status Status, at time.Time) error
	// List returns the user's sessions matching f, newest first.
	List(ctx context.Context, userID string, f ListFilter) ([]Session, error)
}
