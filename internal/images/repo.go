package images

import "context"

// Repo persists image records.
type Repo interface {
	Create(ctx context.Context, img Image) error
	GetByID(ctx context.Context, userID, imageID string) (Image, error)
}
