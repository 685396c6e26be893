package images

import "time"

// Image is a stored upload owned by a user.
type Image struct {
	ID              string
	UserID          string
	FileName        string
	MimeType        string
	SizeBytes       int64
	StorageProvider string
	StorageKey      string
	CreatedAt       time.Time
}
