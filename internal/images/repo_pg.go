package images

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, img Image) error {
	const query = `
INSERT INTO images (id, user_id, file_name, mime_type, size_bytes, storage_provider, storage_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	provider := img.StorageProvider
	if provider == "" {
		provider = "local"
	}
	_, err := r.DB.ExecContext(ctx, query,
		img.ID,
		img.UserID,
		img.FileName,
		img.MimeType,
		img.SizeBytes,
		provider,
		img.StorageKey,
		img.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, imageID string) (Image, error) {
	if _, err := uuid.Parse(imageID); err != nil {
		return Image{}, ErrNotFound
	}
	const query = `
SELECT id, user_id, file_name, mime_type, size_bytes, storage_provider, storage_key, created_at
FROM images
WHERE id = $1 AND user_id = $2`
	var img Image
	err := r.DB.QueryRowContext(ctx, query, imageID, userID).Scan(
		&img.ID,
		&img.UserID,
		&img.FileName,
		&img.MimeType,
		&img.SizeBytes,
		&img.StorageProvider,
		&img.StorageKey,
		&img.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Image{}, ErrNotFound
		}
		return Image{}, err
	}
	return img, nil
}

var _ Repo = (*PGRepo)(nil)
