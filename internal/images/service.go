package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"pixweight-backend/internal/shared/storage/object"
)

// DefaultMaxBytes is used when Service.MaxBytes is unset.
const DefaultMaxBytes int64 = 10 << 20

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Service stores uploads and hands them to the inference gateway as data URLs.
type Service struct {
	Store           object.ObjectStore
	Repo            Repo
	StorageProvider string
	MaxBytes        int64
	Now             func() time.Time
}

// Upload validates size and content type, saves the bytes and records the image.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Image, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(fileName) == "" {
		return Image{}, ErrInvalidInput
	}

	limit := s.maxBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Image{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return Image{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Image{}, ErrInvalidInput
	}

	detected := mimetype.Detect(data)
	if !mimetype.EqualsAny(detected.String(), allowedTypes...) {
		return Image{}, ErrUnsupportedType
	}

	storageKey, size, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Image{}, err
	}

	img := Image{
		ID:              uuid.NewString(),
		UserID:          userID,
		FileName:        fileName,
		MimeType:        detected.String(),
		SizeBytes:       size,
		StorageProvider: s.StorageProvider,
		StorageKey:      storageKey,
		CreatedAt:       s.now(),
	}
	if err := s.Repo.Create(ctx, img); err != nil {
		return Image{}, err
	}
	return img, nil
}

// Get returns image metadata owned by userID.
func (s *Service) Get(ctx context.Context, userID, imageID string) (Image, error) {
	return s.Repo.GetByID(ctx, userID, imageID)
}

// DataURL loads the image bytes and encodes them as data:<mime>;base64,...
func (s *Service) DataURL(ctx context.Context, userID, imageID string) (string, error) {
	img, err := s.Repo.GetByID(ctx, userID, imageID)
	if err != nil {
		return "", err
	}
	rc, err := s.Store.Open(ctx, img.StorageKey)
	if err != nil {
		return "", fmt.Errorf("open image %s: %w", img.ID, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", img.ID, err)
	}
	mimeType := img.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *Service) maxBytes() int64 {
	if s.MaxBytes > 0 {
		return s.MaxBytes
	}
	return DefaultMaxBytes
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
