package images

import "errors"

var (
	ErrNotFound        = errors.New("image not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrTooLarge        = errors.New("image too large")
	ErrUnsupportedType = errors.New("unsupported image type")
)
