package images

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pixweight-backend/internal/shared/server/middleware"
	"pixweight-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches image routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/images", h.upload)
	rg.GET("/images/:id", h.get)
}

type imageResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"original_filename"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func toResponse(img Image) imageResponse {
	return imageResponse{
		ID:         img.ID,
		FileName:   img.FileName,
		MimeType:   img.MimeType,
		SizeBytes:  img.SizeBytes,
		UploadedAt: img.CreatedAt,
	}
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit := h.Svc.maxBytes()
	// multipart framing needs some headroom over the file limit
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+(1<<20))

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Invalid(c, "", fmt.Sprintf("File too large. Max is %d bytes.", limit))
			return
		}
		respond.Invalid(c, "", "image is required")
		return
	}
	if fileHeader.Size > limit {
		respond.Invalid(c, "", fmt.Sprintf("File too large. Max is %d bytes.", limit))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Invalid(c, "", "unable to read image")
		return
	}
	defer file.Close()

	img, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooLarge):
			respond.Invalid(c, "", fmt.Sprintf("File too large. Max is %d bytes.", limit))
		case errors.Is(err, ErrUnsupportedType):
			respond.Invalid(c, "image", "Unsupported image type. Allowed: jpeg, png, webp.")
		case errors.Is(err, ErrInvalidInput):
			respond.Invalid(c, "", "image is required")
		default:
			respond.Internal(c, "failed to store image")
		}
		return
	}

	respond.Created(c, toResponse(img))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	img, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(c, "image")
			return
		}
		respond.Internal(c, "failed to fetch image")
		return
	}
	respond.OK(c, toResponse(img))
}
