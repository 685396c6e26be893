package estimates

import (
	"errors"
	"net/http"

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

// RegisterRoutes attaches estimate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/estimates/:id", h.get)
	rg.POST("/estimates/:id/feedback", h.feedback)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Set(middleware.EstimateIDKey, c.Param("id"))

	view, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, ToResponse(view))
}

type feedbackRequest struct {
	ActualWeightGrams *float64 `json:"actual_weight_grams"`
	AccuracyRating    *int     `json:"accuracy_rating"`
	UserNotes         string   `json:"user_notes"`
	Helpful           *bool    `json:"helpful"`
}

func (h *Handler) feedback(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Set(middleware.EstimateIDKey, c.Param("id"))

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Invalid(c, "", "invalid request body")
		return
	}
	if req.ActualWeightGrams == nil {
		respond.Invalid(c, "actual_weight_grams", "actual_weight_grams is required")
		return
	}

	fb, err := h.Svc.SubmitFeedback(c.Request.Context(), userID, c.Param("id"), FeedbackInput{
		ActualWeightGrams: *req.ActualWeightGrams,
		AccuracyRating:    req.AccuracyRating,
		UserNotes:         req.UserNotes,
		Helpful:           req.Helpful,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Created(c, toFeedbackResponse(fb))
}

func writeError(c *gin.Context, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		respond.Invalid(c, vErr.Field, vErr.Error())
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "estimate")
	case errors.Is(err, ErrFeedbackExists):
		respond.Error(c, http.StatusConflict, respond.CodeConflict, "Feedback already submitted for this estimate", nil)
	default:
		respond.Internal(c, "failed to process estimate")
	}
}
