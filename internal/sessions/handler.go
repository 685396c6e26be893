package sessions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pixweight-backend/internal/inference"
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

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions/from-image", h.create)
	rg.GET("/sessions", h.list)
	rg.GET("/sessions/:id", h.get)
	rg.POST("/sessions/:id/answers", h.submitAnswers)
}

type createRequest struct {
	ImageID  string `json:"image_id"`
	UserHint string `json:"user_hint"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Invalid(c, "", "invalid request body")
		return
	}

	d, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{ImageID: req.ImageID, UserHint: req.UserHint})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.SessionIDKey, d.Session.ID)
	c.Set(middleware.StatusTransitionKey, "->"+string(d.Session.Status))
	respond.Created(c, ToResponse(d))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Set(middleware.SessionIDKey, c.Param("id"))

	d, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, ToResponse(d))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	f := ListFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		From:     ParseDate(c.Query("date_from"), false),
		To:       ParseDate(c.Query("date_to"), true),
	}
	// Unknown statuses are ignored like unparsable dates.
	if st := Status(strings.ToUpper(strings.TrimSpace(c.Query("status")))); st.Valid() {
		f.Status = st
	}
	sortBy := c.DefaultQuery("sort_by", SortDate)

	res, err := h.Svc.List(c.Request.Context(), userID, f, sortBy)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toListResponse(res))
}

type answerItem struct {
	QuestionID string `json:"question_id"`
	Value      any    `json:"value"`
}

type submitRequest struct {
	Answers []answerItem `json:"answers"`
}

func (h *Handler) submitAnswers(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Set(middleware.SessionIDKey, c.Param("id"))

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Invalid(c, "", "invalid request body")
		return
	}
	in := make([]AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		in = append(in, AnswerInput{QuestionID: a.QuestionID, Value: a.Value})
	}

	res, err := h.Svc.SubmitAnswers(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	if res.PreviousStatus != res.Session.Status {
		c.Set(middleware.StatusTransitionKey, string(res.PreviousStatus)+"->"+string(res.Session.Status))
	}

	body := SubmitResponse{Session: ToResponse(res.Detail)}
	if res.Pending {
		body.Message = PendingMessage
	}
	if res.Estimate != nil {
		c.Set(middleware.EstimateIDKey, res.Estimate.Estimate.ID)
		body.Estimate = body.Session.Estimate
	}
	respond.OK(c, body)
}

func writeError(c *gin.Context, err error) {
	var (
		vErr     *ValidationError
		rejected *inference.ImageRejectedError
		upstream *inference.UpstreamError
	)
	switch {
	case errors.As(err, &vErr):
		respond.Invalid(c, vErr.Field, vErr.Error())
	case errors.As(err, &rejected):
		respond.Error(c, http.StatusBadRequest, respond.CodeImageRejected, rejected.Error(), gin.H{"summary": rejected.Summary, "issues": rejected.Issues})
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "session")
	case errors.Is(err, ErrSessionFailed):
		respond.Error(c, http.StatusConflict, respond.CodeSessionFailed, ErrSessionFailed.Error(), nil)
	case errors.Is(err, ErrSessionClosed):
		respond.Error(c, http.StatusConflict, respond.CodeConflict, ErrSessionClosed.Error(), nil)
	case errors.As(err, &upstream), errors.Is(err, inference.ErrNotConfigured):
		respond.Error(c, http.StatusBadGateway, respond.CodeUpstream, err.Error(), nil)
	default:
		respond.Internal(c, "failed to process session")
	}
}
