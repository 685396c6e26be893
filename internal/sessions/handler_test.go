package sessions

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixweight-backend/internal/inference"
	"pixweight-backend/internal/reference"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", c.GetHeader("X-User-Id"))
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", user)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestHandlerSessionLifecycle(t *testing.T) {
	f := newFixture(appleGateway(), reference.NewSeededMemoryStore())
	router := newTestRouter(f.svc)

	resp := do(router, http.MethodPost, "/api/v1/sessions/from-image", "user-1", map[string]any{"image_id": "img-1"})
	require.Equal(t, http.StatusCreated, resp.Code)
	var created SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, StatusQuestionsAsked, created.Status)
	assert.Equal(t, "food", created.ObjectJSON.DetectedCategory)
	require.Len(t, created.Questions, 4)
	assert.Equal(t, 1, created.Questions[0].Order)

	answers := make([]map[string]any, 0)
	for _, q := range created.Questions {
		if !q.Required {
			continue
		}
		var v any = "Raw"
		if q.AnswerType == "boolean" {
			v = "yes"
		}
		answers = append(answers, map[string]any{"question_id": q.ID, "value": v})
	}
	resp = do(router, http.MethodPost, "/api/v1/sessions/"+created.ID+"/answers", "user-1", map[string]any{"answers": answers})
	require.Equal(t, http.StatusOK, resp.Code)
	var submitted SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&submitted))
	assert.Empty(t, submitted.Message)
	assert.Equal(t, StatusEstimated, submitted.Session.Status)
	require.NotNil(t, submitted.Estimate)
	assert.Equal(t, 150.0, submitted.Estimate.ValueGrams)
	require.NotNil(t, submitted.Estimate.FoodDetails)
	assert.InDelta(t, 78.0, submitted.Estimate.FoodDetails.EstimatedCalories, 0.001)

	resp = do(router, http.MethodGet, "/api/v1/sessions/"+created.ID, "user-1", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var detail SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	require.NotNil(t, detail.Estimate)
	assert.Len(t, detail.Answers, len(answers))

	resp = do(router, http.MethodGet, "/api/v1/sessions?sort_by=confidence", "user-1", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var list ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, 1, list.Statistics.CompletedSessions)
	assert.Equal(t, 80.0, list.Statistics.AverageConfidence)
	assert.Equal(t, map[string]int{"food": 1}, list.Statistics.CategoryBreakdown)

	resp = do(router, http.MethodGet, "/api/v1/sessions/"+created.ID, "user-2", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandlerPendingMessage(t *testing.T) {
	f := newFixture(appleGateway(), reference.NewSeededMemoryStore())
	router := newTestRouter(f.svc)
	d, err := f.svc.Create(testCtx(t), "user-1", CreateInput{ImageID: "img-1"})
	require.NoError(t, err)

	body := map[string]any{"answers": []map[string]any{
		{"question_id": d.Questions[0].ID, "value": true},
	}}
	resp := do(router, http.MethodPost, "/api/v1/sessions/"+d.Session.ID+"/answers", "user-1", body)
	require.Equal(t, http.StatusOK, resp.Code)
	var got SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, PendingMessage, got.Message)
	assert.Equal(t, StatusInProgress, got.Session.Status)
	assert.Nil(t, got.Estimate)
}

func TestHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(gw *stubGateway)
		body   map[string]any
		status int
		code   string
	}{
		{
			name:   "image rejected",
			setup:  func(gw *stubGateway) { gw.checkErr = &inference.ImageRejectedError{Summary: "blurry", Issues: []string{"blurry"}} },
			body:   map[string]any{"image_id": "img-1"},
			status: http.StatusBadRequest,
			code:   "image_rejected",
		},
		{
			name: "upstream failure",
			setup: func(gw *stubGateway) {
				gw.identErr = &inference.UpstreamError{Op: inference.OpIdentify, Attempts: 3, Err: errors.New("timeout")}
			},
			body:   map[string]any{"image_id": "img-1"},
			status: http.StatusBadGateway,
			code:   "upstream_error",
		},
		{
			name:   "missing image",
			setup:  func(*stubGateway) {},
			body:   map[string]any{},
			status: http.StatusBadRequest,
			code:   "validation_error",
		},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			gw := appleGateway()
			tt.setup(gw)
			router := newTestRouter(newFixture(gw, reference.NewSeededMemoryStore()).svc)

			resp := do(router, http.MethodPost, "/api/v1/sessions/from-image", "user-1", tt.body)
			if resp.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", resp.Code, tt.status, resp.Body.String())
			}
			if got := decodeError(t, resp).Error.Code; got != tt.code {
				t.Fatalf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestHandlerFailedSessionConflict(t *testing.T) {
	gw := appleGateway()
	gw.estErr = &inference.UpstreamError{Op: inference.OpEstimate, Attempts: 3, Err: errors.New("boom")}
	f := newFixture(gw, reference.NewSeededMemoryStore())
	router := newTestRouter(f.svc)
	d, err := f.svc.Create(testCtx(t), "user-1", CreateInput{ImageID: "img-1"})
	require.NoError(t, err)

	items := make([]map[string]any, 0)
	for _, a := range answerRequired(t, d) {
		items = append(items, map[string]any{"question_id": a.QuestionID, "value": a.Value})
	}
	path := "/api/v1/sessions/" + d.Session.ID + "/answers"

	resp := do(router, http.MethodPost, path, "user-1", map[string]any{"answers": items})
	require.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Equal(t, "upstream_error", decodeError(t, resp).Error.Code)

	resp = do(router, http.MethodPost, path, "user-1", map[string]any{"answers": items})
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "session_failed", decodeError(t, resp).Error.Code)
}

func TestHandlerUnknownQuestion(t *testing.T) {
	f := newFixture(appleGateway(), reference.NewSeededMemoryStore())
	router := newTestRouter(f.svc)
	d, err := f.svc.Create(testCtx(t), "user-1", CreateInput{ImageID: "img-1"})
	require.NoError(t, err)

	body := map[string]any{"answers": []map[string]any{{"question_id": "q-404", "value": "x"}}}
	resp := do(router, http.MethodPost, "/api/v1/sessions/"+d.Session.ID+"/answers", "user-1", body)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	env := decodeError(t, resp)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.Contains(t, env.Error.Message, "Unknown question_id: q-404")
}

func TestHandlerListIgnoresUnknownStatus(t *testing.T) {
	f := newFixture(appleGateway(), reference.NewSeededMemoryStore())
	seedList(t, f)
	router := newTestRouter(f.svc)

	cases := []struct {
		query string
		want  []string
	}{
		{query: "?status=bogus", want: []string{"s4", "s3", "s2", "s1"}},
		{query: "?status=failed", want: []string{"s4"}},
		{query: "?status=IN_PROGRESS", want: []string{"s3"}},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.query, func(t *testing.T) {
			resp := do(router, http.MethodGet, "/api/v1/sessions"+tt.query, "user-1", nil)
			require.Equal(t, http.StatusOK, resp.Code)
			var body ListResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			got := make([]string, 0, len(body.Sessions))
			for _, s := range body.Sessions {
				got = append(got, s.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
