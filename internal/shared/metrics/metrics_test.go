package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(enrichment.WithLabelValues("food", "ok"))
	IncEnrichment("food", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(enrichment.WithLabelValues("food", "ok")))

	beforeCalls := testutil.ToFloat64(inferenceCalls.WithLabelValues("identify", "ok"))
	ObserveInference("identify", "ok", 2*time.Second)
	assert.Equal(t, beforeCalls+1, testutil.ToFloat64(inferenceCalls.WithLabelValues("identify", "ok")))
}

func TestHandlerServesRegistry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncSessionCreated()

	r := gin.New()
	r.GET("/metrics", Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "pixweight_sessions_created_total"))
}
