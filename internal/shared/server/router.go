package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pixweight-backend/internal/estimates"
	"pixweight-backend/internal/images"
	"pixweight-backend/internal/reference"
	"pixweight-backend/internal/services/health"
	"pixweight-backend/internal/sessions"
	"pixweight-backend/internal/shared/auth"
	"pixweight-backend/internal/shared/config"
	"pixweight-backend/internal/shared/metrics"
	"pixweight-backend/internal/shared/server/middleware"
	"pixweight-backend/internal/shared/server/respond"
)

const (
	healthPath  = "/api/v1/health"
	metricsPath = "/metrics"
)

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config           config.Config
	Verifier         *auth.Verifier
	RateLimiter      *middleware.RateLimiter
	Health           *health.Service
	ReferenceHandler *reference.Handler
	ImageHandler     *images.Handler
	SessionHandler   *sessions.Handler
	EstimateHandler  *estimates.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(middleware.AuthConfig{
			Verifier:       deps.Verifier,
			AllowDevHeader: deps.Config.IsDevLike(),
			Public:         []string{healthPath, metricsPath},
		}),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.RateGroupLLM:    {PerMinute: deps.Config.RateLimitLLM, Burst: deps.Config.RateLimitLLM},
				middleware.RateGroupUpload: {PerMinute: deps.Config.RateLimitUpload, Burst: deps.Config.RateLimitUpload},
			},
			GroupFor: middleware.RouteGroups,
			Limiter:  deps.RateLimiter,
		}),
	)

	r.GET(metricsPath, metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		st := deps.Health.Check(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, st)
	})
	if deps.ReferenceHandler != nil {
		deps.ReferenceHandler.RegisterRoutes(api)
	}
	if deps.ImageHandler != nil {
		deps.ImageHandler.RegisterRoutes(api)
	}
	if deps.SessionHandler != nil {
		deps.SessionHandler.RegisterRoutes(api)
	}
	if deps.EstimateHandler != nil {
		deps.EstimateHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
