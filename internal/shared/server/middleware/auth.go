package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pixweight-backend/internal/shared/auth"
	"pixweight-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
)

// AuthConfig configures Auth.
type AuthConfig struct {
	Verifier *auth.Verifier
	// AllowDevHeader accepts X-User-Id as identity when no bearer token is sent.
	AllowDevHeader bool
	// Public paths skip authentication entirely.
	Public []string
}

// Auth validates bearer JWTs and stores the user identity in context.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	public := make(map[string]struct{}, len(cfg.Public))
	for _, p := range cfg.Public {
		public[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}
		if _, ok := public[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") || cfg.Verifier == nil {
				respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "missing or invalid token", nil)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			claims, err := cfg.Verifier.Verify(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "missing or invalid token", nil)
				return
			}
			c.Set(userIDKey, claims.Subject)
			if claims.Email != "" {
				c.Set(userEmailKey, claims.Email)
			}
			c.Next()
			return
		}

		if cfg.AllowDevHeader {
			if devID := strings.TrimSpace(c.GetHeader("X-User-Id")); devID != "" {
				c.Set(userIDKey, devID)
				c.Next()
				return
			}
		}

		respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Missing identity", nil)
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}
