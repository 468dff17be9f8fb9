package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portal-backend/internal/auth"
	"portal-backend/internal/httpx"
)

const (
	ContextUserID = "userId"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthRequired extracts and verifies the bearer token, attaching the
// claims to the request context. No store access on this path.
func AuthRequired(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpx.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "No authentication token provided")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httpx.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid authorization header")
			return
		}

		claims, err := tokens.VerifyAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				httpx.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token expired")
				return
			}
			httpx.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireAnyRole is the single capability check used by every guarded
// route.
func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := c.Get(ContextRole)
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		httpx.Abort(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	}
}
