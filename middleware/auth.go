package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitpass/models"
	"fitpass/services/auth"
)

// SessionContextKey is where the resolved session lives in the gin context.
const SessionContextKey = "userSession"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// SessionAuthMiddleware resolves the bearer token to a stored session and
// rejects the request when none exists. Handlers behind it can rely on
// SessionFromContext returning non-nil.
func SessionAuthMiddleware(sessions auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		session, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			zap.L().Warn("session lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not verify your session"})
			return
		}
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Your session has expired. Please log in again."})
			return
		}
		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// OptionalSessionMiddleware resolves the session when a token is present but
// lets anonymous requests through. The checkout routes use it: browsing a
// checkout is anonymous, paying is not.
func OptionalSessionMiddleware(sessions auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			session, err := sessions.Get(c.Request.Context(), token)
			if err == nil && session != nil {
				c.Set(SessionContextKey, session)
			}
		}
		c.Next()
	}
}

// SessionFromContext returns the session set by the auth middleware, or nil.
func SessionFromContext(c *gin.Context) *models.UserSession {
	v, ok := c.Get(SessionContextKey)
	if !ok {
		return nil
	}
	session, ok := v.(*models.UserSession)
	if !ok {
		return nil
	}
	return session
}
