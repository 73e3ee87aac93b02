package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meridian-api/internal/db"
	"meridian-api/internal/logger"
)

// Context keys set by the session middleware.
const (
	ContextUserKey   = "auth_user"
	ContextUserIDKey = "auth_user_id"
	ContextRoleKey   = "auth_role"
)

// EnsureValidSession validates the bearer session token and loads the
// user onto the request context. Requests without a valid session are
// rejected with 401.
func EnsureValidSession(issuer *TokenIssuer, queries db.Querier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		userID, role, err := issuer.ParseSession(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		user, err := queries.GetUser(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("session token for unknown user",
				zap.String("user_id", userID.String()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

// RequireRoles rejects requests whose session role is not in the
// allowed set. Must run after EnsureValidSession.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRoleKey)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}

// CurrentUser returns the authenticated user from the request context.
func CurrentUser(c *gin.Context) (db.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return db.User{}, false
	}
	user, ok := value.(db.User)
	return user, ok
}
