package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portal/internal/config"
	mem "portal/pkg/memcache"
	"portal/pkg/utils"
)

const SessionKey = "session"

// SessionAuthMiddleware validates the bearer token and resolves the
// server-side session it points at. The token is only a signed session id;
// every account field comes from the session store.
func SessionAuthMiddleware(sessions mem.SessionStore, cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.SecretKey)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		sess, ok := sessions.Get(claims.SessionID)
		if !ok || !sess.LoggedIn {
			utils.RespondError(c, http.StatusUnauthorized, "Session expired, please log in again")
			c.Abort()
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// RoleMiddleware pre-gates admin routes on the session role; the services
// still re-check authorization against the store.
func RoleMiddleware(requiredRole string) gin.HandlerFunc {

	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess == nil || sess.Role != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func SessionFromContext(c *gin.Context) *mem.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	sess, ok := v.(*mem.Session)
	if !ok {
		return nil
	}
	return sess
}
