package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/security"
)

const (
	ctxUserIDKey = "auth.user_id"
	ctxEmailKey  = "auth.email"
)

// RequireAuth validates the Bearer token and stores the caller's identity in
// the request context. Every handler behind it reads the identity from the
// context, never from request parameters.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing bearer token",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		claims, err := security.ValidateJWT(token, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxEmailKey, claims.Email)
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// MustUserID is for handlers behind RequireAuth, where identity is guaranteed.
func MustUserID(c *gin.Context) uint {
	id, _ := CurrentUserID(c)
	return id
}
