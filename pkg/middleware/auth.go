package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/FarhanAlam-Official/GharSaathi/internal/sessions"
	"github.com/FarhanAlam-Official/GharSaathi/internal/tokens"
)

// Auth returns a Gin middleware that verifies Bearer access tokens signed
// with the given secret. Revoked tokens are rejected when a blacklist is
// provided (nil disables the check). On success the verified claims, user id
// and role are stored on the context.
func Auth(secret string, bl *sessions.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing Authorization header"})
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid Authorization header"})
			return
		}

		claims, err := tokens.Parse(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		if revoked, err := bl.Contains(c.Request.Context(), raw); err == nil && revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token has been revoked"})
			return
		}

		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("accessToken", raw)
		c.Next()
	}
}

// RequireRoles restricts a route to the given roles. Must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You don't have permission to perform this action."})
	}
}

// UserID returns the authenticated user's id from the context, 0 when absent.
func UserID(c *gin.Context) int64 {
	v, ok := c.Get("userID")
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
