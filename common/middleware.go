package common

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxAdmin  = "is_admin"
)

// Auth extracts the caller identity from the Authorization header and aborts
// unauthenticated requests.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 1, "error": "missing bearer token"})
			return
		}

		claims, err := ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 1, "error": "invalid token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxAdmin, claims.Admin)
		c.Next()
	}
}

// AdminOnly gates admin endpoints. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ctxAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": 1, "error": "admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller id set by Auth.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}
