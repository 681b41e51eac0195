package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o1egl/paseto"
)

// Context keys set by Protect for downstream handlers.
const (
	ContextUserID  = "userID"
	ContextIsAdmin = "isAdmin"
)

// TokenFooter binds issued tokens to this application.
const TokenFooter = "myshop-auth"

// Protect verifies the bearer token and attaches the caller's identity to
// the request context. Missing, malformed or expired tokens are rejected
// before any handler runs.
func Protect(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		var token paseto.JSONToken
		var footer string
		if err := paseto.NewV2().Decrypt(tokenStr, secretKey, &token, &footer); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}
		if footer != TokenFooter || token.Validate(paseto.ValidAt(time.Now())) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		var isAdmin bool
		// A token without the claim is treated as non-admin.
		_ = token.Get("admin", &isAdmin)

		c.Set(ContextUserID, token.Subject)
		c.Set(ContextIsAdmin, isAdmin)
		c.Next()
	}
}

// AdminOnly rejects callers whose identity lacks the admin flag. Must run
// after Protect.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not authorized as an admin"})
			return
		}
		c.Next()
	}
}
