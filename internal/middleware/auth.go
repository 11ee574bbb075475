package middleware

import (
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// context keys set by CookieAuth
const (
	ctxUserID        = "userID"
	ctxUsername      = "username"
	ctxRole          = "role"
	ctxAuthenticated = "authenticated"
	ctxAuthSource    = "auth_source"
)

// RequireAuth rejects requests that CookieAuth did not authenticate
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts admin user ID from context (0 if anonymous)
func GetUserID(c *gin.Context) int64 {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0
	}
	if id, ok := userID.(int64); ok {
		return id
	}
	return 0
}

// GetUsername extracts username from context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get(ctxUsername)
	if !exists {
		return ""
	}
	if str, ok := username.(string); ok {
		return str
	}
	return ""
}

// GetRole extracts role from context
func GetRole(c *gin.Context) string {
	role, exists := c.Get(ctxRole)
	if !exists {
		return ""
	}
	if str, ok := role.(string); ok {
		return str
	}
	return ""
}

// IsAuthenticated reports whether a valid token was presented
func IsAuthenticated(c *gin.Context) bool {
	authenticated, exists := c.Get(ctxAuthenticated)
	if !exists {
		return false
	}
	if auth, ok := authenticated.(bool); ok {
		return auth
	}
	return false
}

// AuthenticatedViaBearer reports whether the token came from the Authorization header
func AuthenticatedViaBearer(c *gin.Context) bool {
	return c.GetString(ctxAuthSource) == authSourceBearer
}
