package middleware

import (
	"net/http"
	"slices"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// RequireAdmin checks that the authenticated user has the admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// RequireStaff admin 또는 editor (카탈로그/메뉴 관리)
func RequireStaff() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleEditor)
}

// RequireRole aborts with 401 for anonymous requests and 403 when the role is not listed
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
			c.Abort()
			return
		}
		if !slices.Contains(roles, GetRole(c)) {
			common.ErrorResponse(c, http.StatusForbidden, "관리자 권한이 필요합니다", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
