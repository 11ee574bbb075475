package middleware

import (
	"strings"

	"github.com/damoang/pcmall-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// DefaultCookieName admin 세션 쿠키
const DefaultCookieName = "pcmall_jwt"

const (
	authSourceCookie = "cookie"
	authSourceBearer = "bearer"
)

// CookieAuth - pcmall_jwt 쿠키 또는 Bearer 토큰에서 인증 정보 추출
// 인증 실패해도 요청을 계속 진행 (optional auth)
// 쿠키 → Bearer 토큰 순서로 검증 시도
func CookieAuth(jwtManager *jwt.Manager, cookieName string) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	return func(c *gin.Context) {
		// 1. 쿠키
		if tokenString, err := c.Cookie(cookieName); err == nil && tokenString != "" {
			if claims, verifyErr := jwtManager.VerifyToken(tokenString); verifyErr == nil {
				setClaims(c, claims, authSourceCookie)
				c.Next()
				return
			}
		}

		// 2. 쿠키가 없거나 유효하지 않으면 Bearer 토큰 확인 (ops 도구 호환)
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, verifyErr := jwtManager.VerifyToken(parts[1]); verifyErr == nil {
					setClaims(c, claims, authSourceBearer)
					c.Next()
					return
				}
			}
		}

		// 인증 없이 비로그인 상태로 진행
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *jwt.Claims, source string) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxAuthenticated, true)
	c.Set(ctxAuthSource, source)
}
