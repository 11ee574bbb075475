package handler

import (
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/config"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/middleware"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles admin authentication requests
type AuthHandler struct {
	service service.AuthService
	jwt     config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService, cfg config.JWTConfig) *AuthHandler {
	if cfg.CookieName == "" {
		cfg.CookieName = middleware.DefaultCookieName
	}
	return &AuthHandler{service: service, jwt: cfg}
}

// Login godoc
// @Summary      관리자 로그인
// @Description  access_token 을 body 와 httpOnly 쿠키로 내려주고 CSRF 토큰을 발급합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.LoginRequest  true  "로그인 정보"
// @Success      200  {object}  common.APIResponse{data=domain.LoginResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Failure      429  {object}  common.APIResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	h.setTokenCookie(c, resp.AccessToken, resp.ExpiresIn)
	if _, err := middleware.IssueCSRFToken(c, h.jwt.CookieSecure); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// Logout godoc
// @Summary      로그아웃
// @Description  인증 쿠키를 삭제합니다
// @Tags         auth
// @Produce      json
// @Success      200  {object}  common.APIResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearTokenCookie(c)
	common.SuccessResponse(c, gin.H{"message": "Logged out successfully"}, nil)
}

// Me godoc
// @Summary      현재 관리자 정보
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=domain.AdminUser}
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.Me(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}
	common.SuccessResponse(c, user, nil)
}

// CSRFToken godoc
// @Summary      CSRF 토큰 재발급
// @Description  쿠키 인증으로 관리자 API 를 호출할 때 X-CSRF-Token 헤더에 넣을 값을 발급합니다
// @Tags         auth
// @Produce      json
// @Success      200  {object}  common.APIResponse
// @Router       /auth/csrf [get]
func (h *AuthHandler) CSRFToken(c *gin.Context) {
	token, err := middleware.IssueCSRFToken(c, h.jwt.CookieSecure)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to issue CSRF token", err)
		return
	}
	common.SuccessResponse(c, gin.H{"csrf_token": token}, nil)
}

// setTokenCookie 보안: httpOnly, SameSite=Lax
func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.jwt.CookieName, token, maxAge, "/", h.jwt.CookieDomain, h.jwt.CookieSecure, true)
}

func (h *AuthHandler) clearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.jwt.CookieName, "", -1, "/", h.jwt.CookieDomain, h.jwt.CookieSecure, true)
	c.SetCookie(middleware.CSRFCookieName, "", -1, "/", "", h.jwt.CookieSecure, false)
}
