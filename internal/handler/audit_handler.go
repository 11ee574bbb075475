package handler

import (
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/middleware"
	"github.com/damoang/pcmall-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// AuditHandler exposes the admin audit trail
type AuditHandler struct {
	audit *middleware.AuditLogger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(audit *middleware.AuditLogger) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List godoc
// @Summary      관리자 감사 로그
// @Tags         admin-audit
// @Produce      json
// @Security     BearerAuth
// @Param        page      query  int     false  "페이지"
// @Param        per_page  query  int     false  "페이지 크기"
// @Param        username  query  string  false  "관리자 아이디"
// @Param        action    query  string  false  "POST, PUT, PATCH, DELETE"
// @Success      200  {object}  common.APIResponse{data=[]domain.AuditLog}
// @Failure      403  {object}  common.APIResponse
// @Router       /admin/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	var req domain.AuditLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	req.Page, req.PerPage = ginutil.Pagination(c)

	logs, total, err := h.audit.ListAuditLogs(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to fetch audit logs")
		return
	}
	common.SuccessResponse(c, logs, common.NewMeta(req.Page, req.PerPage, total))
}
