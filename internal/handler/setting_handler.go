package handler

import (
	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SettingHandler handles store settings
type SettingHandler struct {
	service service.SettingService
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(service service.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

// GetPublic godoc
// @Summary      공개 설정
// @Description  스토어프런트에서 쓰는 공개 설정을 key -> value 로 반환합니다
// @Tags         settings
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=map[string]object}
// @Router       /settings [get]
func (h *SettingHandler) GetPublic(c *gin.Context) {
	data, err := h.service.GetPublic(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch settings")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// GetAll godoc
// @Summary      전체 설정 (관리자)
// @Tags         admin-settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.Setting}
// @Router       /admin/settings [get]
func (h *SettingHandler) GetAll(c *gin.Context) {
	data, err := h.service.GetAll()
	if err != nil {
		respondError(c, err, "Failed to fetch settings")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// Update godoc
// @Summary      설정 저장
// @Description  여러 key 를 한 번에 저장합니다. value 는 JSON 값입니다
// @Tags         admin-settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.UpdateSettingsRequest  true  "설정"
// @Success      200  {object}  common.APIResponse{data=[]domain.Setting}
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/settings [put]
func (h *SettingHandler) Update(c *gin.Context) {
	var req domain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to update settings")
		return
	}
	common.SuccessResponse(c, data, nil)
}
