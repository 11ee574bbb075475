package handler

import (
	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// PCBuilderHandler serves the PC builder placeholder
type PCBuilderHandler struct {
	service service.PCBuilderService
}

// NewPCBuilderHandler creates a new PCBuilderHandler
func NewPCBuilderHandler(service service.PCBuilderService) *PCBuilderHandler {
	return &PCBuilderHandler{service: service}
}

// GetSlots godoc
// @Summary      PC 견적 슬롯
// @Description  준비 중인 기능입니다. 부품 슬롯과 카테고리별 상품 수만 반환합니다
// @Tags         pc-builder
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=domain.PCBuilderResponse}
// @Router       /pc-builder [get]
func (h *PCBuilderHandler) GetSlots(c *gin.Context) {
	data, err := h.service.GetSlots(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch PC builder")
		return
	}
	common.SuccessResponse(c, data, nil)
}
