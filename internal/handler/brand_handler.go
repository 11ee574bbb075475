package handler

import (
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/damoang/pcmall-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// BrandHandler handles brand endpoints
type BrandHandler struct {
	service service.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(service service.BrandService) *BrandHandler {
	return &BrandHandler{service: service}
}

// List godoc
// @Summary      브랜드 목록
// @Tags         brands
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.Brand}
// @Router       /brands [get]
func (h *BrandHandler) List(c *gin.Context) {
	h.list(c, false)
}

// ListAll godoc
// @Summary      브랜드 전체 목록 (관리자, 비활성 포함)
// @Tags         admin-brands
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.Brand}
// @Router       /admin/brands [get]
func (h *BrandHandler) ListAll(c *gin.Context) {
	h.list(c, true)
}

func (h *BrandHandler) list(c *gin.Context, includeInactive bool) {
	data, err := h.service.List(includeInactive)
	if err != nil {
		respondError(c, err, "Failed to fetch brands")
		return
	}
	common.SuccessResponse(c, data, &common.Meta{Total: int64(len(data))})
}

// GetBySlug godoc
// @Summary      브랜드 상세
// @Tags         brands
// @Produce      json
// @Param        slug  path  string  true  "브랜드 slug"
// @Success      200  {object}  common.APIResponse{data=domain.Brand}
// @Failure      404  {object}  common.APIResponse
// @Router       /brands/{slug} [get]
func (h *BrandHandler) GetBySlug(c *gin.Context) {
	data, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to fetch brand")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// Create godoc
// @Summary      브랜드 생성
// @Tags         admin-brands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateBrandRequest  true  "브랜드"
// @Success      201  {object}  common.APIResponse{data=domain.Brand}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /admin/brands [post]
func (h *BrandHandler) Create(c *gin.Context) {
	var req domain.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err, "Failed to create brand")
		return
	}
	common.CreatedResponse(c, data)
}

// Update godoc
// @Summary      브랜드 수정
// @Tags         admin-brands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                        true  "브랜드 ID"
// @Param        request  body  domain.UpdateBrandRequest  true  "변경할 필드"
// @Success      200  {object}  common.APIResponse{data=domain.Brand}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/brands/{id} [put]
func (h *BrandHandler) Update(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "brand", err)
		return
	}
	var req domain.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.Update(id, &req)
	if err != nil {
		respondError(c, err, "Failed to update brand")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// Delete godoc
// @Summary      브랜드 삭제
// @Tags         admin-brands
// @Security     BearerAuth
// @Param        id  path  int  true  "브랜드 ID"
// @Success      204
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/brands/{id} [delete]
func (h *BrandHandler) Delete(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "brand", err)
		return
	}
	if err := h.service.Delete(id); err != nil {
		respondError(c, err, "Failed to delete brand")
		return
	}
	c.Status(http.StatusNoContent)
}
