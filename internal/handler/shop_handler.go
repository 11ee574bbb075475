package handler

import (
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/damoang/pcmall-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// ShopHandler handles offline store endpoints
type ShopHandler struct {
	service service.ShopService
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(service service.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

// List godoc
// @Summary      매장 목록
// @Tags         shops
// @Produce      json
// @Param        city  query  string  false  "도시로 필터"
// @Success      200  {object}  common.APIResponse{data=[]domain.Shop}
// @Router       /shops [get]
func (h *ShopHandler) List(c *gin.Context) {
	data, err := h.service.List(false, c.Query("city"))
	if err != nil {
		respondError(c, err, "Failed to fetch shops")
		return
	}
	common.SuccessResponse(c, data, &common.Meta{Total: int64(len(data))})
}

// ListAll godoc
// @Summary      매장 전체 목록 (관리자, 비활성 포함)
// @Tags         admin-shops
// @Produce      json
// @Security     BearerAuth
// @Param        city  query  string  false  "도시로 필터"
// @Success      200  {object}  common.APIResponse{data=[]domain.Shop}
// @Router       /admin/shops [get]
func (h *ShopHandler) ListAll(c *gin.Context) {
	data, err := h.service.List(true, c.Query("city"))
	if err != nil {
		respondError(c, err, "Failed to fetch shops")
		return
	}
	common.SuccessResponse(c, data, &common.Meta{Total: int64(len(data))})
}

// GetBySlug godoc
// @Summary      매장 상세
// @Tags         shops
// @Produce      json
// @Param        slug  path  string  true  "매장 slug"
// @Success      200  {object}  common.APIResponse{data=domain.Shop}
// @Failure      404  {object}  common.APIResponse
// @Router       /shops/{slug} [get]
func (h *ShopHandler) GetBySlug(c *gin.Context) {
	data, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to fetch shop")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// Create godoc
// @Summary      매장 생성
// @Tags         admin-shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateShopRequest  true  "매장"
// @Success      201  {object}  common.APIResponse{data=domain.Shop}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /admin/shops [post]
func (h *ShopHandler) Create(c *gin.Context) {
	var req domain.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err, "Failed to create shop")
		return
	}
	common.CreatedResponse(c, data)
}

// Update godoc
// @Summary      매장 수정
// @Tags         admin-shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                       true  "매장 ID"
// @Param        request  body  domain.UpdateShopRequest  true  "변경할 필드"
// @Success      200  {object}  common.APIResponse{data=domain.Shop}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/shops/{id} [put]
func (h *ShopHandler) Update(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "shop", err)
		return
	}
	var req domain.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.Update(id, &req)
	if err != nil {
		respondError(c, err, "Failed to update shop")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// Delete godoc
// @Summary      매장 삭제
// @Tags         admin-shops
// @Security     BearerAuth
// @Param        id  path  int  true  "매장 ID"
// @Success      204
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/shops/{id} [delete]
func (h *ShopHandler) Delete(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "shop", err)
		return
	}
	if err := h.service.Delete(id); err != nil {
		respondError(c, err, "Failed to delete shop")
		return
	}
	c.Status(http.StatusNoContent)
}
