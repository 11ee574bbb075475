package handler

import (
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/damoang/pcmall-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles product category endpoints
type CategoryHandler struct {
	service service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// GetTree godoc
// @Summary      카테고리 트리
// @Description  활성 카테고리를 트리로 반환합니다. product_count 는 하위 카테고리를 포함한 공개 상품 수입니다
// @Tags         categories
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.CategoryResponse}
// @Router       /categories [get]
func (h *CategoryHandler) GetTree(c *gin.Context) {
	data, err := h.service.GetTree(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch categories")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// GetBySlug godoc
// @Summary      카테고리 상세
// @Tags         categories
// @Produce      json
// @Param        slug  path  string  true  "카테고리 slug"
// @Success      200  {object}  common.APIResponse{data=domain.CategoryResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /categories/{slug} [get]
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	data, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to fetch category")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// ListAll godoc
// @Summary      카테고리 전체 목록 (관리자)
// @Tags         admin-categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.CategoryResponse}
// @Router       /admin/categories [get]
func (h *CategoryHandler) ListAll(c *gin.Context) {
	data, err := h.service.ListAll()
	if err != nil {
		respondError(c, err, "Failed to fetch categories")
		return
	}
	common.SuccessResponse(c, data, &common.Meta{Total: int64(len(data))})
}

// Create godoc
// @Summary      카테고리 생성
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateCategoryRequest  true  "카테고리"
// @Success      201  {object}  common.APIResponse{data=domain.CategoryResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req domain.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	common.CreatedResponse(c, data)
}

// Update godoc
// @Summary      카테고리 수정
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                           true  "카테고리 ID"
// @Param        request  body  domain.UpdateCategoryRequest  true  "변경할 필드"
// @Success      200  {object}  common.APIResponse{data=domain.CategoryResponse}
// @Failure      404  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Router       /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "category", err)
		return
	}
	var req domain.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update category")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// Delete godoc
// @Summary      카테고리 삭제
// @Tags         admin-categories
// @Security     BearerAuth
// @Param        id  path  int  true  "카테고리 ID"
// @Success      204
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "category", err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}
