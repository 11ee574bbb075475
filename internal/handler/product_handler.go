package handler

import (
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/damoang/pcmall-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	service service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List godoc
// @Summary      상품 목록
// @Description  공개 상품만 조회합니다. q 가 있고 sort 가 없으면 검색엔진 관련도 순입니다
// @Tags         products
// @Produce      json
// @Param        page       query  int     false  "페이지 (기본 1)"
// @Param        per_page   query  int     false  "페이지 크기 (기본 20, 최대 100)"
// @Param        category   query  string  false  "카테고리 slug (하위 포함)"
// @Param        brand      query  string  false  "브랜드 slug"
// @Param        q          query  string  false  "검색어"
// @Param        min_price  query  number  false  "최저가"
// @Param        max_price  query  number  false  "최고가"
// @Param        sort       query  string  false  "newest, price_asc, price_desc, name, popular"
// @Success      200  {object}  common.APIResponse{data=[]domain.ProductResponse}
// @Failure      400  {object}  common.APIResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	req, ok := bindProductList(c)
	if !ok {
		return
	}
	req.Status = ""
	req.IncludeUnpublished = false

	data, meta, err := h.service.ListPublished(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to fetch products")
		return
	}
	common.SuccessResponse(c, data, meta)
}

// GetBySlug godoc
// @Summary      상품 상세
// @Tags         products
// @Produce      json
// @Param        slug  path  string  true  "상품 slug"
// @Success      200  {object}  common.APIResponse{data=domain.ProductResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /products/{slug} [get]
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	data, err := h.service.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to fetch product")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// ListAll godoc
// @Summary      상품 목록 (관리자)
// @Description  모든 상태의 상품을 조회합니다
// @Tags         admin-products
// @Produce      json
// @Security     BearerAuth
// @Param        page      query  int     false  "페이지"
// @Param        per_page  query  int     false  "페이지 크기"
// @Param        status    query  string  false  "draft, published, archived"
// @Param        q         query  string  false  "이름/SKU 검색"
// @Success      200  {object}  common.APIResponse{data=[]domain.ProductResponse}
// @Router       /admin/products [get]
func (h *ProductHandler) ListAll(c *gin.Context) {
	req, ok := bindProductList(c)
	if !ok {
		return
	}
	req.IncludeUnpublished = true

	data, meta, err := h.service.ListAll(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to fetch products")
		return
	}
	common.SuccessResponse(c, data, meta)
}

// GetByID godoc
// @Summary      상품 상세 (관리자)
// @Tags         admin-products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "상품 ID"
// @Success      200  {object}  common.APIResponse{data=domain.ProductResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "product", err)
		return
	}
	data, err := h.service.GetByID(id)
	if err != nil {
		respondError(c, err, "Failed to fetch product")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// Create godoc
// @Summary      상품 등록
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateProductRequest  true  "상품"
// @Success      201  {object}  common.APIResponse{data=domain.ProductResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	common.CreatedResponse(c, data)
}

// Update godoc
// @Summary      상품 수정
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                          true  "상품 ID"
// @Param        request  body  domain.UpdateProductRequest  true  "변경할 필드"
// @Success      200  {object}  common.APIResponse{data=domain.ProductResponse}
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "product", err)
		return
	}
	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// Delete godoc
// @Summary      상품 삭제
// @Description  soft delete. 검색 인덱스에서도 제거됩니다
// @Tags         admin-products
// @Security     BearerAuth
// @Param        id  path  int  true  "상품 ID"
// @Success      204
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "product", err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

// bindProductList binds filters and clamps paging
func bindProductList(c *gin.Context) (*domain.ProductListRequest, bool) {
	var req domain.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return nil, false
	}
	req.Page, req.PerPage = ginutil.Pagination(c)
	return &req, true
}
