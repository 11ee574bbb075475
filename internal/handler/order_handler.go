package handler

import (
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/damoang/pcmall-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles guest checkout and admin order management
type OrderHandler struct {
	service service.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create godoc
// @Summary      비회원 주문
// @Description  가격은 서버에서 다시 계산합니다. pickup_shop_id 가 있으면 배송지 없이 매장 수령입니다
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body  domain.CreateOrderRequest  true  "주문"
// @Success      201  {object}  common.APIResponse{data=domain.Order}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	order, err := h.service.CreateOrder(&req, c.ClientIP())
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}
	common.CreatedResponse(c, order)
}

// Lookup godoc
// @Summary      비회원 주문 조회
// @Description  주문번호와 주문 시 입력한 이메일이 모두 맞아야 합니다
// @Tags         orders
// @Produce      json
// @Param        order_number  query  string  true  "주문번호"
// @Param        email         query  string  true  "이메일"
// @Success      200  {object}  common.APIResponse{data=domain.Order}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /orders/lookup [get]
func (h *OrderHandler) Lookup(c *gin.Context) {
	var req domain.OrderLookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "order_number and email are required", err)
		return
	}
	order, err := h.service.LookupOrder(req.OrderNumber, req.Email)
	if err != nil {
		respondError(c, err, "Failed to fetch order")
		return
	}
	common.SuccessResponse(c, order, nil)
}

// List godoc
// @Summary      주문 목록 (관리자)
// @Tags         admin-orders
// @Produce      json
// @Security     BearerAuth
// @Param        page      query  int     false  "페이지"
// @Param        per_page  query  int     false  "페이지 크기"
// @Param        status    query  string  false  "주문 상태"
// @Param        q         query  string  false  "주문번호, 이름, 이메일"
// @Success      200  {object}  common.APIResponse{data=[]domain.Order}
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var req domain.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	req.Page, req.PerPage = ginutil.Pagination(c)

	orders, meta, err := h.service.ListOrders(&req)
	if err != nil {
		respondError(c, err, "Failed to fetch orders")
		return
	}
	common.SuccessResponse(c, orders, meta)
}

// Get godoc
// @Summary      주문 상세 (관리자)
// @Tags         admin-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "주문 ID"
// @Success      200  {object}  common.APIResponse{data=domain.Order}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "order", err)
		return
	}
	order, err := h.service.GetOrder(id)
	if err != nil {
		respondError(c, err, "Failed to fetch order")
		return
	}
	common.SuccessResponse(c, order, nil)
}

// UpdateStatus godoc
// @Summary      주문 상태 변경
// @Description  허용된 전이만 가능합니다. 취소/환불 시 재고가 복구됩니다
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                              true  "주문 ID"
// @Param        request  body  domain.UpdateOrderStatusRequest  true  "상태"
// @Success      200  {object}  common.APIResponse{data=domain.Order}
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Router       /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "order", err)
		return
	}
	var req domain.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	order, err := h.service.UpdateStatus(id, &req)
	if err != nil {
		respondError(c, err, "Failed to update order")
		return
	}
	common.SuccessResponse(c, order, nil)
}
