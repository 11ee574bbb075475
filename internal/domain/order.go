package domain

import (
	"slices"
	"time"
)

// OrderStatus 주문 상태
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // 결제 대기
	OrderStatusPaid       OrderStatus = "paid"       // 결제 완료
	OrderStatusProcessing OrderStatus = "processing" // 조립/출고 준비
	OrderStatusShipped    OrderStatus = "shipped"    // 배송 중
	OrderStatusDelivered  OrderStatus = "delivered"  // 배송 완료
	OrderStatusCompleted  OrderStatus = "completed"  // 구매 확정
	OrderStatusCancelled  OrderStatus = "cancelled"  // 취소됨
	OrderStatusRefunded   OrderStatus = "refunded"   // 환불됨
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusCompleted, OrderStatusRefunded},
	OrderStatusCompleted:  {OrderStatusRefunded},
}

// CanTransitionTo 상태 전이 가능 여부
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	return slices.Contains(orderTransitions[s], to)
}

// RestoresStock reports whether entering s puts the ordered quantities back
func (s OrderStatus) RestoresStock() bool {
	return s == OrderStatusCancelled || s == OrderStatusRefunded
}

// Order 주문 엔티티 (비회원 주문)
// Table: orders
type Order struct {
	ID            int64       `gorm:"column:id;primaryKey" json:"id"`
	OrderNumber   string      `gorm:"column:order_number;size:40;uniqueIndex;not null" json:"order_number"`
	CustomerName  string      `gorm:"column:customer_name;size:100;not null" json:"customer_name"`
	CustomerEmail string      `gorm:"column:customer_email;size:255;not null;index" json:"customer_email"`
	CustomerPhone string      `gorm:"column:customer_phone;size:30" json:"customer_phone"`
	Subtotal      float64     `gorm:"column:subtotal;type:decimal(12,2);not null" json:"subtotal"`
	ShippingFee   float64     `gorm:"column:shipping_fee;type:decimal(12,2);default:0" json:"shipping_fee"`
	Total         float64     `gorm:"column:total;type:decimal(12,2);not null" json:"total"`
	Currency      string      `gorm:"column:currency;size:3;default:'KRW'" json:"currency"`
	Status        OrderStatus `gorm:"column:status;size:20;default:'pending';index" json:"status"`

	// 배송 정보
	ShippingAddress string `gorm:"column:shipping_address;size:500" json:"shipping_address"`
	ShippingPostal  string `gorm:"column:shipping_postal;size:10" json:"shipping_postal,omitempty"`
	ShippingMemo    string `gorm:"column:shipping_memo;size:255" json:"shipping_memo,omitempty"`
	PickupShopID    *int64 `gorm:"column:pickup_shop_id" json:"pickup_shop_id,omitempty"`

	// 송장 정보
	ShippingCarrier string `gorm:"column:shipping_carrier;size:50" json:"shipping_carrier,omitempty"`
	TrackingNumber  string `gorm:"column:tracking_number;size:100" json:"tracking_number,omitempty"`
	AdminMemo       string `gorm:"column:admin_memo;type:text" json:"admin_memo,omitempty"`

	IPAddress string `gorm:"column:ip_address;size:45" json:"-"`

	PaidAt      *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	ShippedAt   *time.Time `gorm:"column:shipped_at" json:"shipped_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName GORM 테이블명
func (Order) TableName() string {
	return "orders"
}

// OrderItem 주문 아이템. 상품명/가격은 주문 시점 스냅샷.
// Table: order_items
type OrderItem struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	OrderID     int64     `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID   int64     `gorm:"column:product_id;not null;index" json:"product_id"`
	ProductName string    `gorm:"column:product_name;size:255;not null" json:"product_name"`
	SKU         string    `gorm:"column:sku;size:64" json:"sku"`
	Price       float64   `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Quantity    int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Subtotal    float64   `gorm:"column:subtotal;type:decimal(12,2);not null" json:"subtotal"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName GORM 테이블명
func (OrderItem) TableName() string {
	return "order_items"
}

// CreateOrderRequest 비회원 주문 생성 요청
type CreateOrderRequest struct {
	CustomerName    string                   `json:"customer_name" binding:"required,max=100"`
	CustomerEmail   string                   `json:"customer_email" binding:"required,email,max=255"`
	CustomerPhone   string                   `json:"customer_phone" binding:"required,max=30"`
	ShippingAddress string                   `json:"shipping_address" binding:"required_without=PickupShopID,max=500"`
	ShippingPostal  string                   `json:"shipping_postal" binding:"omitempty,max=10"`
	ShippingMemo    string                   `json:"shipping_memo" binding:"omitempty,max=255"`
	PickupShopID    *int64                   `json:"pickup_shop_id"`
	Items           []CreateOrderItemRequest `json:"items" binding:"required,min=1,max=50,dive"`
}

// CreateOrderItemRequest 주문 상품 한 줄
type CreateOrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1,max=99"`
}

// UpdateOrderStatusRequest 관리자 주문 상태 변경
type UpdateOrderStatusRequest struct {
	Status          string `json:"status" binding:"required,oneof=pending paid processing shipped delivered completed cancelled refunded"`
	ShippingCarrier string `json:"shipping_carrier" binding:"omitempty,max=50"`
	TrackingNumber  string `json:"tracking_number" binding:"omitempty,max=100"`
	AdminMemo       string `json:"admin_memo"`
}

// OrderListRequest 주문 목록 조회 요청
type OrderListRequest struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Status  string `form:"status" binding:"omitempty,oneof=pending paid processing shipped delivered completed cancelled refunded"`
	Search  string `form:"q" binding:"omitempty,max=100"` // 주문번호, 이름, 이메일
}

// OrderLookupRequest 비회원 주문 조회 (주문번호 + 이메일)
type OrderLookupRequest struct {
	OrderNumber string `form:"order_number" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
}
