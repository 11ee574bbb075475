package repository

import (
	"errors"
	"fmt"

	"github.com/damoang/pcmall-backend/internal/domain"
	"gorm.io/gorm"
)

// ErrInsufficientStock 재고 부족 (상품 ID 와 함께 wrap 됨)
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrOrderStatusChanged 읽은 뒤 다른 요청이 먼저 상태를 바꿈
var ErrOrderStatusChanged = errors.New("order status changed concurrently")

// OrderRepository 주문 저장소 인터페이스
type OrderRepository interface {
	CreateWithStock(order *domain.Order) error
	UpdateStatus(order *domain.Order, prev domain.OrderStatus, restoreStock bool) error

	FindByID(id int64) (*domain.Order, error)
	FindByOrderNumber(orderNumber string) (*domain.Order, error)
	List(req *domain.OrderListRequest) ([]*domain.Order, int64, error)
}

// orderRepository GORM 구현체
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 생성자
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithStock 재고 차감과 주문 생성을 한 트랜잭션에서 처리.
// 한 상품이라도 재고가 모자라면 전부 롤백된다.
func (r *orderRepository) CreateWithStock(order *domain.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			result := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, item.ProductID)
			}
		}

		// Items 는 association 으로 함께 생성
		return tx.Create(order).Error
	})
}

// UpdateStatus 상태가 아직 prev 일 때만 주문을 갱신한다. 다른 요청이 먼저
// 바꿨으면 ErrOrderStatusChanged. restoreStock 은 갱신에 성공한 경우에만 적용.
func (r *orderRepository) UpdateStatus(order *domain.Order, prev domain.OrderStatus, restoreStock bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Order{}).
			Where("id = ? AND status = ?", order.ID, prev).
			Updates(map[string]interface{}{
				"status":           order.Status,
				"shipping_carrier": order.ShippingCarrier,
				"tracking_number":  order.TrackingNumber,
				"admin_memo":       order.AdminMemo,
				"paid_at":          order.PaidAt,
				"shipped_at":       order.ShippedAt,
				"completed_at":     order.CompletedAt,
				"cancelled_at":     order.CancelledAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: order %d is no longer %s", ErrOrderStatusChanged, order.ID, prev)
		}
		if !restoreStock {
			return nil
		}

		var items []domain.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Model(&domain.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID ID로 주문 조회 (아이템 포함)
func (r *orderRepository) FindByID(id int64) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber 주문번호로 조회 (아이템 포함)
func (r *orderRepository) FindByOrderNumber(orderNumber string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List 관리자 주문 목록 (최신순)
func (r *orderRepository) List(req *domain.OrderListRequest) ([]*domain.Order, int64, error) {
	var orders []*domain.Order
	var total int64

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := r.db.Model(&domain.Order{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("(order_number LIKE ? OR customer_name LIKE ? OR customer_email LIKE ?)",
			pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	err := query.Preload("Items").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(perPage).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
