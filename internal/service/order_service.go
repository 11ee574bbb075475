package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order 에러 정의
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderProduct        = errors.New("product is not available for order")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidTransition   = errors.New("order status transition not allowed")
	ErrTrackingRequired    = errors.New("tracking number is required to ship an order")
	ErrPickupShopNotFound  = errors.New("pickup shop not found")
	ErrShippingAddressMiss = errors.New("shipping address is required unless picking up in store")
)

// 기본 배송비 (설정이 없을 때)
const (
	defaultShippingFee           = 3000
	defaultFreeShippingThreshold = 100000
	defaultCurrency              = "KRW"
)

// OrderService 주문 서비스 인터페이스
type OrderService interface {
	// 공개용 (비회원)
	CreateOrder(req *domain.CreateOrderRequest, ipAddress string) (*domain.Order, error)
	LookupOrder(orderNumber, email string) (*domain.Order, error)

	// 관리자용
	ListOrders(req *domain.OrderListRequest) ([]*domain.Order, *common.Meta, error)
	GetOrder(id int64) (*domain.Order, error)
	UpdateStatus(id int64, req *domain.UpdateOrderStatusRequest) (*domain.Order, error)
}

type orderService struct {
	repo     repository.OrderRepository
	products repository.ProductRepository
	shops    ShopService
	settings SettingService
	now      func() time.Time
}

// NewOrderService 생성자
func NewOrderService(
	repo repository.OrderRepository,
	products repository.ProductRepository,
	shops ShopService,
	settings SettingService,
) OrderService {
	return &orderService{
		repo:     repo,
		products: products,
		shops:    shops,
		settings: settings,
		now:      time.Now,
	}
}

// CreateOrder 비회원 주문 생성. 가격은 DB 기준으로 다시 계산하고 재고는
// 같은 트랜잭션에서 차감한다.
func (s *orderService) CreateOrder(req *domain.CreateOrderRequest, ipAddress string) (*domain.Order, error) {
	if req.PickupShopID != nil {
		if _, err := s.shops.GetActiveByID(*req.PickupShopID); err != nil {
			if errors.Is(err, ErrShopNotFound) {
				return nil, ErrPickupShopNotFound
			}
			return nil, err
		}
	} else if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, ErrShippingAddressMiss
	}

	// 같은 상품이 여러 줄이면 합친다 (첫 등장 순서 유지)
	quantities := make(map[int64]int, len(req.Items))
	var ids []int64
	for _, line := range req.Items {
		if _, seen := quantities[line.ProductID]; !seen {
			ids = append(ids, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	products, err := s.products.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(ids))
	var subtotal float64
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || p.Status != domain.ProductStatusPublished {
			return nil, fmt.Errorf("%w: product %d", ErrOrderProduct, id)
		}
		qty := quantities[id]
		if p.Stock < qty {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
		}
		lineTotal := roundMoney(p.Price * float64(qty))
		subtotal += lineTotal
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
			Price:       p.Price,
			Quantity:    qty,
			Subtotal:    lineTotal,
		})
	}
	subtotal = roundMoney(subtotal)

	shippingFee := s.shippingFee(subtotal, req.PickupShopID != nil)

	order := &domain.Order{
		OrderNumber:     s.newOrderNumber(),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		Subtotal:        subtotal,
		ShippingFee:     shippingFee,
		Total:           roundMoney(subtotal + shippingFee),
		Currency:        defaultCurrency,
		Status:          domain.OrderStatusPending,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		ShippingPostal:  req.ShippingPostal,
		ShippingMemo:    req.ShippingMemo,
		PickupShopID:    req.PickupShopID,
		IPAddress:       ipAddress,
		Items:           items,
	}

	if err := s.repo.CreateWithStock(order); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			// 동시 주문으로 그 사이 재고가 빠진 경우
			return nil, ErrInsufficientStock
		}
		return nil, err
	}

	ordersPlaced.Inc()
	pkglogger.GetLogger().Info().
		Str("order_number", order.OrderNumber).
		Float64("total", order.Total).
		Int("lines", len(order.Items)).
		Msg("order placed")
	return order, nil
}

// shippingFee 매장 픽업은 무료, 무료배송 기준 이상도 무료
func (s *orderService) shippingFee(subtotal float64, pickup bool) float64 {
	if pickup {
		return 0
	}
	threshold := s.settings.Number("free_shipping_threshold", defaultFreeShippingThreshold)
	if threshold > 0 && subtotal >= threshold {
		return 0
	}
	return s.settings.Number("shipping_fee", defaultShippingFee)
}

// newOrderNumber PC20261019-1A2B3C4D 형식
func (s *orderService) newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "PC" + s.now().Format("20060102") + "-" + suffix
}

// LookupOrder 주문번호 + 이메일이 모두 맞아야 조회된다
func (s *orderService) LookupOrder(orderNumber, email string) (*domain.Order, error) {
	order, err := s.repo.FindByOrderNumber(strings.TrimSpace(orderNumber))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !strings.EqualFold(order.CustomerEmail, strings.TrimSpace(email)) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(req *domain.OrderListRequest) ([]*domain.Order, *common.Meta, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 || req.PerPage > 100 {
		req.PerPage = 20
	}
	orders, total, err := s.repo.List(req)
	if err != nil {
		return nil, nil, err
	}
	return orders, common.NewMeta(req.Page, req.PerPage, total), nil
}

func (s *orderService) GetOrder(id int64) (*domain.Order, error) {
	order, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// UpdateStatus 관리자 상태 변경. 취소/환불 시 재고 복구.
func (s *orderService) UpdateStatus(id int64, req *domain.UpdateOrderStatusRequest) (*domain.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	prev := order.Status
	next := domain.OrderStatus(req.Status)
	if !prev.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	if req.ShippingCarrier != "" {
		order.ShippingCarrier = req.ShippingCarrier
	}
	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}
	if req.AdminMemo != "" {
		order.AdminMemo = req.AdminMemo
	}
	if next == domain.OrderStatusShipped && order.PickupShopID == nil && order.TrackingNumber == "" {
		return nil, ErrTrackingRequired
	}

	now := s.now()
	switch next {
	case domain.OrderStatusPaid:
		order.PaidAt = &now
	case domain.OrderStatusShipped:
		order.ShippedAt = &now
	case domain.OrderStatusCompleted:
		order.CompletedAt = &now
	case domain.OrderStatusCancelled:
		order.CancelledAt = &now
	}
	order.Status = next

	if err := s.repo.UpdateStatus(order, prev, next.RestoresStock()); err != nil {
		if errors.Is(err, repository.ErrOrderStatusChanged) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}
		return nil, err
	}

	pkglogger.GetLogger().Info().
		Str("order_number", order.OrderNumber).
		Str("status", string(next)).
		Msg("order status changed")
	return order, nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
