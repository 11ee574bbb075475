package repository

import (
	"errors"
	"testing"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(number string, items ...domain.OrderItem) *domain.Order {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Subtotal
	}
	return &domain.Order{
		OrderNumber:   number,
		CustomerName:  "Kim",
		CustomerEmail: "kim@example.com",
		Subtotal:      subtotal,
		Total:         subtotal,
		Currency:      "KRW",
		Status:        domain.OrderStatusPending,
		Items:         items,
	}
}

func TestOrderRepository_CreateWithStock(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	repo := NewOrderRepository(db)

	cpu := seedProduct(t, products, domain.Product{Name: "CPU", Slug: "cpu", SKU: "CPU", Price: 100, Stock: 3})
	ram := seedProduct(t, products, domain.Product{Name: "RAM", Slug: "ram", SKU: "RAM", Price: 50, Stock: 1})

	order := newTestOrder("PC-1",
		domain.OrderItem{ProductID: cpu.ID, ProductName: "CPU", Price: 100, Quantity: 2, Subtotal: 200},
		domain.OrderItem{ProductID: ram.ID, ProductName: "RAM", Price: 50, Quantity: 1, Subtotal: 50},
	)
	require.NoError(t, repo.CreateWithStock(order))
	assert.NotZero(t, order.ID)

	got, err := products.FindByID(cpu.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	stored, err := repo.FindByOrderNumber("PC-1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
}

func TestOrderRepository_CreateWithStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	repo := NewOrderRepository(db)

	cpu := seedProduct(t, products, domain.Product{Name: "CPU", Slug: "cpu", SKU: "CPU", Price: 100, Stock: 5})
	gpu := seedProduct(t, products, domain.Product{Name: "GPU", Slug: "gpu", SKU: "GPU", Price: 500, Stock: 1})

	order := newTestOrder("PC-2",
		domain.OrderItem{ProductID: cpu.ID, ProductName: "CPU", Price: 100, Quantity: 1, Subtotal: 100},
		domain.OrderItem{ProductID: gpu.ID, ProductName: "GPU", Price: 500, Quantity: 2, Subtotal: 1000},
	)
	err := repo.CreateWithStock(order)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientStock))

	got, err := products.FindByID(cpu.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock, "first decrement must be rolled back")

	_, err = repo.FindByOrderNumber("PC-2")
	assert.Error(t, err)
}

func TestOrderRepository_UpdateStatusRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	repo := NewOrderRepository(db)

	cpu := seedProduct(t, products, domain.Product{Name: "CPU", Slug: "cpu", SKU: "CPU", Price: 100, Stock: 4})
	order := newTestOrder("PC-3",
		domain.OrderItem{ProductID: cpu.ID, ProductName: "CPU", Price: 100, Quantity: 3, Subtotal: 300},
	)
	require.NoError(t, repo.CreateWithStock(order))

	order.Status = domain.OrderStatusCancelled
	require.NoError(t, repo.UpdateStatus(order, domain.OrderStatusPending, true))

	got, err := products.FindByID(cpu.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stock)

	stored, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
}

func TestOrderRepository_UpdateStatusStaleRead(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	repo := NewOrderRepository(db)

	cpu := seedProduct(t, products, domain.Product{Name: "CPU", Slug: "cpu", SKU: "CPU", Price: 100, Stock: 3})
	order := newTestOrder("PC-4",
		domain.OrderItem{ProductID: cpu.ID, ProductName: "CPU", Price: 100, Quantity: 2, Subtotal: 200},
	)
	require.NoError(t, repo.CreateWithStock(order))

	// 두 관리자가 같은 pending 주문을 읽음
	first, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(order.ID)
	require.NoError(t, err)

	first.Status = domain.OrderStatusCancelled
	require.NoError(t, repo.UpdateStatus(first, domain.OrderStatusPending, true))

	second.Status = domain.OrderStatusCancelled
	err = repo.UpdateStatus(second, domain.OrderStatusPending, true)
	assert.ErrorIs(t, err, ErrOrderStatusChanged)

	got, err := products.FindByID(cpu.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock, "stock restored once")
}

func TestOrderRepository_ListSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	products := NewProductRepository(db)
	cpu := seedProduct(t, products, domain.Product{Name: "CPU", Slug: "cpu", SKU: "CPU", Price: 100, Stock: 10})

	line := domain.OrderItem{ProductID: cpu.ID, ProductName: "CPU", Price: 100, Quantity: 1, Subtotal: 100}
	a := newTestOrder("PC-A", line)
	b := newTestOrder("PC-B", line)
	b.CustomerEmail = "lee@example.com"
	b.Status = domain.OrderStatusPaid
	require.NoError(t, repo.CreateWithStock(a))
	require.NoError(t, repo.CreateWithStock(b))

	got, total, err := repo.List(&domain.OrderListRequest{Search: "lee@"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "PC-B", got[0].OrderNumber)

	got, total, err = repo.List(&domain.OrderListRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "PC-A", got[0].OrderNumber)
}
