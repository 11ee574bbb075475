package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductStatus 상품 상태
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusArchived  ProductStatus = "archived"
)

// StockStatus 재고 상태 (stock 에서 계산)
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// LowStockThreshold 이하이면 low_stock
const LowStockThreshold = 5

// Product 상품 엔티티
// Table: products
type Product struct {
	ID            int64          `gorm:"column:id;primaryKey" json:"id"`
	CategoryID    *int64         `gorm:"column:category_id;index" json:"category_id"`
	BrandID       *int64         `gorm:"column:brand_id;index" json:"brand_id"`
	Name          string         `gorm:"column:name;size:255;not null" json:"name"`
	Slug          string         `gorm:"column:slug;size:255;uniqueIndex" json:"slug"`
	SKU           string         `gorm:"column:sku;size:64;uniqueIndex" json:"sku"`
	Summary       string         `gorm:"column:summary;size:500" json:"summary"`
	Description   string         `gorm:"column:description;type:text" json:"description"`
	Price         float64        `gorm:"column:price;type:decimal(12,2);not null;default:0" json:"price"`
	OriginalPrice *float64       `gorm:"column:original_price;type:decimal(12,2)" json:"original_price,omitempty"`
	Stock         int            `gorm:"column:stock;not null;default:0" json:"stock"`
	Status        ProductStatus  `gorm:"column:status;size:20;not null;default:'draft';index" json:"status"`
	Specs         datatypes.JSON `gorm:"column:specs" json:"specs,omitempty"`
	Images        datatypes.JSON `gorm:"column:images" json:"images,omitempty"`
	IsFeatured    bool           `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	ViewCount     uint           `gorm:"column:view_count;default:0" json:"view_count"`
	PublishedAt   *time.Time     `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"-"`
}

// TableName GORM 테이블명
func (Product) TableName() string {
	return "products"
}

// StockStatus derives the stock badge from the stock count
func (p *Product) StockStatus() StockStatus {
	switch {
	case p.Stock <= 0:
		return StockStatusOutOfStock
	case p.Stock <= LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// ProductRef 카테고리/브랜드 요약
type ProductRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductResponse 상품 응답 DTO
type ProductResponse struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	SKU           string         `json:"sku"`
	Summary       string         `json:"summary,omitempty"`
	Description   string         `json:"description,omitempty"`
	Price         float64        `json:"price"`
	OriginalPrice *float64       `json:"original_price,omitempty"`
	Stock         int            `json:"stock"`
	StockStatus   string         `json:"stock_status"`
	Status        string         `json:"status"`
	Category      *ProductRef    `json:"category,omitempty"`
	Brand         *ProductRef    `json:"brand,omitempty"`
	Specs         datatypes.JSON `json:"specs,omitempty" swaggertype:"object"`
	Images        datatypes.JSON `json:"images,omitempty" swaggertype:"array,string"`
	IsFeatured    bool           `json:"is_featured"`
	ViewCount     uint           `json:"view_count"`
	PublishedAt   *time.Time     `json:"published_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ToResponse Product를 ProductResponse로 변환
func (p *Product) ToResponse() *ProductResponse {
	resp := &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		SKU:           p.SKU,
		Summary:       p.Summary,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Stock:         p.Stock,
		StockStatus:   string(p.StockStatus()),
		Status:        string(p.Status),
		Specs:         p.Specs,
		Images:        p.Images,
		IsFeatured:    p.IsFeatured,
		ViewCount:     p.ViewCount,
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Category != nil {
		resp.Category = &ProductRef{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug}
	}
	if p.Brand != nil {
		resp.Brand = &ProductRef{ID: p.Brand.ID, Name: p.Brand.Name, Slug: p.Brand.Slug}
	}
	return resp
}

// CreateProductRequest 상품 생성 요청 DTO
type CreateProductRequest struct {
	CategoryID    *int64         `json:"category_id"`
	BrandID       *int64         `json:"brand_id"`
	Name          string         `json:"name" binding:"required,min=1,max=255"`
	Slug          string         `json:"slug" binding:"omitempty,max=255"`
	SKU           string         `json:"sku" binding:"required,max=64"`
	Summary       string         `json:"summary" binding:"omitempty,max=500"`
	Description   string         `json:"description"`
	Price         float64        `json:"price" binding:"gte=0"`
	OriginalPrice *float64       `json:"original_price" binding:"omitempty,gte=0"`
	Stock         int            `json:"stock" binding:"gte=0"`
	Status        string         `json:"status" binding:"omitempty,oneof=draft published archived"`
	Specs         datatypes.JSON `json:"specs" swaggertype:"object"`
	Images        []string       `json:"images" binding:"omitempty,dive,max=500"`
	IsFeatured    bool           `json:"is_featured"`
}

// UpdateProductRequest 상품 수정 요청 DTO. category_id/brand_id 0 은 연결 해제.
type UpdateProductRequest struct {
	CategoryID    *int64          `json:"category_id"`
	BrandID       *int64          `json:"brand_id"`
	Name          *string         `json:"name" binding:"omitempty,min=1,max=255"`
	Slug          *string         `json:"slug" binding:"omitempty,max=255"`
	SKU           *string         `json:"sku" binding:"omitempty,max=64"`
	Summary       *string         `json:"summary" binding:"omitempty,max=500"`
	Description   *string         `json:"description"`
	Price         *float64        `json:"price" binding:"omitempty,gte=0"`
	OriginalPrice *float64        `json:"original_price" binding:"omitempty,gte=0"`
	Stock         *int            `json:"stock" binding:"omitempty,gte=0"`
	Status        *string         `json:"status" binding:"omitempty,oneof=draft published archived"`
	Specs         *datatypes.JSON `json:"specs" swaggertype:"object"`
	Images        *[]string       `json:"images" binding:"omitempty,dive,max=500"`
	IsFeatured    *bool           `json:"is_featured"`
}

// ProductListRequest 상품 목록 조회 조건
type ProductListRequest struct {
	Page         int      `form:"page"`
	PerPage      int      `form:"per_page"`
	CategorySlug string   `form:"category"`
	BrandSlug    string   `form:"brand"`
	Search       string   `form:"q" binding:"omitempty,max=100"`
	MinPrice     *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice     *float64 `form:"max_price" binding:"omitempty,gte=0"`
	Status       string   `form:"status" binding:"omitempty,oneof=draft published archived"`
	Sort         string   `form:"sort" binding:"omitempty,oneof=newest price_asc price_desc name popular"`

	// 내부용: 카테고리 slug 를 하위 카테고리까지 펼친 ID 목록
	CategoryIDs []int64 `form:"-"`
	// 내부용: 검색엔진이 찾은 ID (순서 유지)
	IDs []int64 `form:"-"`
	// 내부용: false 면 published 만
	IncludeUnpublished bool `form:"-"`
}
