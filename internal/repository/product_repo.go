package repository

import (
	"time"

	"github.com/damoang/pcmall-backend/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository 상품 저장소 인터페이스
type ProductRepository interface {
	// 생성/수정/삭제
	Create(product *domain.Product) error
	Update(product *domain.Product) error
	Delete(id int64) error

	// 조회
	FindByID(id int64) (*domain.Product, error)
	FindBySlug(slug string) (*domain.Product, error)
	FindByIDs(ids []int64) ([]*domain.Product, error)

	// 목록 조회
	List(req *domain.ProductListRequest) ([]*domain.Product, int64, error)

	// 통계
	IncrementViewCount(id int64) error
	CountPublishedByCategory(categoryIDs []int64) (int64, error)

	// 유효성
	IsSlugAvailable(slug string, excludeID int64) (bool, error)
	IsSKUAvailable(sku string, excludeID int64) (bool, error)
}

// productRepository GORM 구현체
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 생성자
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create 상품 생성
func (r *productRepository) Create(product *domain.Product) error {
	slug, err := ensureUniqueSlug(r.db.Unscoped(), &domain.Product{}, product.Slug, 0)
	if err != nil {
		return err
	}
	product.Slug = slug

	// 발행 시 published_at 설정
	if product.Status == domain.ProductStatusPublished && product.PublishedAt == nil {
		now := time.Now()
		product.PublishedAt = &now
	}

	return r.db.Omit("Category", "Brand").Create(product).Error
}

// Update 상품 수정 (전체 저장)
func (r *productRepository) Update(product *domain.Product) error {
	if product.Status == domain.ProductStatusPublished && product.PublishedAt == nil {
		now := time.Now()
		product.PublishedAt = &now
	}
	return r.db.Omit("Category", "Brand").Save(product).Error
}

// Delete 상품 삭제 (소프트 삭제)
func (r *productRepository) Delete(id int64) error {
	result := r.db.Delete(&domain.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID ID로 상품 조회 (카테고리/브랜드 포함)
func (r *productRepository) FindByID(id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Preload("Category").Preload("Brand").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug 슬러그로 상품 조회
func (r *productRepository) FindBySlug(slug string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Preload("Category").Preload("Brand").
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs 여러 상품 조회. 순서는 보장하지 않는다.
func (r *productRepository) FindByIDs(ids []int64) ([]*domain.Product, error) {
	var products []*domain.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.Preload("Category").Preload("Brand").
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// List 필터/정렬/페이지네이션 목록
func (r *productRepository) List(req *domain.ProductListRequest) ([]*domain.Product, int64, error) {
	var products []*domain.Product
	var total int64

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := r.db.Model(&domain.Product{})

	// 상태 필터
	if !req.IncludeUnpublished {
		query = query.Where("status = ?", domain.ProductStatusPublished)
	} else if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if len(req.IDs) > 0 {
		query = query.Where("id IN ?", req.IDs)
	}
	if len(req.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", req.CategoryIDs)
	}
	if req.BrandSlug != "" {
		query = query.Where("brand_id IN (?)",
			r.db.Model(&domain.Brand{}).Select("id").Where("slug = ?", req.BrandSlug))
	}

	// 가격 범위
	if req.MinPrice != nil {
		query = query.Where("price >= ?", *req.MinPrice)
	}
	if req.MaxPrice != nil {
		query = query.Where("price <= ?", *req.MaxPrice)
	}

	// 검색
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("(name LIKE ? OR sku LIKE ? OR summary LIKE ?)", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	err := query.Preload("Category").Preload("Brand").
		Order(productOrder(req.Sort)).
		Offset(offset).Limit(perPage).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// productOrder maps the sort option to a fixed ORDER BY; unknown values sort newest first
func productOrder(sort string) string {
	switch sort {
	case "price_asc":
		return "price ASC, id ASC"
	case "price_desc":
		return "price DESC, id DESC"
	case "name":
		return "name ASC, id ASC"
	case "popular":
		return "view_count DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// IncrementViewCount 조회수 증가
func (r *productRepository) IncrementViewCount(id int64) error {
	return r.db.Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).
		Error
}

// CountPublishedByCategory 주어진 카테고리들에 속한 공개 상품 수
func (r *productRepository) CountPublishedByCategory(categoryIDs []int64) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&domain.Product{}).
		Where("status = ? AND category_id IN ?", domain.ProductStatusPublished, categoryIDs).
		Count(&count).Error
	return count, err
}

// IsSlugAvailable 슬러그 사용 가능 여부 (soft delete 된 상품 포함)
func (r *productRepository) IsSlugAvailable(slug string, excludeID int64) (bool, error) {
	return isSlugAvailable(r.db.Unscoped(), &domain.Product{}, slug, excludeID)
}

// IsSKUAvailable SKU 사용 가능 여부 (soft delete 된 상품 포함)
func (r *productRepository) IsSKUAvailable(sku string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.Unscoped().Model(&domain.Product{}).Where("sku = ?", sku)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
