package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	es "github.com/damoang/pcmall-backend/pkg/elasticsearch"
	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"github.com/damoang/pcmall-backend/pkg/sanitize"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product 에러 정의
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSKUAlreadyExists  = errors.New("sku already exists")
	ErrProductCategory   = errors.New("category not found")
	ErrProductBrand      = errors.New("brand not found")
	ErrInvalidPriceRange = errors.New("min_price must not exceed max_price")
)

// ProductSearcher 전문 검색 백엔드 (Elasticsearch)
type ProductSearcher interface {
	Index(ctx context.Context, doc es.ProductDocument) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, q es.ProductQuery) ([]int64, int64, error)
}

// ProductService 상품 서비스 인터페이스
type ProductService interface {
	// 공개용
	ListPublished(ctx context.Context, req *domain.ProductListRequest) ([]*domain.ProductResponse, *common.Meta, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.ProductResponse, error)

	// 관리자용
	ListAll(ctx context.Context, req *domain.ProductListRequest) ([]*domain.ProductResponse, *common.Meta, error)
	GetByID(id int64) (*domain.ProductResponse, error)
	Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.ProductResponse, error)
	Update(ctx context.Context, id int64, req *domain.UpdateProductRequest) (*domain.ProductResponse, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	search     ProductSearcher
	sanitizer  *sanitize.Sanitizer
}

// NewProductService 생성자. search 가 nil 이면 SQL LIKE 검색만 사용.
func NewProductService(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	search ProductSearcher,
) ProductService {
	return &productService{
		repo:       repo,
		categories: categories,
		brands:     brands,
		search:     search,
		sanitizer:  sanitize.New(),
	}
}

// ListPublished 공개 상품 목록
func (s *productService) ListPublished(ctx context.Context, req *domain.ProductListRequest) ([]*domain.ProductResponse, *common.Meta, error) {
	req.IncludeUnpublished = false
	req.Status = ""
	return s.list(ctx, req)
}

// ListAll 관리자 목록 (draft/archived 포함, status 필터 가능)
func (s *productService) ListAll(ctx context.Context, req *domain.ProductListRequest) ([]*domain.ProductResponse, *common.Meta, error) {
	req.IncludeUnpublished = true
	return s.list(ctx, req)
}

func (s *productService) list(ctx context.Context, req *domain.ProductListRequest) ([]*domain.ProductResponse, *common.Meta, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 || req.PerPage > 100 {
		req.PerPage = 20
	}
	req.Search = strings.TrimSpace(req.Search)
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, nil, ErrInvalidPriceRange
	}

	var slugs []string
	if req.CategorySlug != "" {
		all, err := s.categories.List(req.IncludeUnpublished)
		if err != nil {
			return nil, nil, err
		}
		var root *domain.Category
		for _, c := range all {
			if c.Slug == req.CategorySlug {
				root = c
				break
			}
		}
		if root == nil {
			// 없는 카테고리는 빈 결과
			return []*domain.ProductResponse{}, common.NewMeta(req.Page, req.PerPage, 0), nil
		}
		req.CategoryIDs = descendantCategoryIDs(all, root.ID)
		slugs = categorySlugs(all, req.CategoryIDs)
	}

	// 텍스트 검색은 검색엔진 우선 (공개 목록만, 관련도 순)
	if req.Search != "" && s.search != nil && !req.IncludeUnpublished && req.Sort == "" {
		products, total, err := s.searchIndex(ctx, req, slugs)
		if err == nil {
			return toProductResponses(products), common.NewMeta(req.Page, req.PerPage, total), nil
		}
		searchFallbacks.Inc()
		pkglogger.GetLogger().Warn().Err(err).Str("query", req.Search).Msg("product search failed, falling back to SQL")
	}

	products, total, err := s.repo.List(req)
	if err != nil {
		return nil, nil, err
	}
	return toProductResponses(products), common.NewMeta(req.Page, req.PerPage, total), nil
}

// searchIndex asks the index for one page of IDs and loads them in relevance order
func (s *productService) searchIndex(ctx context.Context, req *domain.ProductListRequest, categorySlugs []string) ([]*domain.Product, int64, error) {
	ids, total, err := s.search.Search(ctx, es.ProductQuery{
		Text:          req.Search,
		CategorySlugs: categorySlugs,
		BrandSlug:     req.BrandSlug,
		MinPrice:      req.MinPrice,
		MaxPrice:      req.MaxPrice,
		From:          (req.Page - 1) * req.PerPage,
		Size:          req.PerPage,
	})
	if err != nil {
		return nil, 0, err
	}

	found, err := s.repo.FindByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]*domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	// 인덱스가 DB 보다 늦을 수 있으므로 비공개/삭제된 상품은 건너뜀
	ordered := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok && p.Status == domain.ProductStatusPublished {
			ordered = append(ordered, p)
		}
	}
	return ordered, total, nil
}

// GetPublishedBySlug 공개 상품 상세, 조회수 증가
func (s *productService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.ProductResponse, error) {
	product, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.Status != domain.ProductStatusPublished {
		return nil, ErrProductNotFound
	}

	if err := s.repo.IncrementViewCount(product.ID); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Int64("product_id", product.ID).Msg("view count update failed")
	} else {
		product.ViewCount++
	}
	return product.ToResponse(), nil
}

func (s *productService) GetByID(id int64) (*domain.ProductResponse, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product.ToResponse(), nil
}

// Create 상품 생성
func (s *productService) Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.ProductResponse, error) {
	if err := s.checkRefs(req.CategoryID, req.BrandID); err != nil {
		return nil, err
	}

	name := s.sanitizer.Text(req.Name)
	slug, err := resolveSlug(req.Slug, name, 0, s.repo.IsSlugAvailable)
	if err != nil {
		return nil, err
	}

	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	ok, err := s.repo.IsSKUAvailable(sku, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSKUAlreadyExists
	}

	images, err := encodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	status := domain.ProductStatus(req.Status)
	if status == "" {
		status = domain.ProductStatusDraft
	}

	product := &domain.Product{
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Name:          name,
		Slug:          slug,
		SKU:           sku,
		Summary:       s.sanitizer.Text(req.Summary),
		Description:   s.sanitizer.HTML(req.Description),
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
		Status:        status,
		Specs:         req.Specs,
		Images:        images,
		IsFeatured:    req.IsFeatured,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	return s.reloadAndIndex(ctx, product.ID)
}

// Update 상품 수정
func (s *productService) Update(ctx context.Context, id int64, req *domain.UpdateProductRequest) (*domain.ProductResponse, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			product.CategoryID = nil
		} else {
			if err := s.checkRefs(req.CategoryID, nil); err != nil {
				return nil, err
			}
			categoryID := *req.CategoryID
			product.CategoryID = &categoryID
		}
		product.Category = nil
	}
	if req.BrandID != nil {
		if *req.BrandID == 0 {
			product.BrandID = nil
		} else {
			if err := s.checkRefs(nil, req.BrandID); err != nil {
				return nil, err
			}
			brandID := *req.BrandID
			product.BrandID = &brandID
		}
		product.Brand = nil
	}
	if req.Name != nil {
		product.Name = s.sanitizer.Text(*req.Name)
	}
	if req.Slug != nil && *req.Slug != product.Slug {
		slug, err := resolveSlug(*req.Slug, product.Name, id, s.repo.IsSlugAvailable)
		if err != nil {
			return nil, err
		}
		product.Slug = slug
	}
	if req.SKU != nil {
		sku := strings.ToUpper(strings.TrimSpace(*req.SKU))
		if sku != product.SKU {
			ok, err := s.repo.IsSKUAvailable(sku, id)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrSKUAlreadyExists
			}
			product.SKU = sku
		}
	}
	if req.Summary != nil {
		product.Summary = s.sanitizer.Text(*req.Summary)
	}
	if req.Description != nil {
		product.Description = s.sanitizer.HTML(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = req.OriginalPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Status != nil {
		product.Status = domain.ProductStatus(*req.Status)
	}
	if req.Specs != nil {
		product.Specs = *req.Specs
	}
	if req.Images != nil {
		images, err := encodeImages(*req.Images)
		if err != nil {
			return nil, err
		}
		product.Images = images
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	return s.reloadAndIndex(ctx, id)
}

// Delete 상품 삭제 (soft delete) 후 검색 인덱스에서 제거
func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if s.search != nil {
		if err := s.search.Remove(ctx, id); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Int64("product_id", id).Msg("search index removal failed")
		}
	}
	return nil
}

func (s *productService) checkRefs(categoryID, brandID *int64) error {
	if categoryID != nil {
		if _, err := s.categories.FindByID(*categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductCategory
			}
			return err
		}
	}
	if brandID != nil {
		if _, err := s.brands.FindByID(*brandID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductBrand
			}
			return err
		}
	}
	return nil
}

// reloadAndIndex reloads the product with its relations and pushes it to the
// search index. Index failures are logged; the database stays the source of truth.
func (s *productService) reloadAndIndex(ctx context.Context, id int64) (*domain.ProductResponse, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.Index(ctx, productDocument(product)); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Int64("product_id", id).Msg("search indexing failed")
		}
	}
	return product.ToResponse(), nil
}

func productDocument(p *domain.Product) es.ProductDocument {
	doc := es.ProductDocument{
		ID:      p.ID,
		Name:    p.Name,
		Slug:    p.Slug,
		SKU:     p.SKU,
		Summary: p.Summary,
		Price:   p.Price,
		Status:  string(p.Status),
	}
	if p.Category != nil {
		doc.CategorySlug = p.Category.Slug
	}
	if p.Brand != nil {
		doc.BrandSlug = p.Brand.Slug
	}
	return doc
}

func encodeImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		return nil, nil
	}
	cleaned := make([]string, 0, len(images))
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" {
			continue
		}
		if err := common.ValidateCustomURL(img); err != nil {
			return nil, err
		}
		cleaned = append(cleaned, img)
	}
	data, err := json.Marshal(cleaned)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func toProductResponses(products []*domain.Product) []*domain.ProductResponse {
	out := make([]*domain.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, p.ToResponse())
	}
	return out
}
