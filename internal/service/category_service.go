package service

import (
	"context"
	"errors"
	"strings"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	pkgcache "github.com/damoang/pcmall-backend/pkg/cache"
	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"gorm.io/gorm"
)

// Category 에러 정의
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryParent   = errors.New("parent category not found")
	ErrCategoryCycle    = errors.New("category cannot be moved under itself or its descendants")
)

// CategoryService 카테고리 서비스 인터페이스
type CategoryService interface {
	// 공개용
	GetTree(ctx context.Context) ([]domain.CategoryResponse, error)
	GetBySlug(ctx context.Context, slug string) (*domain.CategoryResponse, error)

	// 관리자용
	ListAll() ([]domain.CategoryResponse, error)
	Create(ctx context.Context, req *domain.CreateCategoryRequest) (*domain.CategoryResponse, error)
	Update(ctx context.Context, id int64, req *domain.UpdateCategoryRequest) (*domain.CategoryResponse, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache pkgcache.Service
}

// NewCategoryService 생성자. cache 는 nil 가능.
func NewCategoryService(repo repository.CategoryRepository, cache pkgcache.Service) CategoryService {
	if cache == nil {
		cache = pkgcache.NewService(nil)
	}
	return &categoryService{repo: repo, cache: cache}
}

// GetTree 활성 카테고리 트리. product_count 는 하위 카테고리 상품까지 합산.
func (s *categoryService) GetTree(ctx context.Context) ([]domain.CategoryResponse, error) {
	var cached []domain.CategoryResponse
	if err := s.cache.Get(ctx, pkgcache.KeyCategories, &cached); cacheHit(s.cache, "category", err) {
		return cached, nil
	}

	categories, err := s.repo.List(false)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountPublishedProducts()
	if err != nil {
		return nil, err
	}

	tree := buildCategoryTree(categories, counts)
	if err := s.cache.Set(ctx, pkgcache.KeyCategories, tree, pkgcache.TTLCategory); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("category cache write failed")
	}
	return tree, nil
}

// GetBySlug 활성 카테고리 하나와 그 하위 트리
func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*domain.CategoryResponse, error) {
	tree, err := s.GetTree(ctx)
	if err != nil {
		return nil, err
	}
	if found := findCategory(tree, slug); found != nil {
		return found, nil
	}
	return nil, ErrCategoryNotFound
}

// ListAll 관리자용 전체 트리 (비활성 포함)
func (s *categoryService) ListAll() ([]domain.CategoryResponse, error) {
	categories, err := s.repo.List(true)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountPublishedProducts()
	if err != nil {
		return nil, err
	}
	return buildCategoryTree(categories, counts), nil
}

func (s *categoryService) Create(ctx context.Context, req *domain.CreateCategoryRequest) (*domain.CategoryResponse, error) {
	if req.ParentID != nil {
		if _, err := s.repo.FindByID(*req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryParent
			}
			return nil, err
		}
	}

	slug, err := resolveSlug(req.Slug, req.Name, 0, s.repo.IsSlugAvailable)
	if err != nil {
		return nil, err
	}
	template, err := domain.EncodeSpecTemplate(req.SpecTemplate)
	if err != nil {
		return nil, err
	}

	category := &domain.Category{
		ParentID:     req.ParentID,
		Name:         strings.TrimSpace(req.Name),
		Slug:         slug,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		SpecTemplate: template,
		SortOrder:    req.SortOrder,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	resp := category.ToResponse()
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, req *domain.UpdateCategoryRequest) (*domain.CategoryResponse, error) {
	category, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if req.ParentID != nil {
		if *req.ParentID == 0 {
			category.ParentID = nil
		} else {
			if err := s.checkParent(id, *req.ParentID); err != nil {
				return nil, err
			}
			parentID := *req.ParentID
			category.ParentID = &parentID
		}
	}
	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil && *req.Slug != category.Slug {
		slug, err := resolveSlug(*req.Slug, category.Name, id, s.repo.IsSlugAvailable)
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}
	if req.SpecTemplate != nil {
		template, err := domain.EncodeSpecTemplate(*req.SpecTemplate)
		if err != nil {
			return nil, err
		}
		category.SpecTemplate = template
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	resp := category.ToResponse()
	return &resp, nil
}

// Delete 하위 카테고리는 한 단계 위로 올라간다
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if err := s.repo.Delete(category); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// checkParent parent 가 존재하고 id 의 하위가 아닌지 확인
func (s *categoryService) checkParent(id, parentID int64) error {
	if parentID == id {
		return ErrCategoryCycle
	}
	all, err := s.repo.List(true)
	if err != nil {
		return err
	}

	parents := make(map[int64]*int64, len(all))
	for _, c := range all {
		parents[c.ID] = c.ParentID
	}
	if _, ok := parents[parentID]; !ok {
		return ErrCategoryParent
	}

	seen := map[int64]bool{}
	for cur := &parentID; cur != nil && !seen[*cur]; cur = parents[*cur] {
		if *cur == id {
			return ErrCategoryCycle
		}
		seen[*cur] = true
	}
	return nil
}

func (s *categoryService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, pkgcache.KeyCategories, pkgcache.KeyPCBuilder); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("category cache invalidation failed")
	}
}

// buildCategoryTree nests categories under their parents. A category whose
// parent is missing (inactive or deleted) becomes a root; categories caught in
// a parent loop are left out.
func buildCategoryTree(categories []*domain.Category, counts map[int64]int64) []domain.CategoryResponse {
	byID := make(map[int64]*domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	children := make(map[int64][]*domain.Category)
	var roots []*domain.Category
	for _, c := range categories {
		if c.ParentID != nil {
			if _, ok := byID[*c.ParentID]; ok {
				children[*c.ParentID] = append(children[*c.ParentID], c)
				continue
			}
		}
		roots = append(roots, c)
	}

	visited := make(map[int64]bool, len(categories))
	var build func(c *domain.Category) domain.CategoryResponse
	build = func(c *domain.Category) domain.CategoryResponse {
		visited[c.ID] = true
		resp := c.ToResponse()
		resp.ProductCount = counts[c.ID]
		for _, child := range children[c.ID] {
			if visited[child.ID] {
				continue
			}
			node := build(child)
			resp.ProductCount += node.ProductCount
			resp.Children = append(resp.Children, node)
		}
		return resp
	}

	tree := make([]domain.CategoryResponse, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, build(r))
	}
	return tree
}

func findCategory(nodes []domain.CategoryResponse, slug string) *domain.CategoryResponse {
	for i := range nodes {
		if nodes[i].Slug == slug {
			return &nodes[i]
		}
		if found := findCategory(nodes[i].Children, slug); found != nil {
			return found
		}
	}
	return nil
}

// descendantCategoryIDs returns root and every category below it
func descendantCategoryIDs(categories []*domain.Category, rootID int64) []int64 {
	children := make(map[int64][]int64)
	for _, c := range categories {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := []int64{rootID}
	seen := map[int64]bool{rootID: true}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if !seen[child] {
				seen[child] = true
				ids = append(ids, child)
			}
		}
	}
	return ids
}

// categorySlugs maps ids to slugs, skipping unknown ids
func categorySlugs(categories []*domain.Category, ids []int64) []string {
	bySlug := make(map[int64]string, len(categories))
	for _, c := range categories {
		bySlug[c.ID] = c.Slug
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if s, ok := bySlug[id]; ok {
			out = append(out, s)
		}
	}
	return out
}
