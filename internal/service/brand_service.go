package service

import (
	"errors"
	"strings"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	"gorm.io/gorm"
)

// ErrBrandNotFound 브랜드 없음
var ErrBrandNotFound = errors.New("brand not found")

// BrandService 브랜드 서비스 인터페이스
type BrandService interface {
	List(includeInactive bool) ([]*domain.Brand, error)
	GetBySlug(slug string) (*domain.Brand, error)
	Create(req *domain.CreateBrandRequest) (*domain.Brand, error)
	Update(id int64, req *domain.UpdateBrandRequest) (*domain.Brand, error)
	Delete(id int64) error
}

type brandService struct {
	repo repository.BrandRepository
}

// NewBrandService 생성자
func NewBrandService(repo repository.BrandRepository) BrandService {
	return &brandService{repo: repo}
}

func (s *brandService) List(includeInactive bool) ([]*domain.Brand, error) {
	return s.repo.List(includeInactive)
}

// GetBySlug 공개 조회 (비활성 브랜드는 없는 것으로 취급)
func (s *brandService) GetBySlug(slug string) (*domain.Brand, error) {
	brand, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	if !brand.IsActive {
		return nil, ErrBrandNotFound
	}
	return brand, nil
}

func (s *brandService) Create(req *domain.CreateBrandRequest) (*domain.Brand, error) {
	slug, err := resolveSlug(req.Slug, req.Name, 0, s.repo.IsSlugAvailable)
	if err != nil {
		return nil, err
	}

	brand := &domain.Brand{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		LogoURL:     req.LogoURL,
		Website:     req.Website,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *brandService) Update(id int64, req *domain.UpdateBrandRequest) (*domain.Brand, error) {
	brand, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		brand.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil && *req.Slug != brand.Slug {
		slug, err := resolveSlug(*req.Slug, brand.Name, id, s.repo.IsSlugAvailable)
		if err != nil {
			return nil, err
		}
		brand.Slug = slug
	}
	if req.LogoURL != nil {
		brand.LogoURL = *req.LogoURL
	}
	if req.Website != nil {
		brand.Website = *req.Website
	}
	if req.Description != nil {
		brand.Description = *req.Description
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}

	if err := s.repo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *brandService) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBrandNotFound
		}
		return err
	}
	return nil
}
