package service

import (
	"errors"
	"strings"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	"gorm.io/gorm"
)

// ErrShopNotFound 매장 없음
var ErrShopNotFound = errors.New("shop not found")

// ShopService 매장 서비스 인터페이스
type ShopService interface {
	List(includeInactive bool, city string) ([]*domain.Shop, error)
	GetBySlug(slug string) (*domain.Shop, error)
	GetActiveByID(id int64) (*domain.Shop, error)
	Create(req *domain.CreateShopRequest) (*domain.Shop, error)
	Update(id int64, req *domain.UpdateShopRequest) (*domain.Shop, error)
	Delete(id int64) error
}

type shopService struct {
	repo repository.ShopRepository
}

// NewShopService 생성자
func NewShopService(repo repository.ShopRepository) ShopService {
	return &shopService{repo: repo}
}

func (s *shopService) List(includeInactive bool, city string) ([]*domain.Shop, error) {
	return s.repo.List(includeInactive, strings.TrimSpace(city))
}

func (s *shopService) GetBySlug(slug string) (*domain.Shop, error) {
	shop, err := s.repo.FindBySlug(slug)
	return activeShop(shop, err)
}

// GetActiveByID 매장 픽업 주문 검증용
func (s *shopService) GetActiveByID(id int64) (*domain.Shop, error) {
	shop, err := s.repo.FindByID(id)
	return activeShop(shop, err)
}

func activeShop(shop *domain.Shop, err error) (*domain.Shop, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	if !shop.IsActive {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

func (s *shopService) Create(req *domain.CreateShopRequest) (*domain.Shop, error) {
	slug, err := resolveSlug(req.Slug, req.Name, 0, s.repo.IsSlugAvailable)
	if err != nil {
		return nil, err
	}

	shop := &domain.Shop{
		Name:         strings.TrimSpace(req.Name),
		Slug:         slug,
		Address:      req.Address,
		City:         strings.TrimSpace(req.City),
		Phone:        req.Phone,
		Email:        req.Email,
		OpeningHours: req.OpeningHours,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ImageURL:     req.ImageURL,
		SortOrder:    req.SortOrder,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *shopService) Update(id int64, req *domain.UpdateShopRequest) (*domain.Shop, error) {
	shop, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil && *req.Slug != shop.Slug {
		slug, err := resolveSlug(*req.Slug, shop.Name, id, s.repo.IsSlugAvailable)
		if err != nil {
			return nil, err
		}
		shop.Slug = slug
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.City != nil {
		shop.City = strings.TrimSpace(*req.City)
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Email != nil {
		shop.Email = *req.Email
	}
	if req.OpeningHours != nil {
		shop.OpeningHours = *req.OpeningHours
	}
	if req.Latitude != nil {
		shop.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		shop.Longitude = req.Longitude
	}
	if req.ImageURL != nil {
		shop.ImageURL = *req.ImageURL
	}
	if req.SortOrder != nil {
		shop.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		shop.IsActive = *req.IsActive
	}

	if err := s.repo.Update(shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *shopService) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShopNotFound
		}
		return err
	}
	return nil
}
