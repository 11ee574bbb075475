package service

import (
	"context"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	pkgcache "github.com/damoang/pcmall-backend/pkg/cache"
	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
)

// 고정 슬롯. 카테고리 slug 는 시드 데이터와 맞춘다.
var pcBuilderSlots = []domain.PCBuilderSlot{
	{Key: "cpu", Label: "CPU", CategorySlug: "cpu", Required: true},
	{Key: "motherboard", Label: "Motherboard", CategorySlug: "motherboards", Required: true},
	{Key: "memory", Label: "Memory", CategorySlug: "memory", Required: true},
	{Key: "gpu", Label: "Graphics Card", CategorySlug: "graphics-cards"},
	{Key: "storage", Label: "Storage", CategorySlug: "storage", Required: true},
	{Key: "psu", Label: "Power Supply", CategorySlug: "power-supplies", Required: true},
	{Key: "case", Label: "Case", CategorySlug: "cases", Required: true},
	{Key: "cooler", Label: "CPU Cooler", CategorySlug: "cooling"},
}

// PCBuilderService PC 견적 (placeholder)
type PCBuilderService interface {
	GetSlots(ctx context.Context) (*domain.PCBuilderResponse, error)
}

type pcBuilderService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cache      pkgcache.Service
}

// NewPCBuilderService creates a new PCBuilderService
func NewPCBuilderService(categories repository.CategoryRepository, products repository.ProductRepository, cache pkgcache.Service) PCBuilderService {
	if cache == nil {
		cache = pkgcache.NewService(nil)
	}
	return &pcBuilderService{categories: categories, products: products, cache: cache}
}

// GetSlots returns every slot with the number of published products in its
// category subtree. A slot whose category is missing or inactive reports zero.
func (s *pcBuilderService) GetSlots(ctx context.Context) (*domain.PCBuilderResponse, error) {
	var cached domain.PCBuilderResponse
	if err := s.cache.Get(ctx, pkgcache.KeyPCBuilder, &cached); cacheHit(s.cache, "pcbuilder", err) {
		return &cached, nil
	}

	categories, err := s.categories.List(false)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]int64, len(categories))
	for _, c := range categories {
		bySlug[c.Slug] = c.ID
	}

	slots := make([]domain.PCBuilderSlot, 0, len(pcBuilderSlots))
	for _, slot := range pcBuilderSlots {
		if id, ok := bySlug[slot.CategorySlug]; ok {
			count, err := s.products.CountPublishedByCategory(descendantCategoryIDs(categories, id))
			if err != nil {
				return nil, err
			}
			slot.ProductCount = count
			slot.Available = count > 0
		}
		slots = append(slots, slot)
	}

	resp := &domain.PCBuilderResponse{
		Status:  domain.PCBuilderComingSoon,
		Message: "PC builder is coming soon",
		Slots:   slots,
	}
	if err := s.cache.Set(ctx, pkgcache.KeyPCBuilder, resp, pkgcache.TTLBuilder); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("pc builder cache write failed")
	}
	return resp, nil
}
