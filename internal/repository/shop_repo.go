package repository

import (
	"github.com/damoang/pcmall-backend/internal/domain"
	"gorm.io/gorm"
)

// ShopRepository 매장 저장소 인터페이스
type ShopRepository interface {
	List(includeInactive bool, city string) ([]*domain.Shop, error)
	FindByID(id int64) (*domain.Shop, error)
	FindBySlug(slug string) (*domain.Shop, error)
	Create(shop *domain.Shop) error
	Update(shop *domain.Shop) error
	Delete(id int64) error
	IsSlugAvailable(slug string, excludeID int64) (bool, error)
}

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository 생성자
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) List(includeInactive bool, city string) ([]*domain.Shop, error) {
	var shops []*domain.Shop
	query := r.db.Order("sort_order ASC, name ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if err := query.Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *shopRepository) FindByID(id int64) (*domain.Shop, error) {
	var shop domain.Shop
	if err := r.db.Where("id = ?", id).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) FindBySlug(slug string) (*domain.Shop, error) {
	var shop domain.Shop
	if err := r.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) Create(shop *domain.Shop) error {
	slug, err := ensureUniqueSlug(r.db, &domain.Shop{}, shop.Slug, 0)
	if err != nil {
		return err
	}
	shop.Slug = slug
	return r.db.Create(shop).Error
}

func (r *shopRepository) Update(shop *domain.Shop) error {
	return r.db.Save(shop).Error
}

func (r *shopRepository) Delete(id int64) error {
	result := r.db.Delete(&domain.Shop{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *shopRepository) IsSlugAvailable(slug string, excludeID int64) (bool, error) {
	return isSlugAvailable(r.db, &domain.Shop{}, slug, excludeID)
}
