package repository

import (
	"github.com/damoang/pcmall-backend/internal/domain"
	"gorm.io/gorm"
)

// BrandRepository 브랜드 저장소 인터페이스
type BrandRepository interface {
	List(includeInactive bool) ([]*domain.Brand, error)
	FindByID(id int64) (*domain.Brand, error)
	FindBySlug(slug string) (*domain.Brand, error)
	Create(brand *domain.Brand) error
	Update(brand *domain.Brand) error
	Delete(id int64) error
	IsSlugAvailable(slug string, excludeID int64) (bool, error)
}

type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 생성자
func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) List(includeInactive bool) ([]*domain.Brand, error) {
	var brands []*domain.Brand
	query := r.db.Order("name ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) FindByID(id int64) (*domain.Brand, error) {
	var brand domain.Brand
	if err := r.db.Where("id = ?", id).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) FindBySlug(slug string) (*domain.Brand, error) {
	var brand domain.Brand
	if err := r.db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) Create(brand *domain.Brand) error {
	slug, err := ensureUniqueSlug(r.db, &domain.Brand{}, brand.Slug, 0)
	if err != nil {
		return err
	}
	brand.Slug = slug
	return r.db.Create(brand).Error
}

func (r *brandRepository) Update(brand *domain.Brand) error {
	return r.db.Save(brand).Error
}

// Delete 브랜드 삭제, 연결된 상품은 brand_id 해제
func (r *brandRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Product{}).
			Where("brand_id = ?", id).
			Update("brand_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Brand{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *brandRepository) IsSlugAvailable(slug string, excludeID int64) (bool, error) {
	return isSlugAvailable(r.db, &domain.Brand{}, slug, excludeID)
}
