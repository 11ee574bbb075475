package repository

import (
	"github.com/damoang/pcmall-backend/internal/domain"
	"gorm.io/gorm"
)

// CategoryRepository 카테고리 저장소 인터페이스
type CategoryRepository interface {
	List(includeInactive bool) ([]*domain.Category, error)
	FindByID(id int64) (*domain.Category, error)
	FindBySlug(slug string) (*domain.Category, error)
	Create(category *domain.Category) error
	Update(category *domain.Category) error
	Delete(category *domain.Category) error
	IsSlugAvailable(slug string, excludeID int64) (bool, error)
	CountPublishedProducts() (map[int64]int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 생성자
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(includeInactive bool) ([]*domain.Category, error) {
	var categories []*domain.Category
	query := r.db.Order("sort_order ASC, id ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(id int64) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Create 카테고리 생성 (슬러그 중복 시 접미사)
func (r *categoryRepository) Create(category *domain.Category) error {
	slug, err := ensureUniqueSlug(r.db, &domain.Category{}, category.Slug, 0)
	if err != nil {
		return err
	}
	category.Slug = slug
	return r.db.Create(category).Error
}

func (r *categoryRepository) Update(category *domain.Category) error {
	return r.db.Save(category).Error
}

// Delete 카테고리 삭제. 하위 카테고리는 삭제된 카테고리의 부모로 올라가고
// 상품은 미분류가 된다.
func (r *categoryRepository) Delete(category *domain.Category) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Category{}).
			Where("parent_id = ?", category.ID).
			Update("parent_id", category.ParentID).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Product{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Category{}, category.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *categoryRepository) IsSlugAvailable(slug string, excludeID int64) (bool, error) {
	return isSlugAvailable(r.db, &domain.Category{}, slug, excludeID)
}

// CountPublishedProducts 카테고리별 공개 상품 수 (직접 속한 상품만)
func (r *categoryRepository) CountPublishedProducts() (map[int64]int64, error) {
	var rows []struct {
		CategoryID int64
		Count      int64
	}
	err := r.db.Model(&domain.Product{}).
		Select("category_id, COUNT(*) AS count").
		Where("status = ? AND category_id IS NOT NULL", domain.ProductStatusPublished).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}
