package repository

import (
	"fmt"

	"github.com/damoang/pcmall-backend/internal/domain"
	"gorm.io/gorm"
)

// MenuRepository 메뉴 저장소 인터페이스
type MenuRepository interface {
	// 메뉴
	ListMenus() ([]*domain.Menu, error)
	CountItemsByMenu() (map[int64]int, error)
	FindMenuByID(id int64) (*domain.Menu, error)
	FindMenuByLocation(location string) (*domain.Menu, error)
	CreateMenu(menu *domain.Menu) error
	UpdateMenu(menu *domain.Menu) error
	DeleteMenu(id int64) error

	// 메뉴 항목
	ListItems(menuID int64) ([]domain.MenuItem, error)
	FindItem(menuID, itemID int64) (*domain.MenuItem, error)
	CreateItem(item *domain.MenuItem) error
	UpdateItem(item *domain.MenuItem) error
	DeleteItem(item *domain.MenuItem) error
	ReorderItems(menuID int64, items []domain.MenuItem) error
	GetMaxSortOrder(menuID int64, parentID *int64) (int, error)
}

// menuRepository GORM 구현체
type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository 생성자
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

// ListMenus 모든 메뉴 (비활성 포함)
func (r *menuRepository) ListMenus() ([]*domain.Menu, error) {
	var menus []*domain.Menu
	if err := r.db.Order("location ASC, id ASC").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// CountItemsByMenu 메뉴별 항목 수
func (r *menuRepository) CountItemsByMenu() (map[int64]int, error) {
	var rows []struct {
		MenuID int64
		Count  int
	}
	err := r.db.Model(&domain.MenuItem{}).
		Select("menu_id, COUNT(*) AS count").
		Group("menu_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.MenuID] = row.Count
	}
	return counts, nil
}

func (r *menuRepository) FindMenuByID(id int64) (*domain.Menu, error) {
	var menu domain.Menu
	if err := r.db.Where("id = ?", id).First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) FindMenuByLocation(location string) (*domain.Menu, error) {
	var menu domain.Menu
	if err := r.db.Where("location = ?", location).First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) CreateMenu(menu *domain.Menu) error {
	return r.db.Create(menu).Error
}

func (r *menuRepository) UpdateMenu(menu *domain.Menu) error {
	return r.db.Save(menu).Error
}

// DeleteMenu 메뉴와 모든 항목 삭제
func (r *menuRepository) DeleteMenu(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", id).Delete(&domain.MenuItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Menu{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ============================================
// Menu items
// ============================================

// ListItems 메뉴의 모든 항목 (평면, 저장 순서)
func (r *menuRepository) ListItems(menuID int64) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := r.db.
		Where("menu_id = ?", menuID).
		Order("sort_order ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) FindItem(menuID, itemID int64) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := r.db.Where("id = ? AND menu_id = ?", itemID, menuID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) CreateItem(item *domain.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuRepository) UpdateItem(item *domain.MenuItem) error {
	return r.db.Save(item).Error
}

// DeleteItem 항목 삭제. 자식 항목은 삭제된 항목의 부모로 올라간다.
func (r *menuRepository) DeleteItem(item *domain.MenuItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.MenuItem{}).
			Where("menu_id = ? AND parent_id = ?", item.MenuID, item.ID).
			Update("parent_id", item.ParentID).Error
		if err != nil {
			return err
		}
		return tx.Delete(&domain.MenuItem{}, item.ID).Error
	})
}

// ReorderItems 항목의 parent_id, sort_order 일괄 변경 (트랜잭션 사용)
func (r *menuRepository) ReorderItems(menuID int64, items []domain.MenuItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			res := tx.Model(&domain.MenuItem{}).
				Where("id = ? AND menu_id = ?", item.ID, menuID).
				Updates(map[string]interface{}{
					"parent_id":  item.ParentID,
					"sort_order": item.SortOrder,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("menu item %d: %w", item.ID, gorm.ErrRecordNotFound)
			}
		}
		return nil
	})
}

// GetMaxSortOrder 같은 부모 아래에서 가장 큰 sort_order
func (r *menuRepository) GetMaxSortOrder(menuID int64, parentID *int64) (int, error) {
	var maxOrder int

	query := r.db.Model(&domain.MenuItem{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Where("menu_id = ?", menuID)

	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	if err := query.Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder, nil
}
