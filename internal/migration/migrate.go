package migration

import (
	"github.com/damoang/pcmall-backend/internal/domain"
	"gorm.io/gorm"
)

// Models every table the API owns, in dependency order
func Models() []interface{} {
	return []interface{}{
		&domain.Menu{}, &domain.MenuItem{},
		&domain.Category{}, &domain.Brand{}, &domain.Shop{},
		&domain.Product{},
		&domain.Order{}, &domain.OrderItem{},
		&domain.Setting{},
		&domain.AdminUser{},
		&domain.AuditLog{},
	}
}

// Run executes AutoMigrate for every table and adds the composite indexes
// AutoMigrate cannot express. Safe to run repeatedly.
func Run(db *gorm.DB) error {
	// 테이블 없으면 생성, 있으면 누락 컬럼만 추가
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	return EnsureIndexes(db)
}
