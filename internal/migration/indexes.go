package migration

import (
	"fmt"

	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"gorm.io/gorm"
)

type compositeIndex struct {
	table   string
	name    string
	columns string
}

// 목록 조회 (공개 상품, 관리자 주문) 에 쓰이는 복합 인덱스
var compositeIndexes = []compositeIndex{
	{"products", "idx_products_listing", "status, deleted_at, category_id, created_at"},
	{"products", "idx_products_price", "status, deleted_at, price"},
	{"orders", "idx_orders_status_created", "status, created_at"},
	{"menu_items", "idx_menu_items_parent_sort", "menu_id, parent_id, sort_order"},
}

// EnsureIndexes creates the composite indexes that are missing.
// MySQL only; other dialects are left to AutoMigrate.
func EnsureIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}

	created := 0
	for _, idx := range compositeIndexes {
		ok, err := addIndex(db, idx)
		if err != nil {
			return err
		}
		if ok {
			created++
		}
	}
	if created > 0 {
		pkglogger.GetLogger().Info().Int("created", created).Msg("composite indexes added")
	}
	return nil
}

// addIndex reports whether the index had to be created
func addIndex(db *gorm.DB, idx compositeIndex) (bool, error) {
	var count int64
	err := db.Raw(`
		SELECT COUNT(*) FROM INFORMATION_SCHEMA.STATISTICS
		WHERE TABLE_SCHEMA = DATABASE()
		AND TABLE_NAME = ?
		AND INDEX_NAME = ?
	`, idx.table, idx.name).Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to inspect indexes on %s: %w", idx.table, err)
	}
	if count > 0 {
		return false, nil
	}

	sql := fmt.Sprintf("ALTER TABLE `%s` ADD INDEX `%s` (%s)", idx.table, idx.name, idx.columns)
	if err := db.Exec(sql).Error; err != nil {
		return false, fmt.Errorf("failed to add index %s: %w", idx.name, err)
	}
	return true, nil
}
