package service

import (
	"testing"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB in-memory SQLite with every table migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Menu{}, &domain.MenuItem{},
		&domain.Category{}, &domain.Brand{}, &domain.Shop{},
		&domain.Product{}, &domain.Order{}, &domain.OrderItem{},
		&domain.Setting{}, &domain.AdminUser{},
	))
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	require.NoError(t, db.Create(value).Error)
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }
