package repository

import (
	"testing"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// :memory: is per connection
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
