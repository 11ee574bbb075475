package migration

import (
	"testing"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/pkg/menutree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeAdminSeeder struct {
	calls    int
	username string
}

func (f *fakeAdminSeeder) EnsureAdmin(username, password, email string) (bool, error) {
	f.calls++
	f.username = username
	return f.calls == 1, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestRunAndSeed(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Run(db))

	admins := &fakeAdminSeeder{}
	opts := SeedOptions{AdminUsername: "admin", AdminPassword: "change-me-please"}
	require.NoError(t, Seed(db, admins, opts))

	var menus []domain.Menu
	require.NoError(t, db.Order("id").Find(&menus).Error)
	require.Len(t, menus, 2)
	assert.Equal(t, "header", menus[0].Location)
	assert.Equal(t, "footer", menus[1].Location)

	var items []domain.MenuItem
	require.NoError(t, db.Where("menu_id = ?", menus[0].ID).Find(&items).Error)
	tree, rep := menutree.BuildTreeWithReport(domain.ToTreeItems(items))
	assert.True(t, rep.Clean())
	require.Len(t, tree, 5)
	assert.Equal(t, "/", menutree.ResolveURL(tree[0]))
	assert.Equal(t, "/shops", menutree.ResolveURL(tree[4]))
	assert.Len(t, tree[1].Children, 4)

	for _, slug := range []string{"cpu", "motherboards", "memory", "graphics-cards", "storage", "power-supplies", "cases", "cooling"} {
		var n int64
		db.Model(&domain.Category{}).Where("slug = ?", slug).Count(&n)
		assert.Equal(t, int64(1), n, slug)
	}

	var settings int64
	db.Model(&domain.Setting{}).Count(&settings)
	assert.Equal(t, int64(len(domain.DefaultSettings)), settings)
	assert.Equal(t, "admin", admins.username)
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Run(db))
	require.NoError(t, Seed(db, nil, SeedOptions{}))

	// admin edits survive a second run
	require.NoError(t, db.Model(&domain.Setting{}).Where("`key` = ?", "store_name").
		Update("value", []byte(`"My Shop"`)).Error)
	require.NoError(t, Seed(db, nil, SeedOptions{}))

	var menus, categories int64
	db.Model(&domain.Menu{}).Count(&menus)
	db.Model(&domain.Category{}).Count(&categories)
	assert.Equal(t, int64(2), menus)
	assert.Equal(t, int64(13), categories)

	var s domain.Setting
	require.NoError(t, db.Where("`key` = ?", "store_name").First(&s).Error)
	assert.JSONEq(t, `"My Shop"`, string(s.Value))
}

func TestSeed_RequiresAdminPassword(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Run(db))

	err := Seed(db, &fakeAdminSeeder{}, SeedOptions{AdminUsername: "admin"})

	assert.Error(t, err)
}
