package repository

import (
	"testing"
	"time"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSettingRepository_UpsertAndPublic(t *testing.T) {
	repo := NewSettingRepository(setupTestDB(t))

	require.NoError(t, repo.InsertMissing(domain.DefaultSettings))
	// second seed must not clobber anything
	require.NoError(t, repo.Upsert([]domain.Setting{
		{Key: "store_name", Value: datatypes.JSON(`"Build Lab"`), IsPublic: true},
		{Key: "new_key", Value: datatypes.JSON(`1`), IsPublic: false},
	}))
	require.NoError(t, repo.InsertMissing(domain.DefaultSettings))

	got, err := repo.Get("store_name")
	require.NoError(t, err)
	assert.JSONEq(t, `"Build Lab"`, string(got.Value))

	public, err := repo.Public()
	require.NoError(t, err)
	for _, s := range public {
		assert.True(t, s.IsPublic, s.Key)
		assert.NotEqual(t, "order_notification_email", s.Key)
	}

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, len(domain.DefaultSettings)+1)
}

func TestAdminUserRepository(t *testing.T) {
	repo := NewAdminUserRepository(setupTestDB(t))

	user := &domain.AdminUser{Username: "admin", PasswordHash: "x", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, repo.Create(user))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	now := time.Now()
	require.NoError(t, repo.UpdateLastLogin(user.ID, now))

	got, err := repo.FindByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.WithinDuration(t, now, *got.LastLoginAt, time.Second)
}
