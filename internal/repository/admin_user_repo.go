package repository

import (
	"time"

	"github.com/damoang/pcmall-backend/internal/domain"
	"gorm.io/gorm"
)

// AdminUserRepository 관리자 계정 저장소
type AdminUserRepository interface {
	FindByID(id int64) (*domain.AdminUser, error)
	FindByUsername(username string) (*domain.AdminUser, error)
	Create(user *domain.AdminUser) error
	UpdateLastLogin(id int64, at time.Time) error
	Count() (int64, error)
}

type adminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository 생성자
func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) FindByID(id int64) (*domain.AdminUser, error) {
	var user domain.AdminUser
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepository) FindByUsername(username string) (*domain.AdminUser, error) {
	var user domain.AdminUser
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepository) Create(user *domain.AdminUser) error {
	return r.db.Create(user).Error
}

func (r *adminUserRepository) UpdateLastLogin(id int64, at time.Time) error {
	return r.db.Model(&domain.AdminUser{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

func (r *adminUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.AdminUser{}).Count(&count).Error
	return count, err
}
