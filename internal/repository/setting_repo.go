package repository

import (
	"github.com/damoang/pcmall-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository 사이트 설정 저장소
type SettingRepository interface {
	All() ([]domain.Setting, error)
	Public() ([]domain.Setting, error)
	Get(key string) (*domain.Setting, error)
	Upsert(settings []domain.Setting) error
	InsertMissing(settings []domain.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 생성자
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) All() ([]domain.Setting, error) {
	var settings []domain.Setting
	if err := r.db.Order("`key` ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) Public() ([]domain.Setting, error) {
	var settings []domain.Setting
	if err := r.db.Where("is_public = ?", true).Order("`key` ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) Get(key string) (*domain.Setting, error) {
	var setting domain.Setting
	if err := r.db.Where("`key` = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert 일괄 저장 (key 충돌 시 value/is_public 갱신)
func (r *settingRepository) Upsert(settings []domain.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "is_public", "updated_at"}),
	}).Create(&settings).Error
}

// InsertMissing 없는 key 만 추가 (기존 값 유지)
func (r *settingRepository) InsertMissing(settings []domain.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	rows := append([]domain.Setting(nil), settings...)
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
