package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Setting 사이트 설정 key/value. value 는 JSON.
// Table: settings
type Setting struct {
	Key       string         `gorm:"column:key;primaryKey;size:100" json:"key"`
	Value     datatypes.JSON `gorm:"column:value" json:"value" swaggertype:"object"`
	IsPublic  bool           `gorm:"column:is_public;not null;default:false" json:"is_public"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// DefaultSettings are seeded on first run. Public ones are exposed to the storefront.
var DefaultSettings = []Setting{
	{Key: "store_name", Value: datatypes.JSON(`"PC Mall"`), IsPublic: true},
	{Key: "contact_email", Value: datatypes.JSON(`"help@pcmall.local"`), IsPublic: true},
	{Key: "contact_phone", Value: datatypes.JSON(`""`), IsPublic: true},
	{Key: "currency", Value: datatypes.JSON(`"KRW"`), IsPublic: true},
	{Key: "free_shipping_threshold", Value: datatypes.JSON(`100000`), IsPublic: true},
	{Key: "shipping_fee", Value: datatypes.JSON(`3000`), IsPublic: true},
	{Key: "maintenance_mode", Value: datatypes.JSON(`false`), IsPublic: true},
	{Key: "order_notification_email", Value: datatypes.JSON(`""`), IsPublic: false},
}

// UpdateSettingsRequest 설정 일괄 저장
type UpdateSettingsRequest struct {
	Settings []SettingInput `json:"settings" binding:"required,min=1,dive"`
}

// SettingInput one key to upsert
type SettingInput struct {
	Key      string         `json:"key" binding:"required,max=100"`
	Value    datatypes.JSON `json:"value" binding:"required" swaggertype:"object"`
	IsPublic *bool          `json:"is_public"`
}
