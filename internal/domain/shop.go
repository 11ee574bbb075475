package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Shop 오프라인 매장
// Table: shops
type Shop struct {
	ID           int64          `gorm:"column:id;primaryKey" json:"id"`
	Name         string         `gorm:"column:name;size:100;not null" json:"name"`
	Slug         string         `gorm:"column:slug;size:120;not null;uniqueIndex" json:"slug"`
	Address      string         `gorm:"column:address;size:255" json:"address"`
	City         string         `gorm:"column:city;size:100;index" json:"city,omitempty"`
	Phone        string         `gorm:"column:phone;size:30" json:"phone,omitempty"`
	Email        string         `gorm:"column:email;size:255" json:"email,omitempty"`
	OpeningHours datatypes.JSON `gorm:"column:opening_hours" json:"opening_hours,omitempty" swaggertype:"object"`
	Latitude     *float64       `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude    *float64       `gorm:"column:longitude" json:"longitude,omitempty"`
	ImageURL     string         `gorm:"column:image_url;size:500" json:"image_url,omitempty"`
	SortOrder    int            `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	IsActive     bool           `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Shop) TableName() string {
	return "shops"
}

// CreateShopRequest 매장 생성 요청
type CreateShopRequest struct {
	Name         string         `json:"name" binding:"required,max=100"`
	Slug         string         `json:"slug" binding:"omitempty,max=120"`
	Address      string         `json:"address" binding:"required,max=255"`
	City         string         `json:"city" binding:"omitempty,max=100"`
	Phone        string         `json:"phone" binding:"omitempty,max=30"`
	Email        string         `json:"email" binding:"omitempty,email"`
	OpeningHours datatypes.JSON `json:"opening_hours" swaggertype:"object"`
	Latitude     *float64       `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64       `json:"longitude" binding:"omitempty,longitude"`
	ImageURL     string         `json:"image_url" binding:"omitempty,max=500"`
	SortOrder    int            `json:"sort_order"`
	IsActive     *bool          `json:"is_active"`
}

// UpdateShopRequest 매장 수정 요청
type UpdateShopRequest struct {
	Name         *string         `json:"name" binding:"omitempty,max=100"`
	Slug         *string         `json:"slug" binding:"omitempty,max=120"`
	Address      *string         `json:"address" binding:"omitempty,max=255"`
	City         *string         `json:"city" binding:"omitempty,max=100"`
	Phone        *string         `json:"phone" binding:"omitempty,max=30"`
	Email        *string         `json:"email" binding:"omitempty,email"`
	OpeningHours *datatypes.JSON `json:"opening_hours" swaggertype:"object"`
	Latitude     *float64        `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64        `json:"longitude" binding:"omitempty,longitude"`
	ImageURL     *string         `json:"image_url" binding:"omitempty,max=500"`
	SortOrder    *int            `json:"sort_order"`
	IsActive     *bool           `json:"is_active"`
}
