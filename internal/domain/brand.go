package domain

import "time"

// Brand 제조사/브랜드
// Table: brands
type Brand struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
	Slug        string    `gorm:"column:slug;size:120;not null;uniqueIndex" json:"slug"`
	LogoURL     string    `gorm:"column:logo_url;size:500" json:"logo_url,omitempty"`
	Website     string    `gorm:"column:website;size:255" json:"website,omitempty"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Brand) TableName() string {
	return "brands"
}

// CreateBrandRequest 브랜드 생성 요청
type CreateBrandRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Slug        string `json:"slug" binding:"omitempty,max=120"`
	LogoURL     string `json:"logo_url" binding:"omitempty,url,max=500"`
	Website     string `json:"website" binding:"omitempty,url,max=255"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateBrandRequest 브랜드 수정 요청
type UpdateBrandRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,max=120"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,max=500"`
	Website     *string `json:"website" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
