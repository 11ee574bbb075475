package domain

import "time"

// Admin roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// AdminUser 관리자 계정
// Table: admin_users
type AdminUser struct {
	ID           int64      `gorm:"column:id;primaryKey" json:"id"`
	Username     string     `gorm:"column:username;size:50;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"column:email;size:255" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         string     `gorm:"column:role;size:20;not null;default:'admin'" json:"role"`
	IsActive     bool       `gorm:"column:is_active;not null" json:"is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// LoginRequest 관리자 로그인 요청
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=200"`
}

// LoginResponse 로그인 응답. 토큰은 HttpOnly 쿠키로도 내려간다.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
	User        *AdminUser `json:"user"`
}
