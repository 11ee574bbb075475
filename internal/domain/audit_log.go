package domain

import "time"

// AuditLog 관리자 변경 작업 기록
// Table: audit_logs
type AuditLog struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"column:user_id;index" json:"user_id"`
	Username   string    `gorm:"column:username;size:50" json:"username"`
	Action     string    `gorm:"column:action;size:10;index" json:"action"` // POST, PUT, PATCH, DELETE
	Resource   string    `gorm:"column:resource;size:200" json:"resource"`  // route template
	ResourceID string    `gorm:"column:resource_id;size:100" json:"resource_id,omitempty"`
	Status     int       `gorm:"column:status" json:"status"`
	ClientIP   string    `gorm:"column:client_ip;size:45" json:"client_ip"`
	UserAgent  string    `gorm:"column:user_agent;size:255" json:"user_agent,omitempty"`
	RequestID  string    `gorm:"column:request_id;size:64" json:"request_id,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogListRequest 감사 로그 조회 조건
type AuditLogListRequest struct {
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
	Username string `form:"username" binding:"omitempty,max=50"`
	Action   string `form:"action" binding:"omitempty,oneof=POST PUT PATCH DELETE"`
}
