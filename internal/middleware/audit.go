package middleware

import (
	"context"
	"net/http"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditLogger handles writing audit log entries
type AuditLogger struct {
	db *gorm.DB
}

// NewAuditLogger creates a new AuditLogger. The audit_logs table is created by the migration.
func NewAuditLogger(db *gorm.DB) *AuditLogger {
	return &AuditLogger{db: db}
}

// Log writes an audit entry. Failures are logged, never returned to the caller.
func (a *AuditLogger) Log(ctx context.Context, entry *domain.AuditLog) {
	if a == nil || a.db == nil {
		return
	}
	if err := a.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.GetLogger().Error().Err(err).
			Str("action", entry.Action).
			Str("resource", entry.Resource).
			Int64("user_id", entry.UserID).
			Msg("audit log write failed")
	}
}

// ListAuditLogs retrieves paginated audit logs, newest first
func (a *AuditLogger) ListAuditLogs(ctx context.Context, req *domain.AuditLogListRequest) ([]domain.AuditLog, int64, error) {
	var logs []domain.AuditLog
	var total int64

	query := a.db.WithContext(ctx).Model(&domain.AuditLog{})
	if req.Username != "" {
		query = query.Where("username = ?", req.Username)
	}
	if req.Action != "" {
		query = query.Where("action = ?", req.Action)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("id DESC").
		Offset((req.Page - 1) * req.PerPage).Limit(req.PerPage).
		Find(&logs).Error

	return logs, total, err
}

// AdminAudit records every successful state-changing admin request
func AdminAudit(audit *AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			return
		}

		resourceID := c.Param("id")
		if itemID := c.Param("itemId"); itemID != "" {
			resourceID = itemID
		}

		audit.Log(c.Request.Context(), &domain.AuditLog{
			UserID:     GetUserID(c),
			Username:   GetUsername(c),
			Action:     c.Request.Method,
			Resource:   routeTemplate(c.FullPath()),
			ResourceID: resourceID,
			Status:     status,
			ClientIP:   c.ClientIP(),
			UserAgent:  truncate(c.Request.UserAgent(), 255),
			RequestID:  GetRequestID(c),
		})
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
