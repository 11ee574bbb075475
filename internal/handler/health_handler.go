package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/damoang/pcmall-backend/internal/middleware"
	pkgredis "github.com/damoang/pcmall-backend/pkg/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports liveness and dependency status
type HealthHandler struct {
	db    *gorm.DB
	redis *goredis.Client // nil when Redis is disabled
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, redisClient *goredis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health godoc
// @Summary      헬스 체크
// @Description  DB 는 필수, Redis 는 선택입니다. DB 가 응답하지 않으면 503
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}

	if err := h.pingDB(ctx); err != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = err.Error()
	} else {
		checks["database"] = "ok"
	}

	// 캐시/레이트리밋은 없어도 동작하므로 상태만 표시
	checks["redis"] = pkgredis.Check(ctx, h.redis)

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	c.JSON(status, gin.H{
		"status":  overall,
		"service": "pcmall-backend",
		"checks":  checks,
		"time":    time.Now().Unix(),
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	middleware.ObserveDBStats(sqlDB.Stats())
	return nil
}
