package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	Requests  int
	Window    time.Duration
	KeyPrefix string
	Message   string
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Requests:  120,
		Window:    time.Minute,
		KeyPrefix: "api:ratelimit:",
		Message:   "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
	}
}

// LoginRateLimitConfig 관리자 로그인 시도 제한
func LoginRateLimitConfig(requests int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Requests:  requests,
		Window:    window,
		KeyPrefix: "api:ratelimit:login:",
		Message:   "로그인 시도가 너무 많습니다. 잠시 후 다시 시도해주세요.",
	}
}

// rateLimitScript is an atomic Lua script for sliding window rate limiting
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local window_start = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local count = redis.call('ZCARD', key)

if count < limit then
    redis.call('ZADD', key, now, now .. ':' .. math.random(1000000))
    redis.call('EXPIRE', key, math.ceil(window / 1000) + 1)
    return {1, limit - count - 1, 0}
else
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local reset_at = 0
    if #oldest >= 2 then
        reset_at = tonumber(oldest[2]) + window
    end
    return {0, 0, reset_at}
end
`)

// RateLimit returns a gin middleware that rate limits by client IP.
// Without Redis every request passes.
func RateLimit(redisClient *redis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}

	return func(c *gin.Context) {
		if redisClient == nil || cfg.Requests <= 0 {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + c.ClientIP()
		now := time.Now().UnixMilli()

		result, err := rateLimitScript.Run(c.Request.Context(), redisClient, []string{key},
			cfg.Requests, cfg.Window.Milliseconds(), now,
		).Int64Slice()
		if err != nil {
			// Fail open
			pkglogger.GetLogger().Warn().Err(err).Str("key", key).Msg("rate limit check failed")
			c.Next()
			return
		}

		allowed := result[0] == 1
		remaining := result[1]
		resetAt := result[2]

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			retryAfter := (resetAt - now) / 1000
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt/1000))
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"code": "TOO_MANY_REQUESTS", "message": cfg.Message},
			})
			return
		}

		c.Next()
	}
}
