package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned by reads when no Redis client is configured.
var ErrUnavailable = errors.New("cache: redis not available")

// TTL 상수 정의
const (
	TTLMenu     = 10 * time.Minute // 공개 메뉴 트리 (관리자 변경 시 무효화)
	TTLSettings = 10 * time.Minute
	TTLCategory = 5 * time.Minute
	TTLBuilder  = 1 * time.Minute
	TTLDefault  = 5 * time.Minute
)

// 캐시 키 접두사
const (
	PrefixMenu     = "menu:"
	PrefixCategory = "category:"
	KeySettings    = "settings:public"
	KeyCategories  = "category:tree"
	KeyPCBuilder   = "pcbuilder:slots"
)

// Service Redis 캐시 서비스 인터페이스
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error

	// 메뉴 캐시
	GetMenu(ctx context.Context, location string, dest interface{}) error
	SetMenu(ctx context.Context, location string, data interface{}) error
	InvalidateMenus(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client *redis.Client
}

// NewService 새로운 캐시 서비스 생성. client 가 nil 이면 모든 쓰기는 무시되고
// 읽기는 ErrUnavailable 을 반환한다.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return ErrUnavailable
	}
	return c.client.Ping(ctx).Err()
}

// Get 캐시에서 값 조회
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrUnavailable
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set 캐시에 값 저장
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // Redis 없으면 무시
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// ========================================
// 메뉴 캐시
// ========================================

// MenuKey returns the cache key of the public tree for a menu location
func MenuKey(location string) string {
	return PrefixMenu + location
}

func (c *redisCache) GetMenu(ctx context.Context, location string, dest interface{}) error {
	return c.Get(ctx, MenuKey(location), dest)
}

func (c *redisCache) SetMenu(ctx context.Context, location string, data interface{}) error {
	return c.Set(ctx, MenuKey(location), data, TTLMenu)
}

// InvalidateMenus drops every cached menu location. Item edits can move a
// menu between locations, so the whole prefix goes.
func (c *redisCache) InvalidateMenus(ctx context.Context) error {
	return c.DeleteByPattern(ctx, PrefixMenu+"*")
}
