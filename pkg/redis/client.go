package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Health states reported by Check
const (
	StatusDisabled    = "disabled"
	StatusUnreachable = "unreachable"
	StatusOK          = "ok"
)

// Options Redis 접속 설정. 0 값은 기본값으로 채운다.
type Options struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int

	DialTimeout  time.Duration
	ConnectTries int           // 시작 시 ping 재시도 횟수
	RetryBackoff time.Duration // 재시도 간격 (시도마다 두 배)
}

func (o Options) withDefaults() Options {
	if o.Host == "" {
		o.Host = "localhost"
	}
	if o.Port == 0 {
		o.Port = 6379
	}
	if o.PoolSize <= 0 {
		o.PoolSize = 10
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = 3 * time.Second
	}
	if o.ConnectTries <= 0 {
		o.ConnectTries = 1
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 200 * time.Millisecond
	}
	return o
}

// Addr host:port
func (o Options) Addr() string {
	o = o.withDefaults()
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// NewClient connects and pings Redis, retrying ConnectTries times. Redis only
// backs the cache and rate limiter, so callers usually log the error and run
// without it.
func NewClient(opts Options) (*redis.Client, error) {
	opts = opts.withDefaults()
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr(),
		Password:    opts.Password,
		DB:          opts.DB,
		PoolSize:    opts.PoolSize,
		DialTimeout: opts.DialTimeout,
	})

	var err error
	backoff := opts.RetryBackoff
	for attempt := 1; attempt <= opts.ConnectTries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
		err = client.Ping(ctx).Err()
		cancel()
		if err == nil {
			return client, nil
		}
		if attempt < opts.ConnectTries {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("redis %s unreachable after %d attempt(s): %w", opts.Addr(), opts.ConnectTries, err)
}

// Check reports the client's state for the health endpoint. A nil client
// means Redis is turned off.
func Check(ctx context.Context, client *redis.Client) string {
	if client == nil {
		return StatusDisabled
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return StatusUnreachable
	}
	return StatusOK
}
