package blocklist

import (
	"context"
	"errors"
	"time"

	domainrepo "bookly/internal/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blocklist:"

// RedisBlocklistは失効したjtiをTTL付きでredisに置く
type RedisBlocklist struct {
	client  redis.UniversalClient
	ttl     time.Duration
	timeout time.Duration
}

var _ domainrepo.TokenBlocklist = (*RedisBlocklist)(nil)

// DI
func NewRedisBlocklist(client redis.UniversalClient, ttl, timeout time.Duration) *RedisBlocklist {
	return &RedisBlocklist{client: client, ttl: ttl, timeout: timeout}
}

// NewClientはREDIS_URLからクライアントを作る
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// 同じjtiを何度失効させても結果は同じ
func (b *RedisBlocklist) Revoke(ctx context.Context, jti string) error {
	if jti == "" {
		return errors.New("blocklist: empty jti")
	}
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	return b.client.Set(ctx, keyPrefix+jti, "", b.ttl).Err()
}

func (b *RedisBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	n, err := b.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (b *RedisBlocklist) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}
