package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
)

// Redis implementa ports.Cache sobre um servidor Redis
type Redis struct {
	client *redis.Client
}

// NewRedis cria um cache Redis a partir de uma URL de conexão
func NewRedis(url string) (ports.Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &Redis{client: redis.NewClient(opts)}, nil
}

func (r *Redis) Get(key string) ([]byte, bool) {
	b, err := r.client.Get(context.Background(), key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *Redis) Set(key string, value []byte, ttl time.Duration) {
	r.client.Set(context.Background(), key, value, ttl)
}

func (r *Redis) DeletePrefix(prefix string) int {
	ctx := context.Background()
	deleted := 0

	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	keys := make([]string, 0, 100)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		if n, err := r.client.Del(ctx, keys...).Result(); err == nil {
			deleted = int(n)
		}
	}
	return deleted
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
