package cache

import (
	"context"
	"time"

	"salepoint/internal/pkg/config"
	"salepoint/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

var ErrRedisUnreachable = errs.New("redis unreachable")

// NewClient connects to Redis. A nil client means caching is
// disabled by configuration.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Mark(err, ErrRedisUnreachable)
	}
	return client, nil
}
