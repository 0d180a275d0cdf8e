package bootstrap

import (
	"context"

	"salepoint/internal/infra/cache"
	"salepoint/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedisClient,
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, err := cache.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
