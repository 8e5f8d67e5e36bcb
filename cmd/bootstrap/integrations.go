package bootstrap

import (
	"context"
	"log/slog"

	"vehicle-rental/internal/infra/cache"
	"vehicle-rental/internal/infra/messaging"
	"vehicle-rental/internal/infra/storage"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"

	"go.uber.org/fx"
)

// Optional integrations fall back to no-op implementations when unconfigured.
var IntegrationsModule = fx.Module("integrations",
	fx.Provide(
		NewCatalogCache,
		NewImageStore,
		NewPublisher,
	),
)

func NewCatalogCache(lc fx.Lifecycle, cfg config.Config) queries.CatalogCache {
	if cfg.Redis.Addr == "" {
		slog.Info("redis not configured, catalog cache disabled")
		return cache.Noop{}
	}

	c := cache.NewRedisCache(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := c.Ping(ctx); err != nil {
				slog.Warn("redis unreachable, serving catalog from database", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return c.Close()
		},
	})
	return c
}

func NewImageStore(cfg config.Config) (commands.ImageStore, error) {
	if cfg.Storage.Endpoint == "" {
		slog.Info("object storage not configured, image uploads disabled")
		return storage.Noop{}, nil
	}
	return storage.NewMinioStore(cfg.Storage)
}

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (messaging.Publisher, error) {
	if !cfg.Kafka.Enabled() {
		slog.Info("kafka not configured, booking events are logged only")
		return messaging.LogPublisher{}, nil
	}

	p, err := messaging.NewKafkaPublisher(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p, nil
}
