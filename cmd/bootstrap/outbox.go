package bootstrap

import (
	"context"
	"log/slog"

	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/infra/messaging"
	"vehicle-rental/internal/infra/outbox"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/config"

	"go.uber.org/fx"
)

var OutboxModule = fx.Module("outbox",
	fx.Provide(
		NewOutboxRelay,
	),
	fx.Invoke(startOutboxRelay),
)

func NewOutboxRelay(queries outbox.OutboxQueries, db dbq.DBTX, publisher messaging.Publisher, clk clock.Clock, cfg config.Config) *outbox.Relay {
	return outbox.NewRelay(outbox.NewStore(queries, db), publisher, clk, outbox.RelayOptions{
		Interval:  cfg.Outbox.Interval,
		BatchSize: cfg.Outbox.BatchSize,
		MaxTries:  cfg.Outbox.MaxTries,
	})
}

func startOutboxRelay(lc fx.Lifecycle, relay *outbox.Relay, cfg config.Config) {
	if !cfg.Outbox.Enabled {
		slog.Info("outbox relay disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				relay.Run(ctx)
			}()
			slog.Info("outbox relay started", "interval", cfg.Outbox.Interval)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
