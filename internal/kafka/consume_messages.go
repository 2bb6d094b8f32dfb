package kafka

import (
	"context"

	"go.uber.org/fx"

	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
)

// StartConsumer runs the consumer for the lifetime of the fx app.
func StartConsumer(lc fx.Lifecycle, sd fx.Shutdowner, consumer Consumer) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := consumer.Start(ctx); err != nil {
					log.Errorw(ctx, "Kafka consumer stopped", "error", err)
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return consumer.Stop(stopCtx)
		},
	})
}
