package app

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/price-bot/internal/config"
	"github.com/nguyentranbao-ct/price-bot/internal/kafka"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/fetcher"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/telegram"
	"github.com/nguyentranbao-ct/price-bot/internal/server"
	pkgmdw "github.com/nguyentranbao-ct/price-bot/internal/server/middleware"
	"github.com/nguyentranbao-ct/price-bot/internal/usecase"
	"github.com/nguyentranbao-ct/price-bot/pkg/logger"
)

// Invoke builds the bot with every provider wired and runs funcs on start.
func Invoke(conf *config.Config, funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	log.Debugw("config loaded",
		"server_addr", conf.Server.Addr,
		"database", conf.Database.Database,
		"collection", conf.Database.Collection,
		"redis", conf.Cache.RedisAddr != "",
		"kafka", conf.Kafka.Enabled,
		"strict_host", conf.Scraper.StrictHost,
	)
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		Options(conf),
		fx.Invoke(funcs...),
	)
}

func Options(conf *config.Config) fx.Option {
	return fx.Options(
		fx.Provide(
			newMongoDB,
			newWatchlistRepository,
			newCaches,
			newClassifier,
			newExtractor,
			newNotificationSender,
			newKafkaConsumer,

			fetcher.NewPageFetcher,
			telegram.NewClient,

			usecase.NewIDAllocator,
			usecase.NewCommandUsecase,
			usecase.NewMessageUsecase,
			usecase.NewUpdateUsecase,

			pkgmdw.NewValidator,
			newStructValidator,
			server.NewController,
			kafka.NewMessageHandler,
		),
		fx.Supply(conf),
	)
}
