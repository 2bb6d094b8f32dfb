package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/price-bot/internal/config"
	"github.com/nguyentranbao-ct/price-bot/internal/kafka"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/cache"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/telegram"
	"github.com/nguyentranbao-ct/price-bot/internal/repository"
	"github.com/nguyentranbao-ct/price-bot/internal/retailer"
	pkgmdw "github.com/nguyentranbao-ct/price-bot/internal/server/middleware"
	"github.com/nguyentranbao-ct/price-bot/internal/usecase"
	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
)

func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Timeout)
	defer cancel()

	db, err := mongodb.NewConnection(ctx, cfg.Database.URI, cfg.Database.Database, cfg.Database.Timeout)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: db.Ping,
		OnStop:  db.Close,
	})
	return db, nil
}

func newWatchlistRepository(db *mongodb.DB, cfg *config.Config) repository.WatchlistRepository {
	return mongodb.NewWatchlistRepository(db, cfg.Database.Collection)
}

// newCaches uses Redis when an address is configured and falls back to a
// no-op page cache and in-process update dedup otherwise.
func newCaches(lc fx.Lifecycle, cfg *config.Config) (cache.PageCache, cache.UpdateDeduper) {
	if cfg.Cache.RedisAddr == "" {
		log.Infow(context.Background(), "redis not configured, page cache disabled")
		return cache.NewNopCache(), cache.NewMemoryDeduper(cfg.Cache.DedupTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warnw(ctx, "redis ping failed, continuing without warm cache", "error", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return cache.NewRedisCache(client, cfg.Cache.TTL), cache.NewRedisDeduper(client, cfg.Cache.DedupTTL)
}

func newClassifier(cfg *config.Config) usecase.URLClassifier {
	return retailer.NewClassifier(cfg.Scraper.StrictHost)
}

func newExtractor() usecase.ProductExtractor {
	return retailer.NewExtractor()
}

func newNotificationSender(client telegram.Client) usecase.NotificationSender {
	return client
}

func newStructValidator(v *pkgmdw.Validator) usecase.StructValidator {
	return v
}

func newKafkaConsumer(cfg *config.Config, handler kafka.MessageHandler) (kafka.Consumer, error) {
	return kafka.NewConsumer(&cfg.Kafka, handler)
}
