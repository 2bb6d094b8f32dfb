package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Log      LogConfig      `envPrefix:"LOG_"`
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Telegram TelegramConfig `envPrefix:"TELEGRAM_"`
	Scraper  ScraperConfig  `envPrefix:"SCRAPER_"`
	Cache    CacheConfig    `envPrefix:"CACHE_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
	// WebhookSecret is compared with the X-Telegram-Bot-Api-Secret-Token header when set.
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	Pprof         bool   `env:"PPROF" envDefault:"false"`
}

type DatabaseConfig struct {
	URI        string        `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database   string        `env:"DATABASE" envDefault:"teleData"`
	Collection string        `env:"COLLECTION" envDefault:"userData"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type TelegramConfig struct {
	Token   string        `env:"TOKEN"`
	BaseURL string        `env:"BASE_URL" envDefault:"https://api.telegram.org"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type ScraperConfig struct {
	MaxConcurrency int           `env:"MAX_CONCURRENCY" envDefault:"4"`
	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`
	RetryCount     int           `env:"RETRY_COUNT" envDefault:"2"`
	UserAgent      string        `env:"USER_AGENT" envDefault:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
	// StrictHost validates the URL host against the retailer base URL instead of a substring match.
	StrictHost bool `env:"STRICT_HOST" envDefault:"false"`
}

type CacheConfig struct {
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL           time.Duration `env:"TTL" envDefault:"5m"`
	// DedupTTL is how long a handled update id is remembered.
	DedupTTL time.Duration `env:"DEDUP_TTL" envDefault:"1h"`
}

type KafkaConfig struct {
	Enabled    bool          `env:"ENABLED" envDefault:"false"`
	Brokers    []string      `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic      string        `env:"TOPIC" envDefault:"telegram.updates"`
	GroupID    string        `env:"GROUP_ID" envDefault:"price-bot"`
	MaxWorkers int           `env:"MAX_WORKERS" envDefault:"4"`
	Timeout    time.Duration `env:"CONSUME_TIMEOUT" envDefault:"60s"`
}

// Load reads an optional .env file and then parses the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load dotenv: %w", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad(files ...string) *Config {
	cfg, err := Load(files...)
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	if c.Scraper.MaxConcurrency < 1 {
		return fmt.Errorf("SCRAPER_MAX_CONCURRENCY must be positive, got %d", c.Scraper.MaxConcurrency)
	}
	if c.Scraper.FetchTimeout <= 0 {
		return fmt.Errorf("SCRAPER_FETCH_TIMEOUT must be positive")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when kafka is enabled")
	}
	return nil
}
