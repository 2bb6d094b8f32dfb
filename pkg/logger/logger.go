// Package logger builds the process wide zap loggers.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

// Logger is a named sugared logger. It satisfies the echo middleware Logger interface.
type Logger struct {
	*zap.SugaredLogger
}

// Unwrap exposes the underlying sugared logger, e.g. for fxevent.ZapLogger.
func (l *Logger) Unwrap() *zap.SugaredLogger {
	return l.SugaredLogger
}

// Reflect is a typed field that serializes v by reflection.
func (l *Logger) Reflect(key string, v any) zap.Field {
	return zap.Reflect(key, v)
}

var (
	mu   sync.RWMutex
	root = mustBuild(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
)

// Configure replaces the root logger. Loggers handed out earlier keep their old core.
func Configure(level, format string) error {
	l, err := build(level, format)
	if err != nil {
		return err
	}
	mu.Lock()
	root = l
	mu.Unlock()
	return nil
}

// Root returns the unnamed root logger.
func Root() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Named returns a child of the root logger.
func Named(name string) (*Logger, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("logger name is empty")
	}
	return &Logger{SugaredLogger: Root().Named(name).Sugar()}, nil
}

func MustNamed(name string) *Logger {
	l, err := Named(name)
	if err != nil {
		panic(err)
	}
	return l
}

func ParseLevel(s string) (Level, error) {
	if s == "" {
		return InfoLevel, nil
	}
	return zapcore.ParseLevel(strings.ToLower(s))
}

func build(level, format string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case "", "json":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	return cfg.Build()
}

func mustBuild(level, format string) *zap.Logger {
	l, err := build(level, format)
	if err != nil {
		l, _ = build("", "")
	}
	return l
}
