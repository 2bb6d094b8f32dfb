// Package logctx logs through the root logger with key/values carried by the context.
// Call sites import it as log, e.g. log.Infow(ctx, "msg", "key", value).
package logctx

import (
	"context"

	"github.com/nguyentranbao-ct/price-bot/pkg/logger"
	"go.uber.org/zap"
)

type fieldsKey struct{}

// WithFields returns a context whose log lines carry the given key/values.
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	if len(keysAndValues) == 0 {
		return ctx
	}
	prev := fields(ctx)
	merged := make([]any, 0, len(prev)+len(keysAndValues))
	merged = append(merged, prev...)
	merged = append(merged, keysAndValues...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func fields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	kv, _ := ctx.Value(fieldsKey{}).([]any)
	return kv
}

func sugar(ctx context.Context) *zap.SugaredLogger {
	s := logger.Root().WithOptions(zap.AddCallerSkip(1)).Sugar()
	if kv := fields(ctx); len(kv) > 0 {
		s = s.With(kv...)
	}
	return s
}

func Debugw(ctx context.Context, msg string, keysAndValues ...any) {
	sugar(ctx).Debugw(msg, keysAndValues...)
}

func Infow(ctx context.Context, msg string, keysAndValues ...any) {
	sugar(ctx).Infow(msg, keysAndValues...)
}

func Warnw(ctx context.Context, msg string, keysAndValues ...any) {
	sugar(ctx).Warnw(msg, keysAndValues...)
}

func Errorw(ctx context.Context, msg string, keysAndValues ...any) {
	sugar(ctx).Errorw(msg, keysAndValues...)
}

func Debugf(ctx context.Context, template string, args ...any) {
	sugar(ctx).Debugf(template, args...)
}

func Infof(ctx context.Context, template string, args ...any) {
	sugar(ctx).Infof(template, args...)
}

func Warnf(ctx context.Context, template string, args ...any) {
	sugar(ctx).Warnf(template, args...)
}

func Errorf(ctx context.Context, template string, args ...any) {
	sugar(ctx).Errorf(template, args...)
}

// Logw logs at a level chosen at runtime.
func Logw(ctx context.Context, level logger.Level, msg string, keysAndValues ...any) {
	sugar(ctx).Logw(level, msg, keysAndValues...)
}
