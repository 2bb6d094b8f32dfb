package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/price-bot/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/price-bot/internal/server/middleware"
	"github.com/nguyentranbao-ct/price-bot/pkg/logger"
	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
)

const maxUpdateSize = "1M"

// NewEcho builds the router with the middleware chain and routes in place.
func NewEcho(conf *config.Config, handler Controller, validator echo.Validator) *echo.Echo {
	httpLogger := logger.MustNamed("http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(httpLogger)

	logConfig := pkgmdw.LogRequestConfig{
		Logger: httpLogger,
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics"
		},
	}

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))

	e.GET("/health", handler.Health)
	e.POST("/webhook", handler.Webhook,
		middleware.BodyLimit(maxUpdateSize),
		pkgmdw.SecretToken(conf.Server.WebhookSecret),
	)

	if conf.Server.Pprof {
		pkgmdw.Pprof(e)
	}

	return e
}

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
	validator *pkgmdw.Validator,
) {
	e := NewEcho(conf, handler, validator)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", conf.Server.Addr)
				if err := e.Start(conf.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
					log.Errorw(context.Background(), "HTTP server stopped", "error", err)
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}
