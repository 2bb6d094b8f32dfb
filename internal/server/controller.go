package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/internal/usecase"
	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
)

type Controller interface {
	Webhook(c echo.Context) error
	Health(c echo.Context) error
}

type controller struct {
	updateUsecase usecase.UpdateUsecase
}

func NewController(updateUsecase usecase.UpdateUsecase) Controller {
	return &controller{
		updateUsecase: updateUsecase,
	}
}

// Webhook answers 200 once the body is read. A non-2xx reply makes Telegram
// redeliver the update, which would repeat side effects such as /add.
func (h *controller) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read request body")
	}

	ctx := c.Request().Context()
	err = h.updateUsecase.ProcessUpdate(ctx, usecase.TransportWebhook, payload)
	if err != nil && !errors.Is(err, models.ErrTransportAnomaly) {
		log.Errorw(ctx, "failed to process update", "error", err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "price-bot",
	})
}
