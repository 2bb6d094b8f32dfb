package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/internal/repo/cache"
	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
	"github.com/nguyentranbao-ct/price-bot/pkg/util"
)

const (
	TransportWebhook = "webhook"
	TransportKafka   = "kafka"
)

type UpdateUsecase interface {
	// ProcessUpdate decodes a raw Telegram update and processes its message.
	// Payloads without a usable sender or text are logged, counted and dropped;
	// the returned error then wraps models.ErrTransportAnomaly. Redelivered
	// update ids are skipped.
	ProcessUpdate(ctx context.Context, transport string, payload []byte) error
}

type updateUsecase struct {
	messages  MessageUsecase
	deduper   cache.UpdateDeduper
	validate  StructValidator
	anomalies *prometheus.CounterVec
}

func NewUpdateUsecase(messages MessageUsecase, deduper cache.UpdateDeduper, validate StructValidator) (UpdateUsecase, error) {
	anomalies, err := util.GetCounterVec("transport_anomalies_total",
		"Inbound updates dropped for missing sender or text", "transport")
	if err != nil {
		return nil, err
	}
	return &updateUsecase{
		messages:  messages,
		deduper:   deduper,
		validate:  validate,
		anomalies: anomalies,
	}, nil
}

func (uc *updateUsecase) ProcessUpdate(ctx context.Context, transport string, payload []byte) error {
	update, msg, err := uc.decode(payload)
	if err != nil {
		uc.anomalies.WithLabelValues(transport).Inc()
		log.Warnw(ctx, "dropping malformed update", "transport", transport, "error", err, "payload", string(payload))
		return err
	}

	if update.UpdateID != 0 {
		ctx = log.WithFields(ctx, "update_id", update.UpdateID)
		first, err := uc.deduper.MarkProcessed(ctx, update.UpdateID)
		if err != nil {
			log.Warnw(ctx, "update dedup unavailable", "error", err)
		} else if !first {
			log.Infow(ctx, "skipping redelivered update", "transport", transport)
			return nil
		}
	}

	return uc.messages.ProcessMessage(ctx, msg)
}

func (uc *updateUsecase) decode(payload []byte) (models.TelegramUpdate, models.IncomingMessage, error) {
	var update models.TelegramUpdate
	if err := json.Unmarshal(payload, &update); err != nil {
		return update, models.IncomingMessage{}, fmt.Errorf("%w: %w", models.ErrTransportAnomaly, err)
	}

	msg, err := update.IncomingMessage()
	if err != nil {
		return update, models.IncomingMessage{}, err
	}

	if err := uc.validate.Validate(msg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return update, models.IncomingMessage{}, fmt.Errorf("%w: %w", models.ErrTransportAnomaly, verrs)
		}
		return update, models.IncomingMessage{}, err
	}
	return update, msg, nil
}
