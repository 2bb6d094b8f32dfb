package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/nguyentranbao-ct/price-bot/internal/usecase"
)

// updateHandler feeds Telegram updates published on the topic into the same
// path as the webhook.
type updateHandler struct {
	updateUsecase usecase.UpdateUsecase
}

func NewMessageHandler(updateUsecase usecase.UpdateUsecase) MessageHandler {
	return &updateHandler{
		updateUsecase: updateUsecase,
	}
}

func (h *updateHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	return h.updateUsecase.ProcessUpdate(ctx, usecase.TransportKafka, msg.Value)
}
