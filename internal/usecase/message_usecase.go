package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
)

type messageUsecase struct {
	commands CommandUsecase
	sender   NotificationSender
}

func NewMessageUsecase(commands CommandUsecase, sender NotificationSender) MessageUsecase {
	return &messageUsecase{
		commands: commands,
		sender:   sender,
	}
}

func (uc *messageUsecase) ProcessMessage(ctx context.Context, msg models.IncomingMessage) error {
	log.Infof(ctx, "Processing message from user %s", msg.SenderID)

	notifications, handleErr := uc.commands.HandleMessage(ctx, msg)

	var sendErrs []error
	for _, n := range notifications {
		if err := uc.sender.SendMessage(ctx, n); err != nil {
			sendErrs = append(sendErrs, fmt.Errorf("failed to send notification: %w", err))
		}
	}

	if handleErr != nil {
		handleErr = fmt.Errorf("failed to handle message: %w", handleErr)
	}
	return errors.Join(append([]error{handleErr}, sendErrs...)...)
}
