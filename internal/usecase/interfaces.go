package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/internal/retailer"
)

type URLClassifier interface {
	Classify(raw string) (retailer.Classification, error)
}

type ProductExtractor interface {
	Extract(r models.Retailer, markup string) (retailer.Details, error)
}

type NotificationSender interface {
	SendMessage(ctx context.Context, n models.Notification) error
}

// StructValidator checks struct tags. echo's Validator has the same shape.
type StructValidator interface {
	Validate(i any) error
}

type MessageUsecase interface {
	// ProcessMessage routes msg and delivers every resulting notification.
	ProcessMessage(ctx context.Context, msg models.IncomingMessage) error
}
