package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

type Consumer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// MessageHandler processes one record. The returned error only selects the log
// level and metric status; the record is committed either way.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg kafka.Message) error
}

// messageReader is the part of *kafka.Reader the consumer drives.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
