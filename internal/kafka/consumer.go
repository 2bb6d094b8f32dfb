package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nguyentranbao-ct/price-bot/internal/config"
	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/pkg/logger"
	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
	"github.com/nguyentranbao-ct/price-bot/pkg/util"
)

type kafkaConsumer struct {
	reader         messageReader
	topic          string
	groupID        string
	metrics        *prometheus.HistogramVec
	consumeTimeout time.Duration
	messageHandler MessageHandler
	workerPool     *workerpool.WorkerPool
	loopDone       chan struct{}
}

// NewConsumer returns a no-op consumer when Kafka is disabled.
func NewConsumer(cfg *config.KafkaConfig, handler MessageHandler) (Consumer, error) {
	if !cfg.Enabled {
		return &noopConsumer{}, nil
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		StartOffset: kafka.LastOffset,
	})
	return newConsumer(reader, cfg, handler)
}

func newConsumer(reader messageReader, cfg *config.KafkaConfig, handler MessageHandler) (*kafkaConsumer, error) {
	metrics, err := util.GetHistogramVec("kafka_messages_consumed", "status", "topic", "group")
	if err != nil {
		return nil, fmt.Errorf("get histogram vec: %w", err)
	}

	return &kafkaConsumer{
		reader:         reader,
		topic:          cfg.Topic,
		groupID:        cfg.GroupID,
		metrics:        metrics,
		consumeTimeout: cfg.Timeout,
		messageHandler: handler,
		workerPool:     workerpool.New(max(cfg.MaxWorkers, 1)),
		loopDone:       make(chan struct{}),
	}, nil
}

// Start blocks until ctx is cancelled or the reader is closed.
func (c *kafkaConsumer) Start(ctx context.Context) error {
	log.Infof(ctx, "Starting Kafka consumer for topic: %s", c.topic)
	defer close(c.loopDone)

	for ctx.Err() == nil {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorw(ctx, "Error fetching message", "error", err)
			continue
		}

		// in-flight records finish on shutdown, bounded by consumeTimeout
		msgCtx := context.WithoutCancel(ctx)
		c.workerPool.Submit(func() {
			c.processMessage(msgCtx, msg)
			if err := c.reader.CommitMessages(msgCtx, msg); err != nil {
				log.Errorw(msgCtx, "Failed to commit message", "error", err, "offset", msg.Offset)
			}
		})
	}
	return nil
}

// Stop closes the reader, waits for the fetch loop to exit and then drains
// in-flight records.
func (c *kafkaConsumer) Stop(ctx context.Context) error {
	log.Infof(ctx, "Stopping Kafka consumer")
	err := c.reader.Close()
	select {
	case <-c.loopDone:
	case <-ctx.Done():
		return ctx.Err()
	}
	c.workerPool.StopWait()
	return err
}

func (c *kafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) {
	start := time.Now()
	lagMs := start.Sub(msg.Time).Milliseconds()

	err := c.handle(ctx, msg)
	duration := time.Since(start)

	code := getCode(err)
	content := "success"
	if err != nil {
		content = err.Error()
	}

	log.Logw(ctx, getLogLevel(code), content,
		"code", code.String(),
		"duration_ms", duration.Milliseconds(),
		"topic", msg.Topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
		"lag_ms", lagMs,
		"key", string(msg.Key),
		"value", json.RawMessage(msg.Value),
	)

	c.metrics.
		WithLabelValues(code.String(), msg.Topic, c.groupID).
		Observe(duration.Seconds())
}

func (c *kafkaConsumer) handle(msgCtx context.Context, msg kafka.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			length := runtime.Stack(stack, false)
			err = fmt.Errorf("PANIC RECOVER: %+v / %s", r, string(stack[:length]))
		}
	}()

	ctx, cancel := context.WithTimeout(msgCtx, c.consumeTimeout)
	defer cancel()

	return c.messageHandler.HandleMessage(ctx, msg)
}

func getCode(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, models.ErrTransportAnomaly):
		return codes.InvalidArgument
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	}
	var st interface{ GRPCStatus() *status.Status }
	if errors.As(err, &st) {
		return st.GRPCStatus().Code()
	}
	return codes.Unknown
}

func getLogLevel(code codes.Code) logger.Level {
	switch code {
	case codes.OK:
		return logger.InfoLevel
	case codes.Canceled,
		codes.InvalidArgument,
		codes.NotFound,
		codes.AlreadyExists,
		codes.PermissionDenied,
		codes.Unauthenticated,
		codes.ResourceExhausted,
		codes.FailedPrecondition,
		codes.Aborted,
		codes.Unimplemented,
		codes.OutOfRange:
		return logger.WarnLevel
	default:
		return logger.ErrorLevel
	}
}

type noopConsumer struct{}

func (n *noopConsumer) Start(ctx context.Context) error {
	log.Infof(ctx, "Kafka consumer is disabled")
	return nil
}

func (n *noopConsumer) Stop(context.Context) error {
	return nil
}
