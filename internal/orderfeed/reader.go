// Package orderfeed consumes Add/Cancel commands off a Kafka topic and
// submits them to a dispatcher.Dispatcher, tracking the consumer offset so
// the engine can resume where it left off after a restart.
package orderfeed

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/muhammadchandra19/matchcore/internal/dispatcher"
	"github.com/muhammadchandra19/matchcore/pkg/config"
	"github.com/muhammadchandra19/matchcore/pkg/errors"
	"github.com/muhammadchandra19/matchcore/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader consumes order commands from Kafka and drives a Dispatcher.
type Reader struct {
	kafkaReader *kafka.Reader
	dispatcher  *dispatcher.Dispatcher
	logger      *logger.Logger
	lastOffset  atomic.Int64
}

// LastOffset returns the offset of the most recently consumed message, or
// -1 if none has been consumed yet. Used to stamp snapshots so a restart
// knows where to resume.
func (r *Reader) LastOffset() int64 {
	return r.lastOffset.Load()
}

// NewReader constructs a Reader against the configured broker/topic.
func NewReader(cfg config.KafkaConfig, d *dispatcher.Dispatcher, log *logger.Logger) *Reader {
	r := &Reader{
		kafkaReader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.Brokers,
			Topic:       cfg.OrderTopic,
			GroupID:     cfg.GroupID,
			Partition:   0,
			MinBytes:    1,
			MaxBytes:    10e6,
			StartOffset: kafka.LastOffset,
		}),
		dispatcher: d,
		logger:     log,
	}
	r.lastOffset.Store(-1)
	return r
}

// Run reads commands until ctx is cancelled, then closes the Kafka reader,
// submitting each decoded Add/Cancel to the dispatcher. A read error or a
// malformed message is logged and skipped rather than killing the loop.
func (r *Reader) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			if err := r.kafkaReader.Close(); err != nil {
				r.logger.ErrorContext(ctx, errors.TracerFromError(err).Wrap(err), logger.NewField("operation", "close"))
			}
			return
		default:
		}

		msg, err := r.kafkaReader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			r.logger.ErrorContext(ctx, errors.NewTracer("kafka read failed").Wrap(err), logger.NewField("operation", "ReadMessage"))
			time.Sleep(100 * time.Millisecond)
			continue
		}

		var cmd Command
		if err := json.Unmarshal(msg.Value, &cmd); err != nil {
			r.logger.ErrorContext(ctx, errors.NewTracer("decode order command failed").Wrap(err), logger.NewField("offset", msg.Offset))
			continue
		}

		r.apply(ctx, cmd)
		r.lastOffset.Store(msg.Offset)
	}
}

func (r *Reader) apply(ctx context.Context, cmd Command) {
	switch cmd.Type {
	case "add":
		order, ok := cmd.toOrder()
		if !ok {
			r.logger.WarnContext(ctx, "rejected malformed add command", logger.NewField("orderId", cmd.OrderID))
			return
		}
		r.dispatcher.SubmitAdd(order)
	case "cancel":
		r.dispatcher.SubmitCancel(book.OrderID(cmd.OrderID))
	default:
		r.logger.WarnContext(ctx, "unknown command type", logger.NewField("type", cmd.Type))
	}
}
