// Package tradefeed publishes executed trades to Kafka as JSON trade
// frames, one message per trade, each of the form
// {"type":"trade","price","qty","makerOrderId","takerOrderId","timestamp"}.
package tradefeed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/muhammadchandra19/matchcore/pkg/config"
	"github.com/muhammadchandra19/matchcore/pkg/errors"
	"github.com/muhammadchandra19/matchcore/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// tradeFrame is the JSON shape published for each trade.
type tradeFrame struct {
	Type         string    `json:"type"`
	Price        uint64    `json:"price"`
	Quantity     uint64    `json:"qty"`
	MakerOrderID uint64    `json:"makerOrderId"`
	TakerOrderID uint64    `json:"takerOrderId"`
	Timestamp    time.Time `json:"timestamp"`
}

func toTradeFrame(t book.Trade) tradeFrame {
	return tradeFrame{
		Type:         "trade",
		Price:        t.Price,
		Quantity:     t.Quantity,
		MakerOrderID: uint64(t.MakerOrderID),
		TakerOrderID: uint64(t.TakerOrderID),
		Timestamp:    t.Timestamp,
	}
}

// Publisher writes executed trades to a Kafka topic.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

// NewPublisher constructs a Publisher against the configured broker/topic.
func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) *Publisher {
	return &Publisher{
		kafkaWriter: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.TradeTopic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: log,
	}
}

// Publish writes one Kafka message per trade. Intended as a
// dispatcher.TradeCallback: bound with SetTradeCallback so it runs
// synchronously on the dispatcher's worker, in the order trades occurred.
func (p *Publisher) Publish(trades []book.Trade) {
	ctx := context.Background()
	msgs := make([]kafka.Message, 0, len(trades))
	for _, t := range trades {
		frame := toTradeFrame(t)
		value, err := json.Marshal(frame)
		if err != nil {
			p.logger.ErrorContext(ctx, errors.NewTracer("encode trade frame failed").Wrap(err),
				logger.NewField("makerOrderId", frame.MakerOrderID),
				logger.NewField("takerOrderId", frame.TakerOrderID))
			continue
		}
		msgs = append(msgs, kafka.Message{Value: value})
	}

	if len(msgs) == 0 {
		return
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		p.logger.ErrorContext(ctx, errors.NewTracer("publish trades failed").Wrap(err),
			logger.NewField("count", len(msgs)))
	}
}

// Close flushes and closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
