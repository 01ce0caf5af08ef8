package events

import (
	"context"
	"time"

	"leagueops/internal/config"
	"leagueops/internal/logger"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

const Topic = "refund-events"

// Event types flowing between the API and the worker.
const (
	TypeRefundRequested  = "refund.requested"
	TypeRefundResolved   = "refund.resolved"
	TypeOrderCreated     = "order.created"
	TypeProductScheduled = "product.scheduled"
)

type Event struct {
	Type      string                 `json:"type"`
	RequestID string                 `json:"request_id,omitempty"`
	OrderName string                 `json:"order_name,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Publisher writes events to the shared refund-events topic.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(cfg *config.Config, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers),
		Topic:        Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

func (p *Publisher) Publish(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Type),
		Value: value,
	}); err != nil {
		return err
	}

	p.logger.Debug("Published event %s", event.Type)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
