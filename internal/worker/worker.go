package worker

import (
	"context"
	"time"

	"leagueops/internal/config"
	"leagueops/internal/events"
	"leagueops/internal/logger"
	"leagueops/internal/worker/processors"
	"leagueops/internal/worker/processors/catalog"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

const publishSweepInterval = time.Minute

type Worker struct {
	config    *config.Config
	logger    *logger.Logger
	reader    *kafka.Reader
	processor *processors.EventProcessor
	catalog   *catalog.Publisher
	done      chan struct{}
}

func New(cfg *config.Config, logger *logger.Logger, db *gorm.DB) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        "leagueops-worker",
		Topic:          events.Topic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:    cfg,
		logger:    logger,
		reader:    reader,
		processor: processors.NewEventProcessor(cfg, logger, db),
		catalog:   catalog.New(cfg, logger, db),
		done:      make(chan struct{}),
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for events...")

	go w.sweepLoop()

	for {
		select {
		case <-w.done:
			return
		default:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			if err == context.DeadlineExceeded {
				continue
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		w.logger.Debug("Received message: %s", string(message.Value))

		var event events.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		if err := w.processor.Process(event); err != nil {
			w.logger.Error("Failed to process event %s: %v", event.Type, err)
			continue
		}

		w.logger.Debug("Event %s processed successfully", event.Type)
	}
}

// sweepLoop publishes due products on a fixed interval.
func (w *Worker) sweepLoop() {
	ticker := time.NewTicker(publishSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			if err := w.catalog.PublishDue(); err != nil {
				w.logger.Error("Publish sweep failed: %v", err)
			}
		}
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	close(w.done)
	w.reader.Close()
}
