package processors

import (
	"leagueops/internal/config"
	"leagueops/internal/events"
	"leagueops/internal/logger"
	"leagueops/internal/worker/processors/notify"

	"gorm.io/gorm"
)

type EventProcessor struct {
	config   *config.Config
	logger   *logger.Logger
	notifier *notify.Notifier
}

func NewEventProcessor(cfg *config.Config, logger *logger.Logger, db *gorm.DB) *EventProcessor {
	return &EventProcessor{
		config:   cfg,
		logger:   logger,
		notifier: notify.New(cfg, logger, db),
	}
}

func (ep *EventProcessor) Process(event events.Event) error {
	switch event.Type {
	case events.TypeRefundRequested:
		return ep.notifier.RefundRequested(event.RequestID)
	case events.TypeRefundResolved:
		return ep.notifier.RefundResolved(event.RequestID)
	case events.TypeOrderCreated:
		// Orders are pulled on demand when a refund comes in; the webhook
		// event is only logged for traceability.
		ep.logger.Info("Order created: %s", event.OrderName)
		return nil
	case events.TypeProductScheduled:
		ep.logger.Debug("Product scheduled: %+v", event.Data)
		return nil
	default:
		ep.logger.Debug("Unhandled event type: %s", event.Type)
		return nil
	}
}
