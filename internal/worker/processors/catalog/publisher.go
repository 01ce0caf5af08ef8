package catalog

import (
	"time"

	"leagueops/internal/config"
	"leagueops/internal/logger"
	"leagueops/internal/models"
	"leagueops/internal/services/shopify"

	"gorm.io/gorm"
)

// Publisher pushes scheduled products live once their publish time passes.
type Publisher struct {
	db     *gorm.DB
	client *shopify.Client
	logger *logger.Logger
}

func New(cfg *config.Config, logger *logger.Logger, db *gorm.DB) *Publisher {
	return &Publisher{
		db:     db,
		client: shopify.NewClient(cfg.ShopifyShopDomain, cfg.ShopifyAccessToken, cfg.RefundRetryAttempts, logger),
		logger: logger,
	}
}

// PublishDue publishes every scheduled product whose publish time has
// passed. Failures are marked on the record and retried on the next sweep
// only if the update itself fails.
func (p *Publisher) PublishDue() error {
	var due []models.ScheduledProduct
	err := p.db.
		Where("status = ? AND publish_at <= ?", string(models.ScheduleStatusScheduled), time.Now().UTC()).
		Find(&due).Error
	if err != nil {
		return err
	}

	for _, product := range due {
		now := time.Now().UTC()
		if err := p.client.PublishProduct(product.ExternalID, now); err != nil {
			p.logger.Error("Failed to publish product %d: %v", product.ExternalID, err)
			product.Status = string(models.ScheduleStatusFailed)
		} else {
			product.Status = string(models.ScheduleStatusPublished)
			product.PublishedAt = &now
			p.logger.Info("Published product %d (%s)", product.ExternalID, product.Title)
		}

		if err := p.db.Save(&product).Error; err != nil {
			p.logger.Error("Failed to update scheduled product %s: %v", product.ID, err)
		}
	}

	return nil
}
