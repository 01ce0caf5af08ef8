package notify

import (
	"fmt"

	"leagueops/internal/config"
	"leagueops/internal/logger"
	"leagueops/internal/models"
	"leagueops/internal/refund"
	"leagueops/internal/services/slack"

	"gorm.io/gorm"
)

// Notifier posts refund workflow updates to the review channel.
type Notifier struct {
	db     *gorm.DB
	client *slack.Client
	logger *logger.Logger
}

func New(cfg *config.Config, logger *logger.Logger, db *gorm.DB) *Notifier {
	return &Notifier{
		db:     db,
		client: slack.NewClient(cfg.SlackWebhookURL, cfg.SlackChannel, logger),
		logger: logger,
	}
}

// RefundRequested posts the approval message for a freshly computed
// refund request.
func (n *Notifier) RefundRequested(requestID string) error {
	var record models.RefundRequest
	if err := n.db.First(&record, "id = ?", requestID).Error; err != nil {
		return fmt.Errorf("failed to load refund request %s: %w", requestID, err)
	}

	msg := slack.BuildRefundApproval(slack.RefundApprovalInput{
		RequestID:    record.ID,
		OrderName:    record.OrderName,
		CustomerMail: record.Email,
		ProductTitle: record.ProductTitle,
		Mode:         refund.Mode(record.Mode),
		TotalPaid:    record.TotalPaid,
		Decision: refund.RefundDecision{
			AmountDue:         record.AmountDue,
			TierIndex:         record.TierIndex,
			Percentage:        record.Percentage,
			PenaltyPercentage: record.PenaltyPercentage,
			Explanation:       record.Explanation,
			IsFallback:        record.IsFallback,
		},
	})

	if err := n.client.PostMessage(msg); err != nil {
		return fmt.Errorf("failed to post approval message: %w", err)
	}

	n.logger.Info("Posted approval message for refund request %s (order %s)", record.ID, record.OrderName)
	return nil
}

// RefundResolved posts the confirmation once a reviewer decides.
func (n *Notifier) RefundResolved(requestID string) error {
	var record models.RefundRequest
	if err := n.db.First(&record, "id = ?", requestID).Error; err != nil {
		return fmt.Errorf("failed to load refund request %s: %w", requestID, err)
	}

	msg := slack.BuildRefundResolved(record.OrderName, record.Status, record.AmountDue)
	if err := n.client.PostMessage(msg); err != nil {
		return fmt.Errorf("failed to post resolution message: %w", err)
	}

	return nil
}
