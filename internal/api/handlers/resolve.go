package handlers

import (
	"errors"
	"time"

	"leagueops/internal/models"

	"gorm.io/gorm"
)

var errAlreadyResolved = errors.New("refund request already resolved")

// resolveRefundRequest transitions a pending request to APPROVED or DENIED.
// Both the REST endpoint and the Slack interaction callback go through here.
func resolveRefundRequest(db *gorm.DB, id, status, resolvedBy string) (*models.RefundRequest, error) {
	var record models.RefundRequest
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if record.Status != string(models.RefundStatusPending) {
		return &record, errAlreadyResolved
	}

	now := time.Now().UTC()
	record.Status = status
	record.ResolvedAt = &now
	if resolvedBy != "" {
		record.ResolvedBy = &resolvedBy
	}

	if err := db.Save(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}
