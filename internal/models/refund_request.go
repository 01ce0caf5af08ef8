package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefundRequest struct {
	ID                string     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID           string     `json:"order_id" gorm:"not null"`
	OrderName         string     `json:"order_name" gorm:"not null"`
	Email             string     `json:"email"`
	ProductTitle      string     `json:"product_title"`
	Mode              string     `json:"mode" gorm:"not null"`
	TotalPaid         float64    `json:"total_paid" gorm:"type:decimal(10,2)"`
	AmountDue         float64    `json:"amount_due" gorm:"type:decimal(10,2)"`
	TierIndex         int        `json:"tier_index"`
	Percentage        float64    `json:"percentage"`
	PenaltyPercentage float64    `json:"penalty_percentage"`
	Explanation       string     `json:"explanation"`
	IsFallback        bool       `json:"is_fallback"`
	Status            string     `json:"status" gorm:"default:PENDING"`
	ResolvedBy        *string    `json:"resolved_by"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	ResolvedAt        *time.Time `json:"resolved_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type RefundStatus string

const (
	RefundStatusPending  RefundStatus = "PENDING"
	RefundStatusApproved RefundStatus = "APPROVED"
	RefundStatusDenied   RefundStatus = "DENIED"
)

func (r *RefundRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
