package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduledProduct struct {
	ID          string     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ExternalID  int64      `json:"external_id" gorm:"not null"`
	Title       string     `json:"title" gorm:"not null"`
	SKU         *string    `json:"sku"`
	Price       float64    `json:"price" gorm:"type:decimal(10,2)"`
	PublishAt   time.Time  `json:"publish_at"`
	Status      string     `json:"status" gorm:"default:SCHEDULED"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "SCHEDULED"
	ScheduleStatusPublished ScheduleStatus = "PUBLISHED"
	ScheduleStatusFailed    ScheduleStatus = "FAILED"
)

func (p *ScheduledProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
