package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BillingEvent records every processed webhook so redeliveries are skipped.
type BillingEvent struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Provider        string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_billing_events_provider_event,priority:1"`
	ProviderEventId string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_billing_events_provider_event,priority:2"`
	Type            string         `gorm:"type:varchar(100);not null"`
	Payload         datatypes.JSON `gorm:"type:jsonb"`
	ProcessedAt     time.Time      `gorm:"autoCreateTime"`
}

func (BillingEvent) TableName() string {
	return "billing_events"
}
