package entity

import (
	"time"

	"github.com/google/uuid"
)

type BillingEvent struct {
	Id              uuid.UUID
	Provider        string
	ProviderEventId string
	Type            string
	Payload         []byte
	ProcessedAt     time.Time
}
