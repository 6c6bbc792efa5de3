package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FirstName    *string   `gorm:"type:varchar(255)"`
	LastName     *string   `gorm:"type:varchar(255)"`
	DisplayName  *string   `gorm:"type:varchar(255)"`
	Location     *string   `gorm:"type:varchar(255)"`
	Bio          *string   `gorm:"type:text"`
	Plan         string    `gorm:"type:varchar(20);not null;default:'FREE'"`

	// Mirrored from the payment provider
	BillingCustomerId *string `gorm:"type:varchar(255);index"`
	SubscriptionId    *string `gorm:"type:varchar(255);index"`
	PriceId           *string `gorm:"type:varchar(255)"`
	CurrentPeriodEnd  *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
