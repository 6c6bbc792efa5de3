package entity

import (
	"time"

	"talk-to-legends-be/pkg/plan"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	DisplayName  *string
	Location     *string
	Bio          *string
	Plan         plan.Tier

	BillingCustomerId *string
	SubscriptionId    *string
	PriceId           *string
	CurrentPeriodEnd  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name is the best human-readable name available.
func (u *User) Name() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	if len(parts) == 0 {
		return u.Email
	}
	name := parts[0]
	if len(parts) == 2 {
		name += " " + parts[1]
	}
	return name
}

// ClearBilling resets the subscription mirror. The customer id is kept.
func (u *User) ClearBilling() {
	u.SubscriptionId = nil
	u.PriceId = nil
	u.CurrentPeriodEnd = nil
}
