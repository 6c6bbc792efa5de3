package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	Id               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	FirstName        *string    `json:"firstName"`
	LastName         *string    `json:"lastName"`
	Name             *string    `json:"name"`
	Location         *string    `json:"location"`
	Bio              *string    `json:"bio"`
	Plan             string     `json:"plan"`
	CurrentPeriodEnd *time.Time `json:"currentPeriodEnd,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type ProfileCount struct {
	Conversations int64 `json:"conversations"`
}

type ProfileResponse struct {
	UserResponse
	Count ProfileCount `json:"_count"`
}

type UpdateProfileRequest struct {
	FirstName string  `json:"firstName" validate:"max=100"`
	LastName  string  `json:"lastName" validate:"max=100"`
	Location  *string `json:"location" validate:"omitempty,max=255"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
}

type UserEnvelope[T any] struct {
	User T `json:"user"`
}
