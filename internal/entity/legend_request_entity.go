package entity

import (
	"time"

	"github.com/google/uuid"
)

type LegendRequestStatus string

const (
	LegendRequestPending     LegendRequestStatus = "PENDING"
	LegendRequestApproved    LegendRequestStatus = "APPROVED"
	LegendRequestRejected    LegendRequestStatus = "REJECTED"
	LegendRequestImplemented LegendRequestStatus = "IMPLEMENTED"
)

type LegendRequest struct {
	Id                uuid.UUID
	UserId            uuid.UUID
	LegendName        string
	TimeEra           *string
	Profession        *string
	Nationality       *string
	WhyImportant      string
	SpecificQuestions *string
	AdditionalInfo    *string
	Status            LegendRequestStatus
	Votes             int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type LegendRequestVote struct {
	Id              uuid.UUID
	LegendRequestId uuid.UUID
	UserId          uuid.UUID
	CreatedAt       time.Time
}
