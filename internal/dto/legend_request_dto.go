package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLegendRequestRequest struct {
	LegendName        string  `json:"legendName"`
	TimeEra           *string `json:"timeEra"`
	Profession        *string `json:"profession"`
	Nationality       *string `json:"nationality"`
	WhyImportant      string  `json:"whyImportant"`
	SpecificQuestions *string `json:"specificQuestions"`
	AdditionalInfo    *string `json:"additionalInfo"`
}

type LegendRequestSummary struct {
	Id         uuid.UUID `json:"id"`
	LegendName string    `json:"legendName"`
	Status     string    `json:"status"`
}

type CreateLegendRequestResponse struct {
	Message string               `json:"message"`
	Request LegendRequestSummary `json:"request"`
}

type UserLegendRequest struct {
	Id         uuid.UUID `json:"id"`
	LegendName string    `json:"legendName"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	Votes      int       `json:"votes"`
}

type PopularLegendRequest struct {
	Id         uuid.UUID `json:"id"`
	LegendName string    `json:"legendName"`
	Profession *string   `json:"profession"`
	Votes      int       `json:"votes"`
	CreatedAt  time.Time `json:"createdAt"`
}

type LegendRequestsResponse struct {
	UserRequests    []UserLegendRequest    `json:"userRequests"`
	PopularRequests []PopularLegendRequest `json:"popularRequests"`
}

type MessageOnlyResponse struct {
	Message string `json:"message"`
}
