package model

import (
	"time"

	"github.com/google/uuid"
)

type LegendRequest struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId            uuid.UUID `gorm:"type:uuid;not null;index"`
	LegendName        string    `gorm:"type:varchar(255);not null"`
	TimeEra           *string   `gorm:"type:varchar(255)"`
	Profession        *string   `gorm:"type:varchar(255)"`
	Nationality       *string   `gorm:"type:varchar(255)"`
	WhyImportant      string    `gorm:"type:text;not null"`
	SpecificQuestions *string   `gorm:"type:text"`
	AdditionalInfo    *string   `gorm:"type:text"`
	Status            string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Votes             int       `gorm:"not null;default:0"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (LegendRequest) TableName() string {
	return "legend_requests"
}

type LegendRequestVote struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	LegendRequestId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_legend_vote_request_user,priority:1"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_legend_vote_request_user,priority:2"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (LegendRequestVote) TableName() string {
	return "legend_request_votes"
}
