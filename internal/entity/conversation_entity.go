package entity

import (
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser   Sender = "USER"
	SenderLegend Sender = "LEGEND"
)

type Conversation struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Legend    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Content        string
	Sender         Sender
	CreatedAt      time.Time
}
