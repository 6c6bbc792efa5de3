package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByLegend struct {
	Legend string
}

func (s ByLegend) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("legend = ?", s.Legend)
}

type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

type BySender struct {
	Sender string
}

func (s BySender) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("messages.sender = ?", s.Sender)
}

// MessagesOfUser restricts messages to conversations owned by UserID.
type MessagesOfUser struct {
	UserID uuid.UUID
}

func (s MessagesOfUser) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("conversations.user_id = ?", s.UserID)
}
