package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	LegendId string `json:"legendId"`
	Title    string `json:"title"`
}

type CreateMessageRequest struct {
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

type MessageResponse struct {
	Id             uuid.UUID `json:"id"`
	ConversationId uuid.UUID `json:"conversationId"`
	Content        string    `json:"content"`
	Sender         string    `json:"sender"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ConversationResponse struct {
	Id        uuid.UUID `json:"id"`
	LegendId  string    `json:"legendId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// Messages holds the latest message only in list responses.
	Messages []MessageResponse `json:"messages"`
}

type ConversationsResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

type ConversationEnvelope struct {
	Conversation ConversationResponse `json:"conversation"`
}

type MessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

type MessageEnvelope struct {
	Message MessageResponse `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
