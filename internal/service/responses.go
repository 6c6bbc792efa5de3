package service

import (
	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/entity"
)

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:               u.Id,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Name:             u.DisplayName,
		Location:         u.Location,
		Bio:              u.Bio,
		Plan:             string(u.Plan),
		CurrentPeriodEnd: u.CurrentPeriodEnd,
		CreatedAt:        u.CreatedAt,
	}
}

func toMessageResponse(m *entity.Message) dto.MessageResponse {
	return dto.MessageResponse{
		Id:             m.Id,
		ConversationId: m.ConversationId,
		Content:        m.Content,
		Sender:         string(m.Sender),
		CreatedAt:      m.CreatedAt,
	}
}

func toConversationResponse(c *entity.Conversation, messages ...*entity.Message) dto.ConversationResponse {
	res := dto.ConversationResponse{
		Id:        c.Id,
		LegendId:  c.Legend,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, toMessageResponse(m))
	}
	return res
}
