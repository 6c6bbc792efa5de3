package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/pkg/apperror"
	"talk-to-legends-be/internal/pkg/logger"
	"talk-to-legends-be/internal/repository/specification"
	"talk-to-legends-be/internal/repository/unitofwork"
	"talk-to-legends-be/pkg/events"
	"talk-to-legends-be/pkg/persona"

	"github.com/google/uuid"
)

const recentConversationsLimit = 10

type IConversationService interface {
	List(ctx context.Context, userId uuid.UUID) (*dto.ConversationsResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, conversationId string) error
	GetMessages(ctx context.Context, userId uuid.UUID, conversationId string) (*dto.MessagesResponse, error)
	AddMessage(ctx context.Context, userId uuid.UUID, conversationId string, req *dto.CreateMessageRequest) (*dto.MessageResponse, error)
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
	registry   *persona.Registry
	usage      IUsageService
	publisher  events.Publisher
	logger     logger.ILogger
	now        func() time.Time
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	registry *persona.Registry,
	usage IUsageService,
	publisher events.Publisher,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
		registry:   registry,
		usage:      usage,
		publisher:  publisher,
		logger:     log,
		now:        time.Now,
	}
}

func DefaultConversationTitle(p persona.Persona) string {
	return fmt.Sprintf("Conversation with %s", p.Name)
}

func (s *conversationService) List(ctx context.Context, userId uuid.UUID) (*dto.ConversationsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: recentConversationsLimit},
	)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}

	res := &dto.ConversationsResponse{Conversations: make([]dto.ConversationResponse, 0, len(conversations))}
	for _, c := range conversations {
		latest, err := uow.MessageRepository().FindOne(ctx,
			specification.ByConversationID{ConversationID: c.Id},
			specification.OrderBy{Field: "created_at", Desc: true},
		)
		if err != nil {
			return nil, apperror.Internal("Internal server error", err)
		}
		if latest == nil {
			res.Conversations = append(res.Conversations, toConversationResponse(c))
			continue
		}
		res.Conversations = append(res.Conversations, toConversationResponse(c, latest))
	}
	return res, nil
}

func (s *conversationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	legendId := strings.TrimSpace(req.LegendId)
	if legendId == "" {
		return nil, apperror.Validation("Legend ID is required")
	}
	p, ok := s.registry.Lookup(legendId)
	if !ok {
		return nil, apperror.Validation("Unknown legend")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	decision, err := s.usage.CanCreateConversation(ctx, userId, user.Plan)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if !decision.Allowed {
		return nil, apperror.LimitExceeded(decision.Reason)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultConversationTitle(p)
	}

	conversation := &entity.Conversation{
		Id:     uuid.New(),
		UserId: userId,
		Legend: p.Id,
		Title:  title,
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.ConversationCreated, map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"user_id":         userId.String(),
		"legend":          p.Id,
	})

	res := toConversationResponse(conversation)
	return &res, nil
}

func (s *conversationService) Delete(ctx context.Context, userId uuid.UUID, conversationId string) error {
	id, err := uuid.Parse(conversationId)
	if err != nil {
		return apperror.NotFound("Conversation not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal("Internal server error", err)
	}
	defer uow.Rollback()

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return apperror.Internal("Internal server error", err)
	}
	if conversation == nil {
		return apperror.NotFound("Conversation not found")
	}

	if err := uow.MessageRepository().DeleteByConversationId(ctx, id); err != nil {
		return apperror.Internal("Internal server error", err)
	}
	if err := uow.ConversationRepository().Delete(ctx, id); err != nil {
		return apperror.Internal("Internal server error", err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal("Internal server error", err)
	}

	s.logger.Info("CONVERSATION", "Conversation deleted", map[string]interface{}{
		"conversation_id": id.String(),
		"user_id":         userId.String(),
	})
	return nil
}

func (s *conversationService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, conversationId string) (*entity.Conversation, error) {
	id, err := uuid.Parse(conversationId)
	if err != nil {
		return nil, apperror.NotFound("Conversation not found")
	}
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if conversation == nil {
		return nil, apperror.NotFound("Conversation not found")
	}
	return conversation, nil
}

func (s *conversationService) GetMessages(ctx context.Context, userId uuid.UUID, conversationId string) (*dto.MessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := s.findOwned(ctx, uow, userId, conversationId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}

	res := &dto.MessagesResponse{Messages: make([]dto.MessageResponse, 0, len(messages))}
	for _, m := range messages {
		res.Messages = append(res.Messages, toMessageResponse(m))
	}
	return res, nil
}

func parseSender(s string) (entity.Sender, bool) {
	switch entity.Sender(strings.ToUpper(strings.TrimSpace(s))) {
	case entity.SenderUser:
		return entity.SenderUser, true
	case entity.SenderLegend:
		return entity.SenderLegend, true
	default:
		return "", false
	}
}

func (s *conversationService) AddMessage(ctx context.Context, userId uuid.UUID, conversationId string, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	if strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.Sender) == "" {
		return nil, apperror.Validation("Content and sender are required")
	}
	sender, ok := parseSender(req.Sender)
	if !ok {
		return nil, apperror.Validation("Sender must be USER or LEGEND")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	defer uow.Rollback()

	conversation, err := s.findOwned(ctx, uow, userId, conversationId)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	message := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Content:        req.Content,
		Sender:         sender,
		CreatedAt:      now,
	}
	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if err := uow.ConversationRepository().Touch(ctx, conversation.Id, now); err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}

	res := toMessageResponse(message)
	return &res, nil
}
