package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/pkg/apperror"
	"talk-to-legends-be/internal/pkg/logger"
	"talk-to-legends-be/internal/repository/specification"
	"talk-to-legends-be/internal/repository/unitofwork"
	"talk-to-legends-be/pkg/events"
	"talk-to-legends-be/pkg/lock"
	"talk-to-legends-be/pkg/persona"
	"talk-to-legends-be/pkg/reply"

	"github.com/google/uuid"
)

// The lock is held across generation, which may take two provider timeouts.
const defaultChatLockWait = 2 * time.Minute

type IChatService interface {
	Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	uowFactory   unitofwork.RepositoryFactory
	registry     *persona.Registry
	orchestrator *reply.Orchestrator
	usage        IUsageService
	locker       lock.Locker
	publisher    events.Publisher
	logger       logger.ILogger
	lockWait     time.Duration
	now          func() time.Time
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	registry *persona.Registry,
	orchestrator *reply.Orchestrator,
	usage IUsageService,
	locker lock.Locker,
	publisher events.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:   uowFactory,
		registry:     registry,
		orchestrator: orchestrator,
		usage:        usage,
		locker:       locker,
		publisher:    publisher,
		logger:       log,
		lockWait:     defaultChatLockWait,
		now:          time.Now,
	}
}

func (s *chatService) Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	legend := strings.TrimSpace(req.Legend)
	text := strings.TrimSpace(req.Message)
	if legend == "" || text == "" {
		return nil, apperror.Validation("Legend and message are required")
	}
	p, ok := s.registry.Lookup(legend)
	if !ok {
		return nil, apperror.Validation("Unknown legend")
	}

	// Gate check, generation and persistence run under one per-user lock.
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	release, err := s.locker.Acquire(lockCtx, "chat:"+userId.String())
	cancel()
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, apperror.TooManyRequests("Your previous message is still being answered. Please try again.")
		}
		return nil, apperror.Internal("Internal server error", err)
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	conversation, err := s.resolveConversation(ctx, uow, user, p, req.ConversationId)
	if err != nil {
		return nil, err
	}
	isNew := conversation.Id == uuid.Nil

	decision, err := s.usage.CanSendMessage(ctx, userId, user.Plan)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if !decision.Allowed {
		return nil, apperror.LimitExceeded(decision.Reason)
	}

	askedAt := s.now().UTC()
	result := s.orchestrator.Reply(ctx, p.Id, text)
	answeredAt := s.now().UTC()
	if !answeredAt.After(askedAt) {
		answeredAt = askedAt.Add(time.Microsecond)
	}

	if err := s.persist(ctx, conversation, text, result.Text, askedAt, answeredAt); err != nil {
		s.logger.Error("CHAT", "Failed to save exchange", map[string]interface{}{
			"user_id": userId.String(),
			"legend":  p.Id,
			"error":   err.Error(),
		})
		return nil, apperror.Internal("Failed to save conversation", err)
	}

	if isNew {
		publishEvent(ctx, s.publisher, s.logger, events.ConversationCreated, map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"user_id":         userId.String(),
			"legend":          p.Id,
		})
	}

	s.logger.Info("CHAT", "Reply generated", map[string]interface{}{
		"user_id":         userId.String(),
		"legend":          p.Id,
		"conversation_id": conversation.Id.String(),
		"tier":            string(result.Tier),
		"shortened":       result.Shortened,
	})

	return &dto.ChatResponse{
		Response:       result.Text,
		ConversationId: conversation.Id.String(),
	}, nil
}

// resolveConversation returns the target conversation. A conversation with a nil id
// is new and is inserted together with the first exchange.
func (s *chatService) resolveConversation(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, p persona.Persona, conversationId string) (*entity.Conversation, error) {
	if strings.TrimSpace(conversationId) != "" {
		id, err := uuid.Parse(strings.TrimSpace(conversationId))
		if err != nil {
			return nil, apperror.NotFound("Conversation not found")
		}
		conversation, err := uow.ConversationRepository().FindOne(ctx,
			specification.ByID{ID: id},
			specification.UserOwnedBy{UserID: user.Id},
		)
		if err != nil {
			return nil, apperror.Internal("Internal server error", err)
		}
		if conversation == nil || conversation.Legend != p.Id {
			return nil, apperror.NotFound("Conversation not found")
		}
		return conversation, nil
	}

	existing, err := uow.ConversationRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.ByLegend{Legend: p.Id},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if existing != nil {
		return existing, nil
	}

	decision, err := s.usage.CanCreateConversation(ctx, user.Id, user.Plan)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if !decision.Allowed {
		return nil, apperror.LimitExceeded(decision.Reason)
	}

	return &entity.Conversation{
		UserId: user.Id,
		Legend: p.Id,
		Title:  DefaultConversationTitle(p),
	}, nil
}

func (s *chatService) persist(ctx context.Context, conversation *entity.Conversation, userText, legendText string, askedAt, answeredAt time.Time) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if conversation.Id == uuid.Nil {
		if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
			return err
		}
	}

	if err := uow.MessageRepository().Create(ctx, &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Content:        userText,
		Sender:         entity.SenderUser,
		CreatedAt:      askedAt,
	}); err != nil {
		return err
	}
	if err := uow.MessageRepository().Create(ctx, &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Content:        legendText,
		Sender:         entity.SenderLegend,
		CreatedAt:      answeredAt,
	}); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Touch(ctx, conversation.Id, answeredAt); err != nil {
		return err
	}
	return uow.Commit()
}
