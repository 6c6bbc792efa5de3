package service

import (
	"context"
	"fmt"
	"time"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/pkg/apperror"
	"talk-to-legends-be/internal/repository/specification"
	"talk-to-legends-be/internal/repository/unitofwork"
	"talk-to-legends-be/pkg/plan"

	"github.com/google/uuid"
)

type IUsageService interface {
	GetUsageStats(ctx context.Context, userId uuid.UUID) (*dto.UsageStats, error)
	CanCreateConversation(ctx context.Context, userId uuid.UUID, tier plan.Tier) (dto.Decision, error)
	CanSendMessage(ctx context.Context, userId uuid.UUID, tier plan.Tier) (dto.Decision, error)
	GetUsage(ctx context.Context, userId uuid.UUID) (*dto.UsageResponse, error)
}

type usageService struct {
	uowFactory unitofwork.RepositoryFactory
	location   *time.Location
	now        func() time.Time
}

func NewUsageService(uowFactory unitofwork.RepositoryFactory, location *time.Location) IUsageService {
	if location == nil {
		location = time.Local
	}
	return &usageService{
		uowFactory: uowFactory,
		location:   location,
		now:        time.Now,
	}
}

// DayWindow returns the UTC bounds of the calendar day containing now in loc.
func DayWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC()
}

func (s *usageService) GetUsageStats(ctx context.Context, userId uuid.UUID) (*dto.UsageStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	from, to := DayWindow(s.now(), s.location)

	conversationsToday, err := uow.ConversationRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.CreatedBetween{From: from, To: to},
	)
	if err != nil {
		return nil, fmt.Errorf("counting today's conversations: %w", err)
	}

	messagesToday, err := uow.MessageRepository().Count(ctx,
		specification.MessagesOfUser{UserID: userId},
		specification.BySender{Sender: string(entity.SenderUser)},
		specification.CreatedBetween{Column: "messages.created_at", From: from, To: to},
	)
	if err != nil {
		return nil, fmt.Errorf("counting today's messages: %w", err)
	}

	total, err := uow.ConversationRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, fmt.Errorf("counting conversations: %w", err)
	}

	return &dto.UsageStats{
		ConversationsToday:       int(conversationsToday),
		MessagesToday:            int(messagesToday),
		TotalActiveConversations: int(total),
	}, nil
}

func (s *usageService) CanCreateConversation(ctx context.Context, userId uuid.UUID, tier plan.Tier) (dto.Decision, error) {
	limits := plan.For(tier)
	usage, err := s.GetUsageStats(ctx, userId)
	if err != nil {
		return dto.Decision{}, err
	}
	return CheckConversation(*usage, limits), nil
}

func (s *usageService) CanSendMessage(ctx context.Context, userId uuid.UUID, tier plan.Tier) (dto.Decision, error) {
	limits := plan.For(tier)
	usage, err := s.GetUsageStats(ctx, userId)
	if err != nil {
		return dto.Decision{}, err
	}
	return CheckMessage(*usage, limits), nil
}

func (s *usageService) GetUsage(ctx context.Context, userId uuid.UUID) (*dto.UsageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	limits := plan.For(user.Plan)
	usage, err := s.GetUsageStats(ctx, userId)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}

	return &dto.UsageResponse{
		Plan:      user.Plan,
		Limits:    limits,
		Usage:     *usage,
		Remaining: Remaining(*usage, limits),
	}, nil
}

// CheckConversation applies the daily cap before the active cap.
func CheckConversation(usage dto.UsageStats, limits plan.Limits) dto.Decision {
	if plan.Exceeded(usage.ConversationsToday, limits.ConversationsPerDay) {
		return dto.Decision{
			Reason: fmt.Sprintf("You've reached your daily limit of %d conversations. Upgrade to Pro for unlimited conversations.", limits.ConversationsPerDay),
		}
	}
	if plan.Exceeded(usage.TotalActiveConversations, limits.ActiveConversations) {
		return dto.Decision{
			Reason: fmt.Sprintf("You've reached your limit of %d active conversations. Delete some conversations or upgrade your plan.", limits.ActiveConversations),
		}
	}
	return dto.Decision{Allowed: true}
}

func CheckMessage(usage dto.UsageStats, limits plan.Limits) dto.Decision {
	if plan.Exceeded(usage.MessagesToday, limits.MessagesPerDay) {
		return dto.Decision{
			Reason: fmt.Sprintf("You've reached your daily limit of %d messages. Upgrade to Pro for unlimited messages.", limits.MessagesPerDay),
		}
	}
	return dto.Decision{Allowed: true}
}

func Remaining(usage dto.UsageStats, limits plan.Limits) dto.RemainingUsage {
	return dto.RemainingUsage{
		ConversationsRemaining:       plan.Remaining(usage.ConversationsToday, limits.ConversationsPerDay),
		MessagesRemaining:            plan.Remaining(usage.MessagesToday, limits.MessagesPerDay),
		ActiveConversationsRemaining: plan.Remaining(usage.TotalActiveConversations, limits.ActiveConversations),
	}
}
