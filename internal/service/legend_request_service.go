package service

import (
	"context"
	"errors"
	"strings"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/pkg/apperror"
	"talk-to-legends-be/internal/pkg/logger"
	"talk-to-legends-be/internal/repository/specification"
	"talk-to-legends-be/internal/repository/unitofwork"
	"talk-to-legends-be/pkg/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const popularRequestsLimit = 10

type ILegendRequestService interface {
	Submit(ctx context.Context, userId uuid.UUID, req *dto.CreateLegendRequestRequest) (*dto.CreateLegendRequestResponse, error)
	List(ctx context.Context, userId uuid.UUID) (*dto.LegendRequestsResponse, error)
	Vote(ctx context.Context, userId uuid.UUID, requestId string) (*dto.MessageOnlyResponse, error)
}

type legendRequestService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewLegendRequestService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, log logger.ILogger) ILegendRequestService {
	return &legendRequestService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// optional trims s and maps blank input to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *legendRequestService) Submit(ctx context.Context, userId uuid.UUID, req *dto.CreateLegendRequestRequest) (*dto.CreateLegendRequestResponse, error) {
	name := strings.TrimSpace(req.LegendName)
	why := strings.TrimSpace(req.WhyImportant)
	if name == "" || why == "" {
		return nil, apperror.Validation("Legend name and importance description are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.LegendRequestRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByLegendName{Name: name},
	)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if existing != nil {
		return nil, apperror.Validation("You have already requested this legend")
	}

	request := &entity.LegendRequest{
		Id:                uuid.New(),
		UserId:            userId,
		LegendName:        name,
		TimeEra:           optional(req.TimeEra),
		Profession:        optional(req.Profession),
		Nationality:       optional(req.Nationality),
		WhyImportant:      why,
		SpecificQuestions: optional(req.SpecificQuestions),
		AdditionalInfo:    optional(req.AdditionalInfo),
		Status:            entity.LegendRequestPending,
	}
	if err := uow.LegendRequestRepository().Create(ctx, request); err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.LegendRequestSubmitted, map[string]interface{}{
		"request_id":  request.Id.String(),
		"user_id":     userId.String(),
		"legend_name": request.LegendName,
	})

	return &dto.CreateLegendRequestResponse{
		Message: "Legend request submitted successfully",
		Request: dto.LegendRequestSummary{
			Id:         request.Id,
			LegendName: request.LegendName,
			Status:     string(request.Status),
		},
	}, nil
}

func (s *legendRequestService) List(ctx context.Context, userId uuid.UUID) (*dto.LegendRequestsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	own, err := uow.LegendRequestRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}

	popular, err := uow.LegendRequestRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.LegendRequestPending)},
		specification.OrderBy{Field: "votes", Desc: true},
		specification.OrderBy{Field: "created_at"},
		specification.Pagination{Limit: popularRequestsLimit},
	)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}

	res := &dto.LegendRequestsResponse{
		UserRequests:    make([]dto.UserLegendRequest, 0, len(own)),
		PopularRequests: make([]dto.PopularLegendRequest, 0, len(popular)),
	}
	for _, r := range own {
		res.UserRequests = append(res.UserRequests, dto.UserLegendRequest{
			Id:         r.Id,
			LegendName: r.LegendName,
			Status:     string(r.Status),
			CreatedAt:  r.CreatedAt,
			Votes:      r.Votes,
		})
	}
	for _, r := range popular {
		res.PopularRequests = append(res.PopularRequests, dto.PopularLegendRequest{
			Id:         r.Id,
			LegendName: r.LegendName,
			Profession: r.Profession,
			Votes:      r.Votes,
			CreatedAt:  r.CreatedAt,
		})
	}
	return res, nil
}

var errAlreadyVoted = apperror.Validation("You have already voted for this legend")

func (s *legendRequestService) Vote(ctx context.Context, userId uuid.UUID, requestId string) (*dto.MessageOnlyResponse, error) {
	id, err := uuid.Parse(requestId)
	if err != nil {
		return nil, apperror.NotFound("Legend request not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	defer uow.Rollback()

	repo := uow.LegendRequestRepository()
	request, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if request == nil {
		return nil, apperror.NotFound("Legend request not found")
	}

	voted, err := repo.CountVotes(ctx,
		specification.ByLegendRequestID{LegendRequestID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if voted > 0 {
		return nil, errAlreadyVoted
	}

	// The unique index decides when two votes race past the count above.
	if err := repo.CreateVote(ctx, &entity.LegendRequestVote{
		Id:              uuid.New(),
		LegendRequestId: id,
		UserId:          userId,
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errAlreadyVoted
		}
		return nil, apperror.Internal("Internal server error", err)
	}
	if err := repo.IncrementVotes(ctx, id); err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if err := uow.Commit(); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errAlreadyVoted
		}
		return nil, apperror.Internal("Internal server error", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.LegendRequestVoted, map[string]interface{}{
		"request_id":  id.String(),
		"user_id":     userId.String(),
		"legend_name": request.LegendName,
		"votes":       request.Votes + 1,
	})

	return &dto.MessageOnlyResponse{Message: "Vote recorded successfully"}, nil
}
