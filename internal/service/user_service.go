package service

import (
	"context"
	"strings"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/pkg/apperror"
	"talk-to-legends-be/internal/repository/specification"
	"talk-to-legends-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	count, err := uow.ConversationRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}

	return &dto.ProfileResponse{
		UserResponse: toUserResponse(user),
		Count:        dto.ProfileCount{Conversations: count},
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	name := strings.TrimSpace(first + " " + last)
	user.FirstName = &first
	user.LastName = &last
	user.DisplayName = &name
	user.Location = optional(req.Location)
	user.Bio = optional(req.Bio)

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}

	res := toUserResponse(user)
	return &res, nil
}
