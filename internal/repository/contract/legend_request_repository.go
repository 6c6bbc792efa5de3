package contract

import (
	"context"

	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LegendRequestRepository interface {
	Create(ctx context.Context, request *entity.LegendRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LegendRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LegendRequest, error)
	// IncrementVotes adds one vote atomically in the database.
	IncrementVotes(ctx context.Context, id uuid.UUID) error

	// CreateVote returns gorm.ErrDuplicatedKey when the user already voted.
	CreateVote(ctx context.Context, vote *entity.LegendRequestVote) error
	CountVotes(ctx context.Context, specs ...specification.Specification) (int64, error)
}
