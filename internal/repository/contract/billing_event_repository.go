package contract

import (
	"context"

	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/repository/specification"
)

type BillingEventRepository interface {
	// Create returns gorm.ErrDuplicatedKey for an already recorded provider event.
	Create(ctx context.Context, event *entity.BillingEvent) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BillingEvent, error)
}
