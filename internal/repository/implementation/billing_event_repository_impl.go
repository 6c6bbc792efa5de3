package implementation

import (
	"context"
	"errors"

	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/mapper"
	"talk-to-legends-be/internal/model"
	"talk-to-legends-be/internal/repository/contract"
	"talk-to-legends-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillingEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BillingEventMapper
}

func NewBillingEventRepository(db *gorm.DB) contract.BillingEventRepository {
	return &BillingEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewBillingEventMapper(),
	}
}

func (r *BillingEventRepositoryImpl) Create(ctx context.Context, event *entity.BillingEvent) error {
	if event.Id == uuid.Nil {
		event.Id = uuid.New()
	}
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *BillingEventRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BillingEvent, error) {
	var m model.BillingEvent
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
