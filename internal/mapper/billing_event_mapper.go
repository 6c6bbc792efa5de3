package mapper

import (
	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/model"

	"gorm.io/datatypes"
)

type BillingEventMapper struct{}

func NewBillingEventMapper() *BillingEventMapper {
	return &BillingEventMapper{}
}

func (m *BillingEventMapper) ToModel(e *entity.BillingEvent) *model.BillingEvent {
	if e == nil {
		return nil
	}
	return &model.BillingEvent{
		Id:              e.Id,
		Provider:        e.Provider,
		ProviderEventId: e.ProviderEventId,
		Type:            e.Type,
		Payload:         datatypes.JSON(e.Payload),
		ProcessedAt:     e.ProcessedAt,
	}
}

func (m *BillingEventMapper) ToEntity(e *model.BillingEvent) *entity.BillingEvent {
	if e == nil {
		return nil
	}
	return &entity.BillingEvent{
		Id:              e.Id,
		Provider:        e.Provider,
		ProviderEventId: e.ProviderEventId,
		Type:            e.Type,
		Payload:         []byte(e.Payload),
		ProcessedAt:     e.ProcessedAt,
	}
}
