package mapper

import (
	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/model"
)

type LegendRequestMapper struct{}

func NewLegendRequestMapper() *LegendRequestMapper {
	return &LegendRequestMapper{}
}

func (m *LegendRequestMapper) ToEntity(r *model.LegendRequest) *entity.LegendRequest {
	if r == nil {
		return nil
	}
	return &entity.LegendRequest{
		Id:                r.Id,
		UserId:            r.UserId,
		LegendName:        r.LegendName,
		TimeEra:           r.TimeEra,
		Profession:        r.Profession,
		Nationality:       r.Nationality,
		WhyImportant:      r.WhyImportant,
		SpecificQuestions: r.SpecificQuestions,
		AdditionalInfo:    r.AdditionalInfo,
		Status:            entity.LegendRequestStatus(r.Status),
		Votes:             r.Votes,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (m *LegendRequestMapper) ToModel(r *entity.LegendRequest) *model.LegendRequest {
	if r == nil {
		return nil
	}
	status := r.Status
	if status == "" {
		status = entity.LegendRequestPending
	}
	return &model.LegendRequest{
		Id:                r.Id,
		UserId:            r.UserId,
		LegendName:        r.LegendName,
		TimeEra:           r.TimeEra,
		Profession:        r.Profession,
		Nationality:       r.Nationality,
		WhyImportant:      r.WhyImportant,
		SpecificQuestions: r.SpecificQuestions,
		AdditionalInfo:    r.AdditionalInfo,
		Status:            string(status),
		Votes:             r.Votes,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (m *LegendRequestMapper) ToEntities(models []*model.LegendRequest) []*entity.LegendRequest {
	entities := make([]*entity.LegendRequest, len(models))
	for i, r := range models {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *LegendRequestMapper) VoteToModel(v *entity.LegendRequestVote) *model.LegendRequestVote {
	if v == nil {
		return nil
	}
	return &model.LegendRequestVote{
		Id:              v.Id,
		LegendRequestId: v.LegendRequestId,
		UserId:          v.UserId,
		CreatedAt:       v.CreatedAt,
	}
}

func (m *LegendRequestMapper) VoteToEntity(v *model.LegendRequestVote) *entity.LegendRequestVote {
	if v == nil {
		return nil
	}
	return &entity.LegendRequestVote{
		Id:              v.Id,
		LegendRequestId: v.LegendRequestId,
		UserId:          v.UserId,
		CreatedAt:       v.CreatedAt,
	}
}
