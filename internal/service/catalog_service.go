package service

import (
	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/pkg/persona"
	"talk-to-legends-be/pkg/plan"
)

// ICatalogService serves the public legend and plan listings.
type ICatalogService interface {
	Legends() *dto.LegendsResponse
	Plans() []dto.PlanResponse
}

type catalogService struct {
	registry *persona.Registry
}

func NewCatalogService(registry *persona.Registry) ICatalogService {
	return &catalogService{registry: registry}
}

func (s *catalogService) Legends() *dto.LegendsResponse {
	all := s.registry.All()
	res := &dto.LegendsResponse{Legends: make([]dto.LegendResponse, 0, len(all))}
	for _, p := range all {
		res.Legends = append(res.Legends, dto.LegendResponse{
			Id:          p.Id,
			Name:        p.Name,
			Title:       p.Title,
			Era:         p.Era,
			Description: p.Description,
			Expertise:   p.Expertise,
			Greeting:    p.Greeting,
		})
	}
	return res
}

func (s *catalogService) Plans() []dto.PlanResponse {
	tiers := plan.Tiers()
	res := make([]dto.PlanResponse, 0, len(tiers))
	for _, t := range tiers {
		res = append(res, dto.PlanResponse{Id: string(t), Limits: plan.For(t)})
	}
	return res
}
