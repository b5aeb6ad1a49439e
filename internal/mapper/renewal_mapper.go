package mapper

import (
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/model"
)

type RenewalMapper struct{}

func NewRenewalMapper() *RenewalMapper {
	return &RenewalMapper{}
}

func (m *RenewalMapper) ToEntity(r *model.RenewalRequest) *entity.RenewalRequest {
	if r == nil {
		return nil
	}
	return &entity.RenewalRequest{
		Id:            r.Id,
		MemberId:      r.MemberId,
		RequestedPlan: entity.GymPlan(r.RequestedPlan),
		RequestDate:   r.RequestDate,
		Status:        entity.RenewalStatus(r.Status),
		ProcessedAt:   r.ProcessedAt,
	}
}

func (m *RenewalMapper) ToModel(r *entity.RenewalRequest) *model.RenewalRequest {
	if r == nil {
		return nil
	}
	return &model.RenewalRequest{
		Id:            r.Id,
		MemberId:      r.MemberId,
		RequestedPlan: string(r.RequestedPlan),
		RequestDate:   r.RequestDate,
		Status:        string(r.Status),
		ProcessedAt:   r.ProcessedAt,
	}
}

func (m *RenewalMapper) ToEntities(rs []*model.RenewalRequest) []*entity.RenewalRequest {
	entities := make([]*entity.RenewalRequest, len(rs))
	for i, r := range rs {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
