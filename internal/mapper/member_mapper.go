package mapper

import (
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/model"
)

type MemberMapper struct{}

func NewMemberMapper() *MemberMapper {
	return &MemberMapper{}
}

func (m *MemberMapper) ToEntity(mm *model.Member) *entity.Member {
	if mm == nil {
		return nil
	}
	return &entity.Member{
		Id:               mm.MemberId,
		UniqueCode:       mm.UniqueCode,
		FirstName:        mm.FirstName,
		LastName:         mm.LastName,
		Age:              mm.Age,
		Gender:           mm.Gender,
		Email:            mm.Email,
		ContactNumber:    mm.ContactNumber,
		Address:          mm.Address,
		MemberType:       entity.MemberType(mm.MemberType),
		StudentNumber:    mm.StudentNumber,
		GymPlan:          entity.GymPlan(mm.GymPlan),
		StartDate:        mm.StartDate,
		EndDate:          mm.EndDate,
		DateRegistered:   mm.DateRegistered,
		LastPaymentDate:  mm.LastPaymentDate,
		Status:           entity.MemberStatus(mm.Status),
		PaymentStatus:    entity.PaymentStatus(mm.PaymentStatus),
		PricePaid:        mm.PricePaid,
		PasswordHash:     mm.PasswordHash,
		IsSelfRegistered: mm.IsSelfRegistered,
	}
}

func (m *MemberMapper) ToModel(e *entity.Member) *model.Member {
	if e == nil {
		return nil
	}
	return &model.Member{
		MemberId:         e.Id,
		UniqueCode:       e.UniqueCode,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Age:              e.Age,
		Gender:           e.Gender,
		Email:            e.Email,
		ContactNumber:    e.ContactNumber,
		Address:          e.Address,
		MemberType:       string(e.MemberType),
		StudentNumber:    e.StudentNumber,
		GymPlan:          string(e.GymPlan),
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		DateRegistered:   e.DateRegistered,
		LastPaymentDate:  e.LastPaymentDate,
		Status:           string(e.Status),
		PaymentStatus:    string(e.PaymentStatus),
		PricePaid:        e.PricePaid,
		PasswordHash:     e.PasswordHash,
		IsSelfRegistered: e.IsSelfRegistered,
	}
}

func (m *MemberMapper) ToEntities(members []*model.Member) []*entity.Member {
	entities := make([]*entity.Member, len(members))
	for i, mm := range members {
		entities[i] = m.ToEntity(mm)
	}
	return entities
}

func (m *MemberMapper) PricingToEntity(p *model.GymPricing) *entity.GymPricing {
	if p == nil {
		return nil
	}
	return &entity.GymPricing{
		Id:         p.Id,
		MemberType: entity.MemberType(p.MemberType),
		PlanType:   entity.GymPlan(p.PlanType),
		Price:      p.Price,
	}
}

func (m *MemberMapper) PricingToModel(p *entity.GymPricing) *model.GymPricing {
	if p == nil {
		return nil
	}
	return &model.GymPricing{
		Id:         p.Id,
		MemberType: string(p.MemberType),
		PlanType:   string(p.PlanType),
		Price:      p.Price,
	}
}
