package mapper

import (
	"time"

	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/timeutil"
)

// MemberToResponse converts a member to its API form with dates in loc.
func MemberToResponse(m *entity.Member, loc *time.Location) *dto.MemberResponse {
	if m == nil {
		return nil
	}
	res := &dto.MemberResponse{
		MemberId:         m.Id,
		UniqueCode:       m.UniqueCode,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Age:              m.Age,
		Gender:           m.Gender,
		Email:            m.Email,
		ContactNumber:    m.ContactNumber,
		Address:          m.Address,
		MemberType:       string(m.MemberType),
		StudentNumber:    m.StudentNumber,
		GymPlan:          string(m.GymPlan),
		StartDate:        dto.Date{Time: timeutil.CalendarDate(m.StartDate, loc)},
		EndDate:          dto.Date{Time: timeutil.CalendarDate(m.EndDate, loc)},
		DateRegistered:   timeutil.InZone(m.DateRegistered, loc),
		Status:           string(m.Status),
		PaymentStatus:    string(m.PaymentStatus),
		PricePaid:        m.PricePaid,
		IsSelfRegistered: m.IsSelfRegistered,
	}
	if m.LastPaymentDate != nil {
		paid := timeutil.InZone(*m.LastPaymentDate, loc)
		res.LastPaymentDate = &paid
	}
	return res
}

func MembersToResponse(members []*entity.Member, loc *time.Location) []*dto.MemberResponse {
	res := make([]*dto.MemberResponse, 0, len(members))
	for _, m := range members {
		res = append(res, MemberToResponse(m, loc))
	}
	return res
}

func PricingToResponse(prices []*entity.GymPricing) []*dto.PricingResponse {
	res := make([]*dto.PricingResponse, 0, len(prices))
	for _, p := range prices {
		res = append(res, &dto.PricingResponse{
			MemberType: string(p.MemberType),
			PlanType:   string(p.PlanType),
			Price:      p.Price,
		})
	}
	return res
}

func RenewalToResponse(r *entity.RenewalRequest, m *entity.Member, loc *time.Location) *dto.RenewalRequestResponse {
	res := &dto.RenewalRequestResponse{
		Id:            r.Id,
		MemberId:      r.MemberId,
		MemberName:    "-",
		MemberType:    "-",
		CurrentPlan:   "-",
		RequestedPlan: string(r.RequestedPlan),
		RequestDate:   timeutil.InZone(r.RequestDate, loc),
		Status:        string(r.Status),
		ProcessedAt:   r.ProcessedAt,
	}
	if m != nil {
		res.MemberName = m.FullName()
		res.MemberType = string(m.MemberType)
		res.CurrentPlan = string(m.GymPlan)
	}
	return res
}
