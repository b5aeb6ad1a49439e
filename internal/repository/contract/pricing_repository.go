package contract

import (
	"context"

	"gym-membership-be/internal/entity"
)

type PricingRepository interface {
	FindPrice(ctx context.Context, memberType entity.MemberType, plan entity.GymPlan) (*entity.GymPricing, error)
	FindAll(ctx context.Context) ([]*entity.GymPricing, error)
	Upsert(ctx context.Context, pricing *entity.GymPricing) error
}
