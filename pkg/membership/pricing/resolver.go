package pricing

import (
	"context"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/repository/contract"
)

// Resolver looks up the price charged for a member type and plan.
type Resolver struct {
	logger logger.ILogger
}

func NewResolver(logger logger.ILogger) *Resolver {
	return &Resolver{logger: logger}
}

// ResolvePrice returns the exact-match price, or 0 when the pair has no row.
func (r *Resolver) ResolvePrice(ctx context.Context, repo contract.PricingRepository, memberType entity.MemberType, plan entity.GymPlan) (float64, error) {
	p, err := repo.FindPrice(ctx, memberType, plan)
	if err != nil {
		return 0, apperror.Storage("resolve price", err)
	}
	if p == nil {
		r.logger.Warn("PRICING", "No pricing row, using zero price", map[string]interface{}{
			"member_type": memberType,
			"plan":        plan,
		})
		return 0, nil
	}
	return p.Price, nil
}

// List returns the whole pricing table.
func (r *Resolver) List(ctx context.Context, repo contract.PricingRepository) ([]*entity.GymPricing, error) {
	rows, err := repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Storage("list pricing", err)
	}
	return rows, nil
}
