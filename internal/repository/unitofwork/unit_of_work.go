package unitofwork

import (
	"context"

	"gym-membership-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MemberRepository() contract.MemberRepository
	MembershipLogRepository() contract.MembershipLogRepository
	PricingRepository() contract.PricingRepository
	RenewalRepository() contract.RenewalRepository
}
