package contract

import (
	"context"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/repository/specification"
)

type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	Update(ctx context.Context, member *entity.Member) error
	Delete(ctx context.Context, id uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Member, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Member, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateStatus touches only the status column.
	UpdateStatus(ctx context.Context, id uint, status entity.MemberStatus) error
}
