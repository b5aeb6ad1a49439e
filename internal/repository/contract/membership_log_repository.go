package contract

import (
	"context"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/repository/specification"
)

type MembershipLogRepository interface {
	Create(ctx context.Context, log *entity.MembershipLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MembershipLog, error)
	// FindWithMember joins each log with its member's name.
	FindWithMember(ctx context.Context, specs ...specification.Specification) ([]*entity.MembershipLog, error)
	DeleteByMember(ctx context.Context, memberId uint) error

	CreateDeletion(ctx context.Context, deletion *entity.MemberDeletion) error
	FindDeletions(ctx context.Context, specs ...specification.Specification) ([]*entity.MemberDeletion, error)
}
