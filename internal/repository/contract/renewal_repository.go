package contract

import (
	"context"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RenewalRepository interface {
	Create(ctx context.Context, request *entity.RenewalRequest) error
	Update(ctx context.Context, request *entity.RenewalRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByMember(ctx context.Context, memberId uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RenewalRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RenewalRequest, error)
}
