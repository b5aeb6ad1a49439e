package implementation

import (
	"context"
	"errors"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/mapper"
	"gym-membership-be/internal/model"
	"gym-membership-be/internal/repository/contract"
	"gym-membership-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RenewalRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RenewalMapper
}

func NewRenewalRepository(db *gorm.DB) contract.RenewalRepository {
	return &RenewalRepositoryImpl{
		db:     db,
		mapper: mapper.NewRenewalMapper(),
	}
}

func (r *RenewalRepositoryImpl) Create(ctx context.Context, request *entity.RenewalRequest) error {
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *RenewalRepositoryImpl) Update(ctx context.Context, request *entity.RenewalRequest) error {
	m := r.mapper.ToModel(request)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *RenewalRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RenewalRequest{}).Error
}

func (r *RenewalRepositoryImpl) DeleteByMember(ctx context.Context, memberId uint) error {
	return r.db.WithContext(ctx).Where("member_id = ?", memberId).Delete(&model.RenewalRequest{}).Error
}

func (r *RenewalRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RenewalRequest, error) {
	var m model.RenewalRequest
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RenewalRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RenewalRequest, error) {
	var rows []*model.RenewalRequest
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}
