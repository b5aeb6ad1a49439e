package implementation

import (
	"context"
	"errors"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/mapper"
	"gym-membership-be/internal/model"
	"gym-membership-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PricingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemberMapper
}

func NewPricingRepository(db *gorm.DB) contract.PricingRepository {
	return &PricingRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemberMapper(),
	}
}

func (r *PricingRepositoryImpl) FindPrice(ctx context.Context, memberType entity.MemberType, plan entity.GymPlan) (*entity.GymPricing, error) {
	var m model.GymPricing
	err := r.db.WithContext(ctx).
		Where("member_type = ? AND plan_type = ?", string(memberType), string(plan)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PricingToEntity(&m), nil
}

func (r *PricingRepositoryImpl) FindAll(ctx context.Context) ([]*entity.GymPricing, error) {
	var rows []*model.GymPricing
	if err := r.db.WithContext(ctx).Order("member_type ASC, plan_type ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	res := make([]*entity.GymPricing, len(rows))
	for i, row := range rows {
		res[i] = r.mapper.PricingToEntity(row)
	}
	return res, nil
}

// Upsert inserts or replaces the price for a (member_type, plan_type) pair.
func (r *PricingRepositoryImpl) Upsert(ctx context.Context, pricing *entity.GymPricing) error {
	m := r.mapper.PricingToModel(pricing)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_type"}, {Name: "plan_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"price"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	pricing.Id = m.Id
	return nil
}
