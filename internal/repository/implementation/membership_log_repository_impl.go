package implementation

import (
	"context"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/mapper"
	"gym-membership-be/internal/model"
	"gym-membership-be/internal/repository/contract"
	"gym-membership-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MembershipLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MembershipLogMapper
}

func NewMembershipLogRepository(db *gorm.DB) contract.MembershipLogRepository {
	return &MembershipLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewMembershipLogMapper(),
	}
}

func (r *MembershipLogRepositoryImpl) Create(ctx context.Context, log *entity.MembershipLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.Id = m.LogId
	return nil
}

func (r *MembershipLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MembershipLog, error) {
	var rows []*model.MembershipLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	logs := make([]*entity.MembershipLog, len(rows))
	for i, row := range rows {
		logs[i] = r.mapper.ToEntity(row)
	}
	return logs, nil
}

func (r *MembershipLogRepositoryImpl) FindWithMember(ctx context.Context, specs ...specification.Specification) ([]*entity.MembershipLog, error) {
	var rows []*model.MembershipLogWithMember
	query := r.db.WithContext(ctx).
		Table("membership_logs").
		Select("membership_logs.*, members.first_name, members.last_name").
		Joins("JOIN members ON members.member_id = membership_logs.member_id")
	query = applySpecifications(query, specs...)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	logs := make([]*entity.MembershipLog, len(rows))
	for i, row := range rows {
		logs[i] = r.mapper.JoinedToEntity(row)
	}
	return logs, nil
}

func (r *MembershipLogRepositoryImpl) DeleteByMember(ctx context.Context, memberId uint) error {
	return r.db.WithContext(ctx).Where("member_id = ?", memberId).Delete(&model.MembershipLog{}).Error
}

func (r *MembershipLogRepositoryImpl) CreateDeletion(ctx context.Context, deletion *entity.MemberDeletion) error {
	m := r.mapper.DeletionToModel(deletion)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	deletion.Id = m.Id
	return nil
}

func (r *MembershipLogRepositoryImpl) FindDeletions(ctx context.Context, specs ...specification.Specification) ([]*entity.MemberDeletion, error) {
	var rows []*model.MemberDeletion
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	deletions := make([]*entity.MemberDeletion, len(rows))
	for i, row := range rows {
		deletions[i] = r.mapper.DeletionToEntity(row)
	}
	return deletions, nil
}
