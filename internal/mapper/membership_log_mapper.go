package mapper

import (
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/model"

	"gorm.io/datatypes"
)

type MembershipLogMapper struct{}

func NewMembershipLogMapper() *MembershipLogMapper {
	return &MembershipLogMapper{}
}

func (m *MembershipLogMapper) ToEntity(l *model.MembershipLog) *entity.MembershipLog {
	if l == nil {
		return nil
	}
	return &entity.MembershipLog{
		Id:         l.LogId,
		MemberId:   l.MemberId,
		ActionType: entity.ActionType(l.ActionType),
		ActionDate: l.ActionDate,
		Remarks:    l.Remarks,
		Details:    map[string]interface{}(l.Details),
	}
}

func (m *MembershipLogMapper) ToModel(l *entity.MembershipLog) *model.MembershipLog {
	if l == nil {
		return nil
	}
	var details datatypes.JSONMap
	if len(l.Details) > 0 {
		details = datatypes.JSONMap(l.Details)
	}
	return &model.MembershipLog{
		LogId:      l.Id,
		MemberId:   l.MemberId,
		ActionType: string(l.ActionType),
		ActionDate: l.ActionDate,
		Remarks:    l.Remarks,
		Details:    details,
	}
}

func (m *MembershipLogMapper) JoinedToEntity(row *model.MembershipLogWithMember) *entity.MembershipLog {
	e := m.ToEntity(&row.MembershipLog)
	e.MemberName = row.FirstName + " " + row.LastName
	return e
}

func (m *MembershipLogMapper) DeletionToModel(d *entity.MemberDeletion) *model.MemberDeletion {
	if d == nil {
		return nil
	}
	return &model.MemberDeletion{
		Id:         d.Id,
		MemberId:   d.MemberId,
		UniqueCode: d.UniqueCode,
		MemberName: d.MemberName,
		Remarks:    d.Remarks,
		DeletedAt:  d.DeletedAt,
	}
}

func (m *MembershipLogMapper) DeletionToEntity(d *model.MemberDeletion) *entity.MemberDeletion {
	if d == nil {
		return nil
	}
	return &entity.MemberDeletion{
		Id:         d.Id,
		MemberId:   d.MemberId,
		UniqueCode: d.UniqueCode,
		MemberName: d.MemberName,
		Remarks:    d.Remarks,
		DeletedAt:  d.DeletedAt,
	}
}
