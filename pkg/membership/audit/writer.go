package audit

import (
	"context"
	"time"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/internal/repository/contract"
)

// Writer appends membership log rows stamped with the clock's current time.
type Writer struct {
	clock timeutil.Clock
	loc   *time.Location
}

func NewWriter(clock timeutil.Clock, loc *time.Location) *Writer {
	return &Writer{clock: clock, loc: loc}
}

// Append writes one log row. details may be nil.
func (w *Writer) Append(ctx context.Context, repo contract.MembershipLogRepository, memberId uint, action entity.ActionType, remarks string, details map[string]interface{}) (*entity.MembershipLog, error) {
	log := &entity.MembershipLog{
		MemberId:   memberId,
		ActionType: action,
		ActionDate: w.clock.Now().In(w.loc),
		Remarks:    remarks,
		Details:    details,
	}
	if err := repo.Create(ctx, log); err != nil {
		return nil, apperror.Storage("append membership log", err)
	}
	return log, nil
}

// RecordDeletion archives a member that is about to be removed.
func (w *Writer) RecordDeletion(ctx context.Context, repo contract.MembershipLogRepository, member *entity.Member) (*entity.MemberDeletion, error) {
	d := &entity.MemberDeletion{
		MemberId:   member.Id,
		UniqueCode: member.UniqueCode,
		MemberName: member.FullName(),
		Remarks:    "Deleted member record for " + member.FullName() + ".",
		DeletedAt:  w.clock.Now().In(w.loc),
	}
	if err := repo.CreateDeletion(ctx, d); err != nil {
		return nil, apperror.Storage("record member deletion", err)
	}
	return d, nil
}
