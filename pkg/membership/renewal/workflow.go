package renewal

import (
	"context"
	"fmt"
	"time"

	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/internal/repository/specification"
	"gym-membership-be/internal/repository/unitofwork"
	"gym-membership-be/pkg/membership/audit"
	"gym-membership-be/pkg/membership/lifecycle"
	"gym-membership-be/pkg/membership/mapper"

	"github.com/google/uuid"
)

// Decision is the outcome of approving or denying a request.
type Decision struct {
	Request *entity.RenewalRequest
	Member  *entity.Member
}

// Workflow handles member renewal requests and their admin decisions
type Workflow struct {
	logger logger.ILogger
	clock  timeutil.Clock
	loc    *time.Location
	engine *lifecycle.Engine
	audit  *audit.Writer
}

func NewWorkflow(logger logger.ILogger, clock timeutil.Clock, loc *time.Location, engine *lifecycle.Engine, audit *audit.Writer) *Workflow {
	return &Workflow{
		logger: logger,
		clock:  clock,
		loc:    loc,
		engine: engine,
		audit:  audit,
	}
}

// RequestRenewal files a Pending request. A member may hold one Pending
// request at a time and only self-service plans can be requested.
func (w *Workflow) RequestRenewal(ctx context.Context, uow unitofwork.UnitOfWork, memberId uint, plan entity.GymPlan) (*entity.RenewalRequest, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage("begin renewal request", err)
	}
	defer uow.Rollback()

	// 1. Member must exist
	member, err := uow.MemberRepository().FindOne(ctx, specification.ByMemberID{ID: memberId})
	if err != nil {
		return nil, apperror.Storage("find member", err)
	}
	if member == nil {
		return nil, apperror.NotFound("member")
	}

	// 2. One pending request per member
	pending, err := uow.RenewalRepository().FindOne(ctx,
		specification.ByMemberID{ID: memberId},
		specification.ByRenewalStatus{Status: entity.RenewalStatusPending},
	)
	if err != nil {
		return nil, apperror.Storage("find pending renewal", err)
	}
	if pending != nil {
		return nil, apperror.Conflict("You already have a pending renewal request.")
	}

	// 3. Plan must be self-service
	if !plan.SelfService() {
		return nil, apperror.Validation(apperror.Violation{
			Field:   "plan",
			Message: fmt.Sprintf("plan must be one of: %s, %s", entity.GymPlanDaily, entity.GymPlanMonthly),
		})
	}

	request := &entity.RenewalRequest{
		MemberId:      memberId,
		RequestedPlan: plan,
		RequestDate:   w.clock.Now().In(w.loc),
		Status:        entity.RenewalStatusPending,
	}
	if err := uow.RenewalRepository().Create(ctx, request); err != nil {
		return nil, apperror.Storage("create renewal request", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage("commit renewal request", err)
	}

	w.logger.Info("RENEWAL", "Renewal requested", map[string]interface{}{
		"requestId": request.Id.String(),
		"memberId":  memberId,
		"plan":      plan,
	})
	return request, nil
}

// Approve renews the member onto the requested plan starting today.
func (w *Workflow) Approve(ctx context.Context, uow unitofwork.UnitOfWork, requestId uuid.UUID) (*Decision, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage("begin approve renewal", err)
	}
	defer uow.Rollback()

	// 1. Find the request and its member
	request, member, err := w.load(ctx, uow, requestId)
	if err != nil {
		return nil, err
	}

	// 2. Apply the renewal to the member
	if err := w.engine.ApplyRenewal(ctx, uow, member, request.RequestedPlan); err != nil {
		return nil, err
	}

	// 3. Close the request
	if err := w.close(ctx, uow, request, entity.RenewalStatusApproved); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage("commit approve renewal", err)
	}

	w.logger.Info("RENEWAL", "Approved renewal request", map[string]interface{}{
		"requestId": requestId.String(),
		"memberId":  member.Id,
		"plan":      request.RequestedPlan,
		"endDate":   member.EndDate.Format("2006-01-02"),
	})
	return &Decision{Request: request, Member: member}, nil
}

// Deny closes the request and leaves the member untouched.
func (w *Workflow) Deny(ctx context.Context, uow unitofwork.UnitOfWork, requestId uuid.UUID) (*Decision, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage("begin deny renewal", err)
	}
	defer uow.Rollback()

	request, member, err := w.load(ctx, uow, requestId)
	if err != nil {
		return nil, err
	}

	remarks := fmt.Sprintf("Renewal request for %s plan denied.", request.RequestedPlan)
	details := map[string]interface{}{"requested_plan": string(request.RequestedPlan)}
	if _, err := w.audit.Append(ctx, uow.MembershipLogRepository(), member.Id, entity.ActionRenewalDenied, remarks, details); err != nil {
		return nil, err
	}
	if err := w.close(ctx, uow, request, entity.RenewalStatusDenied); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage("commit deny renewal", err)
	}

	w.logger.Info("RENEWAL", "Denied renewal request", map[string]interface{}{
		"requestId": requestId.String(),
		"memberId":  member.Id,
	})
	return &Decision{Request: request, Member: member}, nil
}

// DeleteRequest removes a request regardless of its status.
func (w *Workflow) DeleteRequest(ctx context.Context, uow unitofwork.UnitOfWork, requestId uuid.UUID) error {
	request, err := uow.RenewalRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return apperror.Storage("find renewal request", err)
	}
	if request == nil {
		return apperror.NotFound("renewal request")
	}
	if err := uow.RenewalRepository().Delete(ctx, requestId); err != nil {
		return apperror.Storage("delete renewal request", err)
	}

	w.logger.Info("RENEWAL", "Deleted renewal request", map[string]interface{}{
		"requestId": requestId.String(),
		"status":    request.Status,
	})
	return nil
}

// ListRequests returns requests newest first with a summary of each member.
func (w *Workflow) ListRequests(ctx context.Context, uow unitofwork.UnitOfWork, status entity.RenewalStatus) ([]*dto.RenewalRequestResponse, error) {
	specs := []specification.Specification{specification.OrderBy{Field: "request_date", Desc: true}}
	if status != "" {
		specs = append(specs, specification.ByRenewalStatus{Status: status})
	}
	requests, err := uow.RenewalRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Storage("list renewal requests", err)
	}
	if len(requests) == 0 {
		return []*dto.RenewalRequestResponse{}, nil
	}

	ids := make([]uint, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.MemberId)
	}
	members, err := uow.MemberRepository().FindAll(ctx, specification.ByMemberIDs{IDs: ids})
	if err != nil {
		return nil, apperror.Storage("load renewal members", err)
	}
	byId := make(map[uint]*entity.Member, len(members))
	for _, m := range members {
		byId[m.Id] = m
	}

	res := make([]*dto.RenewalRequestResponse, 0, len(requests))
	for _, r := range requests {
		res = append(res, mapper.RenewalToResponse(r, byId[r.MemberId], w.loc))
	}
	return res, nil
}

func (w *Workflow) load(ctx context.Context, uow unitofwork.UnitOfWork, requestId uuid.UUID) (*entity.RenewalRequest, *entity.Member, error) {
	request, err := uow.RenewalRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, nil, apperror.Storage("find renewal request", err)
	}
	if request == nil {
		return nil, nil, apperror.NotFound("renewal request")
	}
	if request.Status != entity.RenewalStatusPending {
		return nil, nil, apperror.Conflict(fmt.Sprintf("renewal request already %s", request.Status))
	}

	member, err := uow.MemberRepository().FindOne(ctx, specification.ByMemberID{ID: request.MemberId})
	if err != nil {
		return nil, nil, apperror.Storage("find member", err)
	}
	if member == nil {
		return nil, nil, apperror.NotFound("member")
	}
	return request, member, nil
}

func (w *Workflow) close(ctx context.Context, uow unitofwork.UnitOfWork, request *entity.RenewalRequest, status entity.RenewalStatus) error {
	now := w.clock.Now().In(w.loc)
	request.Status = status
	request.ProcessedAt = &now
	if err := uow.RenewalRepository().Update(ctx, request); err != nil {
		return apperror.Storage("update renewal request", err)
	}
	return nil
}
