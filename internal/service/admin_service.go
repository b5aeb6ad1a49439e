package service

import (
	"context"
	"time"

	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/internal/repository/specification"
	"gym-membership-be/internal/repository/unitofwork"
	membershipEvents "gym-membership-be/pkg/membership/events"
	"gym-membership-be/pkg/membership/lifecycle"
	"gym-membership-be/pkg/membership/mapper"
	"gym-membership-be/pkg/membership/renewal"
	"gym-membership-be/pkg/membership/statistics"

	"github.com/google/uuid"
)

const defaultLogWindowDays = 7

type IAdminService interface {
	// Members
	ListMembers(ctx context.Context, query dto.MemberListQuery) ([]*dto.MemberResponse, error)
	GetMember(ctx context.Context, memberId uint) (*dto.MemberResponse, error)
	RegisterMember(ctx context.Context, req *dto.RegisterMemberRequest) (*dto.MemberResponse, error)
	UpdateMember(ctx context.Context, memberId uint, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error)
	DeleteMember(ctx context.Context, memberId uint) error
	SweepExpirations(ctx context.Context) (*dto.SweepResponse, error)

	// Renewals
	ListRenewals(ctx context.Context, status string) ([]*dto.RenewalRequestResponse, error)
	DecideRenewal(ctx context.Context, requestId uuid.UUID, req *dto.RenewalDecisionRequest) (*dto.RenewalRequestResponse, error)
	DeleteRenewal(ctx context.Context, requestId uuid.UUID) error

	// Statistics
	DashboardSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error)
	StatisticsSummary(ctx context.Context) (*dto.StatisticsSummaryResponse, error)
	RevenueSummary(ctx context.Context) (*dto.RevenueSummaryResponse, error)
	WeeklyRevenue(ctx context.Context) (*dto.RevenueChart, error)
	MembershipLogs(ctx context.Context, days int) ([]*dto.MembershipLogResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	clock      timeutil.Clock
	loc        *time.Location

	// Domain Components
	engine         *lifecycle.Engine
	workflow       *renewal.Workflow
	aggregator     *statistics.Aggregator
	eventPublisher membershipEvents.Publisher
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	clock timeutil.Clock,
	loc *time.Location,
	engine *lifecycle.Engine,
	workflow *renewal.Workflow,
	aggregator *statistics.Aggregator,
	eventPublisher membershipEvents.Publisher,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		logger:         logger,
		clock:          clock,
		loc:            loc,
		engine:         engine,
		workflow:       workflow,
		aggregator:     aggregator,
		eventPublisher: eventPublisher,
	}
}

// ============================================================================
// Members
// ============================================================================

func (s *adminService) ListMembers(ctx context.Context, query dto.MemberListQuery) ([]*dto.MemberResponse, error) {
	specs := []specification.Specification{specification.OrderBy{Field: "member_id", Desc: true}}
	if query.Search != "" {
		specs = append(specs, specification.SearchMembers{Query: query.Search})
	}
	if query.Status != "" {
		specs = append(specs, specification.ByStatus{Status: entity.MemberStatus(query.Status)})
	}
	if query.MemberType != "" {
		specs = append(specs, specification.ByMemberType{MemberType: entity.MemberType(query.MemberType)})
	}
	if query.Limit > 0 {
		page := query.Page
		if page < 1 {
			page = 1
		}
		specs = append(specs, specification.Pagination{Limit: query.Limit, Offset: (page - 1) * query.Limit})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	members, err := uow.MemberRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Storage("list members", err)
	}
	return mapper.MembersToResponse(members, s.loc), nil
}

func (s *adminService) GetMember(ctx context.Context, memberId uint) (*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	member, err := uow.MemberRepository().FindOne(ctx, specification.ByMemberID{ID: memberId})
	if err != nil {
		return nil, apperror.Storage("find member", err)
	}
	if member == nil {
		return nil, apperror.NotFound("member")
	}
	return mapper.MemberToResponse(member, s.loc), nil
}

func (s *adminService) RegisterMember(ctx context.Context, req *dto.RegisterMemberRequest) (*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	member, err := s.engine.Register(ctx, uow, req)
	if err != nil {
		return nil, err
	}
	s.eventPublisher.MemberRegistered(ctx, member, membershipEvents.SourceAdmin)
	return mapper.MemberToResponse(member, s.loc), nil
}

func (s *adminService) UpdateMember(ctx context.Context, memberId uint, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	member, err := s.engine.Edit(ctx, uow, memberId, req)
	if err != nil {
		return nil, err
	}
	return mapper.MemberToResponse(member, s.loc), nil
}

func (s *adminService) DeleteMember(ctx context.Context, memberId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	member, err := s.engine.Delete(ctx, uow, memberId)
	if err != nil {
		return err
	}
	s.eventPublisher.MemberDeleted(ctx, member)
	return nil
}

func (s *adminService) SweepExpirations(ctx context.Context) (*dto.SweepResponse, error) {
	asOf := s.clock.Now()
	count, err := s.sweep(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return &dto.SweepResponse{AsOf: dto.Date{Time: timeutil.DateOf(asOf, s.loc)}, Expired: count}, nil
}

func (s *adminService) sweep(ctx context.Context, asOf time.Time) (int, error) {
	count, err := s.engine.SweepExpirations(ctx, s.uowFactory.NewUnitOfWork(ctx), asOf)
	if err != nil {
		return 0, err
	}
	s.eventPublisher.MembersExpired(ctx, count, asOf)
	return count, nil
}

// ============================================================================
// Renewals
// ============================================================================

func (s *adminService) ListRenewals(ctx context.Context, status string) ([]*dto.RenewalRequestResponse, error) {
	if status != "" {
		switch entity.RenewalStatus(status) {
		case entity.RenewalStatusPending, entity.RenewalStatusApproved, entity.RenewalStatusDenied:
		default:
			return nil, apperror.Validation(apperror.Violation{
				Field:   "status",
				Message: "status must be one of: Pending, Approved, Denied",
			})
		}
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.workflow.ListRequests(ctx, uow, entity.RenewalStatus(status))
}

func (s *adminService) DecideRenewal(ctx context.Context, requestId uuid.UUID, req *dto.RenewalDecisionRequest) (*dto.RenewalRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var (
		decision *renewal.Decision
		err      error
	)
	if entity.RenewalStatus(req.Status) == entity.RenewalStatusApproved {
		decision, err = s.workflow.Approve(ctx, uow, requestId)
	} else {
		decision, err = s.workflow.Deny(ctx, uow, requestId)
	}
	if err != nil {
		return nil, err
	}

	if decision.Request.Status == entity.RenewalStatusApproved {
		s.eventPublisher.RenewalApproved(ctx, decision.Request, decision.Member)
	} else {
		s.eventPublisher.RenewalDenied(ctx, decision.Request, decision.Member)
	}
	return mapper.RenewalToResponse(decision.Request, decision.Member, s.loc), nil
}

func (s *adminService) DeleteRenewal(ctx context.Context, requestId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.workflow.DeleteRequest(ctx, uow, requestId)
}

// ============================================================================
// Statistics
// ============================================================================

// DashboardSummary sweeps expirations first so the counts reflect today.
func (s *adminService) DashboardSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	now := s.clock.Now()
	if _, err := s.sweep(ctx, now); err != nil {
		s.logger.Warn("ADMIN", "Pre-dashboard sweep failed", map[string]interface{}{"error": err.Error()})
	}
	return s.aggregator.DashboardSummary(ctx, s.uowFactory.NewUnitOfWork(ctx), now)
}

func (s *adminService) StatisticsSummary(ctx context.Context) (*dto.StatisticsSummaryResponse, error) {
	return s.aggregator.StatisticsSummary(ctx, s.uowFactory.NewUnitOfWork(ctx), s.clock.Now())
}

func (s *adminService) RevenueSummary(ctx context.Context) (*dto.RevenueSummaryResponse, error) {
	return s.aggregator.RevenueSummary(ctx, s.uowFactory.NewUnitOfWork(ctx), s.clock.Now())
}

func (s *adminService) WeeklyRevenue(ctx context.Context) (*dto.RevenueChart, error) {
	return s.aggregator.WeeklyRevenue(ctx, s.uowFactory.NewUnitOfWork(ctx), s.clock.Now())
}

func (s *adminService) MembershipLogs(ctx context.Context, days int) ([]*dto.MembershipLogResponse, error) {
	if days <= 0 {
		days = defaultLogWindowDays
	}
	since := s.clock.Now().AddDate(0, 0, -days)
	return s.aggregator.MembershipLogs(ctx, s.uowFactory.NewUnitOfWork(ctx), since)
}
