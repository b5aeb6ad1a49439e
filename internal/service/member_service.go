package service

import (
	"context"
	"time"

	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/repository/specification"
	"gym-membership-be/internal/repository/unitofwork"
	membershipEvents "gym-membership-be/pkg/membership/events"
	"gym-membership-be/pkg/membership/mapper"
	"gym-membership-be/pkg/membership/pricing"
	"gym-membership-be/pkg/membership/renewal"
)

type IMemberService interface {
	Profile(ctx context.Context, memberId uint) (*dto.MemberResponse, error)
	RequestRenewal(ctx context.Context, memberId uint, req *dto.RenewalRequestCreate) (*dto.RenewalRequestResponse, error)
	Pricing(ctx context.Context) ([]*dto.PricingResponse, error)
}

type memberService struct {
	uowFactory     unitofwork.RepositoryFactory
	logger         logger.ILogger
	loc            *time.Location
	workflow       *renewal.Workflow
	pricing        *pricing.Resolver
	eventPublisher membershipEvents.Publisher
}

func NewMemberService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	loc *time.Location,
	workflow *renewal.Workflow,
	pricing *pricing.Resolver,
	eventPublisher membershipEvents.Publisher,
) IMemberService {
	return &memberService{
		uowFactory:     uowFactory,
		logger:         logger,
		loc:            loc,
		workflow:       workflow,
		pricing:        pricing,
		eventPublisher: eventPublisher,
	}
}

func (s *memberService) Profile(ctx context.Context, memberId uint) (*dto.MemberResponse, error) {
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

func (s *memberService) RequestRenewal(ctx context.Context, memberId uint, req *dto.RenewalRequestCreate) (*dto.RenewalRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	request, err := s.workflow.RequestRenewal(ctx, uow, memberId, entity.GymPlan(req.Plan))
	if err != nil {
		return nil, err
	}
	s.eventPublisher.RenewalRequested(ctx, request)
	return mapper.RenewalToResponse(request, nil, s.loc), nil
}

func (s *memberService) Pricing(ctx context.Context) ([]*dto.PricingResponse, error) {
	prices, err := s.pricing.List(ctx, s.uowFactory.NewUnitOfWork(ctx).PricingRepository())
	if err != nil {
		return nil, err
	}
	return mapper.PricingToResponse(prices), nil
}
