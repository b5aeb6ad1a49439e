package events

import (
	"context"
	"time"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/pkg/events"
)

const (
	TypeMemberRegistered = "MEMBER_REGISTERED"
	TypeMemberDeleted    = "MEMBER_DELETED"
	TypeMembersExpired   = "MEMBERS_EXPIRED"
	TypeRenewalRequested = "RENEWAL_REQUESTED"
	TypeRenewalApproved  = "RENEWAL_APPROVED"
	TypeRenewalDenied    = "RENEWAL_DENIED"
)

// Registration sources carried in MEMBER_REGISTERED.
const (
	SourceAdmin = "admin"
	SourceSelf  = "self"
)

// Publisher announces committed membership changes. Publishing happens after
// the transaction commits and never fails the caller.
type Publisher interface {
	MemberRegistered(ctx context.Context, member *entity.Member, source string)
	MemberDeleted(ctx context.Context, member *entity.Member)
	MembersExpired(ctx context.Context, count int, asOf time.Time)
	RenewalRequested(ctx context.Context, request *entity.RenewalRequest)
	RenewalApproved(ctx context.Context, request *entity.RenewalRequest, member *entity.Member)
	RenewalDenied(ctx context.Context, request *entity.RenewalRequest, member *entity.Member)
}

type publisher struct {
	sink   events.Sink
	clock  timeutil.Clock
	logger logger.ILogger
}

func NewPublisher(sink events.Sink, clock timeutil.Clock, logger logger.ILogger) Publisher {
	return &publisher{sink: sink, clock: clock, logger: logger}
}

func (p *publisher) MemberRegistered(ctx context.Context, member *entity.Member, source string) {
	data := memberData(member)
	data["source"] = source
	data["gym_plan"] = string(member.GymPlan)
	data["status"] = string(member.Status)
	p.publish(ctx, TypeMemberRegistered, data)
}

func (p *publisher) MemberDeleted(ctx context.Context, member *entity.Member) {
	p.publish(ctx, TypeMemberDeleted, memberData(member))
}

func (p *publisher) MembersExpired(ctx context.Context, count int, asOf time.Time) {
	if count == 0 {
		return
	}
	p.publish(ctx, TypeMembersExpired, map[string]interface{}{
		"count": count,
		"as_of": asOf.Format("2006-01-02"),
	})
}

func (p *publisher) RenewalRequested(ctx context.Context, request *entity.RenewalRequest) {
	p.publish(ctx, TypeRenewalRequested, map[string]interface{}{
		"request_id":     request.Id.String(),
		"member_id":      request.MemberId,
		"requested_plan": string(request.RequestedPlan),
	})
}

func (p *publisher) RenewalApproved(ctx context.Context, request *entity.RenewalRequest, member *entity.Member) {
	data := memberData(member)
	data["request_id"] = request.Id.String()
	data["requested_plan"] = string(request.RequestedPlan)
	data["end_date"] = member.EndDate.Format("2006-01-02")
	p.publish(ctx, TypeRenewalApproved, data)
}

func (p *publisher) RenewalDenied(ctx context.Context, request *entity.RenewalRequest, member *entity.Member) {
	data := memberData(member)
	data["request_id"] = request.Id.String()
	data["requested_plan"] = string(request.RequestedPlan)
	p.publish(ctx, TypeRenewalDenied, data)
}

func (p *publisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	err := p.sink.Publish(ctx, events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: p.clock.Now(),
	})
	if err != nil {
		p.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func memberData(member *entity.Member) map[string]interface{} {
	data := map[string]interface{}{
		"member_id":   member.Id,
		"unique_code": member.UniqueCode,
		"member_name": member.FullName(),
	}
	if member.Email != nil {
		data["email"] = *member.Email
	}
	return data
}

type nopPublisher struct{}

// NewNopPublisher discards every event.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) MemberRegistered(context.Context, *entity.Member, string) {}
func (nopPublisher) MemberDeleted(context.Context, *entity.Member) {}
func (nopPublisher) MembersExpired(context.Context, int, time.Time) {}
func (nopPublisher) RenewalRequested(context.Context, *entity.RenewalRequest) {}
func (nopPublisher) RenewalApproved(context.Context, *entity.RenewalRequest, *entity.Member) {}
func (nopPublisher) RenewalDenied(context.Context, *entity.RenewalRequest, *entity.Member) {}
