package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/internal/pkg/validation"
	"gym-membership-be/internal/repository/specification"
	"gym-membership-be/internal/repository/unitofwork"
	"gym-membership-be/pkg/membership/audit"
	"gym-membership-be/pkg/membership/pricing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const dateLayout = "2006-01-02"

// Engine owns member state transitions. Every mutating operation runs in a
// single unit-of-work transaction together with its audit log entry.
type Engine struct {
	logger  logger.ILogger
	clock   timeutil.Clock
	loc     *time.Location
	pricing *pricing.Resolver
	audit   *audit.Writer
}

func NewEngine(logger logger.ILogger, clock timeutil.Clock, loc *time.Location, pricing *pricing.Resolver, audit *audit.Writer) *Engine {
	return &Engine{
		logger:  logger,
		clock:   clock,
		loc:     loc,
		pricing: pricing,
		audit:   audit,
	}
}

// NewUniqueCode returns a human-readable member code like GYM-1A2B3C4D.
func NewUniqueCode() string {
	return "GYM-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (e *Engine) today() time.Time {
	return timeutil.DateOf(e.clock.Now(), e.loc)
}

// Register creates a member on behalf of an admin.
func (e *Engine) Register(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.RegisterMemberRequest) (*entity.Member, error) {
	// 1. Validate, collecting every violation
	violations := validation.Check(req)
	violations = append(violations, studentNumberViolations(entity.MemberType(req.MemberType), req.StudentNumber)...)
	if !req.StartDate.IsSet() {
		violations = append(violations, apperror.Violation{Field: "start_date", Message: "start_date is required"})
	}
	if !req.EndDate.IsSet() {
		violations = append(violations, apperror.Violation{Field: "end_date", Message: "end_date is required"})
	}
	if req.StartDate.IsSet() && req.EndDate.IsSet() && req.EndDate.In(e.loc).Before(req.StartDate.In(e.loc)) {
		violations = append(violations, dateOrderViolation())
	}
	if len(violations) > 0 {
		return nil, apperror.Validation(violations...)
	}

	now := e.clock.Now().In(e.loc)
	start := req.StartDate.In(e.loc)
	end := req.EndDate.In(e.loc)

	// 2. Derive defaults
	status := entity.MemberStatus(req.Status)
	if status == "" {
		status = entity.MemberStatusActive
		if start.After(e.today()) {
			status = entity.MemberStatusPending
		}
	}
	payment := entity.PaymentStatus(req.PaymentStatus)
	if payment == "" {
		payment = entity.PaymentStatusUnpaid
	}

	member := &entity.Member{
		UniqueCode:     NewUniqueCode(),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Age:            req.Age,
		Gender:         optional(&req.Gender),
		Email:          optional(normalizeEmail(&req.Email)),
		ContactNumber:  optional(req.ContactNumber),
		Address:        optional(req.Address),
		MemberType:     entity.MemberType(req.MemberType),
		GymPlan:        entity.GymPlan(req.GymPlan),
		StartDate:      start,
		EndDate:        end,
		DateRegistered: now,
		Status:         status,
		PaymentStatus:  payment,
	}
	if member.MemberType == entity.MemberTypeStudent {
		member.StudentNumber = optional(req.StudentNumber)
	}
	if payment == entity.PaymentStatusPaid {
		member.LastPaymentDate = &now
	}

	// 3. Start transaction
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage("begin register", err)
	}
	defer uow.Rollback()

	// 4. Reject duplicate email
	if err := e.ensureEmailFree(ctx, uow, member.Email, 0); err != nil {
		return nil, err
	}

	// 5. Resolve price
	price, err := e.pricing.ResolvePrice(ctx, uow.PricingRepository(), member.MemberType, member.GymPlan)
	if err != nil {
		return nil, err
	}
	member.PricePaid = price

	// 6. Persist member and log
	if err := uow.MemberRepository().Create(ctx, member); err != nil {
		return nil, apperror.Storage("create member", err)
	}
	remarks := fmt.Sprintf("Member %s registered successfully.", member.FullName())
	if _, err := e.audit.Append(ctx, uow.MembershipLogRepository(), member.Id, entity.ActionRegistered, remarks, nil); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage("commit register", err)
	}

	e.logger.Info("MEMBERSHIP", "Registered member", map[string]interface{}{
		"member_id":   member.Id,
		"unique_code": member.UniqueCode,
		"plan":        member.GymPlan,
		"price_paid":  member.PricePaid,
	})
	return member, nil
}

// SelfRegister creates a password-enabled member from the public sign-up form.
// The membership starts today and stays Pending until paid.
func (e *Engine) SelfRegister(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.SelfRegisterRequest) (*entity.Member, error) {
	// 1. Validate
	violations := validation.Check(req)
	violations = append(violations, studentNumberViolations(entity.MemberType(req.MemberType), req.StudentNumber)...)
	if req.GymPlan != "" && !entity.GymPlan(req.GymPlan).SelfService() {
		violations = append(violations, apperror.Violation{Field: "gym_plan", Message: "Annual plans are not available yet"})
	}
	if len(violations) > 0 {
		return nil, apperror.Validation(violations...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashStr := string(hash)

	// 2. Start transaction
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage("begin self registration", err)
	}
	defer uow.Rollback()

	// 3. Reject duplicate email
	existing, err := uow.MemberRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Storage("find member by email", err)
	}
	if existing != nil {
		if existing.Activated() {
			return nil, apperror.Conflict("Email already registered. Please login instead.")
		}
		return nil, apperror.Conflict("Email exists in our system. Please contact admin to activate your account.")
	}

	// 4. Build member
	now := e.clock.Now().In(e.loc)
	start := e.today()
	plan := entity.GymPlan(req.GymPlan)
	age := req.Age
	gender := req.Gender
	email := strings.ToLower(strings.TrimSpace(req.Email))

	member := &entity.Member{
		UniqueCode:       NewUniqueCode(),
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Age:              &age,
		Gender:           &gender,
		Email:            &email,
		ContactNumber:    optional(req.ContactNumber),
		Address:          optional(req.Address),
		MemberType:       entity.MemberType(req.MemberType),
		GymPlan:          plan,
		StartDate:        start,
		EndDate:          timeutil.AddDays(start, plan.Duration()),
		DateRegistered:   now,
		Status:           entity.MemberStatusPending,
		PaymentStatus:    entity.PaymentStatusUnpaid,
		PasswordHash:     &hashStr,
		IsSelfRegistered: true,
	}
	if member.MemberType == entity.MemberTypeStudent {
		member.StudentNumber = optional(req.StudentNumber)
	}

	price, err := e.pricing.ResolvePrice(ctx, uow.PricingRepository(), member.MemberType, plan)
	if err != nil {
		return nil, err
	}
	member.PricePaid = price

	// 5. Persist member and log
	if err := uow.MemberRepository().Create(ctx, member); err != nil {
		return nil, apperror.Storage("create member", err)
	}
	remarks := fmt.Sprintf("User self-registered with %s plan", plan)
	if _, err := e.audit.Append(ctx, uow.MembershipLogRepository(), member.Id, entity.ActionUserRegistration, remarks, nil); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage("commit self registration", err)
	}

	e.logger.Info("MEMBERSHIP", "Member self-registered", map[string]interface{}{
		"member_id":   member.Id,
		"unique_code": member.UniqueCode,
		"plan":        plan,
	})
	return member, nil
}

// Edit applies a partial update. Fields left nil in patch are untouched.
func (e *Engine) Edit(ctx context.Context, uow unitofwork.UnitOfWork, memberId uint, patch *dto.UpdateMemberRequest) (*entity.Member, error) {
	violations := validation.Check(patch)

	// 1. Start transaction
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage("begin edit", err)
	}
	defer uow.Rollback()

	// 2. Find the member
	member, err := uow.MemberRepository().FindOne(ctx, specification.ByMemberID{ID: memberId})
	if err != nil {
		return nil, apperror.Storage("find member", err)
	}
	if member == nil {
		return nil, apperror.NotFound("member")
	}

	// 3. Type-dependent and date rules against the merged state
	newType := member.MemberType
	if patch.MemberType != nil {
		newType = entity.MemberType(*patch.MemberType)
	}
	if newType == entity.MemberTypeStudent {
		number := member.StudentNumber
		if patch.StudentNumber != nil {
			number = patch.StudentNumber
		}
		violations = append(violations, studentNumberViolations(newType, number)...)
	}

	start := timeutil.CalendarDate(member.StartDate, e.loc)
	end := timeutil.CalendarDate(member.EndDate, e.loc)
	if patch.StartDate.IsSet() {
		start = patch.StartDate.In(e.loc)
	}
	if patch.EndDate.IsSet() {
		end = patch.EndDate.In(e.loc)
	}
	if end.Before(start) {
		violations = append(violations, dateOrderViolation())
	}
	if len(violations) > 0 {
		return nil, apperror.Validation(violations...)
	}

	// 4. Apply the patch and record what changed
	changes := map[string]interface{}{}
	oldType, oldPlan, oldPayment := member.MemberType, member.GymPlan, member.PaymentStatus

	setString(changes, "first_name", &member.FirstName, patch.FirstName)
	setString(changes, "last_name", &member.LastName, patch.LastName)
	setOptional(changes, "gender", &member.Gender, patch.Gender)
	setOptional(changes, "email", &member.Email, normalizeEmail(patch.Email))
	setOptional(changes, "contact_number", &member.ContactNumber, patch.ContactNumber)
	setOptional(changes, "address", &member.Address, patch.Address)
	if patch.Age != nil && (member.Age == nil || *member.Age != *patch.Age) {
		age := *patch.Age
		member.Age = &age
		changes["age"] = age
	}
	if newType != oldType {
		member.MemberType = newType
		changes["member_type"] = string(newType)
	}
	if newType == entity.MemberTypeStudent {
		setOptional(changes, "student_number", &member.StudentNumber, patch.StudentNumber)
	} else if member.StudentNumber != nil {
		member.StudentNumber = nil
		changes["student_number"] = nil
	}
	if patch.GymPlan != nil && entity.GymPlan(*patch.GymPlan) != oldPlan {
		member.GymPlan = entity.GymPlan(*patch.GymPlan)
		changes["gym_plan"] = *patch.GymPlan
	}
	if !start.Equal(timeutil.CalendarDate(member.StartDate, e.loc)) {
		changes["start_date"] = start.Format(dateLayout)
	}
	if !end.Equal(timeutil.CalendarDate(member.EndDate, e.loc)) {
		changes["end_date"] = end.Format(dateLayout)
	}
	member.StartDate, member.EndDate = start, end
	if patch.Status != nil && entity.MemberStatus(*patch.Status) != member.Status {
		member.Status = entity.MemberStatus(*patch.Status)
		changes["status"] = *patch.Status
	}
	if patch.PaymentStatus != nil && entity.PaymentStatus(*patch.PaymentStatus) != oldPayment {
		member.PaymentStatus = entity.PaymentStatus(*patch.PaymentStatus)
		changes["payment_status"] = *patch.PaymentStatus
		if member.PaymentStatus == entity.PaymentStatusPaid {
			now := e.clock.Now().In(e.loc)
			member.LastPaymentDate = &now
		}
	}

	if _, ok := changes["email"]; ok {
		if err := e.ensureEmailFree(ctx, uow, member.Email, member.Id); err != nil {
			return nil, err
		}
	}

	// 5. Re-price when the tariff key moved
	if member.MemberType != oldType || member.GymPlan != oldPlan {
		price, err := e.pricing.ResolvePrice(ctx, uow.PricingRepository(), member.MemberType, member.GymPlan)
		if err != nil {
			return nil, err
		}
		if price != member.PricePaid {
			changes["price_paid"] = price
		}
		member.PricePaid = price
	}

	// 6. Persist and log
	if err := uow.MemberRepository().Update(ctx, member); err != nil {
		return nil, apperror.Storage("update member", err)
	}
	var details map[string]interface{}
	if len(changes) > 0 {
		details = changes
	}
	remarks := fmt.Sprintf("Updated information for %s.", member.FullName())
	if _, err := e.audit.Append(ctx, uow.MembershipLogRepository(), member.Id, entity.ActionUpdated, remarks, details); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage("commit edit", err)
	}

	e.logger.Info("MEMBERSHIP", "Updated member", map[string]interface{}{
		"member_id": member.Id,
		"changes":   len(changes),
	})
	return member, nil
}

// Delete removes a member together with its logs and renewal requests, and
// archives the removal in member_deletions. Returns the removed member.
func (e *Engine) Delete(ctx context.Context, uow unitofwork.UnitOfWork, memberId uint) (*entity.Member, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage("begin delete", err)
	}
	defer uow.Rollback()

	member, err := uow.MemberRepository().FindOne(ctx, specification.ByMemberID{ID: memberId})
	if err != nil {
		return nil, apperror.Storage("find member", err)
	}
	if member == nil {
		return nil, apperror.NotFound("member")
	}

	if _, err := e.audit.RecordDeletion(ctx, uow.MembershipLogRepository(), member); err != nil {
		return nil, err
	}
	if err := uow.RenewalRepository().DeleteByMember(ctx, memberId); err != nil {
		return nil, apperror.Storage("delete renewal requests", err)
	}
	if err := uow.MembershipLogRepository().DeleteByMember(ctx, memberId); err != nil {
		return nil, apperror.Storage("delete membership logs", err)
	}
	if err := uow.MemberRepository().Delete(ctx, memberId); err != nil {
		return nil, apperror.Storage("delete member", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage("commit delete", err)
	}

	e.logger.Info("MEMBERSHIP", "Deleted member", map[string]interface{}{
		"member_id":   memberId,
		"unique_code": member.UniqueCode,
	})
	return member, nil
}

// SweepExpirations expires every Pending or Inactive member whose end date is
// before asOf's calendar day. Active members are an admin override and are
// never touched. Returns the number of members expired.
func (e *Engine) SweepExpirations(ctx context.Context, uow unitofwork.UnitOfWork, asOf time.Time) (int, error) {
	if err := uow.Begin(ctx); err != nil {
		return 0, apperror.Storage("begin sweep", err)
	}
	defer uow.Rollback()

	candidates, err := uow.MemberRepository().FindAll(ctx,
		specification.StatusNotIn{Statuses: []entity.MemberStatus{entity.MemberStatusExpired, entity.MemberStatusActive}},
	)
	if err != nil {
		return 0, apperror.Storage("find sweep candidates", err)
	}

	today := timeutil.DateOf(asOf, e.loc)
	count := 0
	for _, m := range candidates {
		expired, err := e.ExpireIfDue(ctx, uow, m, today)
		if err != nil {
			return 0, err
		}
		if expired {
			count++
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, apperror.Storage("commit sweep", err)
	}

	if count > 0 {
		e.logger.Info("MEMBERSHIP", "Expired members", map[string]interface{}{
			"count": count,
			"as_of": today.Format(dateLayout),
		})
	}
	return count, nil
}

// ExpireIfDue applies the sweep rule to a single member through whatever
// transaction uow currently holds.
func (e *Engine) ExpireIfDue(ctx context.Context, uow unitofwork.UnitOfWork, member *entity.Member, today time.Time) (bool, error) {
	if member.Status == entity.MemberStatusExpired || member.Status == entity.MemberStatusActive {
		return false, nil
	}
	end := timeutil.CalendarDate(member.EndDate, e.loc)
	if !end.Before(timeutil.DateOf(today, e.loc)) {
		return false, nil
	}

	previous := member.Status
	if err := uow.MemberRepository().UpdateStatus(ctx, member.Id, entity.MemberStatusExpired); err != nil {
		return false, apperror.Storage("expire member", err)
	}
	member.Status = entity.MemberStatusExpired

	remarks := fmt.Sprintf("Automatically marked as expired (End date: %s).", end.Format(dateLayout))
	details := map[string]interface{}{"previous_status": string(previous)}
	if _, err := e.audit.Append(ctx, uow.MembershipLogRepository(), member.Id, entity.ActionStatusUpdate, remarks, details); err != nil {
		return false, err
	}
	return true, nil
}

// ApplyRenewal moves a member onto plan starting today and marks it paid. It
// runs inside the caller's transaction.
func (e *Engine) ApplyRenewal(ctx context.Context, uow unitofwork.UnitOfWork, member *entity.Member, plan entity.GymPlan) error {
	now := e.clock.Now().In(e.loc)
	start := timeutil.DateOf(now, e.loc)

	price, err := e.pricing.ResolvePrice(ctx, uow.PricingRepository(), member.MemberType, plan)
	if err != nil {
		return err
	}

	details := map[string]interface{}{
		"previous_plan":   string(member.GymPlan),
		"previous_status": string(member.Status),
		"gym_plan":        string(plan),
	}

	member.GymPlan = plan
	member.Status = entity.MemberStatusActive
	member.PaymentStatus = entity.PaymentStatusPaid
	member.StartDate = start
	member.EndDate = timeutil.AddDays(start, plan.Duration())
	member.PricePaid = price
	member.LastPaymentDate = &now

	if err := uow.MemberRepository().Update(ctx, member); err != nil {
		return apperror.Storage("apply renewal", err)
	}

	details["end_date"] = member.EndDate.Format(dateLayout)
	remarks := fmt.Sprintf("Renewal approved. Plan updated to %s, payment status Paid.", plan)
	if _, err := e.audit.Append(ctx, uow.MembershipLogRepository(), member.Id, entity.ActionRenewalApproved, remarks, details); err != nil {
		return err
	}
	return nil
}

func studentNumberViolations(memberType entity.MemberType, number *string) []apperror.Violation {
	if memberType != entity.MemberTypeStudent {
		return nil
	}
	if number == nil || strings.TrimSpace(*number) == "" {
		return []apperror.Violation{{Field: "student_number", Message: "student_number is required for Student members"}}
	}
	return nil
}

func dateOrderViolation() apperror.Violation {
	return apperror.Violation{Field: "end_date", Message: "end_date must not be before start_date"}
}

// optional trims s and maps empty strings to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ensureEmailFree reports a Conflict when another member already uses email.
func (e *Engine) ensureEmailFree(ctx context.Context, uow unitofwork.UnitOfWork, email *string, selfId uint) error {
	if email == nil {
		return nil
	}
	existing, err := uow.MemberRepository().FindOne(ctx, specification.ByEmail{Email: *email})
	if err != nil {
		return apperror.Storage("find member by email", err)
	}
	if existing != nil && existing.Id != selfId {
		return apperror.Conflict("Email already registered to another member.")
	}
	return nil
}

func normalizeEmail(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	return &v
}

func setString(changes map[string]interface{}, field string, dst *string, v *string) {
	if v == nil {
		return
	}
	val := strings.TrimSpace(*v)
	if val == *dst {
		return
	}
	*dst = val
	changes[field] = val
}

// setOptional applies a nullable field. An empty or blank string clears it.
func setOptional(changes map[string]interface{}, field string, dst **string, v *string) {
	if v == nil {
		return
	}
	next := optional(v)
	switch {
	case next == nil && *dst == nil:
		return
	case next != nil && *dst != nil && **dst == *next:
		return
	}
	*dst = next
	if next == nil {
		changes[field] = nil
	} else {
		changes[field] = *next
	}
}
