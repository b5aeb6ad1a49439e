// FILE: internal/entity/member_entity.go
package entity

import (
	"time"
)

type MemberType string
type GymPlan string
type MemberStatus string
type PaymentStatus string

const (
	MemberTypeStudent  MemberType = "Student"
	MemberTypeFaculty  MemberType = "Faculty"
	MemberTypeOutsider MemberType = "Outsider"

	GymPlanDaily   GymPlan = "Daily"
	GymPlanMonthly GymPlan = "Monthly"
	GymPlanAnnual  GymPlan = "Annual"

	MemberStatusActive   MemberStatus = "Active"
	MemberStatusInactive MemberStatus = "Inactive"
	MemberStatusExpired  MemberStatus = "Expired"
	MemberStatusPending  MemberStatus = "Pending"

	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusUnpaid  PaymentStatus = "Unpaid"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// MemberTypes is the fixed enumeration order used for tie-breaking.
var MemberTypes = []MemberType{MemberTypeStudent, MemberTypeFaculty, MemberTypeOutsider}

// Duration returns the number of days a plan covers. Unknown plans get 30.
func (p GymPlan) Duration() int {
	switch p {
	case GymPlanDaily:
		return 1
	case GymPlanMonthly:
		return 30
	case GymPlanAnnual:
		return 365
	default:
		return 30
	}
}

// SelfService reports whether members may pick this plan on their own.
func (p GymPlan) SelfService() bool {
	return p == GymPlanDaily || p == GymPlanMonthly
}

type Member struct {
	Id               uint
	UniqueCode       string
	FirstName        string
	LastName         string
	Age              *int
	Gender           *string
	Email            *string
	ContactNumber    *string
	Address          *string
	MemberType       MemberType
	StudentNumber    *string
	GymPlan          GymPlan
	StartDate        time.Time
	EndDate          time.Time
	DateRegistered   time.Time
	LastPaymentDate  *time.Time
	Status           MemberStatus
	PaymentStatus    PaymentStatus
	PricePaid        float64
	PasswordHash     *string
	IsSelfRegistered bool
}

func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// PaidAt is the timestamp revenue windows are matched against.
func (m *Member) PaidAt() time.Time {
	if m.LastPaymentDate != nil {
		return *m.LastPaymentDate
	}
	return m.DateRegistered
}

// Activated reports whether the member can log in with a password.
func (m *Member) Activated() bool {
	return m.PasswordHash != nil && *m.PasswordHash != ""
}
