package entity

import (
	"time"

	"github.com/google/uuid"
)

type RenewalStatus string

const (
	RenewalStatusPending  RenewalStatus = "Pending"
	RenewalStatusApproved RenewalStatus = "Approved"
	RenewalStatusDenied   RenewalStatus = "Denied"
)

type RenewalRequest struct {
	Id            uuid.UUID
	MemberId      uint
	RequestedPlan GymPlan
	RequestDate   time.Time
	Status        RenewalStatus
	ProcessedAt   *time.Time
}

type GymPricing struct {
	Id         uint
	MemberType MemberType
	PlanType   GymPlan
	Price      float64
}
