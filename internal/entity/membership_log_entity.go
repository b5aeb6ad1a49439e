package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActionType string

const (
	ActionRegistered       ActionType = "Registered"
	ActionUpdated          ActionType = "Updated"
	ActionStatusUpdate     ActionType = "Status Update"
	ActionRenewalApproved  ActionType = "Renewal Approved"
	ActionRenewalDenied    ActionType = "Renewal Denied"
	ActionUserRegistration ActionType = "User Registration"
)

// MembershipLog is append-only.
type MembershipLog struct {
	Id         uuid.UUID
	MemberId   uint
	ActionType ActionType
	ActionDate time.Time
	Remarks    string
	Details    map[string]interface{}

	// Populated by joined queries only.
	MemberName string
}

// MemberDeletion archives a removed member. It has no foreign key so it
// survives the cascade that clears the member's own logs.
type MemberDeletion struct {
	Id         uuid.UUID
	MemberId   uint
	UniqueCode string
	MemberName string
	Remarks    string
	DeletedAt  time.Time
}
