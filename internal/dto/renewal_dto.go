package dto

import (
	"time"

	"github.com/google/uuid"
)

type RenewalRequestCreate struct {
	Plan string `json:"plan" validate:"required,oneof=Daily Monthly Annual"`
}

// RenewalDecisionRequest is the admin body for POST /admin/renewals/:id.
type RenewalDecisionRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Denied"`
}

type RenewalRequestResponse struct {
	Id            uuid.UUID  `json:"id"`
	MemberId      uint       `json:"member_id"`
	MemberName    string     `json:"member_name"`
	MemberType    string     `json:"member_type"`
	CurrentPlan   string     `json:"current_plan"`
	RequestedPlan string     `json:"requested_plan"`
	RequestDate   time.Time  `json:"request_date"`
	Status        string     `json:"status"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}
