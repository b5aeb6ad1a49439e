package dto

import (
	"time"
)

// RegisterMemberRequest is the admin registration form.
type RegisterMemberRequest struct {
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name" validate:"required"`
	Age           *int    `json:"age" validate:"omitempty,min=1,max=120"`
	Gender        string  `json:"gender" validate:"omitempty,oneof=Male Female"`
	Email         string  `json:"email" validate:"omitempty,email"`
	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
	MemberType    string  `json:"member_type" validate:"required,oneof=Student Faculty Outsider"`
	StudentNumber *string `json:"student_number"`
	GymPlan       string  `json:"gym_plan" validate:"required,oneof=Daily Monthly Annual"`
	StartDate     *Date   `json:"start_date"`
	EndDate       *Date   `json:"end_date"`
	Status        string  `json:"status" validate:"omitempty,oneof=Active Inactive Expired Pending"`
	PaymentStatus string  `json:"payment_status" validate:"omitempty,oneof=Paid Unpaid Overdue"`
}

// UpdateMemberRequest is a partial update: nil fields are left untouched.
type UpdateMemberRequest struct {
	FirstName     *string `json:"first_name" validate:"omitempty,min=1"`
	LastName      *string `json:"last_name" validate:"omitempty,min=1"`
	Age           *int    `json:"age" validate:"omitempty,min=1,max=120"`
	Gender        *string `json:"gender" validate:"omitempty,eq=|oneof=Male Female"`
	Email         *string `json:"email" validate:"omitempty,eq=|email"`
	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
	MemberType    *string `json:"member_type" validate:"omitempty,oneof=Student Faculty Outsider"`
	StudentNumber *string `json:"student_number"`
	GymPlan       *string `json:"gym_plan" validate:"omitempty,oneof=Daily Monthly Annual"`
	StartDate     *Date   `json:"start_date"`
	EndDate       *Date   `json:"end_date"`
	Status        *string `json:"status" validate:"omitempty,oneof=Active Inactive Expired Pending"`
	PaymentStatus *string `json:"payment_status" validate:"omitempty,oneof=Paid Unpaid Overdue"`
}

// SelfRegisterRequest is the public sign-up form.
type SelfRegisterRequest struct {
	FirstName       string  `json:"first_name" validate:"required"`
	LastName        string  `json:"last_name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=6"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
	Age             int     `json:"age" validate:"required,min=1,max=120"`
	Gender          string  `json:"gender" validate:"required,oneof=Male Female"`
	ContactNumber   *string `json:"contact_number"`
	Address         *string `json:"address"`
	MemberType      string  `json:"member_type" validate:"required,oneof=Student Faculty Outsider"`
	StudentNumber   *string `json:"student_number"`
	GymPlan         string  `json:"gym_plan" validate:"required,oneof=Daily Monthly Annual"`
}

type MemberResponse struct {
	MemberId         uint       `json:"member_id"`
	UniqueCode       string     `json:"unique_code"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Age              *int       `json:"age,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	Email            *string    `json:"email,omitempty"`
	ContactNumber    *string    `json:"contact_number,omitempty"`
	Address          *string    `json:"address,omitempty"`
	MemberType       string     `json:"member_type"`
	StudentNumber    *string    `json:"student_number,omitempty"`
	GymPlan          string     `json:"gym_plan"`
	StartDate        Date       `json:"start_date"`
	EndDate          Date       `json:"end_date"`
	DateRegistered   time.Time  `json:"date_registered"`
	LastPaymentDate  *time.Time `json:"last_payment_date,omitempty"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	PricePaid        float64    `json:"price_paid"`
	IsSelfRegistered bool       `json:"is_self_registered"`
}

type SweepResponse struct {
	AsOf    Date `json:"as_of"`
	Expired int  `json:"expired"`
}

type MembershipLogResponse struct {
	LogId      string                 `json:"log_id"`
	MemberId   uint                   `json:"member_id"`
	MemberName string                 `json:"member_name"`
	ActionType string                 `json:"action_type"`
	ActionDate time.Time              `json:"action_date"`
	Remarks    string                 `json:"remarks"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

type PricingResponse struct {
	MemberType string  `json:"member_type"`
	PlanType   string  `json:"plan_type"`
	Price      float64 `json:"price"`
}

// MemberListQuery filters GET /admin/members.
type MemberListQuery struct {
	Search     string `query:"search"`
	Status     string `query:"status" validate:"omitempty,oneof=Active Inactive Expired Pending"`
	MemberType string `query:"member_type" validate:"omitempty,oneof=Student Faculty Outsider"`
	Page       int    `query:"page" validate:"omitempty,min=1"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=500"`
}
