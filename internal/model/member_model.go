package model

import (
	"time"
)

type Member struct {
	MemberId         uint       `gorm:"column:member_id;primaryKey;autoIncrement"`
	UniqueCode       string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	FirstName        string     `gorm:"type:varchar(100);not null"`
	LastName         string     `gorm:"type:varchar(100);not null"`
	Age              *int       `gorm:"type:integer"`
	Gender           *string    `gorm:"type:varchar(20)"`
	Email            *string    `gorm:"type:varchar(255);index"`
	ContactNumber    *string    `gorm:"type:varchar(50)"`
	Address          *string    `gorm:"type:text"`
	MemberType       string     `gorm:"type:varchar(20);not null;index"`
	StudentNumber    *string    `gorm:"type:varchar(50)"`
	GymPlan          string     `gorm:"type:varchar(20);not null"`
	StartDate        time.Time  `gorm:"type:date;not null"`
	EndDate          time.Time  `gorm:"type:date;not null;index"`
	DateRegistered   time.Time  `gorm:"not null;index"`
	LastPaymentDate  *time.Time
	Status           string     `gorm:"type:varchar(20);not null;default:'Pending';index"`
	PaymentStatus    string     `gorm:"type:varchar(20);not null;default:'Unpaid'"`
	PricePaid        float64    `gorm:"type:decimal(10,2);not null;default:0"`
	PasswordHash     *string    `gorm:"type:varchar(255)"`
	IsSelfRegistered bool       `gorm:"not null;default:false"`

	Logs     []MembershipLog  `gorm:"foreignKey:MemberId;references:MemberId;constraint:OnDelete:CASCADE"`
	Renewals []RenewalRequest `gorm:"foreignKey:MemberId;references:MemberId;constraint:OnDelete:CASCADE"`
}

func (Member) TableName() string {
	return "members"
}

type GymPricing struct {
	Id         uint    `gorm:"primaryKey;autoIncrement"`
	MemberType string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_pricing_type_plan"`
	PlanType   string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_pricing_type_plan"`
	Price      float64 `gorm:"type:decimal(10,2);not null"`
}

func (GymPricing) TableName() string {
	return "gym_pricing"
}
