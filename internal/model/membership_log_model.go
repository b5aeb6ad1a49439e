package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MembershipLog struct {
	LogId      uuid.UUID         `gorm:"column:log_id;type:uuid;primaryKey"`
	MemberId   uint              `gorm:"not null;index"`
	ActionType string            `gorm:"type:varchar(50);not null"`
	ActionDate time.Time         `gorm:"not null;index"`
	Remarks    string            `gorm:"type:text"`
	Details    datatypes.JSONMap `gorm:"type:jsonb"`
}

func (MembershipLog) TableName() string {
	return "membership_logs"
}

func (l *MembershipLog) BeforeCreate(tx *gorm.DB) error {
	if l.LogId == uuid.Nil {
		l.LogId = uuid.New()
	}
	return nil
}

// MembershipLogWithMember is the projection used by the log listing.
type MembershipLogWithMember struct {
	MembershipLog
	FirstName string
	LastName  string
}

type MemberDeletion struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MemberId   uint      `gorm:"not null;index"`
	UniqueCode string    `gorm:"type:varchar(20)"`
	MemberName string    `gorm:"type:varchar(255)"`
	Remarks    string    `gorm:"type:text"`
	DeletedAt  time.Time `gorm:"not null"`
}

func (MemberDeletion) TableName() string {
	return "member_deletions"
}

func (d *MemberDeletion) BeforeCreate(tx *gorm.DB) error {
	if d.Id == uuid.Nil {
		d.Id = uuid.New()
	}
	return nil
}

type RenewalRequest struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MemberId      uint       `gorm:"not null;index"`
	RequestedPlan string     `gorm:"type:varchar(20);not null"`
	RequestDate   time.Time  `gorm:"not null"`
	Status        string     `gorm:"type:varchar(20);not null;default:'Pending';index"`
	ProcessedAt   *time.Time
}

func (RenewalRequest) TableName() string {
	return "renewal_requests"
}

func (r *RenewalRequest) BeforeCreate(tx *gorm.DB) error {
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	return nil
}
