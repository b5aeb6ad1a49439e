package specification

import (
	"strings"
	"time"

	"gym-membership-be/internal/entity"

	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(s.Email)))
}

type ByUniqueCode struct {
	Code string
}

func (s ByUniqueCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("unique_code = ?", strings.ToUpper(strings.TrimSpace(s.Code)))
}

type ByStatus struct {
	Status entity.MemberStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

// StatusNotIn selects sweep candidates.
type StatusNotIn struct {
	Statuses []entity.MemberStatus
}

func (s StatusNotIn) Apply(db *gorm.DB) *gorm.DB {
	values := make([]string, len(s.Statuses))
	for i, st := range s.Statuses {
		values[i] = string(st)
	}
	return db.Where("status NOT IN ?", values)
}

type ByMemberType struct {
	MemberType entity.MemberType
}

func (s ByMemberType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("member_type = ?", string(s.MemberType))
}

// SearchMembers matches name, email or unique code, case-insensitively.
type SearchMembers struct {
	Query string
}

func (s SearchMembers) Apply(db *gorm.DB) *gorm.DB {
	q := "%" + strings.ToLower(strings.TrimSpace(s.Query)) + "%"
	return db.Where(
		"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(unique_code) LIKE ?",
		q, q, q, q,
	)
}

// ActionDateSince keeps log rows at or after Since.
type ActionDateSince struct {
	Since time.Time
}

func (s ActionDateSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("membership_logs.action_date >= ?", s.Since)
}

type ByRenewalStatus struct {
	Status entity.RenewalStatus
}

func (s ByRenewalStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}
