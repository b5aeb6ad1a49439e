package testutil

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/model"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manila is the zone every test fixture is written in.
var Manila = timeutil.LoadLocation(timeutil.DefaultTimezone)

// SetupSQLiteTestDB creates a migrated in-memory SQLite database.
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("Failed to connect to SQLite test database: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedPricing writes the standard price table.
func SeedPricing(t *testing.T, db *gorm.DB) {
	t.Helper()

	prices := map[entity.MemberType]map[entity.GymPlan]float64{
		entity.MemberTypeStudent:  {entity.GymPlanDaily: 50, entity.GymPlanMonthly: 500, entity.GymPlanAnnual: 5000},
		entity.MemberTypeFaculty:  {entity.GymPlanDaily: 70, entity.GymPlanMonthly: 700, entity.GymPlanAnnual: 7000},
		entity.MemberTypeOutsider: {entity.GymPlanDaily: 100, entity.GymPlanMonthly: 1000},
	}
	for memberType, plans := range prices {
		for plan, price := range plans {
			row := &model.GymPricing{MemberType: string(memberType), PlanType: string(plan), Price: price}
			if err := db.Create(row).Error; err != nil {
				t.Fatalf("Failed to seed pricing: %v", err)
			}
		}
	}
}

// ErrInjected is returned by FailCreatesOn.
var ErrInjected = errors.New("injected storage failure")

// FailCreatesOn makes every INSERT into table fail until the test ends.
func FailCreatesOn(t *testing.T, db *gorm.DB, table string) {
	t.Helper()

	name := "testutil:fail_create_" + table
	err := db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(ErrInjected)
		}
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Callback().Create().Remove(name)
	})
}

// Date builds midnight of a calendar day in Manila.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, Manila)
}

// At builds a Manila wall-clock instant.
func At(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, Manila)
}

// InsertMember writes a member row directly, bypassing the lifecycle engine.
func InsertMember(t *testing.T, db *gorm.DB, m *model.Member) *model.Member {
	t.Helper()

	if m.UniqueCode == "" {
		m.UniqueCode = "GYM-T" + strings.ToUpper(uuid.NewString()[:8])
	}
	if m.DateRegistered.IsZero() {
		m.DateRegistered = m.StartDate
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("Failed to insert member: %v", err)
	}
	return m
}
