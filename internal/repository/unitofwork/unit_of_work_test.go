package unitofwork

import (
	"context"
	"testing"

	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/testutil"
	"gym-membership-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMember(code string) *entity.Member {
	start := testutil.Date(2025, 3, 1)
	return &entity.Member{
		UniqueCode:     code,
		FirstName:      "Ana",
		LastName:       "Reyes",
		MemberType:     entity.MemberTypeFaculty,
		GymPlan:        entity.GymPlanMonthly,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 30),
		DateRegistered: testutil.At(2025, 3, 1, 9, 0),
		Status:         entity.MemberStatusActive,
		PaymentStatus:  entity.PaymentStatusUnpaid,
	}
}

func TestUnitOfWork_CommitPersists(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	ctx := context.Background()
	uow := NewRepositoryFactory(db).NewUnitOfWork(ctx)

	require.NoError(t, uow.Begin(ctx))
	m := newMember("GYM-COMMIT01")
	require.NoError(t, uow.MemberRepository().Create(ctx, m))
	require.NoError(t, uow.MembershipLogRepository().Create(ctx, &entity.MembershipLog{
		MemberId:   m.Id,
		ActionType: entity.ActionRegistered,
		ActionDate: testutil.At(2025, 3, 1, 9, 0),
		Remarks:    "Member Ana Reyes registered successfully.",
	}))
	require.NoError(t, uow.Commit())
	assert.NoError(t, uow.Rollback(), "rollback after commit is a no-op")

	fresh := NewUnitOfWork(db)
	found, err := fresh.MemberRepository().FindOne(ctx, specification.ByUniqueCode{Code: "gym-commit01"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ana", found.FirstName)

	logs, err := fresh.MembershipLogRepository().FindWithMember(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Ana Reyes", logs[0].MemberName)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	ctx := context.Background()
	uow := NewUnitOfWork(db)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.MemberRepository().Create(ctx, newMember("GYM-ROLLBK01")))
	require.NoError(t, uow.Rollback())

	count, err := NewUnitOfWork(db).MemberRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUnitOfWork_DoubleBegin(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	ctx := context.Background()
	uow := NewUnitOfWork(db)

	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()
	assert.Error(t, uow.Begin(ctx))
}

func TestPricingRepository_UpsertAndFind(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	ctx := context.Background()
	repo := NewUnitOfWork(db).PricingRepository()

	require.NoError(t, repo.Upsert(ctx, &entity.GymPricing{MemberType: entity.MemberTypeStudent, PlanType: entity.GymPlanMonthly, Price: 450}))
	require.NoError(t, repo.Upsert(ctx, &entity.GymPricing{MemberType: entity.MemberTypeStudent, PlanType: entity.GymPlanMonthly, Price: 500}))

	p, err := repo.FindPrice(ctx, entity.MemberTypeStudent, entity.GymPlanMonthly)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 500.0, p.Price)

	missing, err := repo.FindPrice(ctx, entity.MemberTypeOutsider, entity.GymPlanAnnual)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRenewalRepository_DeleteByMember(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	ctx := context.Background()
	uow := NewUnitOfWork(db)

	m := newMember("GYM-RENEW001")
	require.NoError(t, uow.MemberRepository().Create(ctx, m))
	req := &entity.RenewalRequest{
		MemberId:      m.Id,
		RequestedPlan: entity.GymPlanDaily,
		RequestDate:   testutil.At(2025, 3, 2, 10, 0),
		Status:        entity.RenewalStatusPending,
	}
	require.NoError(t, uow.RenewalRepository().Create(ctx, req))
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", req.Id.String())

	pending, err := uow.RenewalRepository().FindOne(ctx,
		specification.ByMemberID{ID: m.Id},
		specification.ByRenewalStatus{Status: entity.RenewalStatusPending},
	)
	require.NoError(t, err)
	require.NotNil(t, pending)

	require.NoError(t, uow.RenewalRepository().DeleteByMember(ctx, m.Id))
	left, err := uow.RenewalRepository().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestMemberRepository_UpdateStatus(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	ctx := context.Background()
	repo := NewUnitOfWork(db).MemberRepository()

	m := newMember("GYM-STATUS01")
	require.NoError(t, repo.Create(ctx, m))
	require.NoError(t, repo.UpdateStatus(ctx, m.Id, entity.MemberStatusExpired))

	found, err := repo.FindOne(ctx, specification.ByMemberID{ID: m.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.MemberStatusExpired, found.Status)

	expired, err := repo.Count(ctx, specification.ByStatus{Status: entity.MemberStatusExpired})
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)
}
