package statistics

import (
	"context"
	"testing"
	"time"

	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/model"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/testutil"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/internal/repository/memory"
	"gym-membership-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAggregator(clock timeutil.Clock) *Aggregator {
	cache := memory.NewSnapshotCache[*dto.DashboardSummaryResponse](clock, 10*time.Second)
	return NewAggregator(logger.NewNopLogger(), testutil.Manila, cache)
}

type fixture struct {
	memberType string
	status     string
	payment    string
	price      float64
	start, end time.Time
	registered time.Time
	paidAt     *time.Time
}

func seed(t *testing.T, db *gorm.DB, fixtures ...fixture) {
	t.Helper()
	for _, f := range fixtures {
		m := &model.Member{
			FirstName: "F", LastName: f.memberType, MemberType: f.memberType, GymPlan: "Monthly",
			Status: f.status, PaymentStatus: f.payment, PricePaid: f.price,
			StartDate: f.start, EndDate: f.end, DateRegistered: f.registered, LastPaymentDate: f.paidAt,
		}
		if m.PaymentStatus == "" {
			m.PaymentStatus = "Unpaid"
		}
		if m.StartDate.IsZero() {
			m.StartDate = testutil.Date(2025, 6, 1)
			m.EndDate = testutil.Date(2025, 7, 1)
		}
		testutil.InsertMember(t, db, m)
	}
}

func at(t time.Time) *time.Time { return &t }

func TestRevenue_DailyWeeklyTotal(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	now := testutil.At(2025, 6, 15, 16, 0)
	seed(t, db,
		fixture{memberType: "Student", status: "Active", payment: "Paid", price: 100, paidAt: at(testutil.At(2025, 6, 15, 9, 0))},
		fixture{memberType: "Faculty", status: "Active", payment: "Paid", price: 200, paidAt: at(testutil.At(2025, 6, 14, 20, 0))},
		fixture{memberType: "Outsider", status: "Expired", payment: "Paid", price: 300, paidAt: at(testutil.At(2025, 6, 5, 11, 0))},
		fixture{memberType: "Outsider", status: "Active", payment: "Unpaid", price: 999, paidAt: at(testutil.At(2025, 6, 15, 9, 0))},
	)
	agg := newAggregator(&timeutil.FixedClock{At: now})
	ctx := context.Background()

	rev, err := agg.RevenueSummary(ctx, unitofwork.NewUnitOfWork(db), now)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rev.Stats.DailyRevenue)
	assert.Equal(t, 600.0, rev.Stats.MonthlyRevenue)
	assert.Equal(t, 600.0, rev.Stats.TotalRevenue)
	assert.Equal(t, int64(4), rev.Stats.TotalMembers)
	assert.Equal(t, int64(3), rev.Stats.ActiveMembers)
	assert.Len(t, rev.Members, 4)

	weekly, err := agg.WeeklyRevenue(ctx, unitofwork.NewUnitOfWork(db), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, weekly.Labels)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 200, 100}, weekly.Values)

	var sum float64
	for _, v := range weekly.Values {
		sum += v
	}
	assert.Equal(t, 300.0, sum)
}

func TestRevenue_FallsBackToRegistrationDate(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	now := testutil.At(2025, 6, 15, 16, 0)
	seed(t, db,
		fixture{memberType: "Student", status: "Active", payment: "Paid", price: 50, registered: testutil.At(2025, 6, 15, 0, 5)},
		fixture{memberType: "Student", status: "Active", payment: "Paid", price: 80, registered: testutil.At(2025, 5, 31, 23, 55)},
	)
	agg := newAggregator(&timeutil.FixedClock{At: now})

	rev, err := agg.RevenueSummary(context.Background(), unitofwork.NewUnitOfWork(db), now)
	require.NoError(t, err)
	assert.Equal(t, 50.0, rev.Stats.DailyRevenue)
	assert.Equal(t, 50.0, rev.Stats.MonthlyRevenue)
	assert.Equal(t, 130.0, rev.Stats.TotalRevenue)
}

func TestDashboardSummary(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	now := testutil.At(2025, 6, 15, 16, 0)
	seed(t, db,
		fixture{memberType: "Faculty", status: "Active", start: testutil.Date(2025, 1, 20), end: testutil.Date(2025, 3, 5)},
		fixture{memberType: "Faculty", status: "Active", start: testutil.Date(2025, 6, 1), end: testutil.Date(2025, 7, 1)},
		fixture{memberType: "Student", status: "Active", start: testutil.Date(2025, 6, 1), end: testutil.Date(2025, 7, 1)},
		fixture{memberType: "Student", status: "Expired", start: testutil.Date(2025, 4, 1), end: testutil.Date(2025, 5, 1)},
		fixture{memberType: "Outsider", status: "Inactive"},
		fixture{memberType: "Outsider", status: "Pending"},
	)
	agg := newAggregator(&timeutil.FixedClock{At: now})

	res, err := agg.DashboardSummary(context.Background(), unitofwork.NewUnitOfWork(db), now)
	require.NoError(t, err)

	assert.Equal(t, dto.SummaryCard{Total: 6, Active: 3, MostActive: "Faculty"}, res.Summary)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, res.OverviewChart.Labels)
	assert.Equal(t, []int64{1, 1, 1, 0, 0, 1}, res.OverviewChart.Faculty)
	assert.Equal(t, []int64{0, 0, 0, 0, 0, 1}, res.OverviewChart.Students, "expired members are not counted")
	assert.Equal(t, []int64{1, 2, 0}, res.StatusChart.Values)
	assert.Equal(t, []string{"Active", "Inactive", "Expired"}, res.StatusOverview.Labels)
	assert.Equal(t, []int64{3, 1, 1}, res.StatusOverview.Values)
}

func TestDashboardSummary_NoActiveMembers(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	now := testutil.At(2025, 6, 15, 16, 0)
	seed(t, db, fixture{memberType: "Student", status: "Expired"})

	res, err := newAggregator(&timeutil.FixedClock{At: now}).DashboardSummary(context.Background(), unitofwork.NewUnitOfWork(db), now)
	require.NoError(t, err)
	assert.Equal(t, "N/A", res.Summary.MostActive)
}

func TestMostActive_TieGoesToFirstType(t *testing.T) {
	now := testutil.At(2025, 6, 15, 16, 0)
	inWindow := testutil.At(2025, 6, 2, 9, 0)

	t.Run("dashboard uses singular labels", func(t *testing.T) {
		db := testutil.SetupSQLiteTestDB(t)
		seed(t, db,
			fixture{memberType: "Outsider", status: "Active"},
			fixture{memberType: "Outsider", status: "Active"},
			fixture{memberType: "Faculty", status: "Active"},
			fixture{memberType: "Student", status: "Active"},
			fixture{memberType: "Student", status: "Active"},
		)

		res, err := newAggregator(&timeutil.FixedClock{At: now}).DashboardSummary(context.Background(), unitofwork.NewUnitOfWork(db), now)
		require.NoError(t, err)
		assert.Equal(t, "Student", res.Summary.MostActive)
	})

	t.Run("dashboard faculty before outsider", func(t *testing.T) {
		db := testutil.SetupSQLiteTestDB(t)
		seed(t, db,
			fixture{memberType: "Outsider", status: "Active"},
			fixture{memberType: "Faculty", status: "Active"},
		)

		res, err := newAggregator(&timeutil.FixedClock{At: now}).DashboardSummary(context.Background(), unitofwork.NewUnitOfWork(db), now)
		require.NoError(t, err)
		assert.Equal(t, "Faculty", res.Summary.MostActive)
	})

	t.Run("statistics uses plural labels", func(t *testing.T) {
		db := testutil.SetupSQLiteTestDB(t)
		seed(t, db,
			fixture{memberType: "Outsider", status: "Active", registered: inWindow},
			fixture{memberType: "Student", status: "Expired", registered: inWindow},
			fixture{memberType: "Faculty", status: "Pending", registered: testutil.At(2024, 11, 2, 9, 0)},
		)

		res, err := newAggregator(&timeutil.FixedClock{At: now}).StatisticsSummary(context.Background(), unitofwork.NewUnitOfWork(db), now)
		require.NoError(t, err)
		assert.Equal(t, "Students", res.Summary.MostActive)
	})

	t.Run("statistics faculty before outsider", func(t *testing.T) {
		db := testutil.SetupSQLiteTestDB(t)
		seed(t, db,
			fixture{memberType: "Outsider", status: "Active", registered: inWindow},
			fixture{memberType: "Faculty", status: "Active", registered: inWindow},
		)

		res, err := newAggregator(&timeutil.FixedClock{At: now}).StatisticsSummary(context.Background(), unitofwork.NewUnitOfWork(db), now)
		require.NoError(t, err)
		assert.Equal(t, "Faculty", res.Summary.MostActive)
	})
}

func TestDashboardSummary_CachedForTenSeconds(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	now := testutil.At(2025, 6, 15, 16, 0)
	clock := &timeutil.FixedClock{At: now}
	agg := newAggregator(clock)
	ctx := context.Background()

	seed(t, db, fixture{memberType: "Student", status: "Active"})
	first, err := agg.DashboardSummary(ctx, unitofwork.NewUnitOfWork(db), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Summary.Total)

	seed(t, db, fixture{memberType: "Faculty", status: "Active"})
	clock.Advance(9 * time.Second)
	cached, err := agg.DashboardSummary(ctx, unitofwork.NewUnitOfWork(db), clock.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.Summary.Total)

	clock.Advance(time.Second)
	fresh, err := agg.DashboardSummary(ctx, unitofwork.NewUnitOfWork(db), clock.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.Summary.Total)
}

func TestStatisticsSummary(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	now := testutil.At(2025, 6, 15, 16, 0)
	seed(t, db,
		fixture{memberType: "Student", status: "Active", payment: "Paid", price: 500, registered: testutil.At(2025, 6, 1, 0, 10), paidAt: at(testutil.At(2025, 6, 13, 8, 0))},
		fixture{memberType: "Student", status: "Expired", payment: "Overdue", registered: testutil.At(2025, 2, 28, 23, 0)},
		fixture{memberType: "Faculty", status: "Pending", registered: testutil.At(2025, 5, 2, 9, 0)},
		fixture{memberType: "Outsider", status: "Active", registered: testutil.At(2024, 12, 31, 9, 0)},
	)
	agg := newAggregator(&timeutil.FixedClock{At: now})

	res, err := agg.StatisticsSummary(context.Background(), unitofwork.NewUnitOfWork(db), now)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06"}, res.OverviewChart.Labels)
	assert.Equal(t, []int64{0, 1, 0, 0, 0, 1}, res.OverviewChart.Students)
	assert.Equal(t, []int64{0, 0, 0, 0, 1, 0}, res.OverviewChart.Faculty)
	assert.Equal(t, []int64{0, 0, 0, 0, 0, 0}, res.OverviewChart.Outsiders, "registrations before the window are ignored")

	assert.Equal(t, dto.SummaryCard{Total: 4, Active: 2, MostActive: "Students"}, res.Summary)
	assert.Equal(t, []int64{2, 1, 0}, res.StatusChart.Values)
	assert.Equal(t, []int64{2, 1, 1}, res.StatusOverview.Values)
	assert.Equal(t, []int64{1, 2, 1}, res.PaymentStatusChart.Values)
	assert.Equal(t, []float64{0, 0, 0, 0, 500, 0, 0}, res.WeeklyRevenue.Values)
}

func TestMembershipLogs_Since(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	now := testutil.At(2025, 6, 15, 16, 0)
	seed(t, db, fixture{memberType: "Student", status: "Active"})

	repo := unitofwork.NewUnitOfWork(db).MembershipLogRepository()
	ctx := context.Background()
	for _, when := range []time.Time{testutil.At(2025, 6, 1, 8, 0), testutil.At(2025, 6, 10, 8, 0), testutil.At(2025, 6, 15, 8, 0)} {
		require.NoError(t, repo.Create(ctx, &entity.MembershipLog{
			MemberId: 1, ActionType: entity.ActionUpdated, ActionDate: when, Remarks: when.Format("2006-01-02"),
		}))
	}

	logs, err := newAggregator(&timeutil.FixedClock{At: now}).MembershipLogs(ctx, unitofwork.NewUnitOfWork(db), now.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2025-06-15", logs[0].Remarks)
	assert.Equal(t, "2025-06-10", logs[1].Remarks)
	assert.Equal(t, "F Student", logs[0].MemberName)
}
