package lifecycle

import (
	"context"
	"testing"
	"time"

	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/model"
	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/testutil"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/internal/repository/specification"
	"gym-membership-be/internal/repository/unitofwork"
	"gym-membership-be/pkg/membership/audit"
	"gym-membership-be/pkg/membership/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"pgregory.net/rapid"
)

func newEngine(now time.Time) (*Engine, *timeutil.FixedClock) {
	clock := &timeutil.FixedClock{At: now}
	log := logger.NewNopLogger()
	return NewEngine(log, clock, testutil.Manila, pricing.NewResolver(log), audit.NewWriter(clock, testutil.Manila)), clock
}

func strPtr(s string) *string { return &s }

func logsFor(t *testing.T, db *gorm.DB, memberId uint) []*entity.MembershipLog {
	t.Helper()
	logs, err := unitofwork.NewUnitOfWork(db).MembershipLogRepository().FindAll(context.Background(),
		specification.ByMemberID{ID: memberId},
		specification.OrderBy{Field: "action_date"},
	)
	require.NoError(t, err)
	return logs
}

func studentRequest() *dto.RegisterMemberRequest {
	return &dto.RegisterMemberRequest{
		FirstName:     "Maria",
		LastName:      "Santos",
		MemberType:    "Student",
		StudentNumber: strPtr("2021-00123"),
		GymPlan:       "Monthly",
		StartDate:     dto.NewDate(testutil.Date(2025, 6, 1)),
		EndDate:       dto.NewDate(testutil.Date(2025, 7, 1)),
	}
}

func TestRegister_StudentWithNumber(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	testutil.SeedPricing(t, db)
	engine, _ := newEngine(testutil.At(2025, 6, 1, 10, 0))

	m, err := engine.Register(context.Background(), unitofwork.NewUnitOfWork(db), studentRequest())
	require.NoError(t, err)

	assert.NotZero(t, m.Id)
	assert.Regexp(t, `^GYM-[0-9A-F]{8}$`, m.UniqueCode)
	assert.Equal(t, 500.0, m.PricePaid)
	assert.Equal(t, entity.MemberStatusActive, m.Status)
	assert.Equal(t, entity.PaymentStatusUnpaid, m.PaymentStatus)
	assert.Nil(t, m.LastPaymentDate)
	assert.Equal(t, "2021-00123", *m.StudentNumber)

	logs := logsFor(t, db, m.Id)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionRegistered, logs[0].ActionType)
	assert.Equal(t, "Member Maria Santos registered successfully.", logs[0].Remarks)
}

func TestRegister_StudentWithoutNumber(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	engine, _ := newEngine(testutil.At(2025, 6, 1, 10, 0))

	req := studentRequest()
	req.StudentNumber = strPtr("  ")
	_, err := engine.Register(context.Background(), unitofwork.NewUnitOfWork(db), req)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	require.Len(t, apperror.ViolationsOf(err), 1)
	assert.Equal(t, "student_number", apperror.ViolationsOf(err)[0].Field)

	count, err := unitofwork.NewUnitOfWork(db).MemberRepository().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRegister_CollectsAllMissingFields(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	engine, _ := newEngine(testutil.At(2025, 6, 1, 10, 0))

	_, err := engine.Register(context.Background(), unitofwork.NewUnitOfWork(db), &dto.RegisterMemberRequest{})
	require.Error(t, err)

	var fields []string
	for _, v := range apperror.ViolationsOf(err) {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"first_name", "last_name", "member_type", "gym_plan", "start_date", "end_date"}, fields)
}

func TestRegister_RejectsReversedDates(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	engine, _ := newEngine(testutil.At(2025, 6, 1, 10, 0))

	req := studentRequest()
	req.EndDate = dto.NewDate(testutil.Date(2025, 5, 31))
	_, err := engine.Register(context.Background(), unitofwork.NewUnitOfWork(db), req)

	require.Error(t, err)
	assert.Equal(t, "end_date", apperror.ViolationsOf(err)[0].Field)
}

func TestRegister_Defaults(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	testutil.SeedPricing(t, db)
	now := testutil.At(2025, 6, 1, 10, 0)
	engine, _ := newEngine(now)
	ctx := context.Background()

	t.Run("future start is pending", func(t *testing.T) {
		req := studentRequest()
		req.StartDate = dto.NewDate(testutil.Date(2025, 6, 2))
		m, err := engine.Register(ctx, unitofwork.NewUnitOfWork(db), req)
		require.NoError(t, err)
		assert.Equal(t, entity.MemberStatusPending, m.Status)
	})

	t.Run("caller status wins", func(t *testing.T) {
		req := studentRequest()
		req.Status = "Inactive"
		m, err := engine.Register(ctx, unitofwork.NewUnitOfWork(db), req)
		require.NoError(t, err)
		assert.Equal(t, entity.MemberStatusInactive, m.Status)
	})

	t.Run("paid stamps payment date", func(t *testing.T) {
		req := studentRequest()
		req.PaymentStatus = "Paid"
		m, err := engine.Register(ctx, unitofwork.NewUnitOfWork(db), req)
		require.NoError(t, err)
		require.NotNil(t, m.LastPaymentDate)
		assert.True(t, m.LastPaymentDate.Equal(now))
	})

	t.Run("missing price resolves to zero", func(t *testing.T) {
		req := studentRequest()
		req.MemberType = "Outsider"
		req.StudentNumber = nil
		req.GymPlan = "Annual"
		m, err := engine.Register(ctx, unitofwork.NewUnitOfWork(db), req)
		require.NoError(t, err)
		assert.Zero(t, m.PricePaid)
		assert.Nil(t, m.StudentNumber)
	})
}

func TestRegister_RollsBackWhenLogFails(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	testutil.FailCreatesOn(t, db, "membership_logs")
	engine, _ := newEngine(testutil.At(2025, 6, 1, 10, 0))

	_, err := engine.Register(context.Background(), unitofwork.NewUnitOfWork(db), studentRequest())
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindStorage))

	count, err := unitofwork.NewUnitOfWork(db).MemberRepository().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "member insert must roll back with its log")
}

func TestSelfRegister(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	testutil.SeedPricing(t, db)
	engine, _ := newEngine(testutil.At(2025, 6, 10, 18, 0))
	ctx := context.Background()

	req := &dto.SelfRegisterRequest{
		FirstName: "Jose", LastName: "Rizal", Email: "Jose@Example.com",
		Password: "secret1", ConfirmPassword: "secret1",
		Age: 25, Gender: "Male", MemberType: "Faculty", GymPlan: "Monthly",
	}
	m, err := engine.SelfRegister(ctx, unitofwork.NewUnitOfWork(db), req)
	require.NoError(t, err)

	assert.True(t, m.IsSelfRegistered)
	assert.True(t, m.Activated())
	assert.Equal(t, "jose@example.com", *m.Email)
	assert.Equal(t, entity.MemberStatusPending, m.Status)
	assert.Equal(t, 700.0, m.PricePaid)
	assert.True(t, timeutil.CalendarDate(m.StartDate, testutil.Manila).Equal(testutil.Date(2025, 6, 10)))
	assert.True(t, timeutil.CalendarDate(m.EndDate, testutil.Manila).Equal(testutil.Date(2025, 7, 10)))

	logs := logsFor(t, db, m.Id)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionUserRegistration, logs[0].ActionType)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := engine.SelfRegister(ctx, unitofwork.NewUnitOfWork(db), req)
		assert.True(t, apperror.Is(err, apperror.KindConflict))
		assert.Contains(t, err.Error(), "Please login instead")
	})

	t.Run("admin-created email not activated", func(t *testing.T) {
		testutil.InsertMember(t, db, &model.Member{
			FirstName: "Ana", LastName: "Reyes", Email: strPtr("ana@example.com"),
			MemberType: "Outsider", GymPlan: "Daily", Status: "Active",
			StartDate: testutil.Date(2025, 6, 1), EndDate: testutil.Date(2025, 6, 2),
		})
		dup := *req
		dup.Email = "ana@example.com"
		_, err := engine.SelfRegister(ctx, unitofwork.NewUnitOfWork(db), &dup)
		assert.True(t, apperror.Is(err, apperror.KindConflict))
		assert.Contains(t, err.Error(), "contact admin")
	})

	t.Run("annual plan and mismatched password", func(t *testing.T) {
		bad := *req
		bad.Email = "new@example.com"
		bad.GymPlan = "Annual"
		bad.ConfirmPassword = "other"
		_, err := engine.SelfRegister(ctx, unitofwork.NewUnitOfWork(db), &bad)
		require.True(t, apperror.Is(err, apperror.KindValidation))

		messages := map[string]string{}
		for _, v := range apperror.ViolationsOf(err) {
			messages[v.Field] = v.Message
		}
		assert.Equal(t, "Annual plans are not available yet", messages["gym_plan"])
		assert.Contains(t, messages, "confirm_password")
	})
}

func TestEdit_TypeChangeClearsStudentNumberAndReprices(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	testutil.SeedPricing(t, db)
	engine, clock := newEngine(testutil.At(2025, 6, 1, 10, 0))
	ctx := context.Background()

	m, err := engine.Register(ctx, unitofwork.NewUnitOfWork(db), studentRequest())
	require.NoError(t, err)
	clock.Advance(time.Hour)

	updated, err := engine.Edit(ctx, unitofwork.NewUnitOfWork(db), m.Id, &dto.UpdateMemberRequest{
		MemberType: strPtr("Faculty"),
		LastName:   strPtr("Santos-Cruz"),
	})
	require.NoError(t, err)

	assert.Nil(t, updated.StudentNumber)
	assert.Equal(t, 700.0, updated.PricePaid)
	assert.Equal(t, "Maria", updated.FirstName, "absent fields stay untouched")
	assert.Equal(t, "Santos-Cruz", updated.LastName)

	logs := logsFor(t, db, m.Id)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.ActionUpdated, logs[1].ActionType)
	assert.Equal(t, "Faculty", logs[1].Details["member_type"])
	assert.Contains(t, logs[1].Details, "student_number")
}

func TestEdit_SwitchToStudentNeedsNumber(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	engine, _ := newEngine(testutil.At(2025, 6, 1, 10, 0))
	m := testutil.InsertMember(t, db, &model.Member{
		FirstName: "Lito", LastName: "Cruz", MemberType: "Outsider", GymPlan: "Monthly", Status: "Active",
		StartDate: testutil.Date(2025, 6, 1), EndDate: testutil.Date(2025, 7, 1),
	})

	_, err := engine.Edit(context.Background(), unitofwork.NewUnitOfWork(db), m.MemberId, &dto.UpdateMemberRequest{
		MemberType: strPtr("Student"),
	})
	require.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, "student_number", apperror.ViolationsOf(err)[0].Field)

	updated, err := engine.Edit(context.Background(), unitofwork.NewUnitOfWork(db), m.MemberId, &dto.UpdateMemberRequest{
		MemberType:    strPtr("Student"),
		StudentNumber: strPtr("2020-555"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2020-555", *updated.StudentNumber)
}

func TestEdit_DatesAndPayment(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	now := testutil.At(2025, 6, 15, 9, 0)
	engine, _ := newEngine(now)
	m := testutil.InsertMember(t, db, &model.Member{
		FirstName: "Lito", LastName: "Cruz", MemberType: "Outsider", GymPlan: "Monthly", Status: "Active", PaymentStatus: "Unpaid",
		StartDate: testutil.Date(2025, 6, 1), EndDate: testutil.Date(2025, 7, 1),
	})
	ctx := context.Background()

	_, err := engine.Edit(ctx, unitofwork.NewUnitOfWork(db), m.MemberId, &dto.UpdateMemberRequest{
		EndDate: dto.NewDate(testutil.Date(2025, 5, 1)),
	})
	require.True(t, apperror.Is(err, apperror.KindValidation))

	updated, err := engine.Edit(ctx, unitofwork.NewUnitOfWork(db), m.MemberId, &dto.UpdateMemberRequest{
		EndDate:       dto.NewDate(testutil.Date(2025, 8, 1)),
		PaymentStatus: strPtr("Paid"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.LastPaymentDate)
	assert.True(t, updated.LastPaymentDate.Equal(now))
	assert.True(t, timeutil.CalendarDate(updated.EndDate, testutil.Manila).Equal(testutil.Date(2025, 8, 1)))
	assert.True(t, timeutil.CalendarDate(updated.StartDate, testutil.Manila).Equal(testutil.Date(2025, 6, 1)))
}

func TestEdit_UnknownMember(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	engine, _ := newEngine(testutil.At(2025, 6, 1, 10, 0))

	_, err := engine.Edit(context.Background(), unitofwork.NewUnitOfWork(db), 404, &dto.UpdateMemberRequest{FirstName: strPtr("X")})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestEdit_EmptyStringClearsEmailAndGender(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	engine, _ := newEngine(testutil.At(2025, 6, 1, 10, 0))
	m := testutil.InsertMember(t, db, &model.Member{
		FirstName: "Lito", LastName: "Cruz", MemberType: "Outsider", GymPlan: "Monthly", Status: "Active",
		Email: strPtr("lito@example.com"), Gender: strPtr("Male"), Address: strPtr("Quezon City"),
		StartDate: testutil.Date(2025, 6, 1), EndDate: testutil.Date(2025, 7, 1),
	})

	updated, err := engine.Edit(context.Background(), unitofwork.NewUnitOfWork(db), m.MemberId, &dto.UpdateMemberRequest{
		Email:   strPtr(""),
		Gender:  strPtr(""),
		Address: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Email)
	assert.Nil(t, updated.Gender)
	assert.Nil(t, updated.Address)

	logs := logsFor(t, db, m.MemberId)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Details, "email")
	assert.Contains(t, logs[0].Details, "gender")
}

func TestRegisterAndEdit_RejectDuplicateEmail(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	testutil.SeedPricing(t, db)
	engine, _ := newEngine(testutil.At(2025, 6, 1, 10, 0))
	ctx := context.Background()

	first := studentRequest()
	first.Email = "maria@example.com"
	owner, err := engine.Register(ctx, unitofwork.NewUnitOfWork(db), first)
	require.NoError(t, err)

	t.Run("register with a taken email", func(t *testing.T) {
		req := studentRequest()
		req.Email = "MARIA@example.com"
		_, err := engine.Register(ctx, unitofwork.NewUnitOfWork(db), req)
		assert.True(t, apperror.Is(err, apperror.KindConflict))

		count, err := unitofwork.NewUnitOfWork(db).MemberRepository().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	other, err := engine.Register(ctx, unitofwork.NewUnitOfWork(db), studentRequest())
	require.NoError(t, err)

	t.Run("edit onto a taken email", func(t *testing.T) {
		_, err := engine.Edit(ctx, unitofwork.NewUnitOfWork(db), other.Id, &dto.UpdateMemberRequest{Email: strPtr("maria@example.com")})
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})

	t.Run("owner keeps its own email", func(t *testing.T) {
		updated, err := engine.Edit(ctx, unitofwork.NewUnitOfWork(db), owner.Id, &dto.UpdateMemberRequest{
			Email:     strPtr("Maria@Example.com"),
			FirstName: strPtr("Mariana"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Mariana", updated.FirstName)
	})
}

func TestDelete_CascadesLogsAndRenewals(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	testutil.SeedPricing(t, db)
	engine, _ := newEngine(testutil.At(2025, 6, 1, 10, 0))
	ctx := context.Background()

	m, err := engine.Register(ctx, unitofwork.NewUnitOfWork(db), studentRequest())
	require.NoError(t, err)
	other, err := engine.Register(ctx, unitofwork.NewUnitOfWork(db), studentRequest())
	require.NoError(t, err)

	uow := unitofwork.NewUnitOfWork(db)
	for _, id := range []uint{m.Id, other.Id} {
		require.NoError(t, uow.RenewalRepository().Create(ctx, &entity.RenewalRequest{
			MemberId: id, RequestedPlan: entity.GymPlanDaily, RequestDate: testutil.At(2025, 6, 1, 11, 0), Status: entity.RenewalStatusPending,
		}))
	}

	removed, err := engine.Delete(ctx, unitofwork.NewUnitOfWork(db), m.Id)
	require.NoError(t, err)
	assert.Equal(t, m.UniqueCode, removed.UniqueCode)

	found, err := uow.MemberRepository().FindOne(ctx, specification.ByMemberID{ID: m.Id})
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.Empty(t, logsFor(t, db, m.Id))

	renewals, err := uow.RenewalRepository().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, renewals, 1)
	assert.Equal(t, other.Id, renewals[0].MemberId)
	assert.Len(t, logsFor(t, db, other.Id), 1)

	archive, err := uow.MembershipLogRepository().FindDeletions(ctx)
	require.NoError(t, err)
	require.Len(t, archive, 1)
	assert.Equal(t, m.UniqueCode, archive[0].UniqueCode)
	assert.Equal(t, "Deleted member record for Maria Santos.", archive[0].Remarks)

	_, err = engine.Delete(ctx, unitofwork.NewUnitOfWork(db), m.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestSweepExpirations(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	engine, _ := newEngine(testutil.At(2025, 6, 10, 0, 30))
	ctx := context.Background()

	insert := func(status string, end time.Time) *model.Member {
		return testutil.InsertMember(t, db, &model.Member{
			FirstName: "M", LastName: status, MemberType: "Outsider", GymPlan: "Monthly", Status: status,
			StartDate: end.AddDate(0, 0, -30), EndDate: end,
		})
	}
	pending := insert("Pending", testutil.Date(2025, 6, 9))
	inactive := insert("Inactive", testutil.Date(2025, 5, 1))
	override := insert("Active", testutil.Date(2025, 5, 1))
	endsToday := insert("Pending", testutil.Date(2025, 6, 10))
	insert("Expired", testutil.Date(2025, 4, 1))

	asOf := testutil.At(2025, 6, 10, 0, 30)
	count, err := engine.SweepExpirations(ctx, unitofwork.NewUnitOfWork(db), asOf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	repo := unitofwork.NewUnitOfWork(db).MemberRepository()
	status := func(id uint) entity.MemberStatus {
		m, err := repo.FindOne(ctx, specification.ByMemberID{ID: id})
		require.NoError(t, err)
		return m.Status
	}
	assert.Equal(t, entity.MemberStatusExpired, status(pending.MemberId))
	assert.Equal(t, entity.MemberStatusExpired, status(inactive.MemberId))
	assert.Equal(t, entity.MemberStatusActive, status(override.MemberId))
	assert.Equal(t, entity.MemberStatusPending, status(endsToday.MemberId))

	logs := logsFor(t, db, pending.MemberId)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionStatusUpdate, logs[0].ActionType)
	assert.Equal(t, "Automatically marked as expired (End date: 2025-06-09).", logs[0].Remarks)

	again, err := engine.SweepExpirations(ctx, unitofwork.NewUnitOfWork(db), asOf)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestSweepExpirations_RollsBackOnLogFailure(t *testing.T) {
	db := testutil.SetupSQLiteTestDB(t)
	engine, _ := newEngine(testutil.At(2025, 6, 10, 8, 0))
	m := testutil.InsertMember(t, db, &model.Member{
		FirstName: "M", LastName: "P", MemberType: "Outsider", GymPlan: "Daily", Status: "Pending",
		StartDate: testutil.Date(2025, 6, 1), EndDate: testutil.Date(2025, 6, 2),
	})
	testutil.FailCreatesOn(t, db, "membership_logs")

	_, err := engine.SweepExpirations(context.Background(), unitofwork.NewUnitOfWork(db), testutil.At(2025, 6, 10, 8, 0))
	require.True(t, apperror.Is(err, apperror.KindStorage))

	found, err := unitofwork.NewUnitOfWork(db).MemberRepository().FindOne(context.Background(), specification.ByMemberID{ID: m.MemberId})
	require.NoError(t, err)
	assert.Equal(t, entity.MemberStatusPending, found.Status)
}

func TestSweepExpirations_Properties(t *testing.T) {
	statuses := []string{"Active", "Inactive", "Expired", "Pending"}

	rapid.Check(t, func(rt *rapid.T) {
		db := testutil.SetupSQLiteTestDB(t)
		ctx := context.Background()
		asOf := testutil.At(2025, 6, 15, 12, 0)
		engine, _ := newEngine(asOf)

		n := rapid.IntRange(0, 12).Draw(rt, "members")
		active := map[uint]bool{}
		for i := 0; i < n; i++ {
			status := rapid.SampledFrom(statuses).Draw(rt, "status")
			offset := rapid.IntRange(-40, 40).Draw(rt, "end_offset")
			end := timeutil.AddDays(testutil.Date(2025, 6, 15), offset)
			m := testutil.InsertMember(t, db, &model.Member{
				FirstName: "P", LastName: "Q", MemberType: "Faculty", GymPlan: "Monthly", Status: status,
				StartDate: end.AddDate(0, 0, -30), EndDate: end,
			})
			if status == "Active" {
				active[m.MemberId] = true
			}
		}

		_, err := engine.SweepExpirations(ctx, unitofwork.NewUnitOfWork(db), asOf)
		require.NoError(rt, err)
		second, err := engine.SweepExpirations(ctx, unitofwork.NewUnitOfWork(db), asOf)
		require.NoError(rt, err)
		assert.Zero(rt, second, "second sweep on the same day changes nothing")

		members, err := unitofwork.NewUnitOfWork(db).MemberRepository().FindAll(ctx)
		require.NoError(rt, err)
		for _, m := range members {
			if active[m.Id] {
				assert.Equal(rt, entity.MemberStatusActive, m.Status, "admin override is never expired")
			}
			if m.Status != entity.MemberStatusActive && m.Status != entity.MemberStatusExpired {
				assert.False(rt, timeutil.CalendarDate(m.EndDate, testutil.Manila).Before(testutil.Date(2025, 6, 15)))
			}
		}
	})
}
