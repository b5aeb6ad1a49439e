package statistics

import (
	"context"
	"time"

	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/internal/repository/memory"
	"gym-membership-be/internal/repository/specification"
	"gym-membership-be/internal/repository/unitofwork"
)

const (
	windowMonths = 6
	windowDays   = 7
	notAvailable = "N/A"
)

// DashboardCache is the short-lived snapshot store for the dashboard summary.
type DashboardCache = memory.SnapshotCache[*dto.DashboardSummaryResponse]

// Aggregator computes the admin reporting views. Every window is derived from
// the now passed in by the caller.
type Aggregator struct {
	logger logger.ILogger
	loc    *time.Location
	cache  *DashboardCache
}

func NewAggregator(logger logger.ILogger, loc *time.Location, cache *DashboardCache) *Aggregator {
	return &Aggregator{
		logger: logger,
		loc:    loc,
		cache:  cache,
	}
}

type typeCounts map[entity.MemberType]int64

func (c typeCounts) values() (students, faculty, outsiders int64) {
	return c[entity.MemberTypeStudent], c[entity.MemberTypeFaculty], c[entity.MemberTypeOutsider]
}

// mostActive returns the first type with the highest count, or "N/A" when
// every count is zero.
func mostActive(counts typeCounts, labels map[entity.MemberType]string) string {
	best := notAvailable
	var max int64
	for _, t := range entity.MemberTypes {
		if counts[t] > max {
			max = counts[t]
			best = labels[t]
		}
	}
	return best
}

var singularLabels = map[entity.MemberType]string{
	entity.MemberTypeStudent:  "Student",
	entity.MemberTypeFaculty:  "Faculty",
	entity.MemberTypeOutsider: "Outsider",
}

var pluralLabels = map[entity.MemberType]string{
	entity.MemberTypeStudent:  "Students",
	entity.MemberTypeFaculty:  "Faculty",
	entity.MemberTypeOutsider: "Outsiders",
}

// monthWindow returns the first day of each of the windowMonths calendar
// months ending at now's month, oldest first.
func (a *Aggregator) monthWindow(now time.Time) []time.Time {
	current := timeutil.MonthStart(now, a.loc)
	months := make([]time.Time, windowMonths)
	for i := 0; i < windowMonths; i++ {
		months[i] = current.AddDate(0, i-(windowMonths-1), 0)
	}
	return months
}

func (a *Aggregator) loadMembers(ctx context.Context, uow unitofwork.UnitOfWork, specs ...specification.Specification) ([]*entity.Member, error) {
	members, err := uow.MemberRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Storage("load members", err)
	}
	return members, nil
}

// DashboardSummary is served from the snapshot cache while it is fresh.
func (a *Aggregator) DashboardSummary(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) (*dto.DashboardSummaryResponse, error) {
	return a.cache.GetOrCompute(func() (*dto.DashboardSummaryResponse, error) {
		return a.computeDashboard(ctx, uow, now)
	})
}

func (a *Aggregator) computeDashboard(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) (*dto.DashboardSummaryResponse, error) {
	members, err := a.loadMembers(ctx, uow)
	if err != nil {
		return nil, err
	}

	statusCounts := map[entity.MemberStatus]int64{}
	active := typeCounts{}
	for _, m := range members {
		statusCounts[m.Status]++
		if m.Status == entity.MemberStatusActive {
			active[m.MemberType]++
		}
	}

	// Active members whose membership interval overlaps each month
	overview := dto.TypeSeries{}
	for _, monthStart := range a.monthWindow(now) {
		monthEnd := timeutil.AddDays(monthStart.AddDate(0, 1, 0), -1)
		overlap := typeCounts{}
		for _, m := range members {
			if m.Status != entity.MemberStatusActive {
				continue
			}
			start := timeutil.CalendarDate(m.StartDate, a.loc)
			end := timeutil.CalendarDate(m.EndDate, a.loc)
			if !start.After(monthEnd) && !end.Before(monthStart) {
				overlap[m.MemberType]++
			}
		}
		s, f, o := overlap.values()
		overview.Labels = append(overview.Labels, monthStart.Format("Jan"))
		overview.Students = append(overview.Students, s)
		overview.Faculty = append(overview.Faculty, f)
		overview.Outsiders = append(overview.Outsiders, o)
	}

	activeTotal := statusCounts[entity.MemberStatusActive]
	most := notAvailable
	if activeTotal > 0 {
		most = mostActive(active, singularLabels)
	}
	s, f, o := active.values()

	res := &dto.DashboardSummaryResponse{
		Summary: dto.SummaryCard{
			Total:      int64(len(members)),
			Active:     activeTotal,
			MostActive: most,
		},
		OverviewChart: overview,
		StatusChart: dto.CountChart{
			Labels: []string{"Student", "Faculty", "Outsider"},
			Values: []int64{s, f, o},
		},
		StatusOverview: dto.CountChart{
			Labels: []string{"Active", "Inactive", "Expired"},
			Values: []int64{
				statusCounts[entity.MemberStatusActive],
				statusCounts[entity.MemberStatusInactive],
				statusCounts[entity.MemberStatusExpired],
			},
		},
	}

	a.logger.Debug("STATISTICS", "Computed dashboard summary", map[string]interface{}{
		"members": len(members),
		"active":  activeTotal,
	})
	return res, nil
}

// StatisticsSummary counts registrations per calendar month. It is kept apart
// from the dashboard overview, which counts membership overlap instead.
func (a *Aggregator) StatisticsSummary(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) (*dto.StatisticsSummaryResponse, error) {
	members, err := a.loadMembers(ctx, uow)
	if err != nil {
		return nil, err
	}

	overview := dto.TypeSeries{}
	registered := typeCounts{}
	for _, monthStart := range a.monthWindow(now) {
		next := monthStart.AddDate(0, 1, 0)
		counts := typeCounts{}
		for _, m := range members {
			at := timeutil.InZone(m.DateRegistered, a.loc)
			if !at.Before(monthStart) && at.Before(next) {
				counts[m.MemberType]++
				registered[m.MemberType]++
			}
		}
		s, f, o := counts.values()
		overview.Labels = append(overview.Labels, monthStart.Format("2006-01"))
		overview.Students = append(overview.Students, s)
		overview.Faculty = append(overview.Faculty, f)
		overview.Outsiders = append(overview.Outsiders, o)
	}

	statusCounts := map[entity.MemberStatus]int64{}
	paymentCounts := map[entity.PaymentStatus]int64{}
	for _, m := range members {
		statusCounts[m.Status]++
		paymentCounts[m.PaymentStatus]++
	}

	s, f, o := registered.values()
	return &dto.StatisticsSummaryResponse{
		Summary: dto.SummaryCard{
			Total:      int64(len(members)),
			Active:     statusCounts[entity.MemberStatusActive],
			MostActive: mostActive(registered, pluralLabels),
		},
		OverviewChart: overview,
		StatusOverview: dto.CountChart{
			Labels: []string{"Active", "Expired", "Pending"},
			Values: []int64{
				statusCounts[entity.MemberStatusActive],
				statusCounts[entity.MemberStatusExpired],
				statusCounts[entity.MemberStatusPending],
			},
		},
		StatusChart: dto.CountChart{
			Labels: []string{"Students", "Faculty", "Outsiders"},
			Values: []int64{s, f, o},
		},
		PaymentStatusChart: dto.CountChart{
			Labels: []string{"Paid", "Unpaid", "Overdue"},
			Values: []int64{
				paymentCounts[entity.PaymentStatusPaid],
				paymentCounts[entity.PaymentStatusUnpaid],
				paymentCounts[entity.PaymentStatusOverdue],
			},
		},
		WeeklyRevenue: a.weeklySeries(members, now),
	}, nil
}

// RevenueSummary totals paid revenue over all time, the current calendar
// month and the current calendar day.
func (a *Aggregator) RevenueSummary(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) (*dto.RevenueSummaryResponse, error) {
	members, err := a.loadMembers(ctx, uow, specification.OrderBy{Field: "member_id"})
	if err != nil {
		return nil, err
	}

	today := timeutil.DateOf(now, a.loc)
	monthStart := timeutil.MonthStart(now, a.loc)
	nextMonth := monthStart.AddDate(0, 1, 0)

	stats := dto.RevenueStats{TotalMembers: int64(len(members))}
	rows := make([]dto.RevenueMemberRow, 0, len(members))
	for _, m := range members {
		paidAt := timeutil.InZone(m.PaidAt(), a.loc)
		if m.PaymentStatus == entity.PaymentStatusPaid {
			stats.TotalRevenue += m.PricePaid
			if !paidAt.Before(monthStart) && paidAt.Before(nextMonth) {
				stats.MonthlyRevenue += m.PricePaid
			}
			if timeutil.DateOf(paidAt, a.loc).Equal(today) {
				stats.DailyRevenue += m.PricePaid
			}
		}
		if m.Status == entity.MemberStatusActive {
			stats.ActiveMembers++
		}
		rows = append(rows, dto.RevenueMemberRow{
			Id:            m.Id,
			UniqueCode:    m.UniqueCode,
			FirstName:     m.FirstName,
			LastName:      m.LastName,
			PricePaid:     m.PricePaid,
			MemberType:    string(m.MemberType),
			GymPlan:       string(m.GymPlan),
			Status:        string(m.Status),
			PaymentStatus: string(m.PaymentStatus),
			PaidAt:        paidAt,
		})
	}

	return &dto.RevenueSummaryResponse{
		Members:       rows,
		Stats:         stats,
		WeeklyRevenue: a.weeklySeries(members, now),
	}, nil
}

// WeeklyRevenue sums paid revenue for each of the last seven days.
func (a *Aggregator) WeeklyRevenue(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) (*dto.RevenueChart, error) {
	members, err := a.loadMembers(ctx, uow, specification.Filter("payment_status", string(entity.PaymentStatusPaid)))
	if err != nil {
		return nil, err
	}
	series := a.weeklySeries(members, now)
	return &series, nil
}

// weeklySeries matches each paid member to the exact calendar day of its
// payment timestamp, oldest day first.
func (a *Aggregator) weeklySeries(members []*entity.Member, now time.Time) dto.RevenueChart {
	today := timeutil.DateOf(now, a.loc)
	days := make([]time.Time, windowDays)
	chart := dto.RevenueChart{
		Labels: make([]string, windowDays),
		Values: make([]float64, windowDays),
	}
	for i := 0; i < windowDays; i++ {
		days[i] = timeutil.AddDays(today, i-(windowDays-1))
		chart.Labels[i] = days[i].Format("Mon")
	}

	for _, m := range members {
		if m.PaymentStatus != entity.PaymentStatusPaid {
			continue
		}
		paidDay := timeutil.CalendarDate(m.PaidAt(), a.loc)
		for i, day := range days {
			if paidDay.Equal(day) {
				chart.Values[i] += m.PricePaid
			}
		}
	}
	return chart
}

// MembershipLogs returns log entries at or after since, newest first.
func (a *Aggregator) MembershipLogs(ctx context.Context, uow unitofwork.UnitOfWork, since time.Time) ([]*dto.MembershipLogResponse, error) {
	logs, err := uow.MembershipLogRepository().FindWithMember(ctx,
		specification.ActionDateSince{Since: since.In(a.loc)},
		specification.OrderBy{Field: "membership_logs.action_date", Desc: true},
	)
	if err != nil {
		return nil, apperror.Storage("load membership logs", err)
	}

	res := make([]*dto.MembershipLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, &dto.MembershipLogResponse{
			LogId:      l.Id.String(),
			MemberId:   l.MemberId,
			MemberName: l.MemberName,
			ActionType: string(l.ActionType),
			ActionDate: timeutil.InZone(l.ActionDate, a.loc),
			Remarks:    l.Remarks,
			Details:    l.Details,
		})
	}
	return res, nil
}
