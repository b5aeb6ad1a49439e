package dto

import "time"

type SummaryCard struct {
	Total      int64  `json:"total"`
	Active     int64  `json:"active"`
	MostActive string `json:"most_active"`
}

// TypeSeries holds one count per label for each member type.
type TypeSeries struct {
	Labels    []string `json:"labels"`
	Students  []int64  `json:"students"`
	Faculty   []int64  `json:"faculty"`
	Outsiders []int64  `json:"outsiders"`
}

type CountChart struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

type RevenueChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type DashboardSummaryResponse struct {
	Summary        SummaryCard `json:"summary"`
	OverviewChart  TypeSeries  `json:"overview_chart"`
	StatusChart    CountChart  `json:"status_chart"`
	StatusOverview CountChart  `json:"status_overview"`
}

type StatisticsSummaryResponse struct {
	Summary            SummaryCard  `json:"summary"`
	OverviewChart      TypeSeries   `json:"overview_chart"`
	StatusOverview     CountChart   `json:"status_overview"`
	StatusChart        CountChart   `json:"status_chart"`
	PaymentStatusChart CountChart   `json:"payment_status_chart"`
	WeeklyRevenue      RevenueChart `json:"weekly_revenue"`
}

type RevenueStats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	DailyRevenue   float64 `json:"daily_revenue"`
	TotalMembers   int64   `json:"total_members"`
	ActiveMembers  int64   `json:"active_members"`
}

type RevenueMemberRow struct {
	Id            uint      `json:"id"`
	UniqueCode    string    `json:"unique_code"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PricePaid     float64   `json:"price_paid"`
	MemberType    string    `json:"member_type"`
	GymPlan       string    `json:"gym_plan"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PaidAt        time.Time `json:"created_at"`
}

type RevenueSummaryResponse struct {
	Members       []RevenueMemberRow `json:"members"`
	Stats         RevenueStats       `json:"stats"`
	WeeklyRevenue RevenueChart       `json:"weekly_revenue"`
}
