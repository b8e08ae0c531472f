package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyProjection is the projected total for one transaction type in one
// future month: a blend of the detected recurring amount and the historical
// monthly average. ByCategory is populated for expense projections only,
// keyed by category ID.
type MonthlyProjection struct {
	Year              int
	Month             time.Month
	RecurringAmount   decimal.Decimal
	HistoricalAverage decimal.Decimal
	ProjectedTotal    decimal.Decimal
	ByCategory        map[string]decimal.Decimal
}

// SavingsCapacity is the projected room to save in one future month.
// SavingsRate is zero (not NaN) when projected income is zero; that case
// is flagged via LowConfidence.
type SavingsCapacity struct {
	Year              int
	Month             time.Month
	ProjectedIncome   decimal.Decimal
	ProjectedExpenses decimal.Decimal
	ProjectedSavings  decimal.Decimal
	SavingsRate       float64
	LowConfidence     bool
}

// Projections holds the full multi-month projection output, keyed "YYYY-MM".
type Projections struct {
	Expenses        map[string]MonthlyProjection
	Income          map[string]MonthlyProjection
	SavingsCapacity map[string]SavingsCapacity
}

// AvgMonthlySavings returns the mean projected savings across the horizon,
// or zero when the horizon is empty.
func (p Projections) AvgMonthlySavings() decimal.Decimal {
	if len(p.SavingsCapacity) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, sc := range p.SavingsCapacity {
		sum = sum.Add(sc.ProjectedSavings)
	}
	return sum.Div(decimal.NewFromInt(int64(len(p.SavingsCapacity))))
}

// CurrentMonthSummary aggregates the calendar month containing the
// as-of date. PartialBalance is income minus expenses so far.
type CurrentMonthSummary struct {
	PeriodStart        time.Time
	PeriodEnd          time.Time
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	PartialBalance     decimal.Decimal
	ExpensesByCategory map[string]decimal.Decimal
}

// Dashboard is the full payload behind the dashboard view.
type Dashboard struct {
	Summary         CurrentMonthSummary
	Health          HealthScore
	SavingsCapacity map[string]SavingsCapacity
	Limits          []LimitStatus
	Goals           []GoalProgress
}
