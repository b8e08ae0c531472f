// Package engine computes projections, goal feasibility, spending-limit
// status, and the composite health score from a consistent data snapshot.
// Every function is pure: same snapshot and as-of date, same output. The
// engine never fails; degenerate inputs (empty history, zero income, past
// deadlines) map to defined degraded outputs so a dashboard can always
// render.
package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/config"
	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

// Snapshot is a point-in-time read of everything the engine consumes.
// Callers must produce it from a single consistent read (the store does
// so inside one transaction) so no partial-write anomalies leak into
// one computation's output.
type Snapshot struct {
	Transactions []model.Transaction
	Categories   []model.Category
	Accounts     []model.Account
	Goals        []model.Goal
	Limits       []model.SpendingLimit
}

// CategoryByID builds a lookup index over the snapshot's categories.
func (s Snapshot) CategoryByID() map[string]model.Category {
	idx := make(map[string]model.Category, len(s.Categories))
	for _, c := range s.Categories {
		idx[c.ID] = c
	}
	return idx
}

// Params are the engine tunables. Zero values are not usable; start from
// DefaultParams or FromConfig.
type Params struct {
	LookbackMonths      int
	RecurrenceMinMonths int
	RecurrenceTolerance float64
	BlendAlpha          float64
	ProjectionMonths    int
	LimitWarningRatio   float64
	WeightSavings       float64
	WeightLimits        float64
	WeightGoals         float64
	MaxRecommendations  int
}

// DefaultParams returns the documented defaults: 6-month lookback, 3-of-6
// recurrence with ±15% tolerance, an even recurrence/history blend, and a
// 3-month horizon.
func DefaultParams() Params {
	return FromConfig(config.DefaultConfig().Engine)
}

// FromConfig converts configured engine settings into Params.
func FromConfig(e config.EngineConfig) Params {
	return Params{
		LookbackMonths:      e.LookbackMonths,
		RecurrenceMinMonths: e.RecurrenceMinMonths,
		RecurrenceTolerance: e.RecurrenceTolerance,
		BlendAlpha:          e.BlendAlpha,
		ProjectionMonths:    e.ProjectionMonths,
		LimitWarningRatio:   e.LimitWarningRatio,
		WeightSavings:       e.WeightSavings,
		WeightLimits:        e.WeightLimits,
		WeightGoals:         e.WeightGoals,
		MaxRecommendations:  e.MaxRecommendations,
	}
}

// ComputeDashboard produces the full dashboard payload for the month
// containing asOf. Goal feasibility is evaluated against the same
// invocation's projections, never a cached capacity.
func ComputeDashboard(snap Snapshot, asOf time.Time, p Params) model.Dashboard {
	summary := SummarizeMonth(snap.Transactions, snap.CategoryByID(), asOf)
	projections := ComputeProjections(snap, asOf, p.ProjectionMonths, p)
	limits := EvaluateLimits(snap, asOf, p)
	goals := EvaluateGoals(snap.Goals, asOf, projections.AvgMonthlySavings())

	return model.Dashboard{
		Summary:         summary,
		Health:          Score(summary, limits, goals, p),
		SavingsCapacity: projections.SavingsCapacity,
		Limits:          limits,
		Goals:           goals,
	}
}

// SummarizeMonth totals income, expenses, and per-category expenses for
// the calendar month containing asOf.
func SummarizeMonth(txs []model.Transaction, categories map[string]model.Category, asOf time.Time) model.CurrentMonthSummary {
	month := MonthOf(asOf)

	summary := model.CurrentMonthSummary{
		PeriodStart:        month.Start(asOf.Location()),
		PeriodEnd:          month.End(asOf.Location()),
		ExpensesByCategory: make(map[string]decimal.Decimal),
	}

	for _, tx := range txs {
		if !month.Contains(tx.Date) {
			continue
		}
		switch tx.Type {
		case model.TypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		case model.TypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(tx.Amount)
			key := categoryName(categories, tx.CategoryID)
			summary.ExpensesByCategory[key] = summary.ExpensesByCategory[key].Add(tx.Amount)
		}
	}

	summary.PartialBalance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

func categoryName(categories map[string]model.Category, id string) string {
	if c, ok := categories[id]; ok {
		return c.Name
	}
	return "Uncategorized"
}
