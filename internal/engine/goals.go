package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

// avgDaysPerMonth converts a day span into fractional months without
// calendar-edge distortion.
const avgDaysPerMonth = 30.44

// EvaluateGoals determines feasibility for each goal against the average
// projected monthly savings capacity. Completed overrides everything else;
// a past-due incomplete goal is Overdue, distinct from merely unachievable.
func EvaluateGoals(goals []model.Goal, asOf time.Time, avgCapacity decimal.Decimal) []model.GoalProgress {
	results := make([]model.GoalProgress, 0, len(goals))
	for _, g := range goals {
		results = append(results, evaluateGoal(g, asOf, avgCapacity))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Goal.TargetDate.Before(results[j].Goal.TargetDate)
	})
	return results
}

func evaluateGoal(g model.Goal, asOf time.Time, avgCapacity decimal.Decimal) model.GoalProgress {
	progress := model.GoalProgress{
		Goal:            g,
		ProgressPercent: g.ProgressPercent(),
		MonthsRemaining: monthsRemaining(asOf, g.TargetDate),
	}

	if progress.ProgressPercent >= 100 {
		progress.State = model.GoalCompleted
		progress.Achievable = true
		return progress
	}

	remaining := g.TargetAmount.Sub(g.CurrentAmount)

	if progress.MonthsRemaining == 0 {
		// Past the deadline with the goal unfunded: the whole remainder
		// is due now.
		progress.State = model.GoalOverdue
		progress.MonthlySavingsNeeded = remaining
		return progress
	}

	progress.MonthlySavingsNeeded = remaining.Div(decimal.NewFromFloat(progress.MonthsRemaining))
	// Strict comparison, no tolerance band.
	progress.Achievable = progress.MonthlySavingsNeeded.Cmp(avgCapacity) <= 0
	if progress.Achievable {
		progress.State = model.GoalOnTrack
	} else {
		progress.State = model.GoalChallenging
	}
	return progress
}

// monthsRemaining returns the fractional months between asOf and the target
// date, floored at zero.
func monthsRemaining(asOf, target time.Time) float64 {
	days := target.Sub(asOf).Hours() / 24
	months := days / avgDaysPerMonth
	if months < 0 {
		return 0
	}
	return months
}
