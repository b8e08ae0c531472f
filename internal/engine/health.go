package engine

import (
	"fmt"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

// fullCreditRate is the current-month savings rate (as a fraction of
// income) that earns the full savings-rate half of the savings component.
const fullCreditRate = 0.20

// Score combines the current month's balance and savings rate, spending
// limit adherence, and goal achievability into one 0-100 health score with
// prioritized recommendations.
func Score(summary model.CurrentMonthSummary, limits []model.LimitStatus, goals []model.GoalProgress, p Params) model.HealthScore {
	savingsComponent, lowConfidence := savingsScore(summary)
	limitComponent := limitScore(limits)
	goalComponent := goalScore(goals)

	weightSum := p.WeightSavings + p.WeightLimits + p.WeightGoals
	total := (p.WeightSavings*savingsComponent +
		p.WeightLimits*limitComponent +
		p.WeightGoals*goalComponent) / weightSum

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return model.HealthScore{
		TotalScore:      total,
		Level:           model.LevelForScore(total),
		Recommendations: recommendations(summary, limits, goals, lowConfidence, p.MaxRecommendations),
		LowConfidence:   lowConfidence,
	}
}

// savingsScore awards half its points for a non-negative partial balance
// and the other half for the savings rate, scaled so fullCreditRate earns
// everything. Zero income leaves only the balance half and flags the score
// as low-confidence.
func savingsScore(summary model.CurrentMonthSummary) (score float64, lowConfidence bool) {
	if !summary.PartialBalance.IsNegative() {
		score += 50
	}

	if !summary.TotalIncome.IsPositive() {
		return score, true
	}

	rate, _ := summary.PartialBalance.Div(summary.TotalIncome).Float64()
	scaled := rate / fullCreditRate
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 1 {
		scaled = 1
	}
	return score + 50*scaled, false
}

// limitScore is the fraction of limits not exceeded, as 0-100. No limits
// configured means nothing has been violated: full credit.
func limitScore(limits []model.LimitStatus) float64 {
	if len(limits) == 0 {
		return 100
	}
	ok := 0
	for _, l := range limits {
		if l.State != model.LimitExceeded {
			ok++
		}
	}
	return 100 * float64(ok) / float64(len(limits))
}

// goalScore is the fraction of incomplete goals currently on track, as
// 0-100. Completed goals are excluded; having none pending is full credit.
func goalScore(goals []model.GoalProgress) float64 {
	pending, onTrack := 0, 0
	for _, g := range goals {
		if g.State == model.GoalCompleted {
			continue
		}
		pending++
		if g.Achievable {
			onTrack++
		}
	}
	if pending == 0 {
		return 100
	}
	return 100 * float64(onTrack) / float64(pending)
}

// recommendations emits human-readable advice in fixed priority order,
// stopping once max entries have been produced.
func recommendations(summary model.CurrentMonthSummary, limits []model.LimitStatus, goals []model.GoalProgress, lowConfidence bool, max int) []string {
	var recs []string
	add := func(s string) bool {
		if len(recs) >= max {
			return false
		}
		recs = append(recs, s)
		return len(recs) < max
	}

	for _, l := range limits {
		if l.State == model.LimitExceeded {
			if !add(fmt.Sprintf("Spending on %s exceeded its monthly limit; review recent expenses in that category", l.Category.Name)) {
				return recs
			}
		}
	}

	if summary.PartialBalance.IsNegative() {
		if !add("Expenses exceed income this month; act now to restore a positive balance") {
			return recs
		}
	}

	if lowConfidence {
		if !add("No income recorded this period, so projections carry low confidence; add or import more history") {
			return recs
		}
	}

	if summary.TotalIncome.IsPositive() {
		rate, _ := summary.PartialBalance.Div(summary.TotalIncome).Float64()
		if rate >= 0 && rate < 0.10 {
			if !add("Savings rate is below 10% of income; look for expenses to trim") {
				return recs
			}
		}
	}

	for _, g := range goals {
		switch g.State {
		case model.GoalOverdue:
			if !add(fmt.Sprintf("Goal %q is past its target date; extend the deadline or adjust the target", g.Goal.Name)) {
				return recs
			}
		case model.GoalChallenging:
			if !add(fmt.Sprintf("Goal %q needs more monthly savings than projected; consider a later target date", g.Goal.Name)) {
				return recs
			}
		}
	}

	for _, l := range limits {
		if l.State == model.LimitWarning {
			if !add(fmt.Sprintf("Spending on %s is close to its monthly limit", l.Category.Name)) {
				return recs
			}
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "Keep maintaining your positive balance and funded goals")
	}
	return recs
}
