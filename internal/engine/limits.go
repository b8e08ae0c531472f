package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

// EvaluateLimits computes current spend against each configured spending
// limit for the calendar month containing asOf (never a rolling 30 days)
// and classifies it. Warning requires spend strictly above the warning
// ratio, so spend at exactly the ratio is still OK.
func EvaluateLimits(snap Snapshot, asOf time.Time, p Params) []model.LimitStatus {
	month := MonthOf(asOf)
	categories := snap.CategoryByID()

	spent := make(map[string]decimal.Decimal, len(snap.Limits))
	for _, tx := range snap.Transactions {
		if tx.Type != model.TypeExpense || !month.Contains(tx.Date) {
			continue
		}
		spent[tx.CategoryID] = spent[tx.CategoryID].Add(tx.Amount)
	}

	warnRatio := decimal.NewFromFloat(p.LimitWarningRatio)

	statuses := make([]model.LimitStatus, 0, len(snap.Limits))
	for _, limit := range snap.Limits {
		current := spent[limit.CategoryID]

		status := model.LimitStatus{
			Limit:        limit,
			Category:     categories[limit.CategoryID],
			CurrentSpent: current,
			State:        classifyLimit(current, limit.MonthlyLimit, warnRatio),
		}
		if limit.MonthlyLimit.IsPositive() {
			pct, _ := current.Div(limit.MonthlyLimit).Mul(decimal.NewFromInt(100)).Float64()
			status.UsedPercent = pct
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Category.Name < statuses[j].Category.Name
	})
	return statuses
}

func classifyLimit(spent, limit, warnRatio decimal.Decimal) model.LimitState {
	switch {
	case spent.Cmp(limit) > 0:
		return model.LimitExceeded
	case spent.Cmp(limit.Mul(warnRatio)) > 0:
		return model.LimitWarning
	default:
		return model.LimitOK
	}
}
