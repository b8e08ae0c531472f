package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

// history holds monthly totals over the lookback window, overall per type
// and per expense category. Months with no activity count as zero when
// averaging; a sparse history deliberately pulls projections down.
type history struct {
	windowLen      int
	incomeTotal    decimal.Decimal
	expenseTotal   decimal.Decimal
	expenseByCat   map[string]decimal.Decimal
	hasAny         bool
}

func buildHistory(txs []model.Transaction, window []Month) history {
	h := history{
		windowLen:    len(window),
		expenseByCat: make(map[string]decimal.Decimal),
	}

	inWindow := make(map[Month]bool, len(window))
	for _, m := range window {
		inWindow[m] = true
	}

	for _, tx := range txs {
		if !inWindow[MonthOf(tx.Date)] {
			continue
		}
		h.hasAny = true
		switch tx.Type {
		case model.TypeIncome:
			h.incomeTotal = h.incomeTotal.Add(tx.Amount)
		case model.TypeExpense:
			h.expenseTotal = h.expenseTotal.Add(tx.Amount)
			h.expenseByCat[tx.CategoryID] = h.expenseByCat[tx.CategoryID].Add(tx.Amount)
		}
	}
	return h
}

// avg divides a window total by the window length, zero-activity months
// included.
func (h history) avg(total decimal.Decimal) decimal.Decimal {
	if h.windowLen == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(h.windowLen)))
}

// ComputeProjections projects income, expenses (overall and per category),
// and savings capacity for the given number of future months after the month
// containing asOf. Every month is computed from the same fixed historical
// window, so projection errors never compound month over month.
func ComputeProjections(snap Snapshot, asOf time.Time, months int, p Params) model.Projections {
	if months < 1 {
		months = p.ProjectionMonths
	}

	window := LookbackWindow(asOf, p.LookbackMonths)
	hist := buildHistory(snap.Transactions, window)
	recurring := DetectRecurring(snap.Transactions, window, p)

	alpha := decimal.NewFromFloat(p.BlendAlpha)

	recurringIncome := recurring.TotalForType(model.TypeIncome)
	recurringExpense := recurring.TotalForType(model.TypeExpense)
	avgIncome := hist.avg(hist.incomeTotal)
	avgExpense := hist.avg(hist.expenseTotal)

	projectedIncome := blend(alpha, recurringIncome, avgIncome)
	projectedExpense := blend(alpha, recurringExpense, avgExpense)

	// Per-category expense blend over the union of categories seen in
	// history or detected as recurring. Summing these equals the overall
	// expense projection because both blends are linear in their inputs.
	catIDs := make(map[string]bool)
	for id := range hist.expenseByCat {
		catIDs[id] = true
	}
	for key := range recurring {
		if key.Type == model.TypeExpense {
			catIDs[key.CategoryID] = true
		}
	}
	byCategory := make(map[string]decimal.Decimal, len(catIDs))
	for id := range catIDs {
		rec := recurring[RecurrenceKey{CategoryID: id, Type: model.TypeExpense}]
		byCategory[id] = blend(alpha, rec, hist.avg(hist.expenseByCat[id]))
	}

	result := model.Projections{
		Expenses:        make(map[string]model.MonthlyProjection, months),
		Income:          make(map[string]model.MonthlyProjection, months),
		SavingsCapacity: make(map[string]model.SavingsCapacity, months),
	}

	current := MonthOf(asOf)
	for i := 1; i <= months; i++ {
		m := current.AddMonths(i)
		key := m.Key()

		result.Income[key] = model.MonthlyProjection{
			Year:              m.Year,
			Month:             m.Month,
			RecurringAmount:   recurringIncome,
			HistoricalAverage: avgIncome,
			ProjectedTotal:    projectedIncome,
		}
		result.Expenses[key] = model.MonthlyProjection{
			Year:              m.Year,
			Month:             m.Month,
			RecurringAmount:   recurringExpense,
			HistoricalAverage: avgExpense,
			ProjectedTotal:    projectedExpense,
			ByCategory:        byCategory,
		}
		result.SavingsCapacity[key] = savingsCapacity(m, projectedIncome, projectedExpense, !hist.hasAny)
	}

	return result
}

// blend mixes a recurring amount with a historical average:
// alpha*recurring + (1-alpha)*historical. No intermediate rounding.
func blend(alpha, recurring, historical decimal.Decimal) decimal.Decimal {
	return recurring.Mul(alpha).Add(historical.Mul(decimal.NewFromInt(1).Sub(alpha)))
}

// savingsCapacity derives projected savings and the savings rate for one
// month. Zero projected income never divides: the rate reports 0 and the
// month is flagged low-confidence.
func savingsCapacity(m Month, income, expenses decimal.Decimal, insufficientData bool) model.SavingsCapacity {
	savings := income.Sub(expenses)

	sc := model.SavingsCapacity{
		Year:              m.Year,
		Month:             m.Month,
		ProjectedIncome:   income,
		ProjectedExpenses: expenses,
		ProjectedSavings:  savings,
		LowConfidence:     insufficientData,
	}

	if income.IsPositive() {
		rate, _ := savings.Div(income).Mul(decimal.NewFromInt(100)).Float64()
		sc.SavingsRate = rate
	} else {
		sc.SavingsRate = 0
		sc.LowConfidence = true
	}

	return sc
}
