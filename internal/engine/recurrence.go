package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

// RecurrenceKey identifies one recurring pattern bucket.
type RecurrenceKey struct {
	CategoryID string
	Type       model.TransactionType
}

// Recurring maps category/type buckets to their detected recurring monthly
// amounts. Buckets without a qualifying pattern are absent and contribute
// zero; the historical average covers them instead.
type Recurring map[RecurrenceKey]decimal.Decimal

// TotalForType sums the recurring amounts detected for one transaction type.
func (r Recurring) TotalForType(t model.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for key, amount := range r {
		if key.Type == t {
			total = total.Add(amount)
		}
	}
	return total
}

// DetectRecurring finds category/type buckets whose transactions repeat at
// a similar magnitude across the lookback window. A bucket qualifies when
// at least minMonths of the window contain a transaction within ±tolerance
// of the bucket's median amount; the recurring amount is the median of the
// matched transactions. The median resists one-off spikes that would drag
// a mean.
func DetectRecurring(txs []model.Transaction, window []Month, p Params) Recurring {
	if len(window) == 0 {
		return Recurring{}
	}

	type bucket struct {
		amounts  []decimal.Decimal // all amounts in the window
		byMonth  map[Month][]decimal.Decimal
	}

	buckets := make(map[RecurrenceKey]*bucket)
	inWindow := make(map[Month]bool, len(window))
	for _, m := range window {
		inWindow[m] = true
	}

	for _, tx := range txs {
		m := MonthOf(tx.Date)
		if !inWindow[m] {
			continue
		}
		key := RecurrenceKey{CategoryID: tx.CategoryID, Type: tx.Type}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{byMonth: make(map[Month][]decimal.Decimal)}
			buckets[key] = b
		}
		b.amounts = append(b.amounts, tx.Amount)
		b.byMonth[m] = append(b.byMonth[m], tx.Amount)
	}

	tolerance := decimal.NewFromFloat(p.RecurrenceTolerance)
	one := decimal.NewFromInt(1)

	result := make(Recurring)
	for key, b := range buckets {
		// Too few observations to call anything a pattern.
		if len(b.amounts) < p.RecurrenceMinMonths {
			continue
		}

		candidate := median(b.amounts)
		low := candidate.Mul(one.Sub(tolerance))
		high := candidate.Mul(one.Add(tolerance))

		var matched []decimal.Decimal
		matchedMonths := 0
		for _, m := range window {
			monthMatched := false
			for _, amount := range b.byMonth[m] {
				if amount.Cmp(low) >= 0 && amount.Cmp(high) <= 0 {
					matched = append(matched, amount)
					monthMatched = true
				}
			}
			if monthMatched {
				matchedMonths++
			}
		}

		if matchedMonths >= p.RecurrenceMinMonths {
			result[key] = median(matched)
		}
	}

	return result
}

// median returns the middle value of vs, or the mean of the two middle
// values for even counts. Returns zero for an empty slice.
func median(vs []decimal.Decimal) decimal.Decimal {
	if len(vs) == 0 {
		return decimal.Zero
	}
	sorted := make([]decimal.Decimal, len(vs))
	copy(sorted, vs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Cmp(sorted[j]) < 0 })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}
