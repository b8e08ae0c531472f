package model

import "github.com/shopspring/decimal"

// SpendingLimit caps monthly spend for one category.
type SpendingLimit struct {
	ID           string
	CategoryID   string
	MonthlyLimit decimal.Decimal
}

// LimitState classifies current spend against a limit.
type LimitState string

const (
	LimitOK       LimitState = "ok"
	LimitWarning  LimitState = "warning"
	LimitExceeded LimitState = "exceeded"
)

// LimitStatus is the evaluated state of one spending limit for the
// current calendar month. CurrentSpent is derived, never stored.
type LimitStatus struct {
	Limit        SpendingLimit
	Category     Category
	CurrentSpent decimal.Decimal
	UsedPercent  float64
	State        LimitState
}
