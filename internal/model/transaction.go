// Package model defines domain types for FinancialHealth records and reports.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is one immutable money movement. Amount is the magnitude
// (never negative); Type carries the direction.
type Transaction struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Date        time.Time
	CategoryID  string
	AccountID   string
	Notes       string
}

// SignedAmount returns the amount with expense transactions negated.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Category groups transactions for budgeting and reporting.
type Category struct {
	ID          string
	Name        string
	Description string
	Color       string
	IsDefault   bool
}

// AccountType is the kind of account a transaction settles against.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountCreditCard AccountType = "credit_card"
)

// Account is a checking account or credit card.
// CreditLimit is set iff Type is AccountCreditCard.
type Account struct {
	ID          string
	Name        string
	Type        AccountType
	BankName    string
	Balance     decimal.Decimal
	CreditLimit *decimal.Decimal
}
