package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target with a deadline.
type Goal struct {
	ID            string
	Name          string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
}

// ProgressPercent returns how much of the target has been funded, in
// percent. Not clamped: an overfunded goal reports more than 100.
func (g Goal) ProgressPercent() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	pct, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// GoalState classifies a goal's outlook.
type GoalState string

const (
	GoalCompleted   GoalState = "completed"
	GoalOnTrack     GoalState = "on_track"
	GoalChallenging GoalState = "challenging"
	GoalOverdue     GoalState = "overdue"
)

// GoalProgress is the evaluated feasibility of one goal.
type GoalProgress struct {
	Goal                 Goal
	ProgressPercent      float64
	MonthsRemaining      float64
	MonthlySavingsNeeded decimal.Decimal
	Achievable           bool
	State                GoalState
}
