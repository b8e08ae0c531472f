package engine

import (
	"testing"
	"time"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

func goal(t *testing.T, target, current, targetDate string) model.Goal {
	t.Helper()
	return model.Goal{
		ID:            "goal-" + target,
		Name:          "test goal",
		TargetAmount:  dec(t, target),
		CurrentAmount: dec(t, current),
		TargetDate:    mustDate(t, targetDate),
	}
}

func TestGoalMonthlySavingsNeeded(t *testing.T) {
	// 8000 target, 2400 funded, 8.5 months out: 5600/8.5 = 658.82 to the cent.
	asOf := mustDate(t, "2025-01-01")
	target := asOf.Add(time.Duration(8.5*avgDaysPerMonth*24*3600) * time.Second)

	g := model.Goal{
		ID:            "goal-europe",
		Name:          "Trip to Europe",
		TargetAmount:  dec(t, "8000"),
		CurrentAmount: dec(t, "2400"),
		TargetDate:    target,
	}

	progress := evaluateGoal(g, asOf, dec(t, "1000"))

	if got := progress.MonthlySavingsNeeded.StringFixed(2); got != "658.82" {
		t.Fatalf("monthly savings needed = %s, want 658.82", got)
	}
	if !progress.Achievable || progress.State != model.GoalOnTrack {
		t.Errorf("needed 658.82 vs capacity 1000 should be on track, got %v", progress.State)
	}
}

func TestGoalNotAchievableWhenCapacityTooLow(t *testing.T) {
	asOf := mustDate(t, "2025-01-01")
	g := goal(t, "15000", "5500", "2026-01-31")

	progress := evaluateGoal(g, asOf, dec(t, "500"))

	if progress.Achievable {
		t.Error("goal requiring ~745/month should not be achievable on 500 capacity")
	}
	if progress.State != model.GoalChallenging {
		t.Errorf("state = %v, want challenging", progress.State)
	}
}

func TestGoalAchievabilityIsStrict(t *testing.T) {
	// Needed exactly equals capacity: achievable (<=), no tolerance band.
	asOf := mustDate(t, "2025-01-01")
	g := goal(t, "5000", "0", "2025-11-01")

	needed := evaluateGoal(g, asOf, dec(t, "0")).MonthlySavingsNeeded

	atCapacity := evaluateGoal(g, asOf, needed)
	if !atCapacity.Achievable {
		t.Errorf("needed %s vs equal capacity should be achievable", needed)
	}

	below := evaluateGoal(g, asOf, needed.Sub(dec(t, "0.01")))
	if below.Achievable {
		t.Error("capacity one cent short must not be achievable")
	}
}

func TestGoalCompletedOverridesDate(t *testing.T) {
	// Fully funded long past the deadline: still Completed, never Overdue.
	asOf := mustDate(t, "2025-06-01")
	g := goal(t, "3000", "3000", "2024-01-01")

	progress := evaluateGoal(g, asOf, dec(t, "0"))

	if progress.State != model.GoalCompleted {
		t.Fatalf("state = %v, want completed", progress.State)
	}
	if progress.ProgressPercent < 100 {
		t.Errorf("progress = %v, want >= 100", progress.ProgressPercent)
	}
}

func TestGoalOverfundedStillCompleted(t *testing.T) {
	asOf := mustDate(t, "2025-06-01")
	g := goal(t, "3000", "3600", "2026-01-01")

	progress := evaluateGoal(g, asOf, dec(t, "0"))

	if progress.State != model.GoalCompleted {
		t.Fatalf("state = %v, want completed", progress.State)
	}
	if progress.ProgressPercent != 120 {
		t.Errorf("progress = %v, want 120 (unclamped)", progress.ProgressPercent)
	}
}

func TestGoalOverdueDistinctFromChallenging(t *testing.T) {
	asOf := mustDate(t, "2025-06-01")
	g := goal(t, "3000", "1000", "2025-01-01")

	progress := evaluateGoal(g, asOf, dec(t, "10000"))

	if progress.State != model.GoalOverdue {
		t.Fatalf("state = %v, want overdue", progress.State)
	}
	if progress.MonthsRemaining != 0 {
		t.Errorf("months remaining = %v, want 0", progress.MonthsRemaining)
	}
	if progress.Achievable {
		t.Error("an overdue goal is not achievable")
	}
	assertDecEq(t, progress.MonthlySavingsNeeded, "2000", "overdue remainder")
}

func TestEvaluateGoalsSortsByTargetDate(t *testing.T) {
	asOf := mustDate(t, "2025-01-01")
	goals := []model.Goal{
		goal(t, "100", "0", "2026-06-01"),
		goal(t, "200", "0", "2025-09-01"),
	}

	results := EvaluateGoals(goals, asOf, dec(t, "1000"))
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if !results[0].Goal.TargetDate.Before(results[1].Goal.TargetDate) {
		t.Error("goals should be sorted by target date, earliest first")
	}
}

func TestMonthsRemainingFloorsAtZero(t *testing.T) {
	asOf := mustDate(t, "2025-06-01")
	if got := monthsRemaining(asOf, mustDate(t, "2024-06-01")); got != 0 {
		t.Errorf("past target = %v, want 0", got)
	}
	if got := monthsRemaining(asOf, mustDate(t, "2025-06-01")); got != 0 {
		t.Errorf("same-day target = %v, want 0", got)
	}
}
