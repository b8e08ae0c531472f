package engine

import (
	"strings"
	"testing"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

func summary(t *testing.T, income, expenses string) model.CurrentMonthSummary {
	t.Helper()
	inc, exp := dec(t, income), dec(t, expenses)
	return model.CurrentMonthSummary{
		TotalIncome:    inc,
		TotalExpenses:  exp,
		PartialBalance: inc.Sub(exp),
	}
}

func TestScoreHealthyMonth(t *testing.T) {
	// Positive balance, 40%+ savings rate, no violations: a top score.
	s := Score(summary(t, "5500", "3200"), nil, nil, DefaultParams())

	if s.TotalScore != 100 {
		t.Errorf("score = %v, want 100", s.TotalScore)
	}
	if s.Level != model.HealthExcellent {
		t.Errorf("level = %v, want Excellent", s.Level)
	}
	if s.LowConfidence {
		t.Error("income present should not flag low confidence")
	}
}

func TestScoreLevelsAtBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  model.HealthLevel
	}{
		{100, model.HealthExcellent},
		{80, model.HealthExcellent},
		{79.9, model.HealthGood},
		{60, model.HealthGood},
		{59.9, model.HealthFair},
		{40, model.HealthFair},
		{39.9, model.HealthPoor},
		{0, model.HealthPoor},
	}
	for _, tc := range cases {
		if got := model.LevelForScore(tc.score); got != tc.want {
			t.Errorf("LevelForScore(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestScoreZeroIncomeLowConfidence(t *testing.T) {
	s := Score(summary(t, "0", "0"), nil, nil, DefaultParams())

	if !s.LowConfidence {
		t.Error("zero income must flag low confidence")
	}
	// Balance half of the savings component still applies (balance is 0,
	// not negative); rate half is forfeit.
	want := 0.4*50 + 0.3*100 + 0.3*100
	if s.TotalScore != want {
		t.Errorf("score = %v, want %v", s.TotalScore, want)
	}
}

func TestScoreExceededLimitsDragScore(t *testing.T) {
	limits := []model.LimitStatus{
		{Category: model.Category{Name: "Food"}, State: model.LimitExceeded},
		{Category: model.Category{Name: "Leisure"}, State: model.LimitOK},
	}

	clean := Score(summary(t, "5000", "2000"), nil, nil, DefaultParams())
	dinged := Score(summary(t, "5000", "2000"), limits, nil, DefaultParams())

	if dinged.TotalScore >= clean.TotalScore {
		t.Errorf("exceeded limit should lower score: %v vs %v", dinged.TotalScore, clean.TotalScore)
	}
	// Half the limits exceeded: 30-point component halved, 15 points lost.
	if diff := clean.TotalScore - dinged.TotalScore; diff != 15 {
		t.Errorf("score drop = %v, want 15", diff)
	}
}

func TestScoreCompletedGoalsExcluded(t *testing.T) {
	goals := []model.GoalProgress{
		{State: model.GoalCompleted},
		{State: model.GoalOnTrack, Achievable: true},
	}

	s := Score(summary(t, "5000", "2000"), nil, goals, DefaultParams())
	if s.TotalScore != 100 {
		t.Errorf("completed goals must not count against the score, got %v", s.TotalScore)
	}
}

func TestScoreBoundedToHundred(t *testing.T) {
	s := Score(summary(t, "1000", "0"), nil, nil, DefaultParams())
	if s.TotalScore < 0 || s.TotalScore > 100 {
		t.Errorf("score = %v, must stay in [0,100]", s.TotalScore)
	}
}

func TestRecommendationsPriorityOrder(t *testing.T) {
	limits := []model.LimitStatus{
		{Category: model.Category{Name: "Leisure"}, State: model.LimitExceeded},
		{Category: model.Category{Name: "Transport"}, State: model.LimitWarning},
	}
	goals := []model.GoalProgress{
		{Goal: model.Goal{Name: "Emergency fund"}, State: model.GoalChallenging},
	}

	s := Score(summary(t, "1000", "1500"), limits, goals, DefaultParams())

	if len(s.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}
	if !strings.Contains(s.Recommendations[0], "Leisure") {
		t.Errorf("exceeded limit must come first, got %q", s.Recommendations[0])
	}
	if !strings.Contains(s.Recommendations[1], "Expenses exceed income") {
		t.Errorf("negative balance must come second, got %q", s.Recommendations[1])
	}
}

func TestRecommendationsCapped(t *testing.T) {
	var limits []model.LimitStatus
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		limits = append(limits, model.LimitStatus{
			Category: model.Category{Name: name},
			State:    model.LimitExceeded,
		})
	}

	s := Score(summary(t, "100", "5000"), limits, nil, DefaultParams())
	if len(s.Recommendations) != 5 {
		t.Errorf("recommendations = %d, want capped at 5", len(s.Recommendations))
	}
}

func TestRecommendationsPositiveFallback(t *testing.T) {
	s := Score(summary(t, "5500", "3200"), nil, nil, DefaultParams())
	if len(s.Recommendations) != 1 {
		t.Fatalf("healthy month should yield one reinforcement line, got %d", len(s.Recommendations))
	}
	if !strings.Contains(s.Recommendations[0], "Keep") {
		t.Errorf("unexpected fallback: %q", s.Recommendations[0])
	}
}

func TestScoreNegativeBalance(t *testing.T) {
	s := Score(summary(t, "1000", "2000"), nil, nil, DefaultParams())

	// Savings component fully forfeit: 0.3+0.3 components remain.
	want := 0.3*100 + 0.3*100
	if s.TotalScore != want {
		t.Errorf("score = %v, want %v", s.TotalScore, want)
	}
	if s.Level != model.HealthGood {
		t.Errorf("level = %v, want Good", s.Level)
	}
}
