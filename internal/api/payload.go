package api

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

// money marshals with exactly two fraction digits as a JSON number.
// Rounding happens only here, at the presentation boundary.
type money decimal.Decimal

func (m money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

// percent marshals with one fraction digit.
type percent float64

func (p percent) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(p), 'f', 1, 64)), nil
}

const dateLayout = "2006-01-02"

type categoryPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	IsDefault   bool   `json:"is_default"`
}

func categoryToPayload(c model.Category) categoryPayload {
	return categoryPayload{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		IsDefault:   c.IsDefault,
	}
}

type accountPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccountType string `json:"account_type"`
	BankName    string `json:"bank_name,omitempty"`
	Balance     money  `json:"balance"`
	CreditLimit *money `json:"credit_limit"`
}

func accountToPayload(a model.Account) accountPayload {
	p := accountPayload{
		ID:          a.ID,
		Name:        a.Name,
		AccountType: string(a.Type),
		BankName:    a.BankName,
		Balance:     money(a.Balance),
	}
	if a.CreditLimit != nil {
		m := money(*a.CreditLimit)
		p.CreditLimit = &m
	}
	return p
}

type transactionPayload struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      money  `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	CategoryID  string `json:"category_id"`
	AccountID   string `json:"account_id,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func transactionToPayload(t model.Transaction) transactionPayload {
	return transactionPayload{
		ID:          t.ID,
		Description: t.Description,
		Amount:      money(t.Amount),
		Type:        string(t.Type),
		Date:        t.Date.Format(dateLayout),
		CategoryID:  t.CategoryID,
		AccountID:   t.AccountID,
		Notes:       t.Notes,
	}
}

type goalPayload struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	TargetAmount  money  `json:"target_amount"`
	CurrentAmount money  `json:"current_amount"`
	TargetDate    string `json:"target_date"`
}

func goalToPayload(g model.Goal) goalPayload {
	return goalPayload{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		TargetAmount:  money(g.TargetAmount),
		CurrentAmount: money(g.CurrentAmount),
		TargetDate:    g.TargetDate.Format(dateLayout),
	}
}

type goalProgressPayload struct {
	goalPayload
	ProgressPercent      percent `json:"progress_percent"`
	MonthsRemaining      float64 `json:"months_remaining"`
	MonthlySavingsNeeded money   `json:"monthly_savings_needed"`
	Achievable           bool    `json:"achievable"`
	Status               string  `json:"status"`
}

func goalProgressToPayload(g model.GoalProgress) goalProgressPayload {
	return goalProgressPayload{
		goalPayload:          goalToPayload(g.Goal),
		ProgressPercent:      percent(g.ProgressPercent),
		MonthsRemaining:      g.MonthsRemaining,
		MonthlySavingsNeeded: money(g.MonthlySavingsNeeded),
		Achievable:           g.Achievable,
		Status:               string(g.State),
	}
}

type limitPayload struct {
	ID           string `json:"id"`
	CategoryID   string `json:"category_id"`
	MonthlyLimit money  `json:"monthly_limit"`
}

func limitToPayload(l model.SpendingLimit) limitPayload {
	return limitPayload{ID: l.ID, CategoryID: l.CategoryID, MonthlyLimit: money(l.MonthlyLimit)}
}

type limitStatusPayload struct {
	ID           string          `json:"id"`
	Category     categoryPayload `json:"category"`
	MonthlyLimit money           `json:"monthly_limit"`
	CurrentSpent money           `json:"current_spent"`
	UsedPercent  percent         `json:"used_percent"`
	Status       string          `json:"status"`
}

func limitStatusToPayload(l model.LimitStatus) limitStatusPayload {
	return limitStatusPayload{
		ID:           l.Limit.ID,
		Category:     categoryToPayload(l.Category),
		MonthlyLimit: money(l.Limit.MonthlyLimit),
		CurrentSpent: money(l.CurrentSpent),
		UsedPercent:  percent(l.UsedPercent),
		Status:       string(l.State),
	}
}

type summaryPayload struct {
	PeriodStart        string           `json:"period_start"`
	PeriodEnd          string           `json:"period_end"`
	TotalIncome        money            `json:"total_income"`
	TotalExpenses      money            `json:"total_expenses"`
	PartialBalance     money            `json:"partial_balance"`
	ExpensesByCategory map[string]money `json:"expenses_by_category"`
}

func summaryToPayload(s model.CurrentMonthSummary) summaryPayload {
	byCat := make(map[string]money, len(s.ExpensesByCategory))
	for name, amount := range s.ExpensesByCategory {
		byCat[name] = money(amount)
	}
	return summaryPayload{
		PeriodStart:        s.PeriodStart.Format(dateLayout),
		PeriodEnd:          s.PeriodEnd.Format(dateLayout),
		TotalIncome:        money(s.TotalIncome),
		TotalExpenses:      money(s.TotalExpenses),
		PartialBalance:     money(s.PartialBalance),
		ExpensesByCategory: byCat,
	}
}

type healthPayload struct {
	TotalScore      percent  `json:"total_score"`
	Level           string   `json:"level"`
	Recommendations []string `json:"recommendations"`
	LowConfidence   bool     `json:"low_confidence"`
}

func healthToPayload(h model.HealthScore) healthPayload {
	return healthPayload{
		TotalScore:      percent(h.TotalScore),
		Level:           string(h.Level),
		Recommendations: h.Recommendations,
		LowConfidence:   h.LowConfidence,
	}
}

type savingsCapacityPayload struct {
	ProjectedIncome   money   `json:"projected_income"`
	ProjectedExpenses money   `json:"projected_expenses"`
	ProjectedSavings  money   `json:"projected_savings"`
	SavingsRate       percent `json:"savings_rate"`
	LowConfidence     bool    `json:"low_confidence"`
}

func savingsCapacityToPayload(sc model.SavingsCapacity) savingsCapacityPayload {
	return savingsCapacityPayload{
		ProjectedIncome:   money(sc.ProjectedIncome),
		ProjectedExpenses: money(sc.ProjectedExpenses),
		ProjectedSavings:  money(sc.ProjectedSavings),
		SavingsRate:       percent(sc.SavingsRate),
		LowConfidence:     sc.LowConfidence,
	}
}

func savingsCapacityMap(m map[string]model.SavingsCapacity) map[string]savingsCapacityPayload {
	out := make(map[string]savingsCapacityPayload, len(m))
	for key, sc := range m {
		out[key] = savingsCapacityToPayload(sc)
	}
	return out
}

type monthlyProjectionPayload struct {
	RecurringAmount   money            `json:"recurring_amount"`
	HistoricalAverage money            `json:"historical_average"`
	ProjectedTotal    money            `json:"projected_total"`
	ByCategory        map[string]money `json:"by_category"`
}

func projectionMap(m map[string]model.MonthlyProjection) map[string]monthlyProjectionPayload {
	out := make(map[string]monthlyProjectionPayload, len(m))
	for key, p := range m {
		byCat := make(map[string]money, len(p.ByCategory))
		for name, amount := range p.ByCategory {
			byCat[name] = money(amount)
		}
		out[key] = monthlyProjectionPayload{
			RecurringAmount:   money(p.RecurringAmount),
			HistoricalAverage: money(p.HistoricalAverage),
			ProjectedTotal:    money(p.ProjectedTotal),
			ByCategory:        byCat,
		}
	}
	return out
}

type dashboardPayload struct {
	CurrentMonthSummary  summaryPayload                    `json:"current_month_summary"`
	HealthScore          healthPayload                     `json:"health_score"`
	SavingsCapacity      map[string]savingsCapacityPayload `json:"savings_capacity"`
	SpendingLimitsStatus []limitStatusPayload              `json:"spending_limits_status"`
	GoalsProgress        []goalProgressPayload             `json:"goals_progress"`
}

func dashboardToPayload(d model.Dashboard) dashboardPayload {
	limits := make([]limitStatusPayload, 0, len(d.Limits))
	for _, l := range d.Limits {
		limits = append(limits, limitStatusToPayload(l))
	}
	goals := make([]goalProgressPayload, 0, len(d.Goals))
	for _, g := range d.Goals {
		goals = append(goals, goalProgressToPayload(g))
	}
	return dashboardPayload{
		CurrentMonthSummary:  summaryToPayload(d.Summary),
		HealthScore:          healthToPayload(d.Health),
		SavingsCapacity:      savingsCapacityMap(d.SavingsCapacity),
		SpendingLimitsStatus: limits,
		GoalsProgress:        goals,
	}
}

type projectionsPayload struct {
	ExpenseProjections map[string]monthlyProjectionPayload `json:"expense_projections"`
	IncomeProjections  map[string]monthlyProjectionPayload `json:"income_projections"`
	SavingsCapacity    map[string]savingsCapacityPayload   `json:"savings_capacity"`
}

func projectionsToPayload(p model.Projections) projectionsPayload {
	return projectionsPayload{
		ExpenseProjections: projectionMap(p.Expenses),
		IncomeProjections:  projectionMap(p.Income),
		SavingsCapacity:    savingsCapacityMap(p.SavingsCapacity),
	}
}

// --- request bodies ---

type transactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	CategoryID  string `json:"category_id"`
	AccountID   string `json:"account_id"`
	Notes       string `json:"notes"`
}

func (r transactionRequest) toModel(id string) (model.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return model.Transaction{}, err
	}
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ID:          id,
		Description: r.Description,
		Amount:      amount,
		Type:        model.TransactionType(r.Type),
		Date:        date,
		CategoryID:  r.CategoryID,
		AccountID:   r.AccountID,
		Notes:       r.Notes,
	}, nil
}

type goalRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	TargetDate    string `json:"target_date"`
}

func (r goalRequest) toModel(id string) (model.Goal, error) {
	target, err := decimal.NewFromString(r.TargetAmount)
	if err != nil {
		return model.Goal{}, err
	}
	current := decimal.Zero
	if r.CurrentAmount != "" {
		if current, err = decimal.NewFromString(r.CurrentAmount); err != nil {
			return model.Goal{}, err
		}
	}
	date, err := time.Parse(dateLayout, r.TargetDate)
	if err != nil {
		return model.Goal{}, err
	}
	return model.Goal{
		ID:            id,
		Name:          r.Name,
		Description:   r.Description,
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    date,
	}, nil
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type accountRequest struct {
	Name        string  `json:"name"`
	AccountType string  `json:"account_type"`
	BankName    string  `json:"bank_name"`
	Balance     string  `json:"balance"`
	CreditLimit *string `json:"credit_limit"`
}

func (r accountRequest) toModel(id string) (model.Account, error) {
	balance := decimal.Zero
	if r.Balance != "" {
		var err error
		if balance, err = decimal.NewFromString(r.Balance); err != nil {
			return model.Account{}, err
		}
	}
	a := model.Account{
		ID:       id,
		Name:     r.Name,
		Type:     model.AccountType(r.AccountType),
		BankName: r.BankName,
		Balance:  balance,
	}
	if r.CreditLimit != nil {
		limit, err := decimal.NewFromString(*r.CreditLimit)
		if err != nil {
			return model.Account{}, err
		}
		a.CreditLimit = &limit
	}
	return a, nil
}

type limitRequest struct {
	CategoryID   string `json:"category_id"`
	MonthlyLimit string `json:"monthly_limit"`
}

func (r limitRequest) toModel(id string) (model.SpendingLimit, error) {
	limit, err := decimal.NewFromString(r.MonthlyLimit)
	if err != nil {
		return model.SpendingLimit{}, err
	}
	return model.SpendingLimit{ID: id, CategoryID: r.CategoryID, MonthlyLimit: limit}, nil
}
