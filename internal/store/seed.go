package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

// DefaultCategories returns the categories created for every new database.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: "cat-alimentacao", Name: "Alimentação", Description: "Supermercado, restaurantes, delivery", Color: "#28a745", IsDefault: true},
		{ID: "cat-transporte", Name: "Transporte", Description: "Combustível, transporte público, Uber", Color: "#007bff", IsDefault: true},
		{ID: "cat-moradia", Name: "Moradia", Description: "Aluguel, condomínio, IPTU", Color: "#6f42c1", IsDefault: true},
		{ID: "cat-lazer", Name: "Lazer", Description: "Cinema, viagens, entretenimento", Color: "#fd7e14", IsDefault: true},
		{ID: "cat-saude", Name: "Saúde", Description: "Médicos, farmácia, plano de saúde", Color: "#dc3545", IsDefault: true},
		{ID: "cat-educacao", Name: "Educação", Description: "Cursos, livros, material escolar", Color: "#20c997", IsDefault: true},
		{ID: "cat-salario", Name: "Salário", Description: "Salário principal", Color: "#198754", IsDefault: true},
		{ID: "cat-freelance", Name: "Freelance", Description: "Trabalhos extras", Color: "#0dcaf0", IsDefault: true},
	}
}

// EnsureDefaultCategories inserts any default category that does not exist
// yet. Safe to call on every startup.
func (s *Store) EnsureDefaultCategories() error {
	for _, c := range DefaultCategories() {
		_, err := s.db.Exec(`INSERT INTO categories (id, name, description, color, is_default)
			VALUES (?, ?, ?, ?, 1)
			ON CONFLICT (name) DO NOTHING`,
			c.ID, c.Name, c.Description, c.Color,
		)
		if err != nil {
			return fmt.Errorf("seeding category %s: %w", c.Name, err)
		}
	}
	return nil
}

// SeedSampleData loads a realistic household into an empty database: six
// full months of salary, rent, groceries, and transport leading up to asOf,
// plus accounts, goals, and spending limits. It refuses to run over
// existing transactions.
func (s *Store) SeedSampleData(asOf time.Time) error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("database already has %d transactions, refusing to seed", count)
	}

	if err := s.EnsureDefaultCategories(); err != nil {
		return err
	}

	creditLimit := decimal.NewFromInt(5000)
	accounts := []model.Account{
		{Name: "Conta Corrente Principal", Type: model.AccountChecking, BankName: "Banco do Brasil", Balance: decimal.NewFromFloat(2500)},
		{Name: "Cartão de Crédito Visa", Type: model.AccountCreditCard, BankName: "Banco do Brasil", Balance: decimal.Zero, CreditLimit: &creditLimit},
	}
	var checkingID string
	for _, a := range accounts {
		created, err := s.CreateAccount(a)
		if err != nil {
			return fmt.Errorf("seeding account %s: %w", a.Name, err)
		}
		if a.Type == model.AccountChecking {
			checkingID = created.ID
		}
	}

	if err := s.CreateTransactions(sampleTransactions(asOf, checkingID)); err != nil {
		return fmt.Errorf("seeding transactions: %w", err)
	}

	goals := []model.Goal{
		{
			Name:          "Viagem para Europa",
			Description:   "Férias de duas semanas",
			TargetAmount:  decimal.NewFromInt(8000),
			CurrentAmount: decimal.NewFromInt(2400),
			TargetDate:    asOf.AddDate(0, 9, 0),
		},
		{
			Name:          "Reserva de Emergência",
			Description:   "Seis meses de despesas",
			TargetAmount:  decimal.NewFromInt(15000),
			CurrentAmount: decimal.NewFromInt(5500),
			TargetDate:    asOf.AddDate(1, 6, 0),
		},
	}
	for _, g := range goals {
		if _, err := s.CreateGoal(g); err != nil {
			return fmt.Errorf("seeding goal %s: %w", g.Name, err)
		}
	}

	limits := []struct {
		categoryID string
		amount     int64
	}{
		{"cat-alimentacao", 1000},
		{"cat-lazer", 300},
		{"cat-transporte", 500},
	}
	for _, l := range limits {
		_, err := s.SetLimit(model.SpendingLimit{CategoryID: l.categoryID, MonthlyLimit: decimal.NewFromInt(l.amount)})
		if err != nil {
			return fmt.Errorf("seeding limit for %s: %w", l.categoryID, err)
		}
	}

	return nil
}

// sampleTransactions builds six full months of history before asOf's month
// plus a partial current month. Amounts drift a little month to month so
// recurrence detection has something realistic to chew on.
func sampleTransactions(asOf time.Time, accountID string) []model.Transaction {
	var txs []model.Transaction
	add := func(date time.Time, desc, amount string, typ model.TransactionType, categoryID string) {
		txs = append(txs, model.Transaction{
			Description: desc,
			Amount:      decimal.RequireFromString(amount),
			Type:        typ,
			Date:        date,
			CategoryID:  categoryID,
			AccountID:   accountID,
		})
	}

	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())

	foodDrift := []string{"780.00", "820.00", "850.00", "790.00", "830.00", "810.00"}
	transportDrift := []string{"440.00", "460.00", "480.00", "450.00", "470.00", "455.00"}

	for i := 6; i >= 1; i-- {
		m := monthStart.AddDate(0, -i, 0)
		add(m, "Salário mensal", "5500.00", model.TypeIncome, "cat-salario")
		add(m.AddDate(0, 0, 4), "Aluguel", "1200.00", model.TypeExpense, "cat-moradia")
		add(m.AddDate(0, 0, 9), "Supermercado", foodDrift[6-i], model.TypeExpense, "cat-alimentacao")
		add(m.AddDate(0, 0, 14), "Combustível e transporte", transportDrift[6-i], model.TypeExpense, "cat-transporte")
		// Leisure and one-offs appear in some months only.
		switch i {
		case 5, 3, 1:
			add(m.AddDate(0, 0, 19), "Cinema e restaurantes", "180.00", model.TypeExpense, "cat-lazer")
		case 4:
			add(m.AddDate(0, 0, 11), "Consulta médica", "250.00", model.TypeExpense, "cat-saude")
		case 2:
			add(m.AddDate(0, 0, 17), "Projeto freelance", "800.00", model.TypeIncome, "cat-freelance")
		}
	}

	// Partial current month up to asOf.
	add(monthStart, "Salário mensal", "5500.00", model.TypeIncome, "cat-salario")
	if day := asOf.Day(); day >= 5 {
		add(monthStart.AddDate(0, 0, 4), "Aluguel", "1200.00", model.TypeExpense, "cat-moradia")
	}
	if asOf.Day() >= 10 {
		add(monthStart.AddDate(0, 0, 9), "Supermercado", "800.00", model.TypeExpense, "cat-alimentacao")
	}

	return txs
}
