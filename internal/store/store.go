// Package store persists financial records in SQLite and produces the
// consistent snapshots the projection engine consumes.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/engine"
	"github.com/MarcoCDuran/FinancialHealth/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const dateLayout = "2006-01-02"

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDefaultCategory blocks deleting one of the built-in categories.
	ErrDefaultCategory = errors.New("default categories cannot be deleted")
	// ErrCategoryInUse blocks deleting a category that transactions or
	// spending limits still reference.
	ErrCategoryInUse = errors.New("category is referenced by existing records")
)

// Store provides SQLite-backed persistence for all financial records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot reads every table inside one transaction so the engine never
// sees a partially applied write.
func (s *Store) Snapshot() (engine.Snapshot, error) {
	var snap engine.Snapshot

	tx, err := s.db.Begin()
	if err != nil {
		return snap, err
	}
	defer func() { _ = tx.Rollback() }()

	if snap.Transactions, err = scanTransactions(tx, "SELECT id, description, amount, type, date, category_id, account_id, notes FROM transactions ORDER BY date"); err != nil {
		return snap, err
	}
	if snap.Categories, err = scanCategories(tx, "SELECT id, name, description, color, is_default FROM categories ORDER BY name"); err != nil {
		return snap, err
	}
	if snap.Accounts, err = scanAccounts(tx); err != nil {
		return snap, err
	}
	if snap.Goals, err = scanGoals(tx); err != nil {
		return snap, err
	}
	if snap.Limits, err = scanLimits(tx); err != nil {
		return snap, err
	}

	return snap, tx.Commit()
}

type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// --- transactions ---

// TransactionFilter narrows ListTransactions. Zero fields match everything.
type TransactionFilter struct {
	From       time.Time
	To         time.Time
	Type       model.TransactionType
	CategoryID string
	AccountID  string
}

// ListTransactions returns transactions matching the filter, oldest first.
func (s *Store) ListTransactions(f TransactionFilter) ([]model.Transaction, error) {
	query := "SELECT id, description, amount, type, date, category_id, account_id, notes FROM transactions WHERE 1=1"
	var args []any
	if !f.From.IsZero() {
		query += " AND date >= ?"
		args = append(args, f.From.Format(dateLayout))
	}
	if !f.To.IsZero() {
		query += " AND date <= ?"
		args = append(args, f.To.Format(dateLayout))
	}
	if f.Type != "" {
		query += " AND type = ?"
		args = append(args, string(f.Type))
	}
	if f.CategoryID != "" {
		query += " AND category_id = ?"
		args = append(args, f.CategoryID)
	}
	if f.AccountID != "" {
		query += " AND account_id = ?"
		args = append(args, f.AccountID)
	}
	query += " ORDER BY date"
	return scanTransactions(s.db, query, args...)
}

// GetTransaction returns a single transaction by id.
func (s *Store) GetTransaction(id string) (model.Transaction, error) {
	txs, err := scanTransactions(s.db, "SELECT id, description, amount, type, date, category_id, account_id, notes FROM transactions WHERE id = ?", id)
	if err != nil {
		return model.Transaction{}, err
	}
	if len(txs) == 0 {
		return model.Transaction{}, ErrNotFound
	}
	return txs[0], nil
}

// CreateTransaction validates and inserts a transaction, assigning an id
// when none is set.
func (s *Store) CreateTransaction(t model.Transaction) (model.Transaction, error) {
	if err := validateTransaction(t); err != nil {
		return model.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO transactions
		(id, description, amount, type, date, category_id, account_id, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Description, t.Amount.String(), string(t.Type), t.Date.Format(dateLayout),
		t.CategoryID, nullable(t.AccountID), t.Notes,
	)
	return t, err
}

// CreateTransactions inserts a batch atomically. Used by the CSV importer
// so a failed row never leaves a partial import behind.
func (s *Store) CreateTransactions(txs []model.Transaction) error {
	dbtx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = dbtx.Rollback() }()

	for i, t := range txs {
		if err := validateTransaction(t); err != nil {
			return fmt.Errorf("transaction %d: %w", i+1, err)
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		_, err = dbtx.Exec(`INSERT INTO transactions
			(id, description, amount, type, date, category_id, account_id, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Description, t.Amount.String(), string(t.Type), t.Date.Format(dateLayout),
			t.CategoryID, nullable(t.AccountID), t.Notes,
		)
		if err != nil {
			return fmt.Errorf("transaction %d: %w", i+1, err)
		}
	}
	return dbtx.Commit()
}

// UpdateTransaction replaces an existing transaction's fields.
func (s *Store) UpdateTransaction(t model.Transaction) error {
	if err := validateTransaction(t); err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE transactions
		SET description = ?, amount = ?, type = ?, date = ?, category_id = ?, account_id = ?, notes = ?
		WHERE id = ?`,
		t.Description, t.Amount.String(), string(t.Type), t.Date.Format(dateLayout),
		t.CategoryID, nullable(t.AccountID), t.Notes, t.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteTransaction removes a transaction by id.
func (s *Store) DeleteTransaction(id string) error {
	res, err := s.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func validateTransaction(t model.Transaction) error {
	if !t.Type.Valid() {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	if t.Date.IsZero() {
		return errors.New("date is required")
	}
	if t.CategoryID == "" {
		return errors.New("category is required")
	}
	return nil
}

func scanTransactions(q querier, query string, args ...any) ([]model.Transaction, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var amount, date string
		var accountID, notes sql.NullString
		if err := rows.Scan(&t.ID, &t.Description, &amount, &t.Type, &date, &t.CategoryID, &accountID, &notes); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("transaction %s: bad amount %q: %w", t.ID, amount, err)
		}
		if t.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("transaction %s: bad date %q: %w", t.ID, date, err)
		}
		t.AccountID = accountID.String
		t.Notes = notes.String
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// --- categories ---

// ListCategories returns all categories sorted by name.
func (s *Store) ListCategories() ([]model.Category, error) {
	return scanCategories(s.db, "SELECT id, name, description, color, is_default FROM categories ORDER BY name")
}

// CreateCategory inserts a category, assigning an id when none is set.
func (s *Store) CreateCategory(c model.Category) (model.Category, error) {
	if c.Name == "" {
		return model.Category{}, errors.New("category name is required")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO categories (id, name, description, color, is_default)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.Color, boolInt(c.IsDefault),
	)
	return c, err
}

// UpdateCategory replaces a category's fields.
func (s *Store) UpdateCategory(c model.Category) error {
	if c.Name == "" {
		return errors.New("category name is required")
	}
	res, err := s.db.Exec(`UPDATE categories SET name = ?, description = ?, color = ?, is_default = ? WHERE id = ?`,
		c.Name, c.Description, c.Color, boolInt(c.IsDefault), c.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteCategory removes a category. Built-in categories are protected,
// and deletion is refused while any transaction or spending limit still
// references the category.
func (s *Store) DeleteCategory(id string) error {
	var isDefault int
	err := s.db.QueryRow("SELECT is_default FROM categories WHERE id = ?", id).Scan(&isDefault)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if isDefault != 0 {
		return ErrDefaultCategory
	}

	var refs int
	err = s.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM transactions WHERE category_id = ?) +
		(SELECT COUNT(*) FROM spending_limits WHERE category_id = ?)`, id, id).Scan(&refs)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrCategoryInUse
	}
	res, err := s.db.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanCategories(q querier, query string, args ...any) ([]model.Category, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		var description, color sql.NullString
		var isDefault int
		if err := rows.Scan(&c.ID, &c.Name, &description, &color, &isDefault); err != nil {
			return nil, err
		}
		c.Description = description.String
		c.Color = color.String
		c.IsDefault = isDefault != 0
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// --- accounts ---

// ListAccounts returns all accounts sorted by name.
func (s *Store) ListAccounts() ([]model.Account, error) {
	return scanAccounts(s.db)
}

// CreateAccount validates and inserts an account.
func (s *Store) CreateAccount(a model.Account) (model.Account, error) {
	if err := validateAccount(a); err != nil {
		return model.Account{}, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO accounts (id, name, type, bank_name, balance, credit_limit)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, string(a.Type), a.BankName, a.Balance.String(), decimalPtr(a.CreditLimit),
	)
	return a, err
}

// UpdateAccount replaces an account's fields.
func (s *Store) UpdateAccount(a model.Account) error {
	if err := validateAccount(a); err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE accounts SET name = ?, type = ?, bank_name = ?, balance = ?, credit_limit = ? WHERE id = ?`,
		a.Name, string(a.Type), a.BankName, a.Balance.String(), decimalPtr(a.CreditLimit), a.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteAccount removes an account. Transactions keep their account_id
// reference cleared by the foreign key, so history survives.
func (s *Store) DeleteAccount(id string) error {
	if _, err := s.db.Exec("UPDATE transactions SET account_id = NULL WHERE account_id = ?", id); err != nil {
		return err
	}
	res, err := s.db.Exec("DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func validateAccount(a model.Account) error {
	if a.Name == "" {
		return errors.New("account name is required")
	}
	switch a.Type {
	case model.AccountChecking:
		if a.CreditLimit != nil {
			return errors.New("credit limit applies only to credit card accounts")
		}
	case model.AccountCreditCard:
		if a.CreditLimit == nil {
			return errors.New("credit card accounts require a credit limit")
		}
	default:
		return fmt.Errorf("invalid account type %q", a.Type)
	}
	return nil
}

func scanAccounts(q querier) ([]model.Account, error) {
	rows, err := q.Query("SELECT id, name, type, bank_name, balance, credit_limit FROM accounts ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var bankName, balance, creditLimit sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &bankName, &balance, &creditLimit); err != nil {
			return nil, err
		}
		a.BankName = bankName.String
		if a.Balance, err = decimal.NewFromString(balance.String); err != nil {
			return nil, fmt.Errorf("account %s: bad balance %q: %w", a.ID, balance.String, err)
		}
		if creditLimit.Valid {
			d, err := decimal.NewFromString(creditLimit.String)
			if err != nil {
				return nil, fmt.Errorf("account %s: bad credit limit %q: %w", a.ID, creditLimit.String, err)
			}
			a.CreditLimit = &d
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// --- goals ---

// ListGoals returns all goals sorted by target date.
func (s *Store) ListGoals() ([]model.Goal, error) {
	return scanGoals(s.db)
}

// GetGoal returns a single goal by id.
func (s *Store) GetGoal(id string) (model.Goal, error) {
	goals, err := scanGoalsWhere(s.db, "WHERE id = ?", id)
	if err != nil {
		return model.Goal{}, err
	}
	if len(goals) == 0 {
		return model.Goal{}, ErrNotFound
	}
	return goals[0], nil
}

// CreateGoal validates and inserts a goal.
func (s *Store) CreateGoal(g model.Goal) (model.Goal, error) {
	if err := validateGoal(g); err != nil {
		return model.Goal{}, err
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO goals (id, name, description, target_amount, current_amount, target_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Description, g.TargetAmount.String(), g.CurrentAmount.String(), g.TargetDate.Format(dateLayout),
	)
	return g, err
}

// UpdateGoal replaces a goal's fields.
func (s *Store) UpdateGoal(g model.Goal) error {
	if err := validateGoal(g); err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE goals SET name = ?, description = ?, target_amount = ?, current_amount = ?, target_date = ? WHERE id = ?`,
		g.Name, g.Description, g.TargetAmount.String(), g.CurrentAmount.String(), g.TargetDate.Format(dateLayout), g.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteGoal removes a goal by id.
func (s *Store) DeleteGoal(id string) error {
	res, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func validateGoal(g model.Goal) error {
	if g.Name == "" {
		return errors.New("goal name is required")
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("target amount must be positive, got %s", g.TargetAmount)
	}
	if g.CurrentAmount.IsNegative() {
		return fmt.Errorf("current amount must not be negative, got %s", g.CurrentAmount)
	}
	if g.TargetDate.IsZero() {
		return errors.New("target date is required")
	}
	return nil
}

func scanGoals(q querier) ([]model.Goal, error) {
	return scanGoalsWhere(q, "")
}

func scanGoalsWhere(q querier, where string, args ...any) ([]model.Goal, error) {
	rows, err := q.Query("SELECT id, name, description, target_amount, current_amount, target_date FROM goals "+where+" ORDER BY target_date", args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		var description sql.NullString
		var target, current, date string
		if err := rows.Scan(&g.ID, &g.Name, &description, &target, &current, &date); err != nil {
			return nil, err
		}
		g.Description = description.String
		if g.TargetAmount, err = decimal.NewFromString(target); err != nil {
			return nil, fmt.Errorf("goal %s: bad target %q: %w", g.ID, target, err)
		}
		if g.CurrentAmount, err = decimal.NewFromString(current); err != nil {
			return nil, fmt.Errorf("goal %s: bad current %q: %w", g.ID, current, err)
		}
		if g.TargetDate, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("goal %s: bad date %q: %w", g.ID, date, err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// --- spending limits ---

// ListLimits returns all spending limits.
func (s *Store) ListLimits() ([]model.SpendingLimit, error) {
	return scanLimits(s.db)
}

// SetLimit creates or replaces the single limit for a category.
func (s *Store) SetLimit(l model.SpendingLimit) (model.SpendingLimit, error) {
	if l.CategoryID == "" {
		return model.SpendingLimit{}, errors.New("category is required")
	}
	if !l.MonthlyLimit.IsPositive() {
		return model.SpendingLimit{}, fmt.Errorf("monthly limit must be positive, got %s", l.MonthlyLimit)
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO spending_limits (id, category_id, monthly_limit)
		VALUES (?, ?, ?)
		ON CONFLICT (category_id) DO UPDATE SET monthly_limit = excluded.monthly_limit`,
		l.ID, l.CategoryID, l.MonthlyLimit.String(),
	)
	if err != nil {
		return model.SpendingLimit{}, err
	}
	// An upsert on an existing category keeps the original row id.
	err = s.db.QueryRow("SELECT id FROM spending_limits WHERE category_id = ?", l.CategoryID).Scan(&l.ID)
	return l, err
}

// DeleteLimit removes a spending limit by id.
func (s *Store) DeleteLimit(id string) error {
	res, err := s.db.Exec("DELETE FROM spending_limits WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanLimits(q querier) ([]model.SpendingLimit, error) {
	rows, err := q.Query("SELECT id, category_id, monthly_limit FROM spending_limits")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var limits []model.SpendingLimit
	for rows.Next() {
		var l model.SpendingLimit
		var limit string
		if err := rows.Scan(&l.ID, &l.CategoryID, &limit); err != nil {
			return nil, err
		}
		if l.MonthlyLimit, err = decimal.NewFromString(limit); err != nil {
			return nil, fmt.Errorf("limit %s: bad amount %q: %w", l.ID, limit, err)
		}
		limits = append(limits, l)
	}
	return limits, rows.Err()
}

// --- helpers ---

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func decimalPtr(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
