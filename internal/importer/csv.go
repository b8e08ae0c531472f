// Package importer parses CSV transaction exports into domain records.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

const dateLayout = "02/01/2006"

// Required and optional column headers, matched case-insensitively.
var (
	requiredColumns = []string{"data", "descricao", "valor", "tipo"}
	optionalColumns = []string{"categoria", "conta", "observacoes"}
)

// RowError describes why a single CSV row was rejected. Row numbers are
// 1-based and count the header.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Result is the outcome of parsing one file. Valid rows and rejected rows
// are reported side by side so a partial file can still be previewed.
type Result struct {
	Transactions []model.Transaction
	Errors       []RowError
	// UnknownCategories lists categoria values that matched no existing
	// category, deduplicated in first-seen order.
	UnknownCategories []string
}

// Parse reads a CSV export and resolves category and account names against
// the given records. Rows with an unknown category are kept with an empty
// CategoryID; the caller decides whether to create the missing categories
// or drop the rows.
func Parse(r io.Reader, categories []model.Category, accounts []model.Account) (Result, error) {
	var res Result

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return res, fmt.Errorf("empty file")
	}
	if err != nil {
		return res, fmt.Errorf("reading header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return res, err
	}

	catIdx := make(map[string]string, len(categories))
	for _, c := range categories {
		catIdx[normalize(c.Name)] = c.ID
	}
	accIdx := make(map[string]string, len(accounts))
	for _, a := range accounts {
		accIdx[normalize(a.Name)] = a.ID
	}
	seenUnknown := make(map[string]bool)

	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: row, Message: err.Error()})
			continue
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		t, rowErr := parseRow(field)
		if rowErr != "" {
			res.Errors = append(res.Errors, RowError{Row: row, Message: rowErr})
			continue
		}

		if name := field("categoria"); name != "" {
			if id, ok := catIdx[normalize(name)]; ok {
				t.CategoryID = id
			} else if !seenUnknown[normalize(name)] {
				seenUnknown[normalize(name)] = true
				res.UnknownCategories = append(res.UnknownCategories, name)
			}
		}
		if name := field("conta"); name != "" {
			if id, ok := accIdx[normalize(name)]; ok {
				t.AccountID = id
			}
		}

		res.Transactions = append(res.Transactions, t)
	}

	return res, nil
}

func parseRow(field func(string) string) (model.Transaction, string) {
	var t model.Transaction

	date, err := time.Parse(dateLayout, field("data"))
	if err != nil {
		return t, fmt.Sprintf("invalid date %q, expected DD/MM/YYYY", field("data"))
	}
	t.Date = date

	t.Description = field("descricao")
	if t.Description == "" {
		return t, "missing description"
	}

	typ, ok := parseType(field("tipo"))
	if !ok {
		return t, fmt.Sprintf("unknown type %q", field("tipo"))
	}
	t.Type = typ

	amount, err := parseAmount(field("valor"))
	if err != nil {
		return t, fmt.Sprintf("invalid amount %q", field("valor"))
	}
	if amount.IsZero() {
		return t, "amount must not be zero"
	}
	// The tipo column is authoritative; the sign of valor only restates it.
	t.Amount = amount.Abs()

	t.Notes = field("observacoes")
	return t, ""
}

// parseType maps the Portuguese type synonyms onto transaction types.
func parseType(s string) (model.TransactionType, bool) {
	switch normalize(s) {
	case "receita", "entrada", "income":
		return model.TypeIncome, true
	case "despesa", "saida", "expense":
		return model.TypeExpense, true
	}
	return "", false
}

// parseAmount accepts both 1234.56 and the Brazilian 1.234,56 form, with
// an optional R$ prefix.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalize(h)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Template is the downloadable CSV skeleton with one example row per type.
func Template() string {
	return strings.Join([]string{
		strings.Join(append(requiredColumns, optionalColumns...), ","),
		"15/01/2025,Salário mensal,5500.00,receita,Salário,Conta Corrente Principal,",
		"20/01/2025,Supermercado,-350.75,despesa,Alimentação,Conta Corrente Principal,compra da semana",
		"",
	}, "\n")
}
