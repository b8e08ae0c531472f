package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

var testCategories = []model.Category{
	{ID: "cat-food", Name: "Alimentação"},
	{ID: "cat-salary", Name: "Salário"},
}

var testAccounts = []model.Account{
	{ID: "acc-main", Name: "Conta Corrente Principal", Type: model.AccountChecking},
}

func parseString(t *testing.T, csv string) Result {
	t.Helper()
	res, err := Parse(strings.NewReader(csv), testCategories, testAccounts)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res
}

func TestParseFullRow(t *testing.T) {
	res := parseString(t, `data,descricao,valor,tipo,categoria,conta,observacoes
15/01/2025,Salário mensal,5500.00,receita,Salário,Conta Corrente Principal,pagamento
`)

	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(res.Transactions))
	}

	tx := res.Transactions[0]
	if tx.Type != model.TypeIncome {
		t.Errorf("type = %v, want income", tx.Type)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("5500.00")) {
		t.Errorf("amount = %s, want 5500.00", tx.Amount)
	}
	if tx.Date.Format("2006-01-02") != "2025-01-15" {
		t.Errorf("date = %v, want 2025-01-15", tx.Date)
	}
	if tx.CategoryID != "cat-salary" {
		t.Errorf("category = %q, want cat-salary", tx.CategoryID)
	}
	if tx.AccountID != "acc-main" {
		t.Errorf("account = %q, want acc-main", tx.AccountID)
	}
	if tx.Notes != "pagamento" {
		t.Errorf("notes = %q, want pagamento", tx.Notes)
	}
}

func TestParseRequiredColumnsOnly(t *testing.T) {
	res := parseString(t, `data,descricao,valor,tipo
20/02/2025,Supermercado,350.75,despesa
`)

	if len(res.Transactions) != 1 || len(res.Errors) != 0 {
		t.Fatalf("transactions/errors = %d/%d, want 1/0", len(res.Transactions), len(res.Errors))
	}
	if res.Transactions[0].CategoryID != "" {
		t.Errorf("category should stay empty without a categoria column")
	}
}

func TestParseMissingRequiredColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("data,descricao,valor\n"), nil, nil)
	if err == nil || !strings.Contains(err.Error(), "tipo") {
		t.Fatalf("err = %v, want missing-column error naming tipo", err)
	}
}

func TestParseTypeSynonyms(t *testing.T) {
	cases := []struct {
		tipo string
		want model.TransactionType
	}{
		{"receita", model.TypeIncome},
		{"entrada", model.TypeIncome},
		{"RECEITA", model.TypeIncome},
		{"despesa", model.TypeExpense},
		{"saida", model.TypeExpense},
		{"Despesa", model.TypeExpense},
	}
	for _, tc := range cases {
		res := parseString(t, "data,descricao,valor,tipo\n10/03/2025,x,100,"+tc.tipo+"\n")
		if len(res.Transactions) != 1 {
			t.Fatalf("%s: rejected, errors: %v", tc.tipo, res.Errors)
		}
		if res.Transactions[0].Type != tc.want {
			t.Errorf("%s: type = %v, want %v", tc.tipo, res.Transactions[0].Type, tc.want)
		}
	}
}

func TestParseBrazilianAmountFormat(t *testing.T) {
	cases := []struct {
		valor string
		want  string
	}{
		{"1234.56", "1234.56"},
		{`"1.234,56"`, "1234.56"},
		{`"R$ 1.234,56"`, "1234.56"},
		{"-350.75", "350.75"},
		{`"-1.200,00"`, "1200"},
	}
	for _, tc := range cases {
		res := parseString(t, "data,descricao,valor,tipo\n10/03/2025,x,"+tc.valor+",despesa\n")
		if len(res.Transactions) != 1 {
			t.Fatalf("%q: rejected, errors: %v", tc.valor, res.Errors)
		}
		if got := res.Transactions[0].Amount; !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("%q: amount = %s, want %s", tc.valor, got, tc.want)
		}
	}
}

func TestParseCollectsRowErrors(t *testing.T) {
	res := parseString(t, `data,descricao,valor,tipo
15/01/2025,ok,100,receita
2025-01-15,bad date,100,receita
16/01/2025,,100,receita
17/01/2025,bad type,100,transferencia
18/01/2025,bad amount,abc,despesa
19/01/2025,zero,0,despesa
20/01/2025,also ok,50,despesa
`)

	if len(res.Transactions) != 2 {
		t.Errorf("valid transactions = %d, want 2", len(res.Transactions))
	}
	if len(res.Errors) != 5 {
		t.Fatalf("row errors = %d, want 5: %v", len(res.Errors), res.Errors)
	}
	// Row numbers count the header.
	if res.Errors[0].Row != 3 {
		t.Errorf("first error row = %d, want 3", res.Errors[0].Row)
	}
	if !strings.Contains(res.Errors[0].Message, "DD/MM/YYYY") {
		t.Errorf("date error should name the expected format, got %q", res.Errors[0].Message)
	}
}

func TestParseReportsUnknownCategories(t *testing.T) {
	res := parseString(t, `data,descricao,valor,tipo,categoria
15/01/2025,a,100,despesa,Viagens
16/01/2025,b,100,despesa,viagens
17/01/2025,c,100,despesa,Alimentação
`)

	if len(res.UnknownCategories) != 1 || res.UnknownCategories[0] != "Viagens" {
		t.Errorf("unknown categories = %v, want [Viagens] deduplicated", res.UnknownCategories)
	}
	if res.Transactions[2].CategoryID != "cat-food" {
		t.Errorf("known category should resolve, got %q", res.Transactions[2].CategoryID)
	}
}

func TestParseCategoryMatchIsCaseInsensitive(t *testing.T) {
	res := parseString(t, "data,descricao,valor,tipo,categoria\n15/01/2025,x,100,despesa,alimentação\n")
	if res.Transactions[0].CategoryID != "cat-food" {
		t.Errorf("case-insensitive match failed, got %q", res.Transactions[0].CategoryID)
	}
}

func TestParseEmptyFile(t *testing.T) {
	if _, err := Parse(strings.NewReader(""), nil, nil); err == nil {
		t.Fatal("empty file should be an error")
	}
}

func TestTemplateParsesCleanly(t *testing.T) {
	res, err := Parse(strings.NewReader(Template()), testCategories, testAccounts)
	if err != nil {
		t.Fatalf("template should parse: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("template rows rejected: %v", res.Errors)
	}
	if len(res.Transactions) != 2 {
		t.Errorf("template transactions = %d, want 2", len(res.Transactions))
	}
}
