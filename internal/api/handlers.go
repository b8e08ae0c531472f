package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MarcoCDuran/FinancialHealth/internal/engine"
	"github.com/MarcoCDuran/FinancialHealth/internal/importer"
	"github.com/MarcoCDuran/FinancialHealth/internal/model"
	"github.com/MarcoCDuran/FinancialHealth/internal/store"
)

const maxUploadBytes = 10 << 20

// writeData wraps a payload in the {success, data} envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data}); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// writeError wraps a message in the {success, error} envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

// writeStoreError maps store sentinel errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrCategoryInUse), errors.Is(err, store.ErrDefaultCategory):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// --- computed views ---

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	d := engine.ComputeDashboard(snap, s.now(), s.params)
	writeData(w, http.StatusOK, dashboardToPayload(d))
}

func (s *Server) getProjections(w http.ResponseWriter, r *http.Request) {
	months := s.params.ProjectionMonths
	if v := r.URL.Query().Get("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 24 {
			writeError(w, http.StatusBadRequest, "months must be between 1 and 24")
			return
		}
		months = parsed
	}

	snap, err := s.store.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	p := engine.ComputeProjections(snap, s.now(), months, s.params)
	writeData(w, http.StatusOK, projectionsToPayload(p))
}

// --- transactions ---

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	var filter store.TransactionFilter
	q := r.URL.Query()
	if v := q.Get("start_date"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date")
			return
		}
		filter.From = d
	}
	if v := q.Get("end_date"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date")
			return
		}
		filter.To = d
	}
	filter.Type = model.TransactionType(q.Get("type"))
	filter.CategoryID = q.Get("category_id")
	filter.AccountID = q.Get("account_id")

	txs, err := s.store.ListTransactions(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := make([]transactionPayload, 0, len(txs))
	for _, t := range txs {
		payload = append(payload, transactionToPayload(t))
	}
	writeData(w, http.StatusOK, payload)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := req.toModel("")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.store.CreateTransaction(t)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusCreated, transactionToPayload(created))
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := req.toModel(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.UpdateTransaction(t); err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, transactionToPayload(t))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTransaction(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// --- categories ---

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.ListCategories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := make([]categoryPayload, 0, len(cats))
	for _, c := range cats {
		payload = append(payload, categoryToPayload(c))
	}
	writeData(w, http.StatusOK, payload)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := s.store.CreateCategory(model.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusCreated, categoryToPayload(created))
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// --- accounts ---

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := make([]accountPayload, 0, len(accounts))
	for _, a := range accounts {
		payload = append(payload, accountToPayload(a))
	}
	writeData(w, http.StatusOK, payload)
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := req.toModel("")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.store.CreateAccount(a)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusCreated, accountToPayload(created))
}

// --- goals ---

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.ListGoals()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := make([]goalPayload, 0, len(goals))
	for _, g := range goals {
		payload = append(payload, goalToPayload(g))
	}
	writeData(w, http.StatusOK, payload)
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g, err := req.toModel("")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.store.CreateGoal(g)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusCreated, goalToPayload(created))
}

func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g, err := req.toModel(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.UpdateGoal(g); err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, goalToPayload(g))
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteGoal(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// --- spending limits ---

func (s *Server) listLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := s.store.ListLimits()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := make([]limitPayload, 0, len(limits))
	for _, l := range limits {
		payload = append(payload, limitToPayload(l))
	}
	writeData(w, http.StatusOK, payload)
}

func (s *Server) createLimit(w http.ResponseWriter, r *http.Request) {
	s.setLimit(w, r, "")
}

func (s *Server) updateLimit(w http.ResponseWriter, r *http.Request) {
	s.setLimit(w, r, chi.URLParam(r, "id"))
}

func (s *Server) setLimit(w http.ResponseWriter, r *http.Request, id string) {
	var req limitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := req.toModel(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := s.store.SetLimit(l)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeData(w, status, limitToPayload(saved))
}

func (s *Server) deleteLimit(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteLimit(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// --- sample data and CSV import ---

func (s *Server) importSampleData(w http.ResponseWriter, r *http.Request) {
	if err := s.store.SeedSampleData(s.now()); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeData(w, http.StatusOK, map[string]string{"message": "sample data imported"})
}

// importFile extracts the uploaded CSV and parses it against current
// categories and accounts.
func (s *Server) importFile(w http.ResponseWriter, r *http.Request) (importer.Result, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "file too large")
		return importer.Result{}, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return importer.Result{}, false
	}
	defer func() { _ = file.Close() }()

	categories, err := s.store.ListCategories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return importer.Result{}, false
	}
	accounts, err := s.store.ListAccounts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return importer.Result{}, false
	}

	res, err := importer.Parse(io.LimitReader(file, maxUploadBytes), categories, accounts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return importer.Result{}, false
	}
	return res, true
}

type importReport struct {
	ValidRows         int                  `json:"valid_rows"`
	InvalidRows       int                  `json:"invalid_rows"`
	Imported          int                  `json:"imported"`
	Errors            []map[string]any     `json:"errors"`
	UnknownCategories []string             `json:"unknown_categories"`
	Preview           []transactionPayload `json:"preview,omitempty"`
}

func buildReport(res importer.Result, imported int) importReport {
	report := importReport{
		ValidRows:         len(res.Transactions),
		InvalidRows:       len(res.Errors),
		Imported:          imported,
		Errors:            make([]map[string]any, 0, len(res.Errors)),
		UnknownCategories: res.UnknownCategories,
	}
	for _, e := range res.Errors {
		report.Errors = append(report.Errors, map[string]any{"row": e.Row, "message": e.Message})
	}
	return report
}

func (s *Server) validateImportFile(w http.ResponseWriter, r *http.Request) {
	res, ok := s.importFile(w, r)
	if !ok {
		return
	}
	report := buildReport(res, 0)
	preview := res.Transactions
	if len(preview) > 10 {
		preview = preview[:10]
	}
	for _, t := range preview {
		report.Preview = append(report.Preview, transactionToPayload(t))
	}
	writeData(w, http.StatusOK, report)
}

func (s *Server) uploadTransactions(w http.ResponseWriter, r *http.Request) {
	res, ok := s.importFile(w, r)
	if !ok {
		return
	}

	// Rows that resolved no category cannot be stored.
	importable := res.Transactions[:0:0]
	for _, t := range res.Transactions {
		if t.CategoryID != "" {
			importable = append(importable, t)
		}
	}
	if len(importable) > 0 {
		if err := s.store.CreateTransactions(importable); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeData(w, http.StatusOK, buildReport(res, len(importable)))
}

func (s *Server) getImportTemplate(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]any{
		"template":         importer.Template(),
		"required_columns": []string{"data", "descricao", "valor", "tipo"},
		"optional_columns": []string{"categoria", "conta", "observacoes"},
	})
}

func (s *Server) downloadImportTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="template_importacao_transacoes.csv"`)
	_, _ = w.Write([]byte(importer.Template()))
}
