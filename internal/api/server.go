// Package api exposes the projection engine and store over a JSON REST
// surface compatible with the web dashboard.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MarcoCDuran/FinancialHealth/internal/engine"
	"github.com/MarcoCDuran/FinancialHealth/internal/store"
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	store  *store.Store
	params engine.Params
	now    func() time.Time
}

// New creates a server over the given store and engine parameters.
func New(st *store.Store, params engine.Params) *Server {
	return &Server{store: st, params: params, now: time.Now}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Route("/api/financial", func(r chi.Router) {
		r.Get("/dashboard", s.getDashboard)
		r.Get("/projections", s.getProjections)

		r.Get("/transactions", s.listTransactions)
		r.Post("/transactions", s.createTransaction)
		r.Put("/transactions/{id}", s.updateTransaction)
		r.Delete("/transactions/{id}", s.deleteTransaction)

		r.Get("/categories", s.listCategories)
		r.Post("/categories", s.createCategory)
		r.Delete("/categories/{id}", s.deleteCategory)

		r.Get("/accounts", s.listAccounts)
		r.Post("/accounts", s.createAccount)

		r.Get("/goals", s.listGoals)
		r.Post("/goals", s.createGoal)
		r.Put("/goals/{id}", s.updateGoal)
		r.Delete("/goals/{id}", s.deleteGoal)

		r.Get("/spending-limits", s.listLimits)
		r.Post("/spending-limits", s.createLimit)
		r.Put("/spending-limits/{id}", s.updateLimit)
		r.Delete("/spending-limits/{id}", s.deleteLimit)

		r.Post("/import-sample-data", s.importSampleData)
	})

	r.Route("/api/import", func(r chi.Router) {
		r.Post("/validate-file", s.validateImportFile)
		r.Post("/upload-transactions", s.uploadTransactions)
		r.Get("/template", s.getImportTemplate)
		r.Get("/download-template", s.downloadImportTemplate)
	})

	return r
}
