package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"ledger-app-go/internal/config"
	"ledger-app-go/internal/transport/httpserver/handler"
	"ledger-app-go/internal/transport/httpserver/middleware"
	"ledger-app-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, users middleware.UserResolver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		defaultUser := middleware.NewDefaultUser(users, log)
		r.Group(func(r chi.Router) {
			r.Use(defaultUser.Middleware)

			r.Get("/user-data", handlers.UserData)
			r.Put("/balance", handlers.UpdateBalance)
			r.Put("/budget", handlers.UpdateBudget)

			r.Get("/expenses", handlers.ListExpenses)
			r.Post("/expenses", handlers.CreateExpense)
			r.Delete("/expenses/{id}", handlers.DeleteExpense)

			r.Post("/income", handlers.AddIncome)

			r.Get("/export/csv", handlers.ExportCSV)
			r.Get("/export/excel", handlers.ExportXLSX)
			r.Post("/import/csv", handlers.ImportCSV)
			r.Post("/import/excel", handlers.ImportXLSX)

			r.Get("/reports/trend", handlers.Trend)
			r.Get("/reports/categories", handlers.CategoryTotals)
			r.Get("/reports/recurring", handlers.Recurring)
		})
	})

	return r
}
