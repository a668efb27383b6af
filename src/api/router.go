package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack-server/src/config"
	"fintrack-server/src/handlers"
	"fintrack-server/src/middleware"
)

func NewRouter(store handlers.TransactionStore, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.IdentityMiddleware(cfg.JWTSecret))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/transactions", handlers.CreateTransaction(store))
		r.Get("/transactions", handlers.GetRecentTransactions(store, cfg.RecentPageSize, cfg.RecentCacheTTL))
		r.Get("/transactions/monthly", handlers.GetMonthlyTotals(store, cfg.MonthlyCacheTTL))
	})

	return r
}
