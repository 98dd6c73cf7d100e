package api

import (
	"net/http"

	"github.com/fastprodman/betpoa/internal/infra/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter registers every endpoint on a chi router.
func NewRouter(svc Wallet, allowedOrigins []string) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.Register)
		r.Get("/lookup", h.Lookup)

		r.Route("/{accountId}", func(r chi.Router) {
			r.Get("/", h.GetAccount)
			r.Post("/deposits", h.Deposit)
			r.Post("/wagers", h.Wager)
			r.Post("/withdrawals", h.Withdraw)
			r.Get("/transactions", h.ListTransactions)
			r.Get("/games", h.ListGames)
			r.Get("/referrals", h.ListReferrals)
		})
	})

	return r
}
