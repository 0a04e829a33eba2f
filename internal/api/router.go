package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/etfolio/etf-tracker-backend/internal/api/handlers"
	custommiddleware "github.com/etfolio/etf-tracker-backend/internal/api/middleware"
	"github.com/etfolio/etf-tracker-backend/internal/config"
	"github.com/etfolio/etf-tracker-backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System   *service.SystemService
	Ledger   *service.LedgerService
	Holdings *service.HoldingsService
	Quotes   *service.QuoteService
	Notes    *service.NoteService
	Export   *service.ExportService
	Sync     *service.SyncService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Ledger)
			r.Get("/", transactionHandler.ListTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/holdings", func(r chi.Router) {
			holdingsHandler := handlers.NewHoldingsHandler(svc.Holdings)
			r.Get("/", holdingsHandler.GetHoldings)
			r.Put("/reserve", holdingsHandler.SetReserve)
		})

		r.Route("/quote", func(r chi.Router) {
			quoteHandler := handlers.NewQuoteHandler(svc.Quotes)
			r.Get("/", quoteHandler.ListQuotes)
			r.Post("/refresh", quoteHandler.RefreshQuotes)
		})

		r.Route("/note", func(r chi.Router) {
			noteHandler := handlers.NewNoteHandler(svc.Notes)
			r.Get("/", noteHandler.ListNotes)
			r.Post("/", noteHandler.CreateNote)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", noteHandler.GetNote)
				r.Put("/", noteHandler.UpdateNote)
				r.Delete("/", noteHandler.DeleteNote)
			})
		})

		r.Route("/export", func(r chi.Router) {
			exportHandler := handlers.NewExportHandler(svc.Export)
			r.Get("/csv", exportHandler.ExportCSV)
			r.Get("/json", exportHandler.ExportJSON)
		})

		r.Route("/sync", func(r chi.Router) {
			syncHandler := handlers.NewSyncHandler(svc.Sync)
			r.Get("/", syncHandler.Status)

			// Mutating sync endpoints require the shared API key.
			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)
				r.Put("/token", syncHandler.SetToken)
				r.Post("/push", syncHandler.Push)
				r.Post("/pull", syncHandler.Pull)
			})
		})
	})

	return r
}
