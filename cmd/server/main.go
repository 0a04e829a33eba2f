package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etfolio/etf-tracker-backend/internal/api"
	"github.com/etfolio/etf-tracker-backend/internal/config"
	"github.com/etfolio/etf-tracker-backend/internal/database"
	"github.com/etfolio/etf-tracker-backend/internal/quotes"
	"github.com/etfolio/etf-tracker-backend/internal/repository"
	"github.com/etfolio/etf-tracker-backend/internal/scheduler"
	"github.com/etfolio/etf-tracker-backend/internal/secrets"
	"github.com/etfolio/etf-tracker-backend/internal/service"
	"github.com/etfolio/etf-tracker-backend/internal/syncstore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	reserveRepo := repository.NewReserveRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	ledgerService := service.NewLedgerService(transactionRepo)
	holdingsService := service.NewHoldingsService(ledgerService, reserveRepo, quoteRepo)
	quoteService := service.NewQuoteService(quotes.NewFinanceClient(), quoteRepo, ledgerService)
	noteService := service.NewNoteService(noteRepo)
	exportService := service.NewExportService(transactionRepo, reserveRepo)

	// The sync vault is only built when sync is enabled; the service itself
	// is always constructed so the status endpoint can report "disabled".
	var vault *secrets.Vault
	if cfg.Sync.Enabled {
		vault, err = secrets.NewVault(cfg.Sync.EncryptionKey)
		if err != nil {
			log.Fatalf("Failed to initialize sync vault: %v", err)
		}
	}
	newStore := func(token string) service.SnapshotStore {
		return syncstore.NewRedisStore(cfg.Sync.RedisAddr, token, cfg.Sync.RedisDB)
	}
	syncService := service.NewSyncService(
		cfg.Sync,
		vault,
		newStore,
		transactionRepo,
		reserveRepo,
		settingRepo,
		exportService,
	)

	// Start background jobs
	sched := scheduler.New()
	if err := sched.ScheduleQuoteRefresh(cfg.Quotes.RefreshSpec, quoteService); err != nil {
		log.Fatalf("Failed to schedule quote refresh: %v", err)
	}
	if err := sched.ScheduleSyncPush(cfg.Sync.PushSpec, syncService); err != nil {
		log.Fatalf("Failed to schedule snapshot push: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:   systemService,
		Ledger:   ledgerService,
		Holdings: holdingsService,
		Quotes:   quoteService,
		Notes:    noteService,
		Export:   exportService,
		Sync:     syncService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
