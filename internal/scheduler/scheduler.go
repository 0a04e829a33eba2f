// Package scheduler runs the periodic background jobs: quote refresh and
// remote snapshot pushes.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/etfolio/etf-tracker-backend/internal/service"
)

// Scheduler wraps a cron runner for the application's background jobs.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a stopped Scheduler. Jobs are registered with the Schedule*
// methods and run only after Start.
func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// ScheduleQuoteRefresh registers a periodic quote refresh. An empty spec
// disables the job.
func (s *Scheduler) ScheduleQuoteRefresh(spec string, quoteService *service.QuoteService) error {
	if spec == "" {
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		quotes, err := quoteService.RefreshQuotes(context.Background())
		if err != nil {
			log.Printf("scheduled quote refresh failed: %v", err)
			return
		}
		log.Printf("scheduled quote refresh: %d symbols updated", len(quotes))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule quote refresh: %w", err)
	}

	return nil
}

// ScheduleSyncPush registers a periodic snapshot push to the remote store.
// An empty spec disables the job.
func (s *Scheduler) ScheduleSyncPush(spec string, syncService *service.SyncService) error {
	if spec == "" || !syncService.Enabled() {
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		if err := syncService.Push(context.Background()); err != nil {
			log.Printf("scheduled snapshot push failed: %v", err)
			return
		}
		log.Println("scheduled snapshot push completed")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule snapshot push: %w", err)
	}

	return nil
}

// Start begins running registered jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
