package scheduler

import (
	"time"

	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartPurgeScheduler periodically deletes abandoned carts
type CartPurgeScheduler struct {
	cron        *cron.Cron
	cartService service.CartService
	schedule    string
	ttl         time.Duration
}

// NewCartPurgeScheduler creates a scheduler running on a standard 5-field cron schedule.
// An empty schedule disables the job.
func NewCartPurgeScheduler(cartService service.CartService, schedule string, ttl time.Duration) *CartPurgeScheduler {
	return &CartPurgeScheduler{
		cron:        cron.New(),
		cartService: cartService,
		schedule:    schedule,
		ttl:         ttl,
	}
}

// Start registers the purge job and starts the cron runner
func (s *CartPurgeScheduler) Start() error {
	if s.schedule == "" {
		logger.Info("Cart purge scheduler disabled", nil)
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.RunOnce); err != nil {
		logger.Error("Failed to add cron job for cart purge", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Cart purge scheduler started", map[string]interface{}{
		"schedule": s.schedule,
		"ttl":      s.ttl.String(),
	})
	return nil
}

// RunOnce purges carts older than the configured TTL
func (s *CartPurgeScheduler) RunOnce() {
	logger.Info("Starting scheduled cart purge", nil)

	deleted, err := s.cartService.PurgeStaleCarts(s.ttl)
	if err != nil {
		logger.Error("Failed to purge stale carts from scheduler", err)
		return
	}

	logger.Info("Scheduled cart purge finished", map[string]interface{}{
		"deleted": deleted,
	})
}

// Stop waits for a running job to finish
func (s *CartPurgeScheduler) Stop() {
	logger.Info("Stopping cart purge scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Cart purge scheduler stopped", nil)
}
