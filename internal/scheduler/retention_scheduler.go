package scheduler

import (
	"time"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/repository"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RetentionScheduler permanently removes customer records that stayed in
// the trash longer than the retention window.
type RetentionScheduler struct {
	cron         *cron.Cron
	customerRepo repository.CustomerRepository
	schedule     string
	purgeAfter   time.Duration
}

func NewRetentionScheduler(
	customerRepo repository.CustomerRepository,
	schedule string,
	purgeAfter time.Duration,
) *RetentionScheduler {
	return &RetentionScheduler{
		cron:         cron.New(),
		customerRepo: customerRepo,
		schedule:     schedule,
		purgeAfter:   purgeAfter,
	}
}

func (s *RetentionScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.runPurge)
	if err != nil {
		logger.Error("Failed to add cron job for retention purge", err)
		return err
	}

	s.cron.Start()
	logger.Info("Retention scheduler started", map[string]interface{}{
		"schedule":    s.schedule,
		"purge_after": s.purgeAfter.String(),
	})

	return nil
}

func (s *RetentionScheduler) Stop() {
	logger.Info("Stopping retention scheduler...", nil)
	s.cron.Stop()
	logger.Info("Retention scheduler stopped", nil)
}

func (s *RetentionScheduler) runPurge() {
	cutoff := time.Now().Add(-s.purgeAfter)

	logger.Info("Starting scheduled retention purge", map[string]interface{}{
		"cutoff": cutoff.Format(time.RFC3339),
	})

	purged, err := s.customerRepo.PurgeDeletedBefore(cutoff)
	if err != nil {
		logger.Error("Retention purge failed", err)
		return
	}

	logger.Info("Retention purge finished", map[string]interface{}{
		"purged": purged,
	})
}
