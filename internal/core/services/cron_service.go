package services

import (
	"context"
	"log"

	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled background jobs. Currently a daily order
// statistics report at 07:00 server time.
type CronService struct {
	orderRepo repositories.OrderRepository
	scheduler *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(orderRepo repositories.OrderRepository) *CronService {
	return &CronService{
		orderRepo: orderRepo,
		scheduler: cron.New(),
	}
}

// Start registers and starts all scheduled jobs
func (s *CronService) Start() {
	if _, err := s.scheduler.AddFunc("0 7 * * *", s.reportDailyStatistics); err != nil {
		log.Printf("failed to schedule statistics report: %v", err)
		return
	}

	s.scheduler.Start()
	log.Println("cron service started")
}

// Stop stops the scheduler, waiting for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.scheduler.Stop()
	<-ctx.Done()
	log.Println("cron service stopped")
}

func (s *CronService) reportDailyStatistics() {
	ctx := context.Background()

	total, err := s.orderRepo.Count(ctx)
	if err != nil {
		log.Printf("statistics report failed: %v", err)
		return
	}

	pending, err := s.orderRepo.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		log.Printf("statistics report failed: %v", err)
		return
	}

	log.Printf("daily order report: %d total, %d pending", total, pending)
}
