package scheduler

import (
	"log"

	"clienthub/internal/services"

	"github.com/robfig/cron/v3"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron          *cron.Cron
	statusService *services.StatusService
}

// NewScheduler creates a new scheduler
func NewScheduler(statusService *services.StatusService) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		statusService: statusService,
	}
}

// Start registers the periodic status refresh and starts the scheduler
func (s *Scheduler) Start(refreshInterval string) error {
	_, err := s.cron.AddFunc(refreshInterval, func() {
		log.Println("Starting scheduled status refresh...")
		s.statusService.RefreshAll()
		log.Println("Scheduled status refresh completed")
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Scheduler started with interval: %s", refreshInterval)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Scheduler stopped")
}
