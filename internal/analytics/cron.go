package analytics

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes the cached analytics snapshot on a fixed
// interval so the dashboard serves warm data.
type Scheduler struct {
	cron *cron.Cron
	svc  *Service
}

func NewScheduler(svc *Service) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		svc:  svc,
	}
}

// Start registers the refresh job and starts the cron loop. The
// snapshot is also refreshed once immediately.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@every 5m", func() {
		s.svc.Refresh(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Analytics scheduler started (refresh every 5m)")

	go s.svc.Refresh(context.Background())
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
