package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/revenue-service/internal/config"
	"github.com/Dan9191/revenue-service/internal/service"
	"github.com/Dan9191/revenue-service/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the periodic report delivery job
type Scheduler struct {
	cron   *cron.Cron
	svc    *service.Service
	sender *email.Sender
	cfg    *config.Config
	log    *logrus.Logger
}

// NewScheduler initializes a new scheduler
func NewScheduler(svc *service.Service, sender *email.Sender, cfg *config.Config, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		svc:    svc,
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// Start registers the report job and starts the cron loop. With no recipient
// configured the scheduler stays idle.
func (s *Scheduler) Start() error {
	if s.cfg.ReportRecipient == "" {
		s.log.Info("Report delivery disabled: no recipient configured")
		return nil
	}
	if _, err := s.cron.AddFunc(s.cfg.ReportSchedule, s.deliverReport); err != nil {
		return fmt.Errorf("failed to schedule report job: %w", err)
	}
	s.cron.Start()
	s.log.Infof("Report delivery scheduled (%q) to %s", s.cfg.ReportSchedule, s.cfg.ReportRecipient)
	return nil
}

// Stop halts the cron loop
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) deliverReport() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	report, err := s.svc.GenerateReport(ctx, time.Now())
	if err != nil {
		s.log.Errorf("Scheduled report failed: %v", err)
		return
	}
	if err := s.sender.SendAnalyticsReport(s.cfg.ReportRecipient, report); err != nil {
		s.log.Errorf("Scheduled report delivery failed: %v", err)
	}
}
