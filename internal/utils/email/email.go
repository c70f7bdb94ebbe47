package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/revenue-service/internal/config"
	"github.com/Dan9191/revenue-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendAnalyticsReport sends the monthly revenue digest to the configured recipient
func (s *Sender) SendAnalyticsReport(to string, report *models.AnalyticsReport) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Monthly Revenue Analytics Report"

	body := fmt.Sprintf(
		"Revenue analytics summary:\n\n"+
			"Current MRR: %.2f\n"+
			"MRR growth: %.0f%%\n"+
			"Total customers: %d\n"+
			"At-risk customers: %d\n"+
			"Revenue at risk: %.2f\n"+
			"Projected next month: %.2f\n",
		report.Summary.CurrentMRR,
		report.Summary.MRRGrowthPct,
		report.Summary.TotalCustomers,
		report.Summary.AtRiskCustomers,
		report.Summary.RevenueAtRisk,
		report.Summary.ProjectedNextMonth,
	)

	if len(report.ChurnRisks) > 0 {
		body += "\nHighest churn risks:\n"
		top := report.ChurnRisks
		if len(top) > 5 {
			top = top[:5]
		}
		for _, r := range top {
			body += fmt.Sprintf("  %s (%s): score %d, %s\n", r.Name, r.Email, r.RiskScore, r.RiskLevel)
		}
	}
	body += "\nBest regards,\nRevenue Service"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send report to %s: %v", to, err)
		return fmt.Errorf("failed to send report: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
