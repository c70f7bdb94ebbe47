package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/revenue-service/internal/analytics"
	"github.com/Dan9191/revenue-service/internal/config"
	"github.com/Dan9191/revenue-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// maxChurnRiskEntries caps the risk ranking returned to callers.
const maxChurnRiskEntries = 50

// LedgerStore is the data-source collaborator the engine reads its snapshot
// from. It must return the complete historical ledger, ascending by
// creation time.
type LedgerStore interface {
	FetchTransactions(ctx context.Context) ([]models.TransactionRecord, error)
	FetchSubscriptions(ctx context.Context) ([]models.SubscriptionRecord, error)
}

// Service handles business logic
type Service struct {
	ledger LedgerStore
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(ledger LedgerStore, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{ledger: ledger, log: log, config: cfg}
}

// Login authenticates the admin reporting user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	if email != s.config.AdminEmail {
		return "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  email,
		"role": "admin",
		"exp":  jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("Admin logged in: %s", email)
	return tokenString, nil
}

// GenerateReport runs the full analytics batch over the current ledger
// snapshot: MRR trend, forecast, churn-risk ranking and summary KPIs.
// Everything is recomputed from scratch; ref anchors the trailing windows so
// callers (and tests) control the notion of "now". A forecast that fails for
// lack of history degrades to an empty section instead of aborting.
func (s *Service) GenerateReport(ctx context.Context, ref time.Time) (*models.AnalyticsReport, error) {
	txs, err := s.ledger.FetchTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	subs, err := s.ledger.FetchSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}

	ledger := analytics.NormalizeLedger(txs, subs)
	if ledger.Malformed > 0 {
		s.log.Warnf("Skipped %d malformed ledger records", ledger.Malformed)
	}

	trend := analytics.BuildMRRTrend(ledger.Entries, ref)
	risks := analytics.ScoreChurnRisk(ledger.Customers, ref)

	forecast, err := analytics.ForecastMRR(trend)
	if err != nil {
		if !errors.Is(err, analytics.ErrInsufficientData) {
			return nil, err
		}
		s.log.Warnf("Forecast skipped: %v", err)
		forecast = []models.ForecastPoint{}
	}

	summary := analytics.BuildSummary(trend, forecast, risks)

	if len(risks) > maxChurnRiskEntries {
		risks = risks[:maxChurnRiskEntries]
	}

	s.log.Infof("Analytics report generated: %d customers, current MRR %.2f", summary.TotalCustomers, summary.CurrentMRR)
	return &models.AnalyticsReport{
		MRRTrend:   trend,
		Forecast:   forecast,
		ChurnRisks: risks,
		Summary:    summary,
	}, nil
}
