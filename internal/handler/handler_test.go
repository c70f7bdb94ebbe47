package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/revenue-service/internal/config"
	"github.com/Dan9191/revenue-service/internal/models"
	"github.com/Dan9191/revenue-service/internal/repository"
	"github.com/Dan9191/revenue-service/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubLedger struct {
	txs []models.TransactionRecord
	err error
}

func (s *stubLedger) FetchTransactions(ctx context.Context) ([]models.TransactionRecord, error) {
	return s.txs, s.err
}

func (s *stubLedger) FetchSubscriptions(ctx context.Context) ([]models.SubscriptionRecord, error) {
	return nil, s.err
}

func newTestHandler(t *testing.T, ledger service.LedgerStore) *Handler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: string(hash),
	}
	return NewHandler(service.NewService(ledger, log, cfg))
}

func TestLoginHandler(t *testing.T) {
	h := newTestHandler(t, &stubLedger{})

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"admin@example.com","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["token"])

	req = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"admin@example.com","password":"wrong"}`))
	rec = httptest.NewRecorder()
	h.Login(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{broken`))
	rec = httptest.NewRecorder()
	h.Login(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRevenueAnalyticsHandler(t *testing.T) {
	ledger := &stubLedger{
		txs: []models.TransactionRecord{
			{
				CustomerID: "cus_1",
				Amount:     "100.00",
				Paid:       true,
				Status:     "paid",
				// Dated now so the settled payment always lands in the
				// current reporting month regardless of the test date.
				CreatedAt:  time.Now(),
			},
		},
	}
	h := newTestHandler(t, ledger)

	req := httptest.NewRequest(http.MethodGet, "/analytics/revenue", nil)
	rec := httptest.NewRecorder()
	h.RevenueAnalytics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report models.AnalyticsReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Len(t, report.MRRTrend, 12)
	assert.Len(t, report.ChurnRisks, 1)
	assert.Equal(t, 100.0, report.Summary.CurrentMRR)
}

func TestRevenueAnalyticsHandlerLedgerDown(t *testing.T) {
	ledger := &stubLedger{err: fmt.Errorf("%w: connection refused", repository.ErrLedgerUnavailable)}
	h := newTestHandler(t, ledger)

	req := httptest.NewRequest(http.MethodGet, "/analytics/revenue", nil)
	rec := httptest.NewRecorder()
	h.RevenueAnalytics(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	h.RevenueAnalyticsXML(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRevenueAnalyticsXMLHandler(t *testing.T) {
	ledger := &stubLedger{
		txs: []models.TransactionRecord{
			{
				CustomerID: "cus_1",
				Amount:     "100.00",
				Paid:       true,
				Status:     "paid",
				// Dated now so the settled payment always lands in the
				// current reporting month regardless of the test date.
				CreatedAt:  time.Now(),
			},
		},
	}
	h := newTestHandler(t, ledger)

	req := httptest.NewRequest(http.MethodGet, "/analytics/revenue/export", nil)
	rec := httptest.NewRecorder()
	h.RevenueAnalyticsXML(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<AnalyticsReport>")
	assert.Contains(t, rec.Body.String(), "<MRRTrend>")
}
