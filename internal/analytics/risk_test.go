package analytics

import (
	"testing"
	"time"

	"github.com/Dan9191/revenue-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var riskRef = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

func customer(id string, daysSincePayment int, payments, failures int, totalPaid float64) *CustomerAggregate {
	return &CustomerAggregate{
		CustomerID:   id,
		LastPayment:  riskRef.AddDate(0, 0, -daysSincePayment),
		PaymentCount: payments,
		FailedCount:  failures,
		TotalPaid:    totalPaid,
	}
}

func TestScoreChurnRiskLapsedLowValueCustomer(t *testing.T) {
	// Scenario E: 70 days stale, single payment of 40.
	profiles := ScoreChurnRisk([]*CustomerAggregate{customer("cus_1", 70, 1, 0, 40)}, riskRef)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.Equal(t, 70, p.RiskScore)
	assert.Equal(t, models.RiskLevelCritical, p.RiskLevel)
	assert.Equal(t, []string{
		"no payment in 60+ days",
		"only 1 payment on record",
		"LTV below threshold",
	}, p.Reasons)
	assert.Equal(t, 40.0, p.TotalPaid)
	assert.Equal(t, 40.0, p.LTV)
}

func TestScoreChurnRiskRecencyBandsAreExclusive(t *testing.T) {
	cases := []struct {
		days   int
		points int
		reason string
	}{
		{61, 40, "no payment in 60+ days"},
		{60, 30, "no payment in 45+ days"},
		{46, 30, "no payment in 45+ days"},
		{45, 20, "billing cycle possibly delayed"},
		{36, 20, "billing cycle possibly delayed"},
		{35, 0, ""},
		{10, 0, ""},
	}
	for _, tc := range cases {
		// Healthy on every other axis: many payments, high LTV.
		profiles := ScoreChurnRisk([]*CustomerAggregate{customer("cus_1", tc.days, 12, 0, 1200)}, riskRef)
		p := profiles[0]
		assert.Equal(t, tc.points, p.RiskScore, "days=%d", tc.days)
		if tc.reason == "" {
			assert.Empty(t, p.Reasons, "days=%d", tc.days)
		} else {
			assert.Equal(t, []string{tc.reason}, p.Reasons, "days=%d", tc.days)
		}
	}
}

func TestScoreChurnRiskFailureRatio(t *testing.T) {
	// 2 failures out of 5 attempts is 40%.
	profiles := ScoreChurnRisk([]*CustomerAggregate{customer("cus_1", 10, 3, 2, 900)}, riskRef)
	p := profiles[0]
	assert.Equal(t, 30, p.RiskScore)
	assert.Equal(t, []string{"40% of charges failed"}, p.Reasons)

	// 1 failure out of 5 attempts is 20%: the moderate band.
	profiles = ScoreChurnRisk([]*CustomerAggregate{customer("cus_2", 10, 4, 1, 900)}, riskRef)
	p = profiles[0]
	assert.Equal(t, 15, p.RiskScore)
	assert.Equal(t, []string{"moderate failure rate"}, p.Reasons)

	// 1 out of 10 stays below the moderate band.
	profiles = ScoreChurnRisk([]*CustomerAggregate{customer("cus_3", 10, 9, 1, 900)}, riskRef)
	assert.Zero(t, profiles[0].RiskScore)
}

func TestScoreChurnRiskEngagementRules(t *testing.T) {
	profiles := ScoreChurnRisk([]*CustomerAggregate{
		customer("zero", 10, 0, 0, 500),
		customer("one", 10, 1, 0, 500),
		customer("two", 10, 2, 0, 500),
		customer("three", 10, 3, 0, 500),
	}, riskRef)

	byID := make(map[string]models.ChurnRiskProfile)
	for _, p := range profiles {
		byID[p.CustomerID] = p
	}
	assert.Equal(t, 20, byID["zero"].RiskScore)
	assert.Equal(t, 20, byID["one"].RiskScore)
	assert.Equal(t, 10, byID["two"].RiskScore)
	assert.Equal(t, 0, byID["three"].RiskScore)
}

func TestScoreChurnRiskScoreBoundsAndLevel(t *testing.T) {
	// Worst case across every rule: 40+30+20+10 caps at 100.
	worst := customer("cus_1", 90, 1, 4, 20)
	profiles := ScoreChurnRisk([]*CustomerAggregate{worst}, riskRef)
	p := profiles[0]
	assert.Equal(t, 100, p.RiskScore)
	assert.Equal(t, models.RiskLevelCritical, p.RiskLevel)
	assert.Len(t, p.Reasons, 4)
}

func TestRiskLevelMonotonicOverScore(t *testing.T) {
	assert.Equal(t, models.RiskLevelLow, riskLevel(0))
	assert.Equal(t, models.RiskLevelLow, riskLevel(14))
	assert.Equal(t, models.RiskLevelMedium, riskLevel(15))
	assert.Equal(t, models.RiskLevelMedium, riskLevel(34))
	assert.Equal(t, models.RiskLevelHigh, riskLevel(35))
	assert.Equal(t, models.RiskLevelHigh, riskLevel(59))
	assert.Equal(t, models.RiskLevelCritical, riskLevel(60))
	assert.Equal(t, models.RiskLevelCritical, riskLevel(100))
}

func TestScoreChurnRiskStableSort(t *testing.T) {
	// Three customers with identical scores keep ledger-encounter order;
	// a higher-risk customer ranks ahead of all of them.
	profiles := ScoreChurnRisk([]*CustomerAggregate{
		customer("first", 10, 5, 0, 50),  // 10: low LTV only
		customer("second", 10, 5, 0, 60), // 10
		customer("lapsed", 70, 5, 0, 500),
		customer("third", 10, 5, 0, 70), // 10
	}, riskRef)

	require.Len(t, profiles, 4)
	assert.Equal(t, "lapsed", profiles[0].CustomerID)
	assert.Equal(t, "first", profiles[1].CustomerID)
	assert.Equal(t, "second", profiles[2].CustomerID)
	assert.Equal(t, "third", profiles[3].CustomerID)
}
