package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Dan9191/revenue-service/internal/models"
)

// Risk level thresholds over the final score.
const (
	criticalThreshold = 60
	highThreshold     = 35
	mediumThreshold   = 15
)

// ScoreChurnRisk evaluates every ledger customer against the additive risk
// rule table and returns profiles sorted by score, highest first. Customers
// with equal scores keep their ledger-encounter order.
func ScoreChurnRisk(customers []*CustomerAggregate, ref time.Time) []models.ChurnRiskProfile {
	profiles := make([]models.ChurnRiskProfile, 0, len(customers))
	for _, c := range customers {
		score, reasons := scoreCustomer(c, ref)
		profiles = append(profiles, models.ChurnRiskProfile{
			CustomerID:  c.CustomerID,
			Email:       c.Email,
			Name:        c.Name,
			Plan:        c.Plan,
			RiskScore:   score,
			RiskLevel:   riskLevel(score),
			Reasons:     reasons,
			LastPayment: c.LastPayment,
			TotalPaid:   round2(c.TotalPaid),
			LTV:         round2(c.TotalPaid),
		})
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].RiskScore > profiles[j].RiskScore
	})
	return profiles
}

// scoreCustomer applies the rule table. Recency and failure-ratio bands are
// mutually exclusive (only the highest match fires); engagement and value
// rules fire independently. The score is capped at 100.
func scoreCustomer(c *CustomerAggregate, ref time.Time) (int, []string) {
	score := 0
	var reasons []string

	days := int(ref.Sub(c.LastPayment).Hours() / 24)
	switch {
	case days > 60:
		score += 40
		reasons = append(reasons, "no payment in 60+ days")
	case days > 45:
		score += 30
		reasons = append(reasons, "no payment in 45+ days")
	case days > 35:
		score += 20
		reasons = append(reasons, "billing cycle possibly delayed")
	}

	attempts := c.PaymentCount + c.FailedCount
	if attempts > 0 {
		ratio := float64(c.FailedCount) / float64(attempts)
		switch {
		case ratio > 0.30:
			score += 30
			reasons = append(reasons, fmt.Sprintf("%d%% of charges failed", int(math.Round(ratio*100))))
		case ratio > 0.15:
			score += 15
			reasons = append(reasons, "moderate failure rate")
		}
	}

	switch {
	case c.PaymentCount <= 1:
		score += 20
		reasons = append(reasons, "only 1 payment on record")
	case c.PaymentCount == 2:
		score += 10
		reasons = append(reasons, "few payments on record")
	}

	if c.TotalPaid < 100 {
		score += 10
		reasons = append(reasons, "LTV below threshold")
	}

	if score > 100 {
		score = 100
	}
	return score, reasons
}

func riskLevel(score int) string {
	switch {
	case score >= criticalThreshold:
		return models.RiskLevelCritical
	case score >= highThreshold:
		return models.RiskLevelHigh
	case score >= mediumThreshold:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}
