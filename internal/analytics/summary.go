package analytics

import (
	"math"

	"github.com/Dan9191/revenue-service/internal/models"
)

// BuildSummary combines the cohort trend, forecast and the full (uncapped)
// risk ranking into top-line KPIs. Revenue at risk amortizes each at-risk
// customer's lifetime value over an estimated subscription length derived
// from the average MRR per customer; this is a coarse estimate, not a
// billing-period lookup.
func BuildSummary(trend []models.MonthlyCohort, forecast []models.ForecastPoint, risks []models.ChurnRiskProfile) models.AnalyticsSummary {
	summary := models.AnalyticsSummary{
		TotalCustomers: len(risks),
	}

	if len(trend) > 0 {
		summary.CurrentMRR = trend[len(trend)-1].MRR
	}
	if len(trend) > 1 {
		previous := trend[len(trend)-2].MRR
		if previous > 0 {
			summary.MRRGrowthPct = math.Round(100 * (summary.CurrentMRR - previous) / previous)
		}
	}

	var totalLTV float64
	for _, r := range risks {
		totalLTV += r.LTV
	}
	if len(risks) > 0 {
		summary.AvgLTV = round2(totalLTV / float64(len(risks)))
	}

	var avgMRRPerCustomer float64
	if summary.TotalCustomers > 0 {
		avgMRRPerCustomer = summary.CurrentMRR / float64(summary.TotalCustomers)
	}

	var revenueAtRisk float64
	for _, r := range risks {
		if r.RiskLevel != models.RiskLevelCritical && r.RiskLevel != models.RiskLevelHigh {
			continue
		}
		summary.AtRiskCustomers++
		if avgMRRPerCustomer <= 0 {
			continue
		}
		months := math.Ceil(r.LTV / avgMRRPerCustomer)
		if months < 1 {
			months = 1
		}
		revenueAtRisk += r.LTV / months
	}
	summary.RevenueAtRisk = round2(revenueAtRisk)

	if len(forecast) > 0 {
		summary.ProjectedNextMonth = forecast[0].Projected
	}

	return summary
}
