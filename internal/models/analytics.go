package models

import "time"

// MonthlyCohort represents recognized revenue for one calendar month with
// its new/churned decomposition
type MonthlyCohort struct {
	Month      string  `json:"month"` // Format: YYYY-MM
	MRR        float64 `json:"mrr"`
	NewMRR     float64 `json:"new_mrr"`
	ChurnedMRR float64 `json:"churned_mrr"`
	NetNew     float64 `json:"net_new"` // NewMRR - ChurnedMRR
}

// ForecastPoint represents one projected future month of MRR
type ForecastPoint struct {
	Month        string  `json:"month"` // Format: YYYY-MM
	Projected    float64 `json:"projected"`
	Optimistic   float64 `json:"optimistic"`
	Conservative float64 `json:"conservative"`
}

// Risk level categories derived from the final risk score
const (
	RiskLevelCritical = "critical"
	RiskLevelHigh     = "high"
	RiskLevelMedium   = "medium"
	RiskLevelLow      = "low"
)

// ChurnRiskProfile represents the churn-risk assessment for one customer
type ChurnRiskProfile struct {
	CustomerID  string    `json:"customer_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Plan        string    `json:"plan"`
	RiskScore   int       `json:"risk_score"` // 0-100
	RiskLevel   string    `json:"risk_level"`
	Reasons     []string  `json:"reasons"`
	LastPayment time.Time `json:"last_payment"`
	TotalPaid   float64   `json:"total_paid"`
	LTV         float64   `json:"ltv"`
}

// AnalyticsSummary represents the top-line KPIs for the reporting period
type AnalyticsSummary struct {
	CurrentMRR         float64 `json:"current_mrr"`
	MRRGrowthPct       float64 `json:"mrr_growth_pct"`
	TotalCustomers     int     `json:"total_customers"`
	AtRiskCustomers    int     `json:"at_risk_customers"`
	AvgLTV             float64 `json:"avg_ltv"`
	RevenueAtRisk      float64 `json:"revenue_at_risk"`
	ProjectedNextMonth float64 `json:"projected_next_month"`
}

// AnalyticsReport is the full response returned to the reporting layer.
// Field names and the 12/3/50 cardinalities are part of the API contract.
type AnalyticsReport struct {
	MRRTrend   []MonthlyCohort    `json:"mrr_trend"`
	Forecast   []ForecastPoint    `json:"forecast"`
	ChurnRisks []ChurnRiskProfile `json:"churn_risks"`
	Summary    AnalyticsSummary   `json:"summary"`
}
