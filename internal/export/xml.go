package export

import (
	"strconv"

	"github.com/Dan9191/revenue-service/internal/models"
	"github.com/beevik/etree"
)

// ReportXML renders the analytics report as an XML document for consumers
// that ingest reports outside the JSON API (spreadsheet import, archival).
func ReportXML(report *models.AnalyticsReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("AnalyticsReport")

	trend := root.CreateElement("MRRTrend")
	for _, c := range report.MRRTrend {
		month := trend.CreateElement("Month")
		month.CreateAttr("value", c.Month)
		month.CreateElement("MRR").SetText(amount(c.MRR))
		month.CreateElement("NewMRR").SetText(amount(c.NewMRR))
		month.CreateElement("ChurnedMRR").SetText(amount(c.ChurnedMRR))
		month.CreateElement("NetNew").SetText(amount(c.NetNew))
	}

	forecast := root.CreateElement("Forecast")
	for _, p := range report.Forecast {
		point := forecast.CreateElement("Month")
		point.CreateAttr("value", p.Month)
		point.CreateElement("Projected").SetText(amount(p.Projected))
		point.CreateElement("Optimistic").SetText(amount(p.Optimistic))
		point.CreateElement("Conservative").SetText(amount(p.Conservative))
	}

	risks := root.CreateElement("ChurnRisks")
	for _, r := range report.ChurnRisks {
		customer := risks.CreateElement("Customer")
		customer.CreateAttr("id", r.CustomerID)
		customer.CreateElement("Email").SetText(r.Email)
		customer.CreateElement("Name").SetText(r.Name)
		customer.CreateElement("Plan").SetText(r.Plan)
		customer.CreateElement("RiskScore").SetText(strconv.Itoa(r.RiskScore))
		customer.CreateElement("RiskLevel").SetText(r.RiskLevel)
		reasons := customer.CreateElement("Reasons")
		for _, reason := range r.Reasons {
			reasons.CreateElement("Reason").SetText(reason)
		}
		customer.CreateElement("LastPayment").SetText(r.LastPayment.Format("2006-01-02"))
		customer.CreateElement("LTV").SetText(amount(r.LTV))
	}

	summary := root.CreateElement("Summary")
	summary.CreateElement("CurrentMRR").SetText(amount(report.Summary.CurrentMRR))
	summary.CreateElement("MRRGrowthPct").SetText(amount(report.Summary.MRRGrowthPct))
	summary.CreateElement("TotalCustomers").SetText(strconv.Itoa(report.Summary.TotalCustomers))
	summary.CreateElement("AtRiskCustomers").SetText(strconv.Itoa(report.Summary.AtRiskCustomers))
	summary.CreateElement("AvgLTV").SetText(amount(report.Summary.AvgLTV))
	summary.CreateElement("RevenueAtRisk").SetText(amount(report.Summary.RevenueAtRisk))
	summary.CreateElement("ProjectedNextMonth").SetText(amount(report.Summary.ProjectedNextMonth))

	doc.Indent(2)
	return doc.WriteToBytes()
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
