package analytics

import (
	"math"
	"time"

	"github.com/Dan9191/revenue-service/internal/models"
)

// trendMonths is the length of the historical MRR window.
const trendMonths = 12

// round2 rounds to two decimal places, currency style.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// BuildMRRTrend computes the trailing twelve calendar months of recognized
// revenue ending at the month of ref, oldest first. For each month the
// customer cohort is compared against the previous month: new MRR sums the
// arriving customers' revenue in the month itself, churned MRR sums the
// departed customers' revenue in the month they last paid. Churn is measured
// by what was lost, not by a zero in the current period.
func BuildMRRTrend(entries []LedgerEntry, ref time.Time) []models.MonthlyCohort {
	totals := make(map[string]float64)
	perCustomer := make(map[string]map[string]float64)

	for _, e := range entries {
		if !e.Paid {
			continue
		}
		key := monthKey(e.CreatedAt)
		totals[key] += e.Amount
		if perCustomer[key] == nil {
			perCustomer[key] = make(map[string]float64)
		}
		perCustomer[key][e.CustomerID] += e.Amount
	}

	current := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	trend := make([]models.MonthlyCohort, 0, trendMonths)

	for i := trendMonths - 1; i >= 0; i-- {
		monthStart := current.AddDate(0, -i, 0)
		key := monthKey(monthStart)
		// The first window month still compares against out-of-window
		// data when the ledger reaches that far back.
		prevKey := monthKey(monthStart.AddDate(0, -1, 0))

		var newMRR float64
		for id, amount := range perCustomer[key] {
			if _, retained := perCustomer[prevKey][id]; !retained {
				newMRR += amount
			}
		}
		var churnedMRR float64
		for id, amount := range perCustomer[prevKey] {
			if _, retained := perCustomer[key][id]; !retained {
				churnedMRR += amount
			}
		}

		cohort := models.MonthlyCohort{
			Month:      key,
			MRR:        round2(totals[key]),
			NewMRR:     round2(newMRR),
			ChurnedMRR: round2(churnedMRR),
		}
		cohort.NetNew = cohort.NewMRR - cohort.ChurnedMRR
		trend = append(trend, cohort)
	}

	return trend
}
