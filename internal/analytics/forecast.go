package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/revenue-service/internal/models"
)

// ErrInsufficientData means the trailing MRR window has too little history
// for a regression. The caller degrades to an empty forecast section.
var ErrInsufficientData = errors.New("insufficient data for forecast")

const (
	forecastWindow     = 6
	forecastHorizon    = 3
	optimisticFactor   = 1.2
	conservativeFactor = 0.8
)

// ForecastMRR fits an ordinary least-squares line over the trailing six
// months of the trend and projects the next three, with optimistic and
// conservative bands at fixed offsets. Projections are floored at zero.
func ForecastMRR(trend []models.MonthlyCohort) ([]models.ForecastPoint, error) {
	revenueMonths := 0
	for _, c := range trend {
		if c.MRR > 0 {
			revenueMonths++
		}
	}
	if len(trend) < 2 || revenueMonths < 2 {
		return nil, ErrInsufficientData
	}

	window := trend
	if len(window) > forecastWindow {
		window = window[len(window)-forecastWindow:]
	}

	n := float64(len(window))
	var sumX, sumY, sumXY, sumXX float64
	for i, c := range window {
		x := float64(i)
		sumX += x
		sumY += c.MRR
		sumXY += x * c.MRR
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil, ErrInsufficientData
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	lastMonth, err := time.Parse("2006-01", window[len(window)-1].Month)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trend month %q: %w", window[len(window)-1].Month, err)
	}

	forecast := make([]models.ForecastPoint, 0, forecastHorizon)
	for k := 1; k <= forecastHorizon; k++ {
		x := n - 1 + float64(k)
		projected := slope*x + intercept
		if projected < 0 {
			projected = 0
		}
		projected = round2(projected)
		forecast = append(forecast, models.ForecastPoint{
			Month:        monthKey(lastMonth.AddDate(0, k, 0)),
			Projected:    projected,
			Optimistic:   round2(projected * optimisticFactor),
			Conservative: round2(projected * conservativeFactor),
		})
	}

	return forecast, nil
}
