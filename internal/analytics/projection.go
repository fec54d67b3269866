package analytics

import (
	"math"
	"time"
)

const projectionMethodology = "Linear trend projection based on historical growth rates"

// Project extrapolates the next three months from the monthly trend series.
// With fewer than two buckets there is no growth history to extend and the
// result is flagged InsufficientData.
func (e *Engine) Project(monthly []TrendPoint) *Projections {
	if len(monthly) < 2 {
		return &Projections{InsufficientData: true}
	}

	var avgGrowth float64
	for _, p := range monthly[1:] {
		avgGrowth += p.Growth
	}
	avgGrowth /= float64(len(monthly) - 1)

	last := monthly[len(monthly)-1]
	// Projection months continue from the last historical bucket, not from
	// the wall clock, so the output is stable over stale data.
	base, err := time.Parse("2006-01", last.Period)
	if err != nil {
		base = time.Now().UTC()
	}

	factor := 1 + avgGrowth/100
	points := make([]ProjectionPoint, 0, 3)
	for i := 1; i <= 3; i++ {
		scale := math.Pow(factor, float64(i))
		points = append(points, ProjectionPoint{
			Month:              base.AddDate(0, i, 0).Format("2006-01"),
			ProjectedDonations: last.Donations * scale,
			ProjectedExpenses:  last.Expenses * scale,
			ProjectedBalance:   last.Balance * scale,
			Confidence:         math.Max(0, 100-float64(20*i)),
		})
	}

	return &Projections{
		AvgGrowthRate: avgGrowth,
		Points:        points,
		Methodology:   projectionMethodology,
	}
}
