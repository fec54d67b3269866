package analytics

import "fmt"

// Insights derives short human-readable observations from a computed
// analytics tree, for the dashboard surface.
func (e *Engine) Insights(a *FinancialAnalytics) []Insight {
	insights := []Insight{}

	if a.Overview.Balance < 0 {
		insights = append(insights, Insight{
			Type:     "warning",
			Message:  fmt.Sprintf("Spending exceeds donations by %.2f", -a.Overview.Balance),
			Priority: "high",
		})
	}

	if a.Donations.RepeatDonors != nil && a.Donations.RepeatDonors.Percentage > 30 {
		insights = append(insights, Insight{
			Type:     "success",
			Message:  fmt.Sprintf("Strong donor retention: %.1f%% of donors contributed more than once", a.Donations.RepeatDonors.Percentage),
			Priority: "medium",
		})
	}

	if a.Overview.TotalExpenses > 0 {
		byCategory := a.Expenses.ByCategory
		for _, category := range byCategory.Keys {
			var total float64
			for _, x := range byCategory.Groups[category] {
				total += x.Cost
			}
			if pct := total / a.Overview.TotalExpenses * 100; pct > 40 {
				insights = append(insights, Insight{
					Type:     "info",
					Message:  fmt.Sprintf("%s is the dominant expense category at %.1f%% of spending", category, pct),
					Priority: "low",
				})
			}
		}
	}

	return insights
}
