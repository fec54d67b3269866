package analytics

import (
	"fmt"
	"math"

	"cft/internal/models"
)

// AssessRisk evaluates the fund's financial health, donor concentration and
// expense concentration. Findings are ordered: financial first, then donor
// concentration, then per-category expense concentration.
func (e *Engine) AssessRisk(donations []models.DonationRecord, expenses []models.ExpenseRecord) []RiskFinding {
	findings := []RiskFinding{}

	totalDonations := sumDonations(donations)
	totalExpenses := sumExpenses(expenses)
	balance := totalDonations - totalExpenses

	switch {
	case balance < 0:
		findings = append(findings, RiskFinding{
			Type:           RiskFinancial,
			Level:          RiskLevelHigh,
			Description:    "Expenses exceed donations",
			Impact:         math.Abs(balance),
			Recommendation: "Reduce expenses or increase fundraising efforts",
		})
	case balance < totalDonations*0.1:
		findings = append(findings, RiskFinding{
			Type:           RiskFinancial,
			Level:          RiskLevelMedium,
			Description:    "Low remaining balance",
			Impact:         balance,
			Recommendation: "Monitor spending closely",
		})
	}

	if totalDonations > 0 {
		top := e.TopDonors(donations, 5)
		var topTotal float64
		for _, donor := range top {
			topTotal += donor.TotalAmount
		}
		if pct := topTotal / totalDonations * 100; pct > 50 {
			findings = append(findings, RiskFinding{
				Type:           RiskConcentration,
				Level:          RiskLevelMedium,
				Description:    fmt.Sprintf("Top 5 donors contribute %.1f%% of total donations", pct),
				Impact:         pct,
				Recommendation: "Diversify donor base to reduce dependency",
			})
		}
	}

	if totalExpenses > 0 {
		byCategory := GroupBy(expenses, func(x models.ExpenseRecord) string { return x.Category })
		for _, category := range byCategory.Keys {
			var categoryTotal float64
			for _, x := range byCategory.Groups[category] {
				categoryTotal += x.Cost
			}
			if pct := categoryTotal / totalExpenses * 100; pct > 40 {
				findings = append(findings, RiskFinding{
					Type:           RiskExpenseConcentration,
					Level:          RiskLevelMedium,
					Description:    fmt.Sprintf("%s accounts for %.1f%% of total expenses", category, pct),
					Impact:         pct,
					Recommendation: "Review spending allocation across categories",
				})
			}
		}
	}

	return findings
}
