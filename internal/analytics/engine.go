// Package analytics is the derived-metrics engine: it turns raw donation and
// expense records into distributions, trends, projections, risk findings and
// sectioned reports. Everything here is a pure computation over its inputs;
// thresholds and benchmark tables come from configuration.
package analytics

import (
	"cft/internal/models"
	"cft/internal/structures"
	"strconv"
)

type Engine struct {
	cfg *structures.AnalyticsConfig
}

func NewEngine(conf *structures.Config) *Engine {
	return &Engine{cfg: &conf.Analytics}
}

// Aggregate computes the full analytics tree for the given records.
func (e *Engine) Aggregate(donations []models.DonationRecord, expenses []models.ExpenseRecord) *FinancialAnalytics {
	trends := e.financialTrends(donations, expenses)
	return &FinancialAnalytics{
		Overview:    e.overview(donations, expenses),
		Donations:   e.donationAnalytics(donations),
		Expenses:    e.expenseAnalytics(expenses),
		Trends:      trends,
		Projections: e.Project(trends.Monthly),
		Efficiency:  e.efficiencyMetrics(donations, expenses),
		Risks:       e.AssessRisk(donations, expenses),
	}
}

func (e *Engine) overview(donations []models.DonationRecord, expenses []models.ExpenseRecord) *Overview {
	totalDonations := sumDonations(donations)
	totalExpenses := sumExpenses(expenses)
	balance := totalDonations - totalExpenses

	o := &Overview{
		TotalDonations:    totalDonations,
		TotalExpenses:     totalExpenses,
		Balance:           balance,
		BalancePercentage: ratio(balance, totalDonations),
		DonationCount:     len(donations),
		ExpenseCount:      len(expenses),
		UtilizationRate:   ratio(totalExpenses, totalDonations),
	}
	if len(donations) > 0 {
		o.AverageDonation = totalDonations / float64(len(donations))
	}
	if len(expenses) > 0 {
		o.AverageExpense = totalExpenses / float64(len(expenses))
	}
	for _, d := range donations {
		o.LargestDonation = max(o.LargestDonation, d.Amount)
	}
	for _, x := range expenses {
		o.LargestExpense = max(o.LargestExpense, x.Cost)
	}
	return o
}

func (e *Engine) donationAnalytics(donations []models.DonationRecord) *DonationAnalytics {
	return &DonationAnalytics{
		ByPaymentMode: GroupBy(donations, func(d models.DonationRecord) string { return d.PaymentMode }),
		ByWing:        GroupBy(donations, func(d models.DonationRecord) string { return d.Wing }),
		ByFloor:       GroupBy(donations, func(d models.DonationRecord) string { return strconv.Itoa(d.Floor) }),
		ByAmount:      distribution(e.cfg.DonationBuckets, donationAmounts(donations)),
		ByDate: BucketByKey(donations,
			func(d models.DonationRecord) string { return d.Date },
			func(d models.DonationRecord) float64 { return d.Amount }),
		TopDonors:    e.TopDonors(donations, e.cfg.TopDonorLimit),
		RepeatDonors: repeatDonors(donations),
		Frequency:    donationFrequency(donations),
		Geographic:   geographicDistribution(donations),
	}
}

func (e *Engine) expenseAnalytics(expenses []models.ExpenseRecord) *ExpenseAnalytics {
	byCategory := GroupBy(expenses, func(x models.ExpenseRecord) string { return x.Category })
	return &ExpenseAnalytics{
		ByCategory: byCategory,
		ByDate: BucketByKey(expenses,
			func(x models.ExpenseRecord) string { return x.Date },
			func(x models.ExpenseRecord) float64 { return x.Cost }),
		ByAmount:         distribution(e.cfg.ExpenseBuckets, expenseAmounts(expenses)),
		Efficiency:       e.expenseEfficiency(byCategory),
		Trends:           expenseTrends(expenses, byCategory),
		BudgetAnalysis:   e.budgetAnalysis(expenses),
		Performance:      e.categoryPerformance(byCategory),
		CostOptimization: e.costOptimization(byCategory),
	}
}

func (e *Engine) efficiencyMetrics(donations []models.DonationRecord, expenses []models.ExpenseRecord) *EfficiencyMetrics {
	totalDonations := sumDonations(donations)
	totalExpenses := sumExpenses(expenses)

	m := &EfficiencyMetrics{
		UtilizationRate: ratio(totalExpenses, totalDonations),
	}
	if len(donations) > 0 {
		m.CostPerDonor = totalExpenses / float64(len(donations))
		m.AverageTransactionSize = totalDonations / float64(len(donations))
	}
	if len(expenses) > 0 {
		m.ExpenseEfficiency = totalExpenses / float64(len(expenses))
	}
	return m
}

func sumDonations(donations []models.DonationRecord) float64 {
	var total float64
	for _, d := range donations {
		total += d.Amount
	}
	return total
}

func sumExpenses(expenses []models.ExpenseRecord) float64 {
	var total float64
	for _, x := range expenses {
		total += x.Cost
	}
	return total
}

func donationAmounts(donations []models.DonationRecord) []float64 {
	amounts := make([]float64, len(donations))
	for i, d := range donations {
		amounts[i] = d.Amount
	}
	return amounts
}

func expenseAmounts(expenses []models.ExpenseRecord) []float64 {
	amounts := make([]float64, len(expenses))
	for i, x := range expenses {
		amounts[i] = x.Cost
	}
	return amounts
}

// ratio returns part/whole as a percentage, 0 when whole is 0. Every ratio
// metric in the engine goes through this so a zero denominator can never
// produce NaN or Inf.
func ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
