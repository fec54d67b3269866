package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cft/internal/models"
	"cft/internal/structures"
)

func testEngine() *Engine {
	return NewEngine(&structures.Config{Analytics: structures.DefaultAnalytics()})
}

func don(name, wing string, floor int, flat string, amount float64, date string) models.DonationRecord {
	return models.DonationRecord{
		ID:          "GP1700000000000ABC",
		Name:        name,
		Wing:        wing,
		Floor:       floor,
		Flat:        flat,
		Amount:      amount,
		PaymentMode: "UPI",
		Date:        date,
		Timestamp:   date + "T10:00:00Z",
		Status:      "confirmed",
	}
}

func exp(item, category string, cost float64, date string) models.ExpenseRecord {
	return models.ExpenseRecord{
		ID:        "EX1700000000000XYZ",
		Item:      item,
		Cost:      cost,
		Date:      date,
		Reason:    "festival arrangements",
		Category:  category,
		Timestamp: date + "T10:00:00Z",
		Status:    "approved",
	}
}

func TestOverview_BalanceAndCounts(t *testing.T) {
	e := testEngine()
	donations := []models.DonationRecord{
		don("Asha", "A", 1, "101", 1000, "2024-09-01"),
		don("Ravi", "B", 2, "202", 500, "2024-09-02"),
	}
	expenses := []models.ExpenseRecord{
		exp("Garlands", "Decoration", 600, "2024-09-03"),
	}

	o := e.overview(donations, expenses)
	assert.Equal(t, 1500.0, o.TotalDonations)
	assert.Equal(t, 600.0, o.TotalExpenses)
	assert.Equal(t, 900.0, o.Balance)
	assert.Equal(t, 2, o.DonationCount)
	assert.Equal(t, 1, o.ExpenseCount)
	assert.Equal(t, 750.0, o.AverageDonation)
	assert.Equal(t, 600.0, o.AverageExpense)
	assert.Equal(t, 1000.0, o.LargestDonation)
	assert.Equal(t, 600.0, o.LargestExpense)
	assert.InDelta(t, 40.0, o.UtilizationRate, 0.001)
	assert.InDelta(t, 60.0, o.BalancePercentage, 0.001)
}

func TestOverview_EmptyInputsProduceZeros(t *testing.T) {
	e := testEngine()
	o := e.overview(nil, nil)
	assert.Zero(t, o.TotalDonations)
	assert.Zero(t, o.UtilizationRate)
	assert.Zero(t, o.BalancePercentage)
	assert.Zero(t, o.AverageDonation)
	assert.Zero(t, o.AverageExpense)
}

func TestOverview_NoDonationsButExpenses(t *testing.T) {
	e := testEngine()
	o := e.overview(nil, []models.ExpenseRecord{exp("Speakers", "Sound & Music", 3000, "2024-09-01")})
	assert.Equal(t, -3000.0, o.Balance)
	// Percentage ratios stay 0 with a zero donation total, never NaN.
	assert.Zero(t, o.UtilizationRate)
	assert.Zero(t, o.BalancePercentage)
}

func TestEfficiencyMetrics(t *testing.T) {
	e := testEngine()
	donations := []models.DonationRecord{
		don("Asha", "A", 1, "101", 1000, "2024-09-01"),
		don("Ravi", "B", 2, "202", 1000, "2024-09-02"),
	}
	expenses := []models.ExpenseRecord{
		exp("Garlands", "Decoration", 500, "2024-09-03"),
		exp("Speakers", "Sound & Music", 700, "2024-09-04"),
	}

	m := e.efficiencyMetrics(donations, expenses)
	assert.InDelta(t, 60.0, m.UtilizationRate, 0.001)
	assert.Equal(t, 600.0, m.CostPerDonor)
	assert.Equal(t, 1000.0, m.AverageTransactionSize)
	assert.Equal(t, 600.0, m.ExpenseEfficiency)
}

func TestAggregate_AssemblesAllSections(t *testing.T) {
	e := testEngine()
	donations := []models.DonationRecord{don("Asha", "A", 1, "101", 1000, "2024-09-01")}
	expenses := []models.ExpenseRecord{exp("Garlands", "Decoration", 600, "2024-09-03")}

	a := e.Aggregate(donations, expenses)
	require.NotNil(t, a.Overview)
	require.NotNil(t, a.Donations)
	require.NotNil(t, a.Expenses)
	require.NotNil(t, a.Trends)
	require.NotNil(t, a.Projections)
	require.NotNil(t, a.Efficiency)
	assert.NotNil(t, a.Risks)
}

func TestGroupBy_PreservesOrderAndMultiset(t *testing.T) {
	donations := []models.DonationRecord{
		don("Asha", "A", 1, "101", 100, "2024-09-01"),
		don("Ravi", "B", 2, "202", 200, "2024-09-02"),
		don("Meena", "A", 3, "303", 300, "2024-09-03"),
	}

	g := GroupBy(donations, func(d models.DonationRecord) string { return d.Wing })
	assert.Equal(t, []string{"A", "B"}, g.Keys)

	var flattened []models.DonationRecord
	for _, k := range g.Keys {
		flattened = append(flattened, g.Groups[k]...)
	}
	assert.Len(t, flattened, 3)
	assert.Equal(t, "Asha", flattened[0].Name)
	assert.Equal(t, "Meena", flattened[1].Name)
	assert.Equal(t, "Ravi", flattened[2].Name)
}

func TestBucketByKey_Totals(t *testing.T) {
	expenses := []models.ExpenseRecord{
		exp("Garlands", "Decoration", 100, "2024-09-01"),
		exp("Lights", "Decoration", 200, "2024-09-01"),
		exp("Speakers", "Sound & Music", 300, "2024-09-02"),
	}

	bm := BucketByKey(expenses,
		func(x models.ExpenseRecord) string { return x.Date },
		func(x models.ExpenseRecord) float64 { return x.Cost })

	assert.Equal(t, []string{"2024-09-01", "2024-09-02"}, bm.Keys)
	assert.Equal(t, 2, bm.Buckets["2024-09-01"].Count)
	assert.Equal(t, 300.0, bm.Buckets["2024-09-01"].Total)
	assert.Equal(t, 1, bm.Buckets["2024-09-02"].Count)
}
