package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cft/internal/models"
)

func TestAssessRisk_NegativeBalance(t *testing.T) {
	e := testEngine()
	donations := []models.DonationRecord{don("Asha", "A", 1, "101", 1000, "2024-09-01")}
	expenses := []models.ExpenseRecord{exp("Stage", "Decoration", 1500, "2024-09-02")}

	risks := e.AssessRisk(donations, expenses)
	require.NotEmpty(t, risks)
	assert.Equal(t, RiskFinancial, risks[0].Type)
	assert.Equal(t, RiskLevelHigh, risks[0].Level)
	assert.Equal(t, "Expenses exceed donations", risks[0].Description)
	assert.Equal(t, 500.0, risks[0].Impact)
}

func TestAssessRisk_LowBalance(t *testing.T) {
	e := testEngine()
	donations := []models.DonationRecord{
		don("Asha", "A", 1, "101", 500, "2024-09-01"),
		don("Ravi", "B", 2, "202", 500, "2024-09-02"),
		don("Meena", "C", 3, "303", 500, "2024-09-03"),
		don("Kiran", "D", 4, "404", 500, "2024-09-04"),
		don("Vijay", "E", 5, "505", 500, "2024-09-05"),
		don("Asha2", "A", 2, "205", 500, "2024-09-06"),
	}
	// Balance 50 < 10% of 3000.
	expenses := []models.ExpenseRecord{exp("Stage", "Decoration", 2950, "2024-09-07")}

	risks := e.AssessRisk(donations, expenses)
	require.NotEmpty(t, risks)
	assert.Equal(t, RiskFinancial, risks[0].Type)
	assert.Equal(t, RiskLevelMedium, risks[0].Level)
	assert.Equal(t, "Low remaining balance", risks[0].Description)
	assert.Equal(t, 50.0, risks[0].Impact)
}

func TestAssessRisk_HealthyBalanceNoFinancialRisk(t *testing.T) {
	e := testEngine()
	donations := []models.DonationRecord{
		don("Asha", "A", 1, "101", 500, "2024-09-01"),
		don("Ravi", "B", 2, "202", 500, "2024-09-02"),
		don("Meena", "C", 3, "303", 500, "2024-09-03"),
		don("Kiran", "D", 4, "404", 500, "2024-09-04"),
		don("Vijay", "E", 5, "505", 500, "2024-09-05"),
		don("Asha2", "A", 2, "205", 500, "2024-09-06"),
	}
	expenses := []models.ExpenseRecord{exp("Stage", "Decoration", 500, "2024-09-07")}

	risks := e.AssessRisk(donations, expenses)
	for _, r := range risks {
		assert.NotEqual(t, RiskFinancial, r.Type)
	}
}

func TestAssessRisk_DonorConcentration(t *testing.T) {
	e := testEngine()
	// One donor carries the whole fund.
	donations := []models.DonationRecord{don("Asha", "A", 1, "101", 10000, "2024-09-01")}

	risks := e.AssessRisk(donations, nil)
	var found *RiskFinding
	for i := range risks {
		if risks[i].Type == RiskConcentration {
			found = &risks[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, RiskLevelMedium, found.Level)
	assert.InDelta(t, 100.0, found.Impact, 0.001)
}

func TestAssessRisk_ExpenseConcentration(t *testing.T) {
	e := testEngine()
	donations := []models.DonationRecord{
		don("Asha", "A", 1, "101", 2000, "2024-09-01"),
		don("Ravi", "B", 2, "202", 2000, "2024-09-02"),
		don("Meena", "C", 3, "303", 2000, "2024-09-03"),
		don("Kiran", "D", 4, "404", 2000, "2024-09-04"),
		don("Vijay", "E", 5, "505", 2000, "2024-09-05"),
		don("Asha2", "A", 2, "205", 2000, "2024-09-06"),
	}
	expenses := []models.ExpenseRecord{
		exp("Stage", "Decoration", 4500, "2024-09-07"),
		exp("Speakers", "Sound & Music", 3000, "2024-09-08"),
		exp("Tempo", "Transportation", 2500, "2024-09-09"),
	}

	risks := e.AssessRisk(donations, expenses)
	var found *RiskFinding
	for i := range risks {
		if risks[i].Type == RiskExpenseConcentration {
			found = &risks[i]
		}
	}
	require.NotNil(t, found)
	// Decoration is 45% of 10000 spent.
	assert.InDelta(t, 45.0, found.Impact, 0.001)
	assert.Contains(t, found.Description, "Decoration")
}

func TestAssessRisk_EmptyLedgerNoRisks(t *testing.T) {
	e := testEngine()
	assert.Empty(t, e.AssessRisk(nil, nil))
}
