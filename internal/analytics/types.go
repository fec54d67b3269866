package analytics

import "cft/internal/models"

// FinancialAnalytics is the full derived-metrics tree computed from the raw
// ledger. Every field is a pure function of the input record slices.
type FinancialAnalytics struct {
	Overview    *Overview          `json:"overview"`
	Donations   *DonationAnalytics `json:"donationAnalytics"`
	Expenses    *ExpenseAnalytics  `json:"expenseAnalytics"`
	Trends      *Trends            `json:"trends"`
	Projections *Projections       `json:"projections"`
	Efficiency  *EfficiencyMetrics `json:"efficiency"`
	Risks       []RiskFinding      `json:"risks"`
}

type Overview struct {
	TotalDonations    float64 `json:"totalDonations"`
	TotalExpenses     float64 `json:"totalExpenses"`
	Balance           float64 `json:"balance"`
	BalancePercentage float64 `json:"balancePercentage"`
	DonationCount     int     `json:"donationCount"`
	ExpenseCount      int     `json:"expenseCount"`
	AverageDonation   float64 `json:"averageDonation"`
	AverageExpense    float64 `json:"averageExpense"`
	LargestDonation   float64 `json:"largestDonation"`
	LargestExpense    float64 `json:"largestExpense"`
	UtilizationRate   float64 `json:"utilizationRate"`
}

// Grouping maps a field value to the records carrying it. Keys preserves
// first-encounter order; flattening the groups in key order reconstructs the
// input multiset.
type Grouping[T any] struct {
	Keys   []string       `json:"keys"`
	Groups map[string][]T `json:"groups"`
}

// RecordBucket is one time bucket: how many records fell in it, their summed
// amount, and the records themselves.
type RecordBucket[T any] struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Records []T     `json:"records"`
}

type BucketMap[T any] struct {
	Keys    []string                    `json:"keys"`
	Buckets map[string]*RecordBucket[T] `json:"buckets"`
}

type DistributionBucket struct {
	Range      string  `json:"range"`
	Count      int     `json:"count"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

type TopDonor struct {
	Name            string                  `json:"name"`
	Wing            string                  `json:"wing"`
	Flat            string                  `json:"flat"`
	TotalAmount     float64                 `json:"totalAmount"`
	DonationCount   int                     `json:"donationCount"`
	AverageDonation float64                 `json:"averageDonation"`
	Donations       []models.DonationRecord `json:"donations"`
}

type RepeatDonor struct {
	Name  string `json:"name"`
	Wing  string `json:"wing"`
	Flat  string `json:"flat"`
	Count int    `json:"count"`
}

type RepeatDonors struct {
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"`
	Donors     []RepeatDonor `json:"donors"`
}

// Frequency counts donations per day, ISO week and calendar month.
type Frequency struct {
	Daily   map[string]int `json:"daily"`
	Weekly  map[string]int `json:"weekly"`
	Monthly map[string]int `json:"monthly"`
}

type FloorDistribution struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type WingDistribution struct {
	Count  int                           `json:"count"`
	Total  float64                       `json:"total"`
	Floors map[string]*FloorDistribution `json:"floors"`
}

type DonationAnalytics struct {
	ByPaymentMode *Grouping[models.DonationRecord]  `json:"byPaymentMode"`
	ByWing        *Grouping[models.DonationRecord]  `json:"byWing"`
	ByFloor       *Grouping[models.DonationRecord]  `json:"byFloor"`
	ByAmount      []DistributionBucket              `json:"byAmount"`
	ByDate        *BucketMap[models.DonationRecord] `json:"byDate"`
	TopDonors     []TopDonor                        `json:"topDonors"`
	RepeatDonors  *RepeatDonors                     `json:"repeatDonors"`
	Frequency     *Frequency                        `json:"donationFrequency"`
	Geographic    map[string]*WingDistribution      `json:"geographicDistribution"`
}

type CategoryEfficiency struct {
	Total      float64 `json:"total"`
	Average    float64 `json:"average"`
	Count      int     `json:"count"`
	Efficiency int     `json:"efficiency"`
}

type MonthAggregate struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type ExpenseTrends struct {
	Monthly  map[string]*MonthAggregate            `json:"monthly"`
	Category map[string]map[string]*MonthAggregate `json:"category"`
}

type BudgetStatus struct {
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	Utilization int     `json:"utilization"`
	Status      string  `json:"status"`
}

type CategoryPerformance struct {
	Total       float64 `json:"total"`
	Count       int     `json:"count"`
	Average     float64 `json:"average"`
	Efficiency  int     `json:"efficiency"`
	Frequency   int     `json:"frequency"`
	Consistency float64 `json:"consistency"`
	Score       int     `json:"score"`
}

type Suggestion struct {
	Category         string  `json:"category"`
	Type             string  `json:"type"`
	Message          string  `json:"message"`
	PotentialSavings float64 `json:"potential_savings"`
}

type ExpenseAnalytics struct {
	ByCategory       *Grouping[models.ExpenseRecord]  `json:"byCategory"`
	ByDate           *BucketMap[models.ExpenseRecord] `json:"byDate"`
	ByAmount         []DistributionBucket             `json:"byAmount"`
	Efficiency       map[string]*CategoryEfficiency   `json:"efficiency"`
	Trends           *ExpenseTrends                   `json:"trends"`
	BudgetAnalysis   map[string]*BudgetStatus         `json:"budgetAnalysis"`
	Performance      map[string]*CategoryPerformance  `json:"categoryPerformance"`
	CostOptimization []Suggestion                     `json:"costOptimization"`
}

// TrendPoint is one time bucket of the combined donation/expense trend
// series. Growth is the percent change of balance against the previous
// bucket, zero for the first bucket and whenever the previous balance is 0.
type TrendPoint struct {
	Period        string  `json:"period"`
	Donations     float64 `json:"donations"`
	Expenses      float64 `json:"expenses"`
	DonationCount int     `json:"donationCount"`
	ExpenseCount  int     `json:"expenseCount"`
	Balance       float64 `json:"balance"`
	Growth        float64 `json:"growth"`
}

type SeasonBucket struct {
	Donations     float64 `json:"donations"`
	Expenses      float64 `json:"expenses"`
	DonationCount int     `json:"donationCount"`
	ExpenseCount  int     `json:"expenseCount"`
	Balance       float64 `json:"balance"`
}

type Trends struct {
	Monthly  []TrendPoint             `json:"monthly"`
	Weekly   []TrendPoint             `json:"weekly"`
	Daily    []TrendPoint             `json:"daily"`
	Seasonal map[string]*SeasonBucket `json:"seasonal"`
}

type ProjectionPoint struct {
	Month              string  `json:"month"`
	ProjectedDonations float64 `json:"projectedDonations"`
	ProjectedExpenses  float64 `json:"projectedExpenses"`
	ProjectedBalance   float64 `json:"projectedBalance"`
	Confidence         float64 `json:"confidence"`
}

// Projections is a distinguished-result type: InsufficientData true means
// fewer than two monthly buckets existed and no numeric projection was made.
type Projections struct {
	InsufficientData bool              `json:"insufficientData,omitempty"`
	AvgGrowthRate    float64           `json:"avgGrowthRate"`
	Points           []ProjectionPoint `json:"projections"`
	Methodology      string            `json:"methodology,omitempty"`
}

type EfficiencyMetrics struct {
	UtilizationRate        float64 `json:"utilizationRate"`
	CostPerDonor           float64 `json:"costPerDonor"`
	AverageTransactionSize float64 `json:"averageTransactionSize"`
	ExpenseEfficiency      float64 `json:"expenseEfficiency"`
}

const (
	RiskLevelHigh   = "high"
	RiskLevelMedium = "medium"

	RiskFinancial            = "financial"
	RiskConcentration        = "concentration"
	RiskExpenseConcentration = "expense_concentration"
)

type RiskFinding struct {
	Type           string  `json:"type"`
	Level          string  `json:"level"`
	Description    string  `json:"description"`
	Impact         float64 `json:"impact"`
	Recommendation string  `json:"recommendation"`
}

type Insight struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

type ReportSection struct {
	Title string      `json:"title"`
	Data  interface{} `json:"data"`
}

type Report struct {
	Title        string                    `json:"title"`
	GeneratedAt  string                    `json:"generatedAt"`
	Period       string                    `json:"period"`
	SectionOrder []string                  `json:"sectionOrder"`
	Sections     map[string]*ReportSection `json:"sections"`
}
