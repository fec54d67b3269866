package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Dir            string        `yaml:"dir" validate:"required|unixPath"`
	SaveInterval   time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	BackupInterval time.Duration `yaml:"backupInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MigrationConfig struct {
	Auto bool `yaml:"auto"`
}

// AmountBucket is one currency range of an amount distribution.
// Max < 0 means the range is unbounded above.
type AmountBucket struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Label string  `yaml:"label"`
}

type AnalyticsConfig struct {
	TopDonorLimit        int                `yaml:"topDonorLimit"`
	DonationBuckets      []AmountBucket     `yaml:"donationBuckets"`
	ExpenseBuckets       []AmountBucket     `yaml:"expenseBuckets"`
	Benchmarks           map[string]float64 `yaml:"benchmarks"`
	FallbackBenchmark    float64            `yaml:"fallbackBenchmark"`
	BudgetLimits         map[string]float64 `yaml:"budgetLimits"`
	FallbackBudget       float64            `yaml:"fallbackBudget"`
	HighAvgExpense       float64            `yaml:"highAvgExpense"`
	BulkSavingsRate      float64            `yaml:"bulkSavingsRate"`
	BulkExemptCategories []string           `yaml:"bulkExemptCategories"`
	HighTxnCount         int                `yaml:"highTxnCount"`
	PerTxnCost           float64            `yaml:"perTxnCost"`
}

type HeuristicsConfig struct {
	FlatsPerFloor       int                `yaml:"flatsPerFloor"`
	CostWarningLimits   map[string]float64 `yaml:"costWarningLimits"`
	FallbackCostWarning float64            `yaml:"fallbackCostWarning"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server           `yaml:"webServer"`
	Persistence Persistence      `yaml:"persistence"`
	Logger      LoggerConfig     `yaml:"logger"`
	Cache       CacheConfig      `yaml:"cache"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	Migration   MigrationConfig  `yaml:"migration"`
	Analytics   AnalyticsConfig  `yaml:"analytics"`
	Heuristics  HeuristicsConfig `yaml:"heuristics"`
}

// DefaultAnalytics returns the thresholds the engine uses when the config
// file does not override them. The currency ranges and per-category constants
// reflect the fund's historical spending profile.
func DefaultAnalytics() AnalyticsConfig {
	return AnalyticsConfig{
		TopDonorLimit: 10,
		DonationBuckets: []AmountBucket{
			{Min: 0, Max: 100, Label: "0-100"},
			{Min: 101, Max: 500, Label: "101-500"},
			{Min: 501, Max: 1000, Label: "501-1000"},
			{Min: 1001, Max: 5000, Label: "1001-5000"},
			{Min: 5001, Max: 10000, Label: "5001-10000"},
			{Min: 10001, Max: -1, Label: "10000+"},
		},
		ExpenseBuckets: []AmountBucket{
			{Min: 0, Max: 500, Label: "0-500"},
			{Min: 501, Max: 1000, Label: "501-1000"},
			{Min: 1001, Max: 5000, Label: "1001-5000"},
			{Min: 5001, Max: 10000, Label: "5001-10000"},
			{Min: 10001, Max: 50000, Label: "10001-50000"},
			{Min: 50001, Max: -1, Label: "50000+"},
		},
		Benchmarks: map[string]float64{
			"Decoration":     2000,
			"Food & Prasad":  1500,
			"Sound & Music":  1000,
			"Transportation": 800,
			"Utilities":      1200,
			"Miscellaneous":  500,
			"Donation":       5000,
			"Maintenance":    1800,
		},
		FallbackBenchmark: 1000,
		BudgetLimits: map[string]float64{
			"Decoration":     15000,
			"Food & Prasad":  10000,
			"Sound & Music":  8000,
			"Transportation": 5000,
			"Utilities":      6000,
			"Miscellaneous":  3000,
			"Donation":       20000,
			"Maintenance":    7000,
		},
		FallbackBudget:       5000,
		HighAvgExpense:       5000,
		BulkSavingsRate:      0.15,
		BulkExemptCategories: []string{"Donation"},
		HighTxnCount:         10,
		PerTxnCost:           50,
	}
}

func DefaultHeuristics() HeuristicsConfig {
	return HeuristicsConfig{
		FlatsPerFloor: 10,
		CostWarningLimits: map[string]float64{
			"Decoration":     50000,
			"Food & Prasad":  30000,
			"Sound & Music":  25000,
			"Transportation": 15000,
			"Utilities":      20000,
			"Miscellaneous":  10000,
			"Donation":       100000,
			"Maintenance":    40000,
		},
		FallbackCostWarning: 20000,
	}
}
